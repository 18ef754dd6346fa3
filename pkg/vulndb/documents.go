package vulndb

import (
	"encoding/json"
	"io"
	"path/filepath"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"

	"github.com/vulnboard/vulnboard/pkg/adapter"
	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/patchfinder"
	"github.com/vulnboard/vulnboard/pkg/types"
)

const (
	kindPatches     = "patches"
	kindInstalled   = "installed"
	kindPackages    = "packages"
	kindAssessments = "assessments"
)

type documents struct {
	patches     types.PackageVulnerabilities
	installed   map[string]string
	assessments []types.Assessment
}

func newDocuments() *documents {
	return &documents{
		patches:   types.PackageVulnerabilities{},
		installed: map[string]string{},
	}
}

func (d *documents) load(kind, path string, r io.Reader) error {
	switch kind {
	case kindPatches:
		data, err := patchfinder.Decode(r)
		if err != nil {
			return xerrors.Errorf("patch finder document: %w", err)
		}
		d.mergePatches(data)
	case kindInstalled:
		versions, err := decodeInstalled(path, r)
		if err != nil {
			return xerrors.Errorf("installed versions: %w", err)
		}
		d.mergeInstalled(versions)
	case kindPackages:
		pkgs, err := adapter.DecodePackages(r)
		if err != nil {
			return err
		}
		d.mergeInstalled(adapter.InstalledVersions(pkgs))
	case kindAssessments:
		assessments, errs, err := adapter.DecodeAssessments(r)
		if err != nil {
			return err
		}
		for _, e := range errs {
			log.Warn("Rejected assessment", log.FilePath(path), log.Err(e))
		}
		d.assessments = append(d.assessments, assessments...)
	default:
		log.Debug("Skipping file of unknown kind", log.FilePath(path))
	}
	return nil
}

func decodeInstalled(path string, r io.Reader) (map[string]string, error) {
	versions := map[string]string{}
	switch filepath.Ext(path) {
	case ".json":
		if err := json.NewDecoder(r).Decode(&versions); err != nil {
			return nil, xerrors.Errorf("json decode error: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(r).Decode(&versions); err != nil {
			return nil, xerrors.Errorf("yaml decode error: %w", err)
		}
	default:
		log.Debug("Skipping installed versions of unknown format", log.FilePath(path))
	}
	return versions, nil
}

func (d *documents) mergePatches(data types.PackageVulnerabilities) {
	for pkgName, vulns := range data {
		dst, ok := d.patches[pkgName]
		if !ok {
			d.patches[pkgName] = vulns
			continue
		}
		for vulnID, bySource := range vulns {
			if _, ok = dst[vulnID]; !ok {
				dst[vulnID] = bySource
				continue
			}
			for source, info := range bySource {
				dst[vulnID][source] = info
			}
		}
	}
}

func (d *documents) mergeInstalled(versions map[string]string) {
	for pkgName, version := range versions {
		d.installed[pkgName] = version
	}
}

// count returns the number of entries to store.
func (d *documents) count() int {
	n := len(d.installed)
	for _, vulns := range d.patches {
		for _, bySource := range vulns {
			n += len(bySource)
		}
	}
	for _, a := range d.assessments {
		if a.Effort != nil {
			n++
		}
	}
	return n
}
