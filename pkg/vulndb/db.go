// Package vulndb imports exported dashboard documents into the local
// database.
//
// The import directory is laid out by kind:
//
//	patches/      patch finder scan results (JSON)
//	installed/    package name to installed version maps (YAML or JSON)
//	packages/     package listings (JSON)
//	assessments/  assessments carrying effort estimates (JSON)
package vulndb

import (
	"io"
	"path/filepath"
	"strings"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
	"gopkg.in/cheggaaa/pb.v1"
	"k8s.io/utils/clock"

	"github.com/vulnboard/vulnboard/pkg/db"
	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/metadata"
	"github.com/vulnboard/vulnboard/pkg/set"
	"github.com/vulnboard/vulnboard/pkg/types"
	"github.com/vulnboard/vulnboard/pkg/utils"
)

type Core struct {
	dbc      db.Operation
	cacheDir string
	clock    clock.Clock
	progress io.Writer
}

type Option func(*Core)

func WithClock(clock clock.Clock) Option {
	return func(core *Core) {
		core.clock = clock
	}
}

func WithOperation(dbc db.Operation) Option {
	return func(core *Core) {
		core.dbc = dbc
	}
}

// WithProgress draws a progress bar on w while entries are stored.
func WithProgress(w io.Writer) Option {
	return func(core *Core) {
		core.progress = w
	}
}

func New(cacheDir string, opts ...Option) *Core {
	core := &Core{
		dbc:      db.Config{},
		cacheDir: cacheDir,
		clock:    clock.RealClock{},
	}
	for _, opt := range opts {
		opt(core)
	}
	return core
}

// Import loads every document under dir and stores it. Files of unknown
// kind are skipped.
func (c Core) Import(dir string) error {
	if ok, err := utils.Exists(dir); err != nil {
		return xerrors.Errorf("import directory: %w", err)
	} else if !ok {
		return xerrors.Errorf("import directory %s does not exist", dir)
	}

	docs := newDocuments()
	err := utils.FileWalk(dir, func(r io.Reader, path string) error {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return xerrors.Errorf("relative path error: %w", err)
		}
		kind, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
		return docs.load(kind, path, r)
	})
	if err != nil {
		return xerrors.Errorf("import error: %w", err)
	}

	return c.save(dir, docs)
}

// Load stores documents obtained elsewhere, such as from the backend API.
// origin is recorded in the metadata file.
func (c Core) Load(origin string, data types.PackageVulnerabilities, installed map[string]string,
	assessments []types.Assessment) error {
	docs := newDocuments()
	docs.mergePatches(data)
	docs.mergeInstalled(installed)
	docs.assessments = assessments
	return c.save(origin, docs)
}

func (c Core) save(origin string, docs *documents) error {
	if err := c.store(docs); err != nil {
		return xerrors.Errorf("store error: %w", err)
	}
	return c.stamp(origin, docs)
}

func (c Core) store(docs *documents) error {
	var bar *pb.ProgressBar
	if c.progress != nil {
		bar = pb.New(docs.count())
		bar.Output = c.progress
		bar.Start()
		defer bar.Finish()
	}

	return c.dbc.BatchUpdate(func(tx *bolt.Tx) error {
		for pkgName, vulns := range docs.patches {
			for vulnID, bySource := range vulns {
				for source, info := range bySource {
					if err := c.dbc.PutPatchInfo(tx, source, pkgName, vulnID, info); err != nil {
						return xerrors.Errorf("patch info of %s/%s: %w", pkgName, vulnID, err)
					}
					increment(bar)
				}
			}
		}
		for pkgName, version := range docs.installed {
			if err := c.dbc.PutInstalledVersion(tx, pkgName, version); err != nil {
				return xerrors.Errorf("installed version of %s: %w", pkgName, err)
			}
			increment(bar)
		}
		for _, a := range docs.assessments {
			if a.Effort == nil {
				continue
			}
			if err := c.dbc.PutEstimate(tx, a.VulnerabilityID, *a.Effort); err != nil {
				return xerrors.Errorf("estimate of %s: %w", a.VulnerabilityID, err)
			}
			increment(bar)
		}
		return nil
	})
}

func (c Core) stamp(origin string, docs *documents) error {
	dbDir := filepath.Join(c.cacheDir, "db")
	mc := metadata.NewClient(dbDir)

	now := c.clock.Now().UTC()
	err := c.dbc.SetMetadata(db.Metadata{
		Version:   db.SchemaVersion,
		Packages:  len(docs.installed),
		UpdatedAt: now,
	})
	if err != nil {
		// The file must not describe an import the database does not know about.
		if ok, _ := utils.Exists(metadata.Path(dbDir)); ok {
			if derr := mc.Delete(); derr != nil {
				log.Warn("Stale metadata file left behind", log.Err(derr))
			}
		}
		return xerrors.Errorf("failed to save metadata: %w", err)
	}

	sources := set.Of[string]()
	vulnIDs := set.Of[string]()
	for _, vulns := range docs.patches {
		for vulnID, bySource := range vulns {
			vulnIDs.Add(vulnID)
			for source := range bySource {
				sources.Add(source)
			}
		}
	}

	md := metadata.Metadata{
		Version:         db.SchemaVersion,
		Packages:        len(docs.patches),
		Vulnerabilities: vulnIDs.Len(),
		Sources:         set.Sorted(sources),
		ImportedFrom:    origin,
		UpdatedAt:       now,
	}
	if err = mc.Update(md); err != nil {
		return xerrors.Errorf("failed to store metadata: %w", err)
	}

	log.Info("Import completed", log.Int("packages", md.Packages),
		log.Int("vulnerabilities", md.Vulnerabilities), log.Strings("sources", md.Sources))
	return nil
}

func increment(bar *pb.ProgressBar) {
	if bar != nil {
		bar.Increment()
	}
}
