package pkg

import (
	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/db"
	"github.com/vulnboard/vulnboard/pkg/patchfinder"
	"github.com/vulnboard/vulnboard/pkg/report"
	"github.com/vulnboard/vulnboard/pkg/types"
)

func loadPatchData(cacheDir string) (types.PackageVulnerabilities, map[string]string, error) {
	if err := db.Init(cacheDir); err != nil {
		return nil, nil, xerrors.Errorf("db initialize error: %w", err)
	}
	defer db.Close()

	dbc := db.Config{}
	data, err := dbc.GetPackageVulnerabilities()
	if err != nil {
		return nil, nil, err
	}
	installed, err := dbc.GetInstalledVersions()
	if err != nil {
		return nil, nil, err
	}
	return data, installed, nil
}

func patches(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	w, err := report.Get(c.String("format"))
	if err != nil {
		return err
	}

	data, installed, err := loadPatchData(conf.CacheDir)
	if err != nil {
		return err
	}
	results := patchfinder.ComputeVersionsAndPatch(data, installed, conf.Filter)
	return w.Patches(c.App.Writer, results)
}

func versions(c *cli.Context) error {
	pkgName := c.Args().First()
	if pkgName == "" {
		return xerrors.New("package name is required")
	}
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	w, err := report.Get(c.String("format"))
	if err != nil {
		return err
	}

	data, installed, err := loadPatchData(conf.CacheDir)
	if err != nil {
		return err
	}
	vv, ok := patchfinder.ComputeVersionVulns(data, installed, conf.Filter)[pkgName]
	if !ok {
		return xerrors.Errorf("no patch data for %s", pkgName)
	}
	return w.Versions(c.App.Writer, pkgName, vv)
}
