package pkg

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/adapter"
	"github.com/vulnboard/vulnboard/pkg/client"
	"github.com/vulnboard/vulnboard/pkg/config"
	"github.com/vulnboard/vulnboard/pkg/db"
	"github.com/vulnboard/vulnboard/pkg/report"
	"github.com/vulnboard/vulnboard/pkg/vulndb"
)

func fetch(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	s := newSpinner(c, conf)
	s.Start()
	defer s.Stop()

	ctx := context.Background()
	api := client.New(conf.API.BaseURL, conf.API.Timeout)
	data, err := api.PatchFinder(ctx)
	if err != nil {
		return xerrors.Errorf("patch finder: %w", err)
	}
	pkgs, err := api.Packages(ctx)
	if err != nil {
		return xerrors.Errorf("packages: %w", err)
	}
	vulns, err := api.Vulnerabilities(ctx)
	if err != nil {
		return xerrors.Errorf("vulnerabilities: %w", err)
	}
	assessments, err := api.Assessments(ctx)
	if err != nil {
		return xerrors.Errorf("assessments: %w", err)
	}
	s.Stop()

	if err = db.Init(conf.CacheDir); err != nil {
		return xerrors.Errorf("db initialize error: %w", err)
	}
	defer db.Close()

	vdb := vulndb.New(conf.CacheDir, vulndb.WithProgress(c.App.ErrWriter))
	if err = vdb.Load(conf.API.BaseURL, data, adapter.InstalledVersions(pkgs), assessments); err != nil {
		return xerrors.Errorf("load error: %w", err)
	}
	return report.Severities(c.App.Writer, vulns)
}

func document(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return xerrors.New("document name is required")
	}
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	s := newSpinner(c, conf)
	s.Start()
	defer s.Stop()

	api := client.New(conf.API.BaseURL, conf.API.Timeout)
	rc, err := api.Document(context.Background(), name)
	if err != nil {
		return xerrors.Errorf("document %s: %w", name, err)
	}
	defer rc.Close()

	w := c.App.Writer
	if output := c.String("output"); output != "" {
		f, err := os.Create(output)
		if err != nil {
			return xerrors.Errorf("failed to create %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}
	if _, err = io.Copy(w, rc); err != nil {
		return xerrors.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func newSpinner(c *cli.Context, conf config.Config) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(c.App.ErrWriter))
	s.Suffix = " Fetching from " + conf.API.BaseURL
	return s
}
