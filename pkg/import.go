package pkg

import (
	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/db"
	"github.com/vulnboard/vulnboard/pkg/vulndb"
)

func importDocuments(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		return xerrors.New("import directory is required")
	}
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	if err = db.Init(conf.CacheDir); err != nil {
		return xerrors.Errorf("db initialize error: %w", err)
	}
	defer db.Close()

	vdb := vulndb.New(conf.CacheDir, vulndb.WithProgress(c.App.ErrWriter))
	if err = vdb.Import(dir); err != nil {
		return xerrors.Errorf("import error: %w", err)
	}
	return nil
}
