package pkg

import (
	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/db"
	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/server"
)

func serve(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err = db.Init(conf.CacheDir); err != nil {
		return xerrors.Errorf("db initialize error: %w", err)
	}
	defer db.Close()

	app := server.New(db.Config{}, conf.Filter)
	log.Info("Starting server", log.String("addr", conf.Server.Addr))
	if err = app.Listen(conf.Server.Addr); err != nil {
		return xerrors.Errorf("server error: %w", err)
	}
	return nil
}
