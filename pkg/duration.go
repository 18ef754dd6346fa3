package pkg

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/db"
	"github.com/vulnboard/vulnboard/pkg/duration"
	"github.com/vulnboard/vulnboard/pkg/estimate"
)

func parseDuration(c *cli.Context) error {
	d, err := duration.New(strings.Join(c.Args(), " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "ISO-8601: %s\n", d.FormatISO8601())
	fmt.Fprintf(c.App.Writer, "Human:    %s\n", d.FormatHumanShort())
	fmt.Fprintf(c.App.Writer, "Seconds:  %v\n", d.TotalSeconds())
	return nil
}

func estimateEffort(c *cli.Context) error {
	e, err := estimate.New(c.String("optimistic"), c.String("likely"), c.String("pessimistic"))
	if err != nil {
		return err
	}
	if err = e.Validate(); err != nil {
		return err
	}

	expected := e.Expected()
	fmt.Fprintf(c.App.Writer, "Expected: %s (%s)\n", expected.FormatISO8601(), expected.FormatHumanShort())
	fmt.Fprintf(c.App.Writer, "Std dev:  %s\n", duration.FromSeconds(e.StdDev()).FormatHumanShort())

	vulnID := c.String("store")
	if vulnID == "" {
		return nil
	}
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err = db.Init(conf.CacheDir); err != nil {
		return xerrors.Errorf("db initialize error: %w", err)
	}
	defer db.Close()

	dbc := db.Config{}
	return dbc.BatchUpdate(func(tx *bolt.Tx) error {
		return dbc.PutEstimate(tx, vulnID, e)
	})
}
