package pkg

import (
	"strings"

	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/config"
	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/report"
)

var filterFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "source",
		Usage: "only consider these sources (comma separated)",
	},
	cli.StringFlag{
		Name:  "search",
		Usage: "only consider entries whose ID or version contains this text",
	},
	cli.StringFlag{
		Name:  "format, f",
		Usage: "output format (" + strings.Join(report.Formats, ", ") + ")",
		Value: report.FormatTable,
	},
}

func NewApp(version string) *cli.App {
	app := cli.NewApp()
	app.Name = "vulnboard"
	app.Version = version
	app.Usage = "vulnerability dashboard patch finder"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "config file path",
			Value: "vulnboard.toml",
		},
		cli.StringFlag{
			Name:  "cache-dir",
			Usage: "cache directory path",
		},
		cli.StringFlag{
			Name:  "log-mode",
			Usage: "development or production",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "debug mode",
		},
	}
	app.Before = setupLogger

	app.Commands = []cli.Command{
		{
			Name:      "import",
			Usage:     "import exported documents into the database",
			ArgsUsage: "DIR",
			Action:    importDocuments,
		},
		{
			Name:   "fetch",
			Usage:  "fetch documents from the dashboard backend into the database",
			Action: fetch,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "api-url",
					Usage: "backend base URL",
				},
			},
		},
		{
			Name:      "document",
			Usage:     "download a generated document from the dashboard backend",
			ArgsUsage: "NAME",
			Action:    document,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "api-url",
					Usage: "backend base URL",
				},
				cli.StringFlag{
					Name:  "output, o",
					Usage: "write to this file instead of stdout",
				},
			},
		},
		{
			Name:   "patches",
			Usage:  "show the upgrade targets of every package",
			Action: patches,
			Flags:  filterFlags,
		},
		{
			Name:      "versions",
			Usage:     "show which vulnerabilities each version of a package solves",
			ArgsUsage: "PACKAGE",
			Action:    versions,
			Flags:     filterFlags,
		},
		{
			Name:      "duration",
			Usage:     "parse an ISO-8601 or Gitlab style duration",
			ArgsUsage: "VALUE",
			Action:    parseDuration,
		},
		{
			Name:   "estimate",
			Usage:  "validate a three-point effort estimate",
			Action: estimateEffort,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "optimistic, o", Usage: "optimistic duration"},
				cli.StringFlag{Name: "likely, l", Usage: "most likely duration"},
				cli.StringFlag{Name: "pessimistic, p", Usage: "pessimistic duration"},
				cli.StringFlag{Name: "store", Usage: "save the estimate for this vulnerability ID"},
			},
		},
		{
			Name:   "serve",
			Usage:  "serve the HTTP API",
			Action: serve,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "addr",
					Usage: "listen address",
				},
			},
		},
	}

	return app
}

func setupLogger(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := log.New(conf.LogMode, c.GlobalBool("debug"))
	if err != nil {
		return xerrors.Errorf("failed to build logger: %w", err)
	}
	log.SetLogger(logger)
	return nil
}

// loadConfig reads the config file and applies the flags set on the command
// line on top of it.
func loadConfig(c *cli.Context) (config.Config, error) {
	conf, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return config.Config{}, xerrors.Errorf("config error: %w", err)
	}
	if c.GlobalIsSet("cache-dir") {
		conf.CacheDir = c.GlobalString("cache-dir")
	}
	if c.GlobalIsSet("log-mode") {
		conf.LogMode = c.GlobalString("log-mode")
	}
	if c.IsSet("source") {
		conf.Filter.Sources = splitList(c.String("source"))
	}
	if c.IsSet("search") {
		conf.Filter.Search = c.String("search")
	}
	if c.IsSet("api-url") {
		conf.API.BaseURL = c.String("api-url")
	}
	if c.IsSet("addr") {
		conf.Server.Addr = c.String("addr")
	}
	return conf, nil
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
