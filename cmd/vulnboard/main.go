package main

import (
	"os"

	"github.com/vulnboard/vulnboard/pkg"
	"github.com/vulnboard/vulnboard/pkg/log"
)

var (
	version = "0.0.1"
)

func main() {
	app := pkg.NewApp(version)
	err := app.Run(os.Args)
	log.Sync()
	if err != nil {
		log.Error("Fatal error", log.Err(err))
		os.Exit(1)
	}
}
