package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "fellbacher",
		Usage: "storefront API of the Fellbacher Weingärtner wine shop",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Action: serve,
			},
			{
				Name:   "fetch",
				Usage:  "run one catalog fetch cycle and print the unified products as JSON",
				Action: fetch,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("fellbacher failed")
	}
}
