package main

import (
	"encoding/json"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/catalog"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func fetch(c *cli.Context) error {
	cfg, logger, err := load()
	if err != nil {
		return err
	}

	fetcher, _ := newCatalog(cfg, logger)
	res := fetcher.Fetch(c.Context)
	logger.WithFields(log.Fields{
		"status": res.Status,
		"count":  len(res.Products),
	}).Info("fetch cycle finished")

	if res.Status == catalog.FetchTransportError {
		return cli.Exit(res.Err.Error(), 1)
	}

	products := res.Products
	if products == nil {
		products = []catalog.Product{}
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(products)
}
