// Command catalog loads a catalog file, validates every entry and logs a
// summary by gender, category and price band. It exits non-zero when the
// file is rejected.
//
// The file comes from the first argument, then CATALOG_PATH, then the
// catalog embedded in the binary.
package main

import (
	"log/slog"
	"os"

	"github.com/mimartz/storefront/internal/catalog/domain"
	"github.com/mimartz/storefront/internal/catalog/infra/memory"
	"github.com/mimartz/storefront/pkg/config"
	"github.com/mimartz/storefront/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "catalog", Env: cfg.AppEnv, Level: cfg.LogLevel})

	path := cfg.CatalogPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	var (
		products []domain.Product
		err      error
	)
	if path == "" {
		products, err = memory.LoadDefault()
		path = "embedded"
	} else {
		products, err = memory.LoadFile(path)
	}
	if err != nil {
		log.Error("catalog rejected", slog.String("path", path), slog.Any("err", err))
		os.Exit(1)
	}

	s := summarize(products)
	log.Info("catalog ok", slog.String("path", path), slog.Int("products", s.Total))
	for _, g := range s.Genders {
		log.Info("gender",
			slog.String("gender", g.Gender),
			slog.Int("products", g.Count),
			slog.Any("categories", g.Categories),
		)
	}
	for _, b := range s.Bands {
		log.Info("price band", slog.String("band", b.Band), slog.Int("products", b.Count))
	}
}
