package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"trustreviews/internal/reviewgen"
	"trustreviews/pkg/utils"
)

func main() {
	cfg := utils.LoadGeneratorConfig()
	logCfg, err := utils.LoadLogConfig()
	log := utils.NewLogger(logCfg, nil)
	if err != nil {
		log.WithError(err).Fatal("invalid log config")
	}

	var (
		productsIn = flag.String("products", cfg.ProductsPath, "input CSV path for products")
		reviewsIn  = flag.String("reviews", cfg.ReviewsPath, "input CSV path for existing reviews")
		out        = flag.String("out", cfg.OutputPath, "output CSV path for existing + synthesized reviews")
		seed       = flag.Uint64("seed", cfg.Seed, "random seed (0 picks one)")
		tz         = flag.String("tz", cfg.Timezone, "timezone for created_at (IANA name or Local)")
		dryRun     = flag.Bool("dry-run", false, "build the table but do not write it")
	)
	flag.Parse()

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		log.WithError(err).WithField("tz", *tz).Fatal("unknown timezone")
	}

	if *seed == 0 {
		*seed = rand.Uint64()
	}

	entry := log.WithFields(logrus.Fields{
		"products": *productsIn,
		"reviews":  *reviewsIn,
		"out":      *out,
		"seed":     *seed,
	})
	entry.Info("generating reviews")

	gen := reviewgen.NewSeeded(*seed)
	gen.Location = loc
	gen.Log = log

	sum, err := run(gen, *productsIn, *reviewsIn, *out, *dryRun)
	if err != nil {
		entry.WithError(err).Error("generate reviews failed")
		os.Exit(1)
	}

	entry.WithFields(logrus.Fields{
		"existing":  sum.ExistingRows,
		"generated": sum.Generated,
		"first_id":  sum.FirstID,
		"last_id":   sum.LastID,
		"dry_run":   *dryRun,
	}).Info("✅ reviews generated")
}

// run loads both inputs, builds the whole output in memory, then writes it
// once. Nothing is written when any step fails.
func run(gen *reviewgen.Generator, productsPath, reviewsPath, outPath string, dryRun bool) (reviewgen.Summary, error) {
	products, err := reviewgen.LoadTable(productsPath)
	if err != nil {
		return reviewgen.Summary{}, fmt.Errorf("load products: %w", err)
	}
	reviews, err := reviewgen.LoadTable(reviewsPath)
	if err != nil {
		return reviewgen.Summary{}, fmt.Errorf("load reviews: %w", err)
	}

	table, sum, err := gen.Augment(products, reviews)
	if err != nil {
		return reviewgen.Summary{}, err
	}

	if dryRun {
		return sum, nil
	}
	if err := reviewgen.SaveTable(outPath, table); err != nil {
		return reviewgen.Summary{}, fmt.Errorf("save reviews: %w", err)
	}
	return sum, nil
}
