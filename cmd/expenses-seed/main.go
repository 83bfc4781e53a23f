// Command expenses-seed fills the configured store with demo data, either
// generated at random or imported from a CSV export.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"expenses/internal/cli"
	"expenses/internal/core"
	"expenses/internal/export"
	applog "expenses/internal/log"
	"expenses/internal/services"
)

func main() {
	count := flag.Int("n", 50, "number of random transactions to generate")
	importPath := flag.String("import", "", "CSV export to import instead of generating data")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentSeed)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := cli.GracefulShutdown(logger)
	defer cancel()

	res := cli.OpenStore(ctx, logger, cfg)
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Error("Cleanup failed", applog.FieldError, err)
		}
	}()

	txs, op, err := load(*importPath, *count, *seed)
	if err != nil {
		logger.Error("Failed to prepare transactions", applog.FieldError, err, applog.FieldOperation, op)
		os.Exit(1)
	}

	created, err := insert(ctx, res.Service, txs)
	logger.Info("Seeding finished",
		applog.FieldOperation, op,
		applog.FieldCount, created,
		"requested", len(txs))
	if err != nil {
		logger.Error("Seeding stopped early", applog.FieldError, err)
		os.Exit(1)
	}
}

func load(path string, n int, seed int64) ([]core.Transaction, string, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, applog.OpImport, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		txs, err := export.ParseCSV(f)
		if err != nil {
			return nil, applog.OpImport, fmt.Errorf("parse %s: %w", path, err)
		}
		return txs, applog.OpImport, nil
	}

	if n < 0 {
		return nil, applog.OpCreate, fmt.Errorf("negative count %d", n)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return generate(gofakeit.New(seed), n, time.Now()), applog.OpCreate, nil
}

// insert stores txs one by one. Imported ids are dropped so the store assigns
// fresh ones.
func insert(ctx context.Context, svc *services.TransactionService, txs []core.Transaction) (int, error) {
	for i, t := range txs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		t.ID = 0
		t = t.Normalize()
		if err := t.Validate(); err != nil {
			return i, fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, err := svc.CreateTransaction(ctx, t); err != nil {
			return i, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return len(txs), nil
}
