// Command import-providers loads provider records from a CSV export into
// the catalog. Imported providers land as drafts; editorial review and
// publishing happen through the admin API afterwards.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"modtok/internal/catalog"
	"modtok/internal/importer"
	"modtok/platform/config"
	"modtok/platform/db"
	"modtok/platform/logger"
	"modtok/platform/validator"
)

func main() {
	var csvPath string
	flag.StringVar(&csvPath, "file", "", "path to the provider CSV file")
	flag.Parse()

	if csvPath == "" {
		fmt.Fprintln(os.Stderr, "usage: import-providers -file providers.csv")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	val := validator.New()

	// No asset storage needed for a CSV import.
	catalogModule := catalog.NewModule(pool, nil, cfg, cfg, val, log)

	file, err := os.Open(csvPath)
	if err != nil {
		panic("failed to open csv file: " + err.Error())
	}
	defer file.Close()

	report, err := importer.New(catalogModule.Service(), log).Run(ctx, file)
	if err != nil {
		panic("import failed: " + err.Error())
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		panic("failed to encode report: " + err.Error())
	}
	fmt.Println(string(out))

	if len(report.FailedRows) > 0 {
		os.Exit(1)
	}
}
