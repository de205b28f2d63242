package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/RDias-31/presenteperfeito/internal/infrastructure/ledger"
	"github.com/RDias-31/presenteperfeito/internal/infrastructure/logging"
)

func main() {
	ctx := context.Background()
	logger := logging.New(logging.Options{ServiceName: "migrate", Format: "console"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|version")
	dsn := flag.String("dsn", os.Getenv("PRESENTE_LEDGER_DSN"), "postgres connection string")
	flag.Parse()

	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "missing -dsn (or PRESENTE_LEDGER_DSN)")
		os.Exit(1)
	}

	db, err := ledger.Open(*dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("resource not working: database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("resource not working: sql database")
	}
	defer sqlDB.Close()

	switch *cmd {
	case "up":
		err = ledger.Migrate(ctx, sqlDB, ledger.DialectPostgres, logger)
	case "down":
		err = ledger.Rollback(ctx, sqlDB, ledger.DialectPostgres, logger)
	case "version":
		var current int64
		current, err = ledger.Version(ctx, sqlDB, ledger.DialectPostgres, logger)
		if err == nil {
			fmt.Println("current version:", current)
		}
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "goose %s failed: %v\n", *cmd, err)
		os.Exit(1)
	}
}
