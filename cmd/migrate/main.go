package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"tourdesk-service/internal/config"
	"tourdesk-service/internal/db"
	"tourdesk-service/internal/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	path := flag.String("path", cfg.MigrationsPath, "directory holding the migration files")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-path dir] up | down | steps N | version")
		os.Exit(2)
	}

	log := logger.New(cfg.Env)
	defer log.Sync()

	if err := run(cfg.DatabaseURL, *path, args, log); err != nil {
		log.Error("migration failed", zap.String("cmd", args[0]), zap.Error(err))
		os.Exit(1)
	}
}

func run(databaseURL, path string, args []string, log *zap.Logger) error {
	m, err := db.NewMigrator(databaseURL, path, log)
	if err != nil {
		return err
	}
	defer m.Close()

	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "steps":
		if len(args) < 2 {
			return fmt.Errorf("steps requires a count")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n == 0 {
			return fmt.Errorf("invalid step count %q", args[1])
		}
		return m.Steps(n)
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
