package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/crmsuite/backend/internal/infrastructure/config"
	"github.com/crmsuite/backend/internal/infrastructure/logger"
	"github.com/crmsuite/backend/internal/infrastructure/migration"
	"github.com/crmsuite/backend/internal/infrastructure/persistence"
)

const defaultMigrationsPath = "migrations"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: migrate [flags] <command>

Commands:
  up              Apply all pending migrations
  down            Roll back all migrations
  steps <n>       Apply n migrations (negative rolls back)
  version         Print the current schema version
  force <v>       Overwrite the recorded version (dirty state recovery)

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to the migrations directory")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	db, err := persistence.NewDatabase(&cfg.Database, nil)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get database handle", zap.Error(err))
	}

	migrator, err := migration.New(sqlDB, migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() {
		_ = migrator.Close()
	}()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		var n int
		n, err = strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatal("steps requires an integer argument", zap.Error(err))
		}
		err = migrator.Steps(n)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = migrator.Version()
		if err == nil {
			fmt.Printf("version: %d dirty: %t\n", v, dirty)
		}
	case "force":
		var v int
		v, err = strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatal("force requires an integer argument", zap.Error(err))
		}
		err = migrator.Force(v)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("Migration command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}
}
