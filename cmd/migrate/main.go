package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/aurelia/backend/internal/infrastructure/config"
	"github.com/aurelia/backend/internal/infrastructure/logger"
	"github.com/aurelia/backend/internal/infrastructure/migration"
)

const usage = `Usage: migrate [flags] <command>

Commands:
  up              Run all pending migrations
  down            Roll back the most recent migration
  steps <n>       Apply n migrations (negative rolls back)
  version         Print the current schema version
  force <v>       Force the schema version without running migrations
  create <name>   Create a new pair of migration files
  list            List known migrations

Flags:
`

func main() {
	dir := flag.String("dir", "migrations", "directory holding migration files")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	command := args[0]

	// create and list work without a database connection
	switch command {
	case "create":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "create requires a migration name")
			os.Exit(2)
		}
		file, err := migration.CreateMigration(*dir, args[1])
		if err != nil {
			log.Fatal("failed to create migration", zap.Error(err))
		}
		fmt.Println("created", file.UpPath)
		fmt.Println("created", file.DownPath)
		return
	case "list":
		names, err := migration.ListMigrations(*dir)
		if err != nil {
			log.Fatal("failed to list migrations", zap.Error(err))
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	migrator, err := migration.NewFromURL(cfg.Database.DSN(), *dir, log)
	if err != nil {
		log.Fatal("failed to create migrator", zap.Error(err))
	}
	defer migrator.Close() //nolint:errcheck

	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
	case "down":
		if err := migrator.Steps(-1); err != nil {
			log.Fatal("rollback failed", zap.Error(err))
		}
	case "steps":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "steps requires a count")
			os.Exit(2)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "steps requires an integer count")
			os.Exit(2)
		}
		if err := migrator.Steps(n); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			log.Fatal("failed to read version", zap.Error(err))
		}
		fmt.Printf("version: %d dirty: %v\n", version, dirty)
	case "force":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "force requires a version")
			os.Exit(2)
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "force requires an integer version")
			os.Exit(2)
		}
		if err := migrator.Force(v); err != nil {
			log.Fatal("force failed", zap.Error(err))
		}
	default:
		fmt.Fprintln(os.Stderr, "unknown command:", command)
		flag.Usage()
		os.Exit(2)
	}
}
