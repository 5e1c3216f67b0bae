package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pressly/goose"

	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/UnknownOlympus/athena/internal/repository"
)

// gooseDialects maps configured drivers to goose dialect names.
var gooseDialects = map[string]string{
	config.DriverMySQL:    "mysql",
	config.DriverPostgres: "postgres",
	config.DriverSQLite:   "sqlite3",
}

// usage: migrator [-dir migrations/<driver>] [up|down|status|version|redo|reset]
func main() {
	dir := flag.String("dir", "", "directory with migration files (default migrations/<driver>)")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg := config.MustLoad()
	if *dir == "" {
		*dir = filepath.Join("migrations", cfg.Database.Driver)
	}

	logHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})
	dtb, dbErr := repository.NewDatabase(cfg.Database, logHandler)
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dtb.Close()

	if err := goose.SetDialect(gooseDialects[cfg.Database.Driver]); err != nil {
		log.Fatalf("Failed to select migration dialect: %v", err) //nolint:gocritic // exiting anyway
	}

	if migrationErr := goose.Run(command, dtb.SQL(), *dir, flag.Args()[min(1, flag.NArg()):]...); migrationErr != nil {
		log.Fatalf("Migration %q failed: %v", command, migrationErr)
	}

	log.Printf("✅ Migration command %q applied successfully", command)
}
