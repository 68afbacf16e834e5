package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/pandey-solutions/saves/internal/config"
	"github.com/pandey-solutions/saves/internal/repository/postgres"
	"github.com/pandey-solutions/saves/migrations"
)

func main() {
	dir := flag.String("dir", "", "read migrations from this directory instead of the embedded set")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Printf("Connected to %s database\n", cfg.Database.Driver)

	var source fs.FS = migrations.GetFS()
	if *dir != "" {
		source = os.DirFS(*dir)
	}

	applied, err := postgres.RunMigrations(db, source)
	for _, name := range applied {
		fmt.Printf("✓ Migration %s completed successfully\n", name)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	if len(applied) == 0 {
		fmt.Println("Schema is up to date")
		return
	}
	fmt.Printf("\nApplied %d migration(s)\n", len(applied))
}
