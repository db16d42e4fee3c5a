package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"live-market/config"
	"live-market/pkg/database"

	"gorm.io/gorm"
)

const usage = `
Live Market - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Create or update all tables
  status      Show database connection status and table presence
  seed-dev    Seed with development/test data

Flags:
  -users int       Number of test users for seed-dev (default 4)
  -password string Password for seeded users (default "Test@123!")

Examples:
  go run ./cmd/migrate up
  go run ./cmd/migrate -users 6 seed-dev
`

func main() {
	users := flag.Int("users", 4, "Number of test users for seed-dev")
	password := flag.String("password", "Test@123!", "Password for seeded users")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	command := flag.Arg(0)

	cfg := config.LoadConfig()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = database.Close(db) }()

	switch command {
	case "up":
		runMigrationsUp(db)
	case "status":
		showStatus(db)
	case "seed-dev":
		runMigrationsUp(db)
		runSeedDevelopment(db, &database.SeedConfig{Password: *password, TestUserCount: *users})
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(db *gorm.DB) {
	log.Println("Running GORM auto-migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")
}

func showStatus(db *gorm.DB) {
	if err := database.HealthCheck(context.Background(), db); err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}
	fmt.Printf("Database: connected (%s)\n", db.Dialector.Name())

	migrator := db.Migrator()
	for _, model := range database.Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			log.Fatalf("parse model: %v", err)
		}
		state := "missing"
		if migrator.HasTable(model) {
			state = "present"
		}
		fmt.Printf("  %-18s %s\n", stmt.Schema.Table, state)
	}
}

func runSeedDevelopment(db *gorm.DB, cfg *database.SeedConfig) {
	result, err := database.Seed(context.Background(), db, cfg)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	fmt.Printf("Seeded %d users, %d rooms, %d streams, %d products\n",
		len(result.Users), len(result.Rooms), len(result.Streams), len(result.Products))
}
