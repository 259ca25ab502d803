// Command main runs the demo data seeder.
package main

import (
	"flag"
	"log"

	"questboard/internal/config"
	"questboard/internal/database"
	"questboard/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 12, "Number of users to create")
	numJobs := flag.Int("jobs", 15, "Number of job listings to create")
	password := flag.String("password", "password123", "Password assigned to all seeded accounts")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		Users:    *numUsers,
		Jobs:     *numJobs,
		Password: *password,
	}
	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users and %d jobs. All accounts use the configured password.", *numUsers, *numJobs)
}
