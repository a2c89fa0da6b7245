// Command main runs the database seeder for Clubhub.
package main

import (
	"flag"
	"log"

	"clubhub/internal/config"
	"clubhub/internal/database"
	"clubhub/internal/seed"
)

func main() {
	numMembers := flag.Int("members", 12, "Number of members to create")
	numPosts := flag.Int("posts", 40, "Number of posts to create")
	numEvents := flag.Int("events", 5, "Number of events to create")
	clean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumMembers: *numMembers,
		NumPosts:   *numPosts,
		NumEvents:  *numEvents,
		Clean:      *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
