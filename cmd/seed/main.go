// Command seed runs the database seeder for Gather.
package main

import (
	"flag"
	"log"

	"gather/internal/config"
	"gather/internal/database"
	"gather/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	centerLat := flag.Float64("lat", 43.6532, "Centre latitude for seeded locations")
	centerLng := flag.Float64("lng", -79.3832, "Centre longitude for seeded locations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:  *numUsers,
		NumPosts:  *numPosts,
		CenterLat: *centerLat,
		CenterLng: *centerLng,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
