package main

import (
	"flag"
	"log"

	"strokesense/database"
	"strokesense/internal/repository"
	"strokesense/internal/utils"

	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func main() {
	numUsers := flag.Int("users", utils.DefaultNumUsers, "Number of demo users to create")
	flag.Parse()

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	userRepo := repository.NewUserAttributesRepository(database.DB)
	readingRepo := repository.NewReadingRepository(database.DB)

	if err := utils.SeedDemoData(userRepo, readingRepo, *numUsers); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
