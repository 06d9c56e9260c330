package main

import (
	"context"
	"fmt"
	"issuetracker/config"
	"issuetracker/database"
	"log"
	"time"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database.URL, cfg.Database.Name)
	if err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer db.Close(context.Background())

	if err := db.Ping(ctx); err != nil {
		log.Fatal("Database unreachable:", err)
	}

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("\nAll migrations completed!")
}
