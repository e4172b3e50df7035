package main

import (
	"context"
	"log"
	"os"
	"time"

	"dressup/internal/database"
	"dressup/internal/repository"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()

	tokens, err := repository.NewRefreshTokenRepository(db).DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	contacts, err := repository.NewUserRepository(db).DeleteStaleContacts(ctx, time.Now().AddDate(-1, 0, 0))
	if err != nil {
		log.Fatalf("cleanup contacts failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d contacts=%d", tokens, contacts)
}
