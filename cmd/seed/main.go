// seed inserts a demo user and a handful of favorite cities into the local
// dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/skycastapp/skycast-api/internal/infrastructure/postgres"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
)

type seedCity struct {
	name    string
	country string
	lat     float64
	lon     float64
}

var cities = []seedCity{
	{"Lahore", "PK", 31.5204, 74.3587},
	{"Karachi", "PK", 24.8607, 67.0011},
	{"Islamabad", "PK", 33.6844, 73.0479},
	{"London", "GB", 51.5074, -0.1278},
	{"Tokyo", "JP", 35.6762, 139.6503},
	{"New York", "US", 40.7128, -74.0060},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert the demo user (idempotent re-runs)
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, age, email, password_hash)
		VALUES ('Seed User', 30, $1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	var inserted, skipped int
	for _, c := range cities {
		tag, err := pool.Exec(ctx, `
			INSERT INTO favorite_cities (user_id, city_name, country, lat, lon)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, city_name) DO NOTHING`,
			userID, c.name, c.country, c.lat, c.lon,
		)
		if err != nil {
			log.Fatalf("insert favorite %s: %v", c.name, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:              %s  (password: %s)\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:           %s\n", userID)
	fmt.Printf("  Favorites created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — get a JWT:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/api/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — list favorites:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/api/favorites -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Step 3 — check one:")
	fmt.Println()
	fmt.Println("    curl -s 'http://localhost:8080/api/favorites/check?city=Lahore&country=PK' \\")
	fmt.Println("      -H \"Authorization: Bearer $JWT\"")
}
