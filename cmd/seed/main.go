package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/cardvault/config"
	"github.com/oksasatya/cardvault/internal/application"
	"github.com/oksasatya/cardvault/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@cardvault.local"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name, "").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	number := "4111111111111111"
	var cardID string
	err = db.QueryRow(`
		INSERT INTO credit_cards
			(user_id, card_number, cvv, card_number_masked, holder_name, expiry_date,
			 total_limit, available_limit, outstanding_amount, minimum_due, due_date, is_blocked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE)
		RETURNING id
	`, id, number, "123", application.MaskCardNumber(number), name, "12/28",
		500000, 500000, 0, 0, "2026-09-15").Scan(&cardID)
	if err != nil {
		log.Fatalf("failed to seed card: %v", err)
	}
	fmt.Printf("seeded card: id=%s\n", cardID)
}
