// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"creamery/internal/core/id"
	"creamery/internal/core/security"
	"creamery/internal/core/types"
	"creamery/internal/domain/catalog/location"
	"creamery/internal/infrastructure/storage/postgres"
	"creamery/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@creamery.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	userID := id.New()

	_, err = pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name,
			role, is_active, created_at, updated_at, version
		) VALUES ($1, $2, $3, 'System', 'Admin', $4, true, $5, $5, 1)
	`, userID, adminEmail, string(passwordHash), string(security.RoleAdmin), now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	locations := []struct {
		name    string
		locType location.Type
	}{
		{"Main Shop", location.TypeShop},
		{"Production Kitchen", location.TypeKitchen},
		{"Cold Storage", location.TypeStorage},
	}

	for _, loc := range locations {
		_, err := pool.Exec(ctx, `
			INSERT INTO locations (id, version, name, type, is_active)
			VALUES ($1, 1, $2, $3, true)
			ON CONFLICT (name) DO NOTHING
		`, id.New(), loc.name, string(loc.locType))
		if err != nil {
			return fmt.Errorf("insert location %q: %w", loc.name, err)
		}
	}
	log.Infow("locations seeded", "count", len(locations))

	items := []struct {
		name     string
		unit     string
		minStock float64
		parStock float64
	}{
		{"Vanilla Bean", "tub", 2, 6},
		{"Dark Chocolate", "tub", 2, 6},
		{"Strawberry", "tub", 1, 4},
		{"Pistachio", "tub", 1, 3},
		{"Waffle Cones", "tray", 4, 10},
	}

	for _, it := range items {
		_, err := pool.Exec(ctx, `
			INSERT INTO items (id, version, name, unit, min_stock_level, par_stock_level, supplier, is_active)
			VALUES ($1, 1, $2, $3, $4, $5, '', true)
			ON CONFLICT (name) DO NOTHING
		`, id.New(), it.name, it.unit,
			types.NewQuantityFromFloat64(it.minStock),
			types.NewQuantityFromFloat64(it.parStock))
		if err != nil {
			return fmt.Errorf("insert item %q: %w", it.name, err)
		}
	}
	log.Infow("items seeded", "count", len(items))

	return nil
}
