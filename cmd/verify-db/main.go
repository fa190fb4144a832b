// verify-db checks that the database schema matches what the service expects:
// all tables present, migrations applied, and the case-insensitive unique
// indexes that reconciliation depends on in place.
//
// Usage: go run ./cmd/verify-db
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var requiredTables = []string{
	"users",
	"suppliers",
	"products",
	"restock_sessions",
	"session_items",
	"email_drafts",
}

// Reconciliation upserts target these indexes; a schema without them would
// silently create duplicate suppliers and products.
var requiredIndexes = []string{
	"users_email_key",
	"suppliers_user_name_key",
	"products_user_name_key",
}

func main() {
	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Fatal("[CONNECT] DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool := connectDB(ctx, url)
	defer pool.Close()

	verifyMigrations(ctx, pool)
	verifyTables(ctx, pool)
	verifyIndexes(ctx, pool)

	log.Println("[DONE] Schema verified.")
}

func connectDB(ctx context.Context, url string) *pgxpool.Pool {
	connCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		log.Fatalf("[CONNECT] failed to create pool: %v", err)
	}

	if err := pool.Ping(connCtx); err != nil {
		log.Fatalf("[CONNECT] failed to ping database: %v", err)
	}

	log.Println("[CONNECT] success")
	return pool
}

func verifyMigrations(ctx context.Context, pool *pgxpool.Pool) {
	var version int64
	err := pool.QueryRow(ctx,
		"SELECT version_id FROM goose_db_version ORDER BY id DESC LIMIT 1",
	).Scan(&version)
	if err != nil {
		log.Fatalf("[MIGRATIONS] failed to read goose_db_version (run the server or goose up first): %v", err)
	}
	log.Printf("[MIGRATIONS] at version %d", version)
}

func verifyTables(ctx context.Context, pool *pgxpool.Pool) {
	for _, table := range requiredTables {
		var exists bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1)",
			table,
		).Scan(&exists)
		if err != nil {
			log.Fatalf("[TABLES] failed to check table %s: %v", table, err)
		}
		if !exists {
			log.Fatalf("[TABLES] missing table: %s", table)
		}
		log.Printf("[TABLES] %s ok", table)
	}
}

func verifyIndexes(ctx context.Context, pool *pgxpool.Pool) {
	for _, index := range requiredIndexes {
		var exists bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM pg_indexes WHERE schemaname = 'public' AND indexname = $1)",
			index,
		).Scan(&exists)
		if err != nil {
			log.Fatalf("[INDEXES] failed to check index %s: %v", index, err)
		}
		if !exists {
			log.Fatalf("[INDEXES] missing unique index: %s", index)
		}
		log.Printf("[INDEXES] %s ok", index)
	}
}
