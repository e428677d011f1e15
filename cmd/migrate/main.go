package main

import (
	"log"
	"os"

	"ai-style-review-be/internal/model"
	"ai-style-review-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Extensions. gen_random_uuid needs pgcrypto on Postgres < 13.
	log.Println("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. Tables
	log.Println("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.ReferenceExample{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Indexes AutoMigrate cannot express
	log.Println("Step 3: Creating vector indexes...")
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_reference_examples_embedding
		 ON reference_examples USING hnsw (embedding vector_cosine_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_reference_examples_live_category
		 ON reference_examples (category, created_at DESC) WHERE deleted_at IS NULL;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: reference_examples schema is up to date.")
}
