package main

import (
	"log"

	"autostream-assistant/internal/config"
	"autostream-assistant/internal/model"
	"autostream-assistant/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Extensions, then AutoMigrate
	log.Println("Running migration: extensions, leads, knowledge_embeddings...")
	if err := database.Migrate(db, &model.Lead{}, &model.KnowledgeEmbedding{}); err != nil {
		log.Fatalf("Error: Migration failed: %v", err)
	}

	log.Println("Migration completed successfully")
}
