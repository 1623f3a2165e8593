package main

import (
	"fmt"
	"os"

	"autostream-assistant/internal/config"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/internal/repository/unitofwork"
	"autostream-assistant/internal/service"
	"autostream-assistant/pkg/database"
	embeddingFactory "autostream-assistant/pkg/embedding/factory"

	"github.com/spf13/cobra"
)

var seedFile string

// seedCmd embeds the knowledge base into knowledge_embeddings for the configured embedding model.
var seedCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Embed the knowledge base into Postgres",
	Long:         `Replaces every knowledge_embeddings row of the configured embedding model with freshly embedded passages.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if seedFile == "" {
		seedFile = cfg.App.KnowledgeBasePath
	}
	if cfg.Database.Connection == "" {
		return fmt.Errorf("DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	ctx := cmd.Context()
	provider, err := embeddingFactory.NewEmbeddingProvider(ctx, embeddingFactory.Settings{
		ModelName:     cfg.Embedding.ModelName,
		GeminiAPIKey:  cfg.Keys.GoogleGemini,
		JinaAPIKey:    cfg.Keys.Jina,
		OllamaBaseURL: cfg.Embedding.OllamaBaseURL,
	})
	if err != nil {
		return fmt.Errorf("init embedding model: %w", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	svc := service.NewKnowledgeService(unitofwork.NewRepositoryFactory(db), provider, sysLogger)
	n, err := svc.Seed(ctx, seedFile)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d passages with %s\n", n, provider.Name())
	return nil
}

func main() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "knowledge base file (.json, .yaml or .toml); defaults to KNOWLEDGE_BASE_PATH")

	if err := seedCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
