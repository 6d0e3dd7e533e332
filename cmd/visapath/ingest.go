package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dileep2896/visapath/internal/config"
	"github.com/Dileep2896/visapath/internal/db"
	"github.com/Dileep2896/visapath/internal/llm"
	"github.com/Dileep2896/visapath/internal/observability"
	"github.com/Dileep2896/visapath/internal/rag"
)

var ingestDocsDir string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Embed knowledge base documents into the database",
	Long: `Read every document in the docs directory, split it into overlapping
chunks, embed each chunk, and store the result for chat retrieval.
Re-running replaces previously ingested versions of the same files.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDocsDir, "docs", "", "Directory of documents to ingest (overrides DOCS_DIR)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if ingestDocsDir != "" {
		cfg.DocsDir = ingestDocsDir
	}
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}
	if err := cfg.RequireGemini(); err != nil {
		return err
	}

	logger, err := observability.NewLogger(true)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()
	if err := database.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, llm.LoadConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	entries, err := os.ReadDir(cfg.DocsDir)
	if err != nil {
		return fmt.Errorf("failed to read docs directory: %w", err)
	}

	ingested := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".md" && ext != ".txt" && ext != ".html" && ext != ".htm" {
			continue
		}

		if err := ingestFile(ctx, database, client, filepath.Join(cfg.DocsDir, name), name, ext, logger); err != nil {
			return fmt.Errorf("failed to ingest %s: %w", name, err)
		}
		ingested++
	}

	total, err := database.CountChunks(ctx)
	if err != nil {
		return fmt.Errorf("failed to count chunks: %w", err)
	}
	logger.Info("ingest complete", zap.Int("documents", ingested), zap.Int("total_chunks", total))
	return nil
}

func ingestFile(ctx context.Context, database *db.DB, embedder rag.Embedder, path, source, ext string, logger *zap.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	text := string(raw)
	if ext == ".html" || ext == ".htm" {
		text, err = rag.StripHTML(text)
		if err != nil {
			return fmt.Errorf("failed to strip HTML: %w", err)
		}
	}

	pieces := rag.SplitText(text, rag.DefaultChunkSize, rag.DefaultChunkOverlap)
	if len(pieces) == 0 {
		logger.Warn("skipping empty document", zap.String("source", source))
		return nil
	}

	vectors, err := rag.EmbedChunks(ctx, embedder, pieces)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}

	chunks := make([]db.DocumentChunk, len(pieces))
	for i, content := range pieces {
		chunks[i] = db.DocumentChunk{
			Source:     source,
			ChunkIndex: i,
			Content:    content,
			Embedding:  vectors[i],
		}
	}

	if err := database.ReplaceDocument(ctx, source, chunks); err != nil {
		return err
	}
	logger.Info("ingested document", zap.String("source", source), zap.Int("chunks", len(chunks)))
	return nil
}
