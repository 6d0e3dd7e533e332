package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Dileep2896/visapath/internal/config"
	"github.com/Dileep2896/visapath/internal/db"
	"github.com/Dileep2896/visapath/internal/llm"
	"github.com/Dileep2896/visapath/internal/observability"
	"github.com/Dileep2896/visapath/internal/server"
)

var (
	servePort int
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the HTTP server. JWT_SECRET is required. DATABASE_URL and
GEMINI_API_KEY are optional: without a database the account endpoints
answer 503, and without an API key the AI endpoints do. The deterministic
timeline endpoints work either way.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "Use human-readable development logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger, err := observability.NewLogger(serveDev)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	deps := server.Deps{
		Logger:  logger,
		Metrics: observability.NewMetrics(prometheus.DefaultRegisterer),
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.InitSchema(ctx); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		deps.DB = database
	} else {
		logger.Warn("DATABASE_URL not set; accounts and saved timelines disabled")
	}

	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.LoadConfig(), cfg.GeminiAPIKey)
		if err != nil {
			return fmt.Errorf("failed to create model client: %w", err)
		}
		deps.LLMClient = client
	} else {
		logger.Warn("GEMINI_API_KEY not set; AI endpoints disabled")
	}

	srv, err := server.New(cfg, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
