package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hantec-labs/support-engine/cmd/support-engine-cli/ui"
	"github.com/hantec-labs/support-engine/internal/cache"
	"github.com/hantec-labs/support-engine/internal/completion"
	"github.com/hantec-labs/support-engine/internal/config"
	"github.com/hantec-labs/support-engine/internal/embedding"
	"github.com/hantec-labs/support-engine/internal/ingest"
	"github.com/hantec-labs/support-engine/internal/pipeline"
	"github.com/hantec-labs/support-engine/internal/retrieval"
	"github.com/hantec-labs/support-engine/internal/storage"
)

var askTimeout time.Duration

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question against the full answer pipeline",
	Long: `Loads and embeds the knowledge base, then runs the question through the
same classification, retrieval, and completion pipeline the API serves.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "overall timeout")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	embedder, err := embedding.NewClient(embedding.Config{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.Embedding.Model,
		BaseURL: cfg.LLM.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("embedding client: %w", err)
	}

	completer, err := completion.NewClient(completion.Config{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		return fmt.Errorf("completion client: %w", err)
	}

	recorder, err := newRecorder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer recorder.Close()

	loader := ingest.NewLoader(
		cfg.Knowledge.Dir,
		ingest.NewChunker(cfg.Knowledge.ChunkSize, cfg.Knowledge.ChunkOverlap),
		logger,
	)
	index := retrieval.NewIndex(logger, embedder, loader.Load)

	warmSpin := ui.NewSpinner("Embedding knowledge base...")
	warmSpin.Start()
	err = index.Warm(ctx)
	warmSpin.Stop()
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	ui.Info("Indexed %d chunks", index.Size())

	p := pipeline.New(pipeline.Options{
		Logger:    logger,
		Searcher:  index,
		Completer: completer,
		Responder: pipeline.NewResponder(cfg.Chat.SupportContact),
		Recorder:  recorder,
		Cache:     cache.NewMemoryClient(cfg.Cache.MaxEntries),
		Thresholds: retrieval.Thresholds{
			High:         cfg.Retrieval.HighThreshold,
			Medium:       cfg.Retrieval.MediumThreshold,
			Low:          cfg.Retrieval.LowThreshold,
			MinDocuments: cfg.Retrieval.MinDocuments,
		},
		CompanyName:       cfg.Chat.CompanyName,
		TopK:              cfg.Retrieval.TopK,
		MaxQueryLength:    cfg.Chat.MaxQueryLength,
		CacheTTL:          cfg.Cache.TTL,
		CompletionTimeout: cfg.LLM.Timeout,
	})

	askSpin := ui.NewSpinner("Thinking...")
	askSpin.Start()
	env, err := p.Process(ctx, query, nil)
	askSpin.Stop()
	if err != nil && env == nil {
		return err
	}

	fmt.Println()
	fmt.Println(env.Text)
	fmt.Println()
	ui.Info("Confidence: %s", ui.ConfidenceBadge(string(env.Confidence)))
	ui.Info("Category: %s", env.Metadata.Category)
	if len(env.Sources) > 0 {
		ui.Info("Sources: %s", strings.Join(env.Sources, ", "))
	}
	ui.Info("Took %dms", env.Metadata.DurationMs)
	if err != nil {
		ui.Warning("Answer degraded: %v", err)
	}
	return nil
}

func newRecorder(ctx context.Context, cfg *config.Config) (storage.Recorder, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		return storage.Open(ctx, storage.Config{Driver: "sqlite3", DSN: cfg.Storage.SQLite.Path})
	case "postgres":
		return storage.Open(ctx, storage.Config{Driver: "postgres", DSN: cfg.Storage.Postgres.DSN})
	default:
		return storage.NopRecorder{}, nil
	}
}
