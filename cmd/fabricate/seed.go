package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mockdata-labs/fabricate/internal/config"
	"github.com/mockdata-labs/fabricate/internal/factory"
	"github.com/mockdata-labs/fabricate/internal/schema"
	"github.com/mockdata-labs/fabricate/internal/sink"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

var (
	seedModel    string
	seedCount    int
	seedBatch    int
	seedSeed     int64
	seedContinue bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate documents and persist them to the configured sink",
	Long:  `Load schemas, generate documents for one model and insert them into the sink named in fabricate.yaml (mongodb, postgresql, mysql, sqlite or memory).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		schemas, err := schema.LoadDir(cfg.SchemaDir)
		if err != nil {
			return fmt.Errorf("failed to load schemas: %w", err)
		}
		target, err := pickModel(schemas, seedModel)
		if err != nil {
			return err
		}
		for _, s := range schemas {
			if err := factory.RegisterModel(s); err != nil {
				return fmt.Errorf("failed to register %s: %w", s.Name, err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		store, cleanup, err := openSink(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to sink: %w", err)
		}
		defer cleanup()

		count := seedCount
		if count <= 0 {
			count = cfg.Count
		}
		batch := seedBatch
		if batch <= 0 {
			batch = cfg.Batch
		}
		seed := seedSeed
		if seed == 0 {
			seed = cfg.Seed
		}

		opts := []factory.Option{
			factory.WithSeed(seed),
			factory.WithSink(store),
			factory.WithBatchSize(batch),
		}
		if seedContinue {
			opts = append(opts, factory.WithContinueOnError())
		}

		color.Cyan("🌱 Seeding %d %s document(s) into %s...", count, target.Name, cfg.Sink.Provider)

		result, err := factory.New(target, opts...).Create(ctx, count)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		color.Green("✅ Inserted %d/%d document(s)", result.Inserted, len(result.Documents))
		for _, f := range result.FailedBatches {
			color.Yellow("⚠️  Batch %d (%d docs) failed: %v", f.Index, f.Size, f.Err)
		}
		return nil
	},
}

// openSink connects to the configured sink. The returned cleanup func is
// always safe to call.
func openSink(ctx context.Context, cfg *config.Config) (sink.Sink, func(), error) {
	noop := func() {}

	if cfg.Sink.Provider == "memory" {
		return sink.NewMemory(), noop, nil
	}

	url, err := cfg.GetSinkURL()
	if err != nil {
		return nil, noop, err
	}

	switch cfg.Sink.Provider {
	case "mongodb", "mongo":
		db := cfg.Sink.Database
		if db == "" {
			db = "fabricate"
		}
		m, disconnect, err := sink.ConnectMongo(ctx, url, db)
		if err != nil {
			return nil, noop, err
		}
		return m, func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = disconnect(shutdownCtx)
		}, nil
	case "postgresql", "postgres", "mysql", "sqlite", "sqlite3":
		s, err := sink.OpenSQL(cfg.Sink.Provider, url)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unsupported sink provider: %s", cfg.Sink.Provider)
	}
}

func init() {
	seedCmd.Flags().StringVarP(&seedModel, "model", "m", "", "Model name to seed")
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 0, "Number of documents (default from config)")
	seedCmd.Flags().IntVar(&seedBatch, "batch", 0, "Batch size for inserts (default from config)")
	seedCmd.Flags().Int64Var(&seedSeed, "seed", 0, "Random seed for reproducible output")
	seedCmd.Flags().BoolVar(&seedContinue, "continue-on-error", false, "Keep inserting remaining batches when one fails")
	rootCmd.AddCommand(seedCmd)
}
