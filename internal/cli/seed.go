package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"ai-style-review-be/internal/bootstrap"
	"ai-style-review-be/internal/config"
	"ai-style-review-be/internal/entity"
	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/internal/repository/unitofwork"
	"ai-style-review-be/pkg/database"
	"ai-style-review-be/pkg/embedding"
	"ai-style-review-be/pkg/retrieval"
)

type seedOptions struct {
	DryRun bool
}

func newSeedCmd(root *RootOptions) *cobra.Command {
	opts := &seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Embed reference examples and store them in Postgres",
		Long: "seed reads a reference example YAML file (default RETRIEVAL_SEED_PATH), " +
			"embeds every example and inserts them in one transaction.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			path := cfg.Retrieval.SeedPath
			if len(args) == 1 {
				path = args[0]
			}
			examples, err := retrieval.LoadSeed(path)
			if err != nil {
				return err
			}
			if opts.DryRun {
				printSeedSummary(cmd.OutOrStdout(), path, examples, false)
				return nil
			}
			db, err := openReferenceDB(cfg)
			if err != nil {
				return err
			}
			if err := runSeed(cmd.Context(), db, cfg, root.logger(), examples); err != nil {
				return err
			}
			printSeedSummary(cmd.OutOrStdout(), path, examples, true)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate the file without writing to the database")
	return cmd
}

func openReferenceDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		return nil, fmt.Errorf("connect reference database: %w", err)
	}
	return db, nil
}

func runSeed(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.ILogger, examples []retrieval.Example) error {
	embedder, err := embedding.NewEmbeddingProvider(bootstrap.EmbeddingParams(cfg))
	if err != nil {
		return fmt.Errorf("init embedding provider: %w", err)
	}

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	store := retrieval.NewVectorStore(uow.ReferenceExampleRepository(), embedder, cfg.Retrieval.MinScore).
		WithSource(entity.ReferenceSourceSeed)
	if err := store.IndexAll(ctx, examples); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			log.Error("CLI", "Rollback failed", map[string]interface{}{"error": rbErr.Error()})
		}
		return fmt.Errorf("index examples: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	log.Info("CLI", "Reference examples seeded", map[string]interface{}{"count": len(examples)})
	return nil
}

func printSeedSummary(w io.Writer, path string, examples []retrieval.Example, written bool) {
	counts := map[string]int{}
	for _, ex := range examples {
		counts[string(ex.Category)]++
	}
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	verb := "validated"
	if written {
		verb = "seeded"
	}
	color.New(color.FgGreen).Fprintf(w, "%s %d examples from %s\n", verb, len(examples), path)
	for _, c := range categories {
		fmt.Fprintf(w, "  %-16s %d\n", c, counts[c])
	}
}
