package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/broki/marketplace-api/internal/adapters/database"
	"github.com/broki/marketplace-api/internal/adapters/search"
	"github.com/broki/marketplace-api/internal/domain/providers"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/postgres"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/typesense"
	"github.com/broki/marketplace-api/internal/infrastructure/observability"
	"github.com/broki/marketplace-api/pkg/config"
)

const batchSize = 500

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the Typesense properties collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-indexer", cfg.Server.Env)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, cfg, reset); err != nil {
			log.Error().Err(err).Msg("Reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("next_run_in", interval).Msg("Reindex complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, cfg *config.Config, reset bool) error {
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Str("collection", typesense.PropertiesCollection).Msg("Deleting collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.PropertiesCollection).Delete(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to delete collection")
		}
	}

	if err := tsClient.InitSchema(ctx); err != nil {
		return err
	}

	indexed, failed, err := reindex(ctx, database.NewPropertyAdapter(pgClient), search.NewPropertyIndex(tsClient))
	if err != nil {
		return err
	}

	log.Info().Int("indexed", indexed).Int("failed", failed).Msg("Indexing complete")
	return nil
}

// reindex pages through every property and upserts it into index. A failed
// document is logged and skipped.
func reindex(ctx context.Context, properties repositories.PropertyRepository, index providers.PropertySearchIndex) (indexed, failed int, err error) {
	for offset := 0; ; offset += batchSize {
		batch, total, err := properties.List(ctx, repositories.PropertyFilter{Limit: batchSize, Offset: offset})
		if err != nil {
			return indexed, failed, fmt.Errorf("failed to list properties at offset %d: %w", offset, err)
		}

		for _, p := range batch {
			if err := index.Index(ctx, p); err != nil {
				log.Warn().Err(err).Int64("property_id", p.ID).Msg("Failed to index property")
				failed++
				continue
			}
			indexed++
		}

		if len(batch) == 0 || offset+len(batch) >= total {
			return indexed, failed, nil
		}
	}
}
