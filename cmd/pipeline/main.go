// The pipeline builds the training dataset: it walks every official
// event and completed match for the configured years, resolves team
// ratings through the rate-limited cache, and writes one CSV row per
// match that clears the training sufficiency gate. The flow is strictly
// sequential so the rating service's request-rate policy is respected.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/scoutai/predict-api/internal/config"
	"github.com/scoutai/predict-api/internal/dataset"
	"github.com/scoutai/predict-api/internal/features"
	"github.com/scoutai/predict-api/internal/ratings"
	"github.com/scoutai/predict-api/internal/tba"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.RequireTBAKey(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	events := tba.NewClient(cfg.TBABaseURL, cfg.TBAAPIKey, cfg.BatchFetchTimeout, logger)

	// Batch-mode cache: memoize for the whole run with no expiry. A
	// rating resolved once (even to absent) is never refetched, which
	// keeps the run internally consistent and the request volume down.
	cache := ratings.NewCache(ratings.CacheConfig{
		Fetcher: ratings.NewClient(cfg.StatboticsBaseURL, cfg.BatchFetchTimeout, logger),
		Store:   ratings.NewMemoryStore(0, nil),
		Limiter: ratings.NewLimiter(cfg.FetchThrottle),
		Logger:  logger,
	})
	builder := features.NewBuilder(cache, logger)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		sugar.Fatalw("Failed to create data dir", "error", err)
	}
	outPath := filepath.Join(cfg.DataDir, "match_features.csv")
	writer, err := dataset.NewWriter(outPath)
	if err != nil {
		sugar.Fatalw("Failed to create dataset", "error", err)
	}

	ctx := context.Background()
	var totalRows, redWins int
	rejections := map[string]int{}

	for _, year := range cfg.Years {
		sugar.Infow("Fetching events", "year", year)
		yearEvents, err := events.EventsForYear(ctx, year)
		if err != nil {
			sugar.Errorw("Failed to fetch events, skipping year", "year", year, "error", err)
			continue
		}
		sugar.Infow("Processing events", "year", year, "events", len(yearEvents))

		for i := range yearEvents {
			event := &yearEvents[i]
			event.Year = year

			matches, err := events.MatchesForEvent(ctx, event.Key)
			if err != nil {
				sugar.Warnw("Failed to fetch matches, skipping event", "event", event.Key, "error", err)
				continue
			}
			if len(matches) == 0 {
				sugar.Debugw("No completed matches", "event", event.Key)
				continue
			}

			accepted := 0
			for j := range matches {
				row, err := builder.BuildTrainingRow(ctx, &matches[j], event)
				if err != nil {
					rejections[rejectionReason(err)]++
					continue
				}
				if err := writer.Append(row); err != nil {
					sugar.Fatalw("Failed to write dataset row", "error", err)
				}
				accepted++
				totalRows++
				if row.Winner == 1 {
					redWins++
				}
			}

			sugar.Infow("Event processed",
				"event", event.Key,
				"name", event.Name,
				"accepted", accepted,
				"matches", len(matches),
			)
		}

		sugar.Infow("Year complete", "year", year, "total_rows", totalRows)
	}

	if err := writer.Close(); err != nil {
		sugar.Fatalw("Failed to finalize dataset", "error", err)
	}

	sugar.Infow("Dataset saved",
		"path", outPath,
		"rows", totalRows,
		"rejected", rejections,
	)

	if totalRows == 0 {
		fmt.Fprintln(os.Stderr, "No training data collected. Check network access, API keys, and year range.")
		os.Exit(1)
	}

	sugar.Infow("Label distribution",
		"red_wins", redWins,
		"blue_wins", totalRows-redWins,
		"red_share", fmt.Sprintf("%.1f%%", 100*float64(redWins)/float64(totalRows)),
	)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, features.ErrIncompleteAlliance):
		return "incomplete_alliance"
	case errors.Is(err, features.ErrInsufficientData):
		return "insufficient_ratings"
	case errors.Is(err, features.ErrTiedMatch):
		return "tie"
	default:
		return "other"
	}
}
