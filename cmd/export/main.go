// Command export writes one collection of leads as CSV using the same
// storage configuration as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/app"
	"github.com/Freeeeeet/tuition_site/internal/config"
	"github.com/Freeeeeet/tuition_site/internal/matching"
	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/Freeeeeet/tuition_site/internal/validation"
	"go.uber.org/zap"
)

func main() {
	kindFlag := flag.String("kind", "parents", "Collection to export: parents, tutors or requests")
	status := flag.String("status", "", "Only export records with this status")
	query := flag.String("q", "", "Only export records matching this search text")
	out := flag.String("out", "", "Output file (default: <kind>-<date>.csv, '-' for stdout)")
	flag.Parse()

	kind, ok := model.ParseKind(*kindFlag)
	if !ok {
		log.Fatalf("Unknown kind %q", *kindFlag)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n, path, err := export(ctx, cfg, logger, kind, model.ListFilter{Status: *status, Query: *query}, *out)
	if err != nil {
		logger.Fatal("Export failed", zap.Error(err))
	}
	logger.Info("Export finished", zap.String("kind", string(kind)), zap.Int("rows", n), zap.String("file", path))
}

func export(ctx context.Context, cfg *config.Config, logger *zap.Logger, kind model.Kind, filter model.ListFilter, out string) (int, string, error) {
	stores, closeStores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		return 0, "", err
	}
	defer closeStores()

	validate := validation.New()
	submissions := service.NewSubmissionService(stores.Parents, stores.Tutors, nil, validate, logger)
	requests := service.NewRequestService(stores.Requests, stores.Tutors, matching.NewRuleMatcher(), nil, validate, logger)
	exporter := service.NewExportService(submissions, requests)

	if out == "" {
		out = service.Filename(kind, time.Now())
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return 0, out, fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	n, err := exporter.Export(ctx, kind, filter, w)
	return n, out, err
}
