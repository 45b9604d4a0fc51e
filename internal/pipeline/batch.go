package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lowmax205/surveyscan/internal/model"
)

// BatchProcessor handles concurrent analysis of multiple CSV files.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-file execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each file. The factory
	// receives the CSV path so per-file artifact names can be derived.
	pipelineFactory func(path string) *Pipeline

	// concurrency is the maximum number of files analyzed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed reports in input order.
	// Access is synchronized via mutex.
	results []*model.SurveyReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each file to create a fresh
// pipeline instance. This ensures that pipeline state doesn't leak between
// runs and allows per-file customization of artifact paths.
func NewBatchProcessor(pipelineFactory func(path string) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes multiple CSV files concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each file gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Returns all reports in input order, even for files whose analysis
// failed. The error return indicates cancellation.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, paths []string) ([]*model.SurveyReport, error) {
	bp.logger.Info("starting batch analysis",
		"total_files", len(paths),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	bp.results = make([]*model.SurveyReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("analyzing file",
				"path", path,
				"index", i+1,
				"total", len(paths),
			)

			analysis := NewAnalysis(path)
			p := bp.pipelineFactory(path)
			err := p.Execute(ctx, analysis)

			// Store the report regardless of error. It carries the
			// failure text if the analysis failed.
			bp.mu.Lock()
			bp.results[i] = analysis.Report
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("analysis failed",
					"path", path,
					"error", err,
				)
				// Don't return the error to the errgroup - other files
				// should still be analyzed.
				return nil
			}

			bp.logger.Info("analysis completed", "path", path)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch analysis complete",
		"total_files", len(paths),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}
