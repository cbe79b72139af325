// Package pipeline implements the batch embedding run: select papers without
// a stored vector, encode them in fixed-size batches, and upsert the encoded
// blobs with periodic commits and streaming progress output.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arxivtools/paperembed/internal/embedding"
	"github.com/arxivtools/paperembed/internal/logger"
	"github.com/arxivtools/paperembed/internal/paperstore"
	"github.com/arxivtools/paperembed/internal/telemetry"
	"github.com/arxivtools/paperembed/internal/vector"
)

// DefaultBatchSize is how many papers are encoded per model call.
const DefaultBatchSize = 32

// commitInterval is measured in processed papers, not batches. The original
// tool committed on every 100th record and this keeps that contract.
const commitInterval = 100

// Options configures a Runner.
type Options struct {
	// BatchSize is the number of papers per model call; <=0 selects the
	// default of 32.
	BatchSize int

	// Limit caps how many papers the run processes; 0 means all pending.
	Limit int

	// Progress receives the machine-parseable progress lines. Defaults to
	// stdout. Each line is flushed immediately when the writer supports it.
	Progress io.Writer

	// Logger receives human-oriented log output. Defaults to the package
	// default logger.
	Logger *logger.Logger

	// Metrics collects run counters and timings. Optional.
	Metrics *telemetry.Collector
}

// Runner executes one batch embedding pass over a store.
type Runner struct {
	store     paperstore.Store
	embedder  embedding.Embedder
	batchSize int
	limit     int
	progress  io.Writer
	log       *logger.Logger
	metrics   *telemetry.Collector
}

// New creates a Runner over an opened store and an initialized embedder.
func New(store paperstore.Store, embedder embedding.Embedder, opts Options) *Runner {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Progress == nil {
		opts.Progress = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NewCollector()
	}
	return &Runner{
		store:     store,
		embedder:  embedder,
		batchSize: opts.BatchSize,
		limit:     opts.Limit,
		progress:  opts.Progress,
		log:       opts.Logger.WithContext("pipeline"),
		metrics:   opts.Metrics,
	}
}

// BuildText combines a paper's title and abstract into the text that gets
// encoded: "title. abstract" when both are present, otherwise whichever one
// is non-empty.
func BuildText(p paperstore.Paper) string {
	if p.Title != "" && p.Abstract != "" {
		return p.Title + ". " + p.Abstract
	}
	if p.Title != "" {
		return p.Title
	}
	return p.Abstract
}

// Run executes the batch pass and returns the number of papers embedded.
//
// The pass is single-threaded and makes no retries. Each batch is encoded
// first and written only after the whole batch encoded successfully, so an
// encode failure leaves the failing batch entirely unwritten. Commits happen
// whenever the cumulative processed count reaches a multiple of 100 and once
// unconditionally at the end, so a mid-run crash loses at most the
// uncommitted tail.
func (r *Runner) Run(ctx context.Context) (int, error) {
	if err := r.store.EnsureEmbeddingsTable(); err != nil {
		return 0, err
	}

	papers, err := r.store.SelectPending(r.limit)
	if err != nil {
		return 0, err
	}
	if len(papers) == 0 {
		r.log.Info("no papers need embeddings")
		return 0, nil
	}

	total := len(papers)
	r.log.Info("found %d papers to process", total)

	if err := r.store.Begin(); err != nil {
		return 0, err
	}

	processed := 0
	for start := 0; start < total; start += r.batchSize {
		end := start + r.batchSize
		if end > total {
			end = total
		}
		batch := papers[start:end]

		texts := make([]string, len(batch))
		for i, p := range batch {
			texts[i] = BuildText(p)
		}

		var vecs [][]float32
		err := r.metrics.Time(telemetry.MetricEncodeTime, func() error {
			var embedErr error
			vecs, embedErr = r.embedder.Embed(ctx, texts)
			return embedErr
		})
		if err != nil {
			return processed, fmt.Errorf("encode batch at paper %d: %w", start, err)
		}

		err = r.metrics.Time(telemetry.MetricStoreWriteTime, func() error {
			for i, p := range batch {
				blob := vector.Serialize(vecs[i])
				if putErr := r.store.PutEmbedding(p.ID, r.embedder.Name(), blob); putErr != nil {
					return putErr
				}
			}
			return nil
		})
		if err != nil {
			return processed, err
		}

		processed += len(batch)
		r.metrics.Add(telemetry.MetricPapersEmbedded, int64(len(batch)))
		r.metrics.Add(telemetry.MetricBatchesComplete, 1)
		r.reportProgress(processed, total)

		if processed%commitInterval == 0 {
			if err := r.store.Commit(); err != nil {
				return processed, err
			}
			r.metrics.Add(telemetry.MetricCommits, 1)
			if err := r.store.Begin(); err != nil {
				return processed, err
			}
		}
	}

	if err := r.store.Commit(); err != nil {
		return processed, err
	}
	r.metrics.Add(telemetry.MetricCommits, 1)

	r.log.Info("done, generated embeddings for %d papers", processed)
	r.log.Debug("run metrics: %s", r.metrics.Summary())
	return processed, nil
}

// reportProgress emits the one-line-per-batch progress protocol. The exact
// text is parsed by external supervisors and must not change.
func (r *Runner) reportProgress(done, total int) {
	pct := float64(done) / float64(total) * 100
	fmt.Fprintf(r.progress, "Processed %d/%d papers (%.1f%% complete)\n", done, total, pct)
	if f, ok := r.progress.(interface{ Flush() error }); ok {
		f.Flush()
	}
}
