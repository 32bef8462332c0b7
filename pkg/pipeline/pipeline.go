package pipeline

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"datagroom/pkg/analyzer"
	"datagroom/pkg/cleaner"
	"datagroom/pkg/config"
)

// Runner orchestrates cleaning jobs across a pool of workers
type Runner struct {
	cfg          *config.Config
	cleaner      *cleaner.Cleaner
	analyzer     *analyzer.Analyzer
	verifier     *Verifier
	errorHandler *ErrorHandler
	metrics      *Metrics
	logger       *zap.Logger
	workerCount  int
}

// NewRunner creates a new runner with its cleaning and profiling stages
func NewRunner(cfg *config.Config, logger *zap.Logger) (*Runner, error) {
	dataCleaner, err := cleaner.NewCleaner(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cleaner: %w", err)
	}

	profiler, err := analyzer.NewAnalyzer(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = calculateWorkerCount()
	}

	return &Runner{
		cfg:          cfg,
		cleaner:      dataCleaner,
		analyzer:     profiler,
		verifier:     NewVerifier(logger),
		errorHandler: NewErrorHandler(logger),
		metrics:      NewMetrics(logger),
		logger:       logger,
		workerCount:  workerCount,
	}, nil
}

// WithWorkerCount sets the number of worker goroutines
func (r *Runner) WithWorkerCount(count int) *Runner {
	if count > 0 {
		r.workerCount = count
	}
	return r
}

// Run processes a single cleaning job on a dedicated worker
func (r *Runner) Run(ctx context.Context, job Job) (*Result, error) {
	r.logger.Info("Starting single cleaning job",
		zap.String("source", job.Source))

	// Special ID for the single-job worker
	worker := NewWorker(-1, r.cfg, r.cleaner, r.analyzer, r.verifier, r.errorHandler, r.logger)

	result := worker.ProcessJob(ctx, job)
	r.metrics.RecordJob(result)

	r.logger.Info("Single cleaning job completed",
		zap.String("source", job.Source),
		zap.Bool("success", result.Success),
		zap.Int("rows", result.CleanRows),
		zap.Duration("duration", result.Duration))

	return &result, nil
}

// RunBatch processes a set of cleaning jobs across the worker pool
func (r *Runner) RunBatch(ctx context.Context, jobs []Job) (*BatchResult, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs provided")
	}

	workerCount := min(r.workerCount, len(jobs))

	r.logger.Info("Starting batch cleaning run",
		zap.Int("jobs", len(jobs)),
		zap.Int("workers", workerCount))

	batch := NewBatchResult()

	jobQueue := make(chan Job, len(jobs))
	resultQueue := make(chan Result, len(jobs))

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		worker := NewWorker(i, r.cfg, r.cleaner, r.analyzer, r.verifier, r.errorHandler, r.logger)
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			w.Start(workerCtx, jobQueue, resultQueue)
		}(worker)
	}

	for _, job := range jobs {
		jobQueue <- job
	}
	close(jobQueue)

	go func() {
		wg.Wait()
		close(resultQueue)
	}()

	// Drain every result even after an abort so worker sends never block
	aborted := false
	for result := range resultQueue {
		r.metrics.RecordJob(result)
		batch.AddResult(result)

		if !result.Success && !aborted && r.errorHandler.ThresholdExceeded() {
			r.logger.Error("Aborting batch run due to error threshold")
			aborted = true
			cancelWorkers()
		}
	}

	r.metrics.Complete()
	batch.Complete()

	r.logger.Info("Batch cleaning run completed",
		zap.Int("successful", len(batch.SuccessfulJobs)),
		zap.Int("failed", len(batch.FailedJobs)),
		zap.Int("rowsIn", batch.TotalRowsIn),
		zap.Int("rowsOut", batch.TotalRowsOut),
		zap.Duration("duration", batch.Duration))

	return batch, nil
}

// Metrics returns the metrics collector for this runner
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// ErrorCounts returns a summary of errors by kind
func (r *Runner) ErrorCounts() map[ErrorKind]int {
	return r.errorHandler.Counts()
}

// Report generates a text metrics report for the run
func (r *Runner) Report() string {
	return r.metrics.Report()
}

// calculateWorkerCount determines the number of worker goroutines. Each
// worker holds a full dataset in memory, so the pool stays small.
func calculateWorkerCount() int {
	workerCount := int(math.Ceil(float64(runtime.NumCPU()) * 0.75))

	if workerCount < 1 {
		workerCount = 1
	} else if workerCount > 8 {
		workerCount = 8
	}

	return workerCount
}
