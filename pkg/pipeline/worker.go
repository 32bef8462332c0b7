package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"datagroom/pkg/analyzer"
	"datagroom/pkg/cleaner"
	"datagroom/pkg/config"
	"datagroom/pkg/export"
	"datagroom/pkg/report"
	"datagroom/pkg/source"
)

// WorkerState represents the current state of a worker
type WorkerState string

const (
	WorkerStateIdle      WorkerState = "idle"
	WorkerStateWorking   WorkerState = "working"
	WorkerStateCompleted WorkerState = "completed"
)

// Worker executes cleaning jobs pulled from a queue
type Worker struct {
	ID           int
	cfg          *config.Config
	cleaner      *cleaner.Cleaner
	analyzer     *analyzer.Analyzer
	verifier     *Verifier
	errorHandler *ErrorHandler
	logger       *zap.Logger
	outputDir    string
	reportHTML   bool
	state        WorkerState
	currentJob   *Job
	stateLock    sync.RWMutex
}

// NewWorker creates a new worker
func NewWorker(
	id int,
	cfg *config.Config,
	dataCleaner *cleaner.Cleaner,
	profiler *analyzer.Analyzer,
	verifier *Verifier,
	errorHandler *ErrorHandler,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		ID:           id,
		cfg:          cfg,
		cleaner:      dataCleaner,
		analyzer:     profiler,
		verifier:     verifier,
		errorHandler: errorHandler,
		logger:       logger.With(zap.Int("workerID", id)),
		outputDir:    cfg.OutputDir,
		reportHTML:   cfg.ReportHTML,
		state:        WorkerStateIdle,
	}
}

// GetState returns the current state of the worker
func (w *Worker) GetState() WorkerState {
	w.stateLock.RLock()
	defer w.stateLock.RUnlock()
	return w.state
}

// setState updates the worker state
func (w *Worker) setState(state WorkerState) {
	w.stateLock.Lock()
	defer w.stateLock.Unlock()

	prevState := w.state
	w.state = state

	if prevState != state {
		w.logger.Info("Worker state changed",
			zap.String("from", string(prevState)),
			zap.String("to", string(state)))
	}
}

// GetCurrentJob returns the job currently being processed
func (w *Worker) GetCurrentJob() *Job {
	w.stateLock.RLock()
	defer w.stateLock.RUnlock()
	return w.currentJob
}

// setCurrentJob updates the current job
func (w *Worker) setCurrentJob(job *Job) {
	w.stateLock.Lock()
	defer w.stateLock.Unlock()
	w.currentJob = job
}

// clearCurrentJob clears the current job
func (w *Worker) clearCurrentJob() {
	w.stateLock.Lock()
	defer w.stateLock.Unlock()
	w.currentJob = nil
}

// Start begins the worker processing loop
func (w *Worker) Start(ctx context.Context, jobs <-chan Job, results chan<- Result) {
	w.setState(WorkerStateWorking)
	w.logger.Info("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Worker stopping due to context cancellation")
			w.setState(WorkerStateCompleted)
			return

		case job, ok := <-jobs:
			if !ok {
				// Channel closed, no more jobs
				w.logger.Info("Worker stopping due to closed job channel")
				w.setState(WorkerStateCompleted)
				return
			}

			w.logger.Info("Received job",
				zap.String("source", job.Source),
				zap.Int("retryCount", job.RetryCount))

			result := w.ProcessJob(ctx, job)

			select {
			case results <- result:
				// Result sent successfully
			case <-ctx.Done():
				w.logger.Warn("Context cancelled while sending result",
					zap.String("source", job.Source))
				w.setState(WorkerStateCompleted)
				return
			}
		}
	}
}

// ProcessJob runs a single cleaning job from load to export
func (w *Worker) ProcessJob(ctx context.Context, job Job) Result {
	w.setCurrentJob(&job)
	w.setState(WorkerStateWorking)

	result := NewResult(job, w.ID)

	w.logger.Info("Starting cleaning job",
		zap.String("source", job.Source),
		zap.Int("retryCount", job.RetryCount))

	success := w.cleanSource(ctx, job, result)
	result.Complete(success)

	if success {
		w.logger.Info("Cleaning job completed successfully",
			zap.String("source", job.Source),
			zap.Int("rows", result.CleanRows),
			zap.Int("actions", len(result.Actions)),
			zap.Duration("duration", result.Duration))
	} else {
		w.logger.Warn("Cleaning job failed",
			zap.String("source", job.Source),
			zap.Int("errors", len(result.Errors)),
			zap.Duration("duration", result.Duration))
	}

	w.clearCurrentJob()
	w.setState(WorkerStateIdle)

	return *result
}

// cleanSource executes the load, clean, verify, and export stages
func (w *Worker) cleanSource(ctx context.Context, job Job, result *Result) bool {
	// Step 1: Resolve and load the source
	opts := source.Options{
		MaxRows: job.MaxRows,
		Table:   job.Table,
		Query:   job.Query,
	}

	src, err := source.New(job.Source, w.cfg, opts)
	if err != nil {
		w.recordError(result, err, ErrorKindSource, job.Source, job.RetryCount)
		return false
	}

	ds, err := src.Load(ctx)
	for err != nil && IsRetryable(err) && job.IsRetryable() && ctx.Err() == nil {
		job = job.Retry()
		result.RetryCount = job.RetryCount
		w.logger.Warn("Retrying source load",
			zap.String("source", src.Name()),
			zap.Int("retryCount", job.RetryCount),
			zap.Error(err))
		ds, err = src.Load(ctx)
	}
	if err != nil {
		kind := ErrorKindSource
		if ctx.Err() != nil {
			kind = ErrorKindSystem
		}
		w.recordError(result, err, kind, src.Name(), job.RetryCount)
		return false
	}

	// Step 2: Profile the raw data before cleaning touches it
	rawSummary := w.analyzer.Analyze(ds)
	result.RawRows = rawSummary.BasicInfo.Rows
	result.RawColumns = rawSummary.BasicInfo.Columns

	// Step 3: Clean
	cleaned, actions := w.cleaner.Clean(ds)
	result.Actions = actions

	// Step 4: Profile the cleaned data and diff the two summaries
	cleanedSummary := w.analyzer.Analyze(cleaned)
	result.CleanRows = cleanedSummary.BasicInfo.Rows
	result.CleanColumns = cleanedSummary.BasicInfo.Columns
	result.Delta = analyzer.Compare(rawSummary, cleanedSummary)

	// Step 5: Verify cleaning guarantees. Findings downgrade to warnings.
	if w.verifier != nil {
		issues := w.verifier.Verify(cleaned)
		result.Issues = issues
		for _, issue := range issues {
			result.AddWarning(issue.Detail)
		}
	}

	// Step 6: Export the cleaned dataset and the summary artifact
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		wrapped := fmt.Errorf("failed to create output directory: %w", err)
		w.recordError(result, wrapped, ErrorKindExport, src.Name(), job.RetryCount)
		return false
	}

	base := strings.TrimSuffix(src.Name(), filepath.Ext(src.Name()))

	outputPath := filepath.Join(w.outputDir, fmt.Sprintf("%s_cleaned.%s", base, job.Format))
	if err := export.WriteDataset(outputPath, cleaned); err != nil {
		w.recordError(result, err, ErrorKindExport, src.Name(), job.RetryCount)
		return false
	}
	result.OutputPath = outputPath

	summaryPath := filepath.Join(w.outputDir, base+"_summary.json")
	artifact := struct {
		Source      string           `json:"source"`
		GeneratedAt time.Time        `json:"generatedAt"`
		Actions     []cleaner.Action `json:"actions"`
		Raw         analyzer.Summary `json:"raw"`
		Cleaned     analyzer.Summary `json:"cleaned"`
		Delta       analyzer.Delta   `json:"delta"`
		Issues      []Issue          `json:"issues,omitempty"`
	}{
		Source:      src.Name(),
		GeneratedAt: time.Now(),
		Actions:     actions,
		Raw:         rawSummary,
		Cleaned:     cleanedSummary,
		Delta:       result.Delta,
		Issues:      result.Issues,
	}
	if err := export.WriteArtifact(summaryPath, artifact); err != nil {
		w.recordError(result, err, ErrorKindExport, src.Name(), job.RetryCount)
		return false
	}
	result.SummaryPath = summaryPath

	// Step 7: Render the HTML report. A render failure does not fail the
	// job: the cleaned data is already on disk.
	if w.reportHTML {
		reportPath := filepath.Join(w.outputDir, base+"_report.html")
		data := report.Data{
			Title:       fmt.Sprintf("%s cleaning report", src.Name()),
			Source:      src.Name(),
			GeneratedAt: time.Now(),
			Actions:     actions,
			Raw:         rawSummary,
			Cleaned:     cleanedSummary,
			Delta:       result.Delta,
		}
		if err := report.WriteFile(reportPath, data); err != nil {
			result.AddWarning(fmt.Sprintf("Report generation failed: %v", err))
		} else {
			result.ReportPath = reportPath
		}
	}

	return !result.HasErrors()
}

// recordError attaches an error to the result and the shared handler
func (w *Worker) recordError(result *Result, err error, kind ErrorKind, source string, retryCount int) {
	record := NewErrorRecord(err, kind).
		WithSource(source).
		WithRetry(retryCount)
	result.AddError(record)
	if w.errorHandler != nil {
		w.errorHandler.Record(record)
	}
}
