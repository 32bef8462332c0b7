package pipeline

import (
	"time"

	"github.com/google/uuid"

	"datagroom/pkg/analyzer"
	"datagroom/pkg/cleaner"
)

// Job describes one dataset to load, clean and export
type Job struct {
	ID         string    // Unique job identifier
	Source     string    // File path or database DSN
	Table      string    // Table to read for database sources
	Query      string    // Query overriding Table for database sources
	MaxRows    int       // Row cap on load (0 = unlimited)
	Format     string    // Output format: csv, tsv, json or xlsx
	CreatedAt  time.Time // Job creation timestamp
	RetryCount int       // Number of retries attempted
	MaxRetries int       // Maximum allowed retries for recoverable load errors
}

// NewJob creates a new cleaning job with defaults
func NewJob(source string) Job {
	return Job{
		ID:         uuid.New().String(),
		Source:     source,
		Format:     "csv",
		CreatedAt:  time.Now(),
		RetryCount: 0,
		MaxRetries: 1,
	}
}

// WithTable sets the source table and returns the modified job
func (j Job) WithTable(table string) Job {
	j.Table = table
	return j
}

// WithQuery sets the source query and returns the modified job
func (j Job) WithQuery(query string) Job {
	j.Query = query
	return j
}

// WithMaxRows caps the number of rows loaded and returns the modified job
func (j Job) WithMaxRows(maxRows int) Job {
	j.MaxRows = maxRows
	return j
}

// WithFormat sets the export format and returns the modified job
func (j Job) WithFormat(format string) Job {
	j.Format = format
	return j
}

// WithMaxRetries sets the maximum retry count and returns the modified job
func (j Job) WithMaxRetries(maxRetries int) Job {
	j.MaxRetries = maxRetries
	return j
}

// IsRetryable checks if the job can be retried
func (j Job) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// Retry increments the retry count and returns the modified job
func (j Job) Retry() Job {
	j.RetryCount++
	return j
}

// Result represents the outcome of one cleaning job
type Result struct {
	JobID        string
	Source       string
	Success      bool
	RawRows      int
	RawColumns   int
	CleanRows    int
	CleanColumns int
	Actions      []cleaner.Action
	Delta        analyzer.Delta
	Issues       []Issue
	Errors       []ErrorRecord
	Warnings     []string
	OutputPath   string
	SummaryPath  string
	ReportPath   string
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	RetryCount   int
	WorkerID     int
}

// NewResult initializes a result for a job
func NewResult(job Job, workerID int) *Result {
	return &Result{
		JobID:      job.ID,
		Source:     job.Source,
		StartTime:  time.Now(),
		RetryCount: job.RetryCount,
		WorkerID:   workerID,
		Errors:     make([]ErrorRecord, 0),
		Warnings:   make([]string, 0),
	}
}

// Complete marks the job as finished and calculates duration
func (r *Result) Complete(success bool) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Success = success
}

// AddError adds an error to the result
func (r *Result) AddError(err ErrorRecord) {
	r.Errors = append(r.Errors, err)
	r.Success = false
}

// AddWarning adds a warning to the result
func (r *Result) AddWarning(warning string) {
	r.Warnings = append(r.Warnings, warning)
}

// ErrorCount returns the number of errors
func (r *Result) ErrorCount() int {
	return len(r.Errors)
}

// HasErrors checks if any errors occurred
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// MutatingActions counts the actions that actually changed data
func (r *Result) MutatingActions() int {
	n := 0
	for _, a := range r.Actions {
		if a.Mutating() {
			n++
		}
	}
	return n
}

// BatchResult aggregates the results of a batch run
type BatchResult struct {
	TotalJobs      int
	SuccessfulJobs []string
	FailedJobs     map[string]error
	TotalRowsIn    int
	TotalRowsOut   int
	TotalActions   int
	ErrorKinds     map[ErrorKind]int
	Duration       time.Duration
	StartTime      time.Time
	EndTime        time.Time
}

// NewBatchResult initializes a new batch result
func NewBatchResult() *BatchResult {
	return &BatchResult{
		StartTime:      time.Now(),
		SuccessfulJobs: make([]string, 0),
		FailedJobs:     make(map[string]error),
		ErrorKinds:     make(map[ErrorKind]int),
	}
}

// Complete marks the batch as finished and calculates duration
func (r *BatchResult) Complete() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.TotalJobs = len(r.SuccessfulJobs) + len(r.FailedJobs)
}

// AddResult incorporates a job result into the batch result
func (r *BatchResult) AddResult(result Result) {
	if result.Success {
		r.SuccessfulJobs = append(r.SuccessfulJobs, result.Source)
		r.TotalRowsIn += result.RawRows
		r.TotalRowsOut += result.CleanRows
		r.TotalActions += result.MutatingActions()
	} else {
		if len(result.Errors) > 0 {
			r.FailedJobs[result.Source] = result.Errors[0].Err
		} else {
			r.FailedJobs[result.Source] = errUnknownFailure
		}
		for _, rec := range result.Errors {
			r.ErrorKinds[rec.Kind]++
		}
	}
}

// SuccessRate returns the percentage of jobs that succeeded
func (r *BatchResult) SuccessRate() float64 {
	if r.TotalJobs == 0 {
		return 0
	}
	return float64(len(r.SuccessfulJobs)) / float64(r.TotalJobs) * 100
}
