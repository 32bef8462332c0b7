package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var errUnknownFailure = errors.New("unknown failure")

// ErrorKind identifies the pipeline stage an error belongs to
type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	// ErrorKindSource covers loading: open, connect, parse
	ErrorKindSource
	// ErrorKindClean covers the cleaning stages
	ErrorKindClean
	// ErrorKindVerify covers post-clean invariant checks
	ErrorKindVerify
	// ErrorKindExport covers writing outputs
	ErrorKindExport
	// ErrorKindSystem covers cancellation and resource failures
	ErrorKindSystem
)

// String returns a string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "None"
	case ErrorKindSource:
		return "Source"
	case ErrorKindClean:
		return "Clean"
	case ErrorKindVerify:
		return "Verify"
	case ErrorKindExport:
		return "Export"
	case ErrorKindSystem:
		return "System"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// MarshalText renders the kind by name so JSON maps keyed on it stay readable
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ErrorRecord represents a single error during a pipeline run
type ErrorRecord struct {
	Kind        ErrorKind
	Source      string
	Err         error
	Message     string // Derived from Err but stored for serialization
	Timestamp   time.Time
	RetryCount  int
	Recoverable bool
}

// NewErrorRecord creates a new error record with current timestamp
func NewErrorRecord(err error, kind ErrorKind) ErrorRecord {
	record := ErrorRecord{
		Kind:        kind,
		Err:         err,
		Timestamp:   time.Now(),
		Recoverable: kind == ErrorKindSource && IsRetryable(err),
	}

	if err != nil {
		record.Message = err.Error()
	}

	return record
}

// WithSource adds the originating source to the error record
func (r ErrorRecord) WithSource(source string) ErrorRecord {
	r.Source = source
	return r
}

// WithRetry sets retry information
func (r ErrorRecord) WithRetry(retryCount int) ErrorRecord {
	r.RetryCount = retryCount
	return r
}

// String returns a formatted error message
func (r ErrorRecord) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] ", r.Kind))

	if r.Source != "" {
		sb.WriteString(fmt.Sprintf("Source: %s ", r.Source))
	}

	sb.WriteString(fmt.Sprintf("Error: %s", r.Message))

	if r.RetryCount > 0 {
		sb.WriteString(fmt.Sprintf(" (Retry: %d)", r.RetryCount))
	}

	return sb.String()
}

// IsRetryable checks if an error is worth retrying based on its message
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "connection") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "temporary") ||
		strings.Contains(msg, "try again")
}

// ErrorHandler tracks errors across a batch run
type ErrorHandler struct {
	logger       *zap.Logger
	thresholds   map[ErrorKind]int
	counts       map[ErrorKind]int
	samples      map[ErrorKind][]ErrorRecord
	sourceErrors map[string]int
	mu           sync.Mutex
	maxSamples   int
}

// NewErrorHandler creates a new error handler with default thresholds
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
		thresholds: map[ErrorKind]int{
			ErrorKindSource: 10,
			ErrorKindClean:  5,
			ErrorKindVerify: 20,
			ErrorKindExport: 10,
			ErrorKindSystem: 1,
		},
		counts:       make(map[ErrorKind]int),
		samples:      make(map[ErrorKind][]ErrorRecord),
		sourceErrors: make(map[string]int),
		maxSamples:   5,
	}
}

// Record saves an error occurrence
func (eh *ErrorHandler) Record(record ErrorRecord) {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	eh.counts[record.Kind]++

	samples := eh.samples[record.Kind]
	if len(samples) < eh.maxSamples {
		eh.samples[record.Kind] = append(samples, record)
	}

	if record.Source != "" {
		eh.sourceErrors[record.Source]++
	}

	if eh.logger != nil {
		level := zap.WarnLevel
		if record.Kind == ErrorKindSystem {
			level = zap.ErrorLevel
		}
		eh.logger.Log(level, "Pipeline error",
			zap.String("kind", record.Kind.String()),
			zap.String("source", record.Source),
			zap.String("error", record.Message),
			zap.Bool("recoverable", record.Recoverable),
			zap.Int("retryCount", record.RetryCount))
	}
}

// Counts returns a copy of the error counts per kind
func (eh *ErrorHandler) Counts() map[ErrorKind]int {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	counts := make(map[ErrorKind]int)
	for kind, count := range eh.counts {
		counts[kind] = count
	}
	return counts
}

// Samples returns sample errors for each kind
func (eh *ErrorHandler) Samples() map[ErrorKind][]ErrorRecord {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	samples := make(map[ErrorKind][]ErrorRecord)
	for kind, records := range eh.samples {
		kindSamples := make([]ErrorRecord, len(records))
		copy(kindSamples, records)
		samples[kind] = kindSamples
	}
	return samples
}

// SourceErrorCounts returns error counts by source
func (eh *ErrorHandler) SourceErrorCounts() map[string]int {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	counts := make(map[string]int)
	for source, count := range eh.sourceErrors {
		counts[source] = count
	}
	return counts
}

// ThresholdExceeded checks if any error kind has passed its threshold
func (eh *ErrorHandler) ThresholdExceeded() bool {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	for kind, count := range eh.counts {
		threshold, exists := eh.thresholds[kind]
		if exists && count > threshold {
			if eh.logger != nil {
				eh.logger.Warn("Error threshold exceeded",
					zap.String("kind", kind.String()),
					zap.Int("count", count),
					zap.Int("threshold", threshold))
			}
			return true
		}
	}
	return false
}
