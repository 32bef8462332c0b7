package pipeline

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"datagroom/pkg/cleaner"
)

// Metrics tracks aggregate counters for a cleaning run
type Metrics struct {
	mu                sync.Mutex
	logger            *zap.Logger
	StartTime         time.Time
	EndTime           time.Time
	JobsProcessed     int
	JobsSucceeded     int
	JobsFailed        int
	TotalRowsIn       int64
	TotalRowsOut      int64
	CellsFilled       int64
	DuplicatesRemoved int64
	OutliersCapped    int64
	ColumnsDropped    int64
	ColumnsRenamed    int64
	ErrorCounts       map[ErrorKind]int
	WorkerUtilization map[int]time.Duration
}

// NewMetrics creates a new Metrics instance
func NewMetrics(logger *zap.Logger) *Metrics {
	return &Metrics{
		StartTime:         time.Now(),
		ErrorCounts:       make(map[ErrorKind]int),
		WorkerUtilization: make(map[int]time.Duration),
		logger:            logger,
	}
}

// RecordJob records counters for a completed cleaning job
func (m *Metrics) RecordJob(result Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.JobsProcessed++
	if result.Success {
		m.JobsSucceeded++
	} else {
		m.JobsFailed++
	}

	m.TotalRowsIn += int64(result.RawRows)
	m.TotalRowsOut += int64(result.CleanRows)

	for _, action := range result.Actions {
		switch action.Kind {
		case cleaner.ActionNormalize:
			m.ColumnsRenamed += int64(action.Count)
		case cleaner.ActionDropColumn:
			m.ColumnsDropped += int64(action.Count)
		case cleaner.ActionFillMissing:
			m.CellsFilled += int64(action.Count)
		case cleaner.ActionDropDuplicates:
			m.DuplicatesRemoved += int64(action.Count)
		case cleaner.ActionCapOutliers:
			m.OutliersCapped += int64(action.Count)
		}
	}

	for _, rec := range result.Errors {
		m.ErrorCounts[rec.Kind]++
	}

	m.WorkerUtilization[result.WorkerID] += result.Duration

	if m.logger != nil {
		m.logger.Info("Job completed",
			zap.String("source", result.Source),
			zap.Bool("success", result.Success),
			zap.Int("rawRows", result.RawRows),
			zap.Int("cleanRows", result.CleanRows),
			zap.Int("actions", len(result.Actions)),
			zap.Duration("duration", result.Duration),
			zap.Int("worker", result.WorkerID))
	}
}

// Complete marks the run as complete
func (m *Metrics) Complete() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EndTime = time.Now()

	if m.logger != nil {
		m.logger.Info("Cleaning run completed",
			zap.Duration("totalDuration", m.Duration()),
			zap.Int("jobsProcessed", m.JobsProcessed),
			zap.Int("jobsSucceeded", m.JobsSucceeded),
			zap.Int("jobsFailed", m.JobsFailed),
			zap.Int64("rowsIn", m.TotalRowsIn),
			zap.Int64("rowsOut", m.TotalRowsOut),
			zap.Float64("throughput", m.Throughput()))
	}
}

// Duration returns the total duration of the run
func (m *Metrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// Throughput calculates the rows/second rate over the whole run
func (m *Metrics) Throughput() float64 {
	duration := m.Duration().Seconds()
	if duration <= 0 {
		return 0
	}
	return float64(m.TotalRowsIn) / duration
}

// WorkerEfficiency calculates the share of the run each worker spent busy
func (m *Metrics) WorkerEfficiency() map[int]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.workerEfficiency()
}

// workerEfficiency is the unlocked variant for use inside locked methods
func (m *Metrics) workerEfficiency() map[int]float64 {
	efficiency := make(map[int]float64)
	totalDuration := m.Duration()

	if totalDuration <= 0 {
		return efficiency
	}

	for workerID, duration := range m.WorkerUtilization {
		efficiency[workerID] = float64(duration) / float64(totalDuration)
	}

	return efficiency
}

// ErrorDistribution returns the percentage of errors per kind
func (m *Metrics) ErrorDistribution() map[ErrorKind]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.errorDistribution()
}

// errorDistribution is the unlocked variant for use inside locked methods
func (m *Metrics) errorDistribution() map[ErrorKind]float64 {
	distribution := make(map[ErrorKind]float64)
	totalErrors := 0

	for _, count := range m.ErrorCounts {
		totalErrors += count
	}

	if totalErrors == 0 {
		return distribution
	}

	for kind, count := range m.ErrorCounts {
		distribution[kind] = float64(count) / float64(totalErrors) * 100
	}

	return distribution
}

// formatDuration formats a duration to a human-readable string
func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// Report creates a detailed metrics report
func (m *Metrics) Report() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	endTime := m.EndTime
	if endTime.IsZero() {
		endTime = time.Now()
	}

	report := fmt.Sprintf(`
Cleaning Metrics Report
=======================
Duration:                %s
Start Time:              %s
End Time:                %s

Jobs Summary
------------
Total Jobs:              %d
Successful Jobs:         %d (%.1f%%)
Failed Jobs:             %d (%.1f%%)

Data Summary
------------
Total Rows In:           %d
Total Rows Out:          %d
Cells Filled:            %d
Duplicate Rows Removed:  %d
Outliers Capped:         %d
Columns Dropped:         %d
Columns Renamed:         %d
Average Throughput:      %.2f rows/sec
`,
		formatDuration(m.Duration()),
		m.StartTime.Format(time.RFC3339),
		endTime.Format(time.RFC3339),

		m.JobsProcessed,
		m.JobsSucceeded, m.getPercentage(float64(m.JobsSucceeded), float64(m.JobsProcessed)),
		m.JobsFailed, m.getPercentage(float64(m.JobsFailed), float64(m.JobsProcessed)),

		m.TotalRowsIn,
		m.TotalRowsOut,
		m.CellsFilled,
		m.DuplicatesRemoved,
		m.OutliersCapped,
		m.ColumnsDropped,
		m.ColumnsRenamed,
		m.Throughput(),
	)

	if len(m.ErrorCounts) > 0 {
		report += "\nError Distribution\n------------------\n"
		distribution := m.errorDistribution()
		for kind, count := range m.ErrorCounts {
			report += fmt.Sprintf("- %s: %d (%.1f%%)\n", kind.String(), count, distribution[kind])
		}
	}

	report += "\nWorker Efficiency\n-----------------\n"
	for workerID, eff := range m.workerEfficiency() {
		report += fmt.Sprintf("- Worker %d: %.1f%% active time\n", workerID, eff*100)
	}

	return report
}

// getPercentage safely calculates a percentage, avoiding division by zero
func (m *Metrics) getPercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}

// ToJSON serializes metrics to JSON
func (m *Metrics) ToJSON() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return json.Marshal(struct {
		Duration          string                `json:"duration"`
		JobsProcessed     int                   `json:"jobsProcessed"`
		JobsSucceeded     int                   `json:"jobsSucceeded"`
		JobsFailed        int                   `json:"jobsFailed"`
		TotalRowsIn       int64                 `json:"totalRowsIn"`
		TotalRowsOut      int64                 `json:"totalRowsOut"`
		CellsFilled       int64                 `json:"cellsFilled"`
		DuplicatesRemoved int64                 `json:"duplicatesRemoved"`
		OutliersCapped    int64                 `json:"outliersCapped"`
		ColumnsDropped    int64                 `json:"columnsDropped"`
		ColumnsRenamed    int64                 `json:"columnsRenamed"`
		Throughput        float64               `json:"throughput"`
		ErrorDistribution map[ErrorKind]float64 `json:"errorDistribution"`
	}{
		Duration:          formatDuration(m.Duration()),
		JobsProcessed:     m.JobsProcessed,
		JobsSucceeded:     m.JobsSucceeded,
		JobsFailed:        m.JobsFailed,
		TotalRowsIn:       m.TotalRowsIn,
		TotalRowsOut:      m.TotalRowsOut,
		CellsFilled:       m.CellsFilled,
		DuplicatesRemoved: m.DuplicatesRemoved,
		OutliersCapped:    m.OutliersCapped,
		ColumnsDropped:    m.ColumnsDropped,
		ColumnsRenamed:    m.ColumnsRenamed,
		Throughput:        m.Throughput(),
		ErrorDistribution: m.errorDistribution(),
	})
}
