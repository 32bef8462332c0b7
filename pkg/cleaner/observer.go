// pkg/cleaner/observer.go
package cleaner

import "go.uber.org/zap"

// Observer receives each action record at the moment it is appended to
// the cleaning log. Implementations must not block; the pipeline is
// synchronous.
type Observer interface {
	OnAction(Action)
}

// LogObserver echoes action records through a zap logger.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an observer writing to the given logger, falling
// back to the global logger when nil.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	if logger == nil {
		logger = zap.L()
	}
	return &LogObserver{logger: logger.Named("cleaning")}
}

// OnAction logs one action record.
func (o *LogObserver) OnAction(a Action) {
	o.logger.Info(a.Message,
		zap.String("kind", a.Kind.String()),
		zap.String("column", a.Column),
		zap.Int("count", a.Count))
}
