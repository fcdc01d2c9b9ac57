package simulator

import "github.com/telhawk-systems/minisentinel/sentinel/pkg/models"

// Sink observes simulator mutations. Methods are called after the mutation
// has been applied, outside the simulator lock, on the goroutine that caused it.
type Sink interface {
	Initialized(logCount, alertCount int)
	LogAdded(log models.LogRecord, bufferLen int, evicted bool)
	AlertAdded(alert models.AlertRecord)
	AlertUpdated(alert models.AlertRecord, from models.AlertStatus)
}

// NopSink ignores every notification. Embed it to implement a subset of Sink.
type NopSink struct{}

func (NopSink) Initialized(int, int)                                {}
func (NopSink) LogAdded(models.LogRecord, int, bool)                {}
func (NopSink) AlertAdded(models.AlertRecord)                       {}
func (NopSink) AlertUpdated(models.AlertRecord, models.AlertStatus) {}
