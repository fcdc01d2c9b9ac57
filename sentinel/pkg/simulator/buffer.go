package simulator

import "github.com/telhawk-systems/minisentinel/sentinel/pkg/models"

// logBuffer is a fixed-capacity ring that evicts its oldest record on overflow.
type logBuffer struct {
	items []models.LogRecord
	head  int // index of the next write
	size  int
}

func newLogBuffer(capacity int) *logBuffer {
	return &logBuffer{items: make([]models.LogRecord, capacity)}
}

// push inserts rec as the newest record and reports whether a record was evicted.
// With zero capacity every pushed record is evicted immediately.
func (b *logBuffer) push(rec models.LogRecord) bool {
	if len(b.items) == 0 {
		return true
	}
	b.items[b.head] = rec
	b.head = (b.head + 1) % len(b.items)
	if b.size == len(b.items) {
		return true
	}
	b.size++
	return false
}

func (b *logBuffer) len() int {
	return b.size
}

// reset drops every record.
func (b *logBuffer) reset() {
	clear(b.items)
	b.head = 0
	b.size = 0
}

// snapshot returns the records newest first.
func (b *logBuffer) snapshot() []models.LogRecord {
	out := make([]models.LogRecord, b.size)
	for i := 0; i < b.size; i++ {
		idx := (b.head - 1 - i + len(b.items)) % len(b.items)
		out[i] = b.items[idx]
	}
	return out
}
