package simulator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

func rec(id string) models.LogRecord {
	return models.LogRecord{ID: id}
}

func ids(logs []models.LogRecord) []string {
	out := make([]string, len(logs))
	for i, l := range logs {
		out[i] = l.ID
	}
	return out
}

func TestLogBuffer_NewestFirst(t *testing.T) {
	b := newLogBuffer(3)
	assert.False(t, b.push(rec("a")))
	assert.False(t, b.push(rec("b")))
	assert.Equal(t, []string{"b", "a"}, ids(b.snapshot()))
}

func TestLogBuffer_EvictsOldest(t *testing.T) {
	b := newLogBuffer(3)
	for i := 0; i < 3; i++ {
		assert.False(t, b.push(rec(fmt.Sprint(i))))
	}
	assert.True(t, b.push(rec("3")))
	assert.True(t, b.push(rec("4")))
	assert.Equal(t, 3, b.len())
	assert.Equal(t, []string{"4", "3", "2"}, ids(b.snapshot()))
}

func TestLogBuffer_ZeroCapacity(t *testing.T) {
	b := newLogBuffer(0)
	assert.True(t, b.push(rec("a")))
	assert.Equal(t, 0, b.len())
	assert.Empty(t, b.snapshot())
}

func TestLogBuffer_Reset(t *testing.T) {
	b := newLogBuffer(2)
	b.push(rec("a"))
	b.push(rec("b"))
	b.reset()
	assert.Equal(t, 0, b.len())
	b.push(rec("c"))
	assert.Equal(t, []string{"c"}, ids(b.snapshot()))
}
