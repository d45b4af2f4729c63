package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockLoggerRecordsEntries(t *testing.T) {
	m := &MockLogger{}

	m.Info("started", Field{Key: FieldCount, Value: 3})
	m.Warn("something odd")

	assert.Len(t, m.Entries, 2)
	assert.True(t, m.HasEntry("INFO", "started"))
	assert.True(t, m.HasEntry("WARN", "something odd"))
	assert.False(t, m.HasEntry("ERROR", "started"))
	assert.Equal(t, FieldCount, m.Entries[0].Fields[0].Key)
}

func TestMockLoggerWithErrorAttachesError(t *testing.T) {
	m := &MockLogger{}
	err := errors.New("boom")

	child := m.WithError(err).(*MockLogger)
	child.Error("failed")

	assert.Len(t, child.Entries, 1)
	assert.Equal(t, err, child.Entries[0].Error)
}

func TestNewLogrusAdapter(t *testing.T) {
	logger := NewLogrusAdapter("debug", "json")
	assert.NotNil(t, logger)

	// An invalid level falls back to info instead of failing.
	logger = NewLogrusAdapter("bogus", "text")
	assert.NotNil(t, logger)

	logger.WithField("k", "v").Info("message")
}
