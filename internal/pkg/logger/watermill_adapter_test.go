package logger

import (
	"errors"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	level   string
	module  string
	message string
	details map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (r *recordingLogger) add(level, module, message string, details map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry{level: level, module: module, message: message, details: details})
}

func (r *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	r.add("debug", module, message, details)
}

func (r *recordingLogger) Info(module, message string, details map[string]interface{}) {
	r.add("info", module, message, details)
}

func (r *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	r.add("warn", module, message, details)
}

func (r *recordingLogger) Error(module, message string, details map[string]interface{}) {
	r.add("error", module, message, details)
}

func (r *recordingLogger) Sync() error { return nil }

func TestWatermillAdapter(t *testing.T) {
	rec := &recordingLogger{}
	var adapter watermill.LoggerAdapter = NewWatermillAdapter(rec)

	scoped := adapter.With(watermill.LogFields{"topic": "exchange.completed"})
	scoped.Info("Subscribing", watermill.LogFields{"pubsub_uuid": "p1"})
	scoped.Trace("Sending", nil)
	scoped.Error("Publish failed", errors.New("closed"), watermill.LogFields{"topic": "override"})
	adapter.Debug("Unscoped", nil)

	require.Len(t, rec.entries, 4)

	assert.Equal(t, "info", rec.entries[0].level)
	assert.Equal(t, "EVENTBUS", rec.entries[0].module)
	assert.Equal(t, "exchange.completed", rec.entries[0].details["topic"])
	assert.Equal(t, "p1", rec.entries[0].details["pubsub_uuid"])

	assert.Equal(t, "debug", rec.entries[1].level)

	assert.Equal(t, "error", rec.entries[2].level)
	assert.Equal(t, "closed", rec.entries[2].details["error"])
	assert.Equal(t, "override", rec.entries[2].details["topic"])

	assert.NotContains(t, rec.entries[3].details, "topic")
}
