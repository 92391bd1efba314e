package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock handler to inspect log records
type mockHandler struct {
	mu      sync.Mutex
	records []slog.Record
	attrs   []slog.Attr
	group   string
	enabled bool
}

func (h *mockHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.enabled
}

func (h *mockHandler) Handle(ctx context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *mockHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	return &mockHandler{enabled: h.enabled, group: h.group, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *mockHandler) WithGroup(name string) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	g := name
	if h.group != "" {
		g = h.group + "." + name
	}
	return &mockHandler{enabled: h.enabled, group: g, attrs: h.attrs}
}

func (h *mockHandler) getRecords() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.records
}

func TestMultiHandler(t *testing.T) {
	h1 := &mockHandler{enabled: true}
	h2 := &mockHandler{enabled: false}
	multi := &multiHandler{handlers: []slog.Handler{h1, h2}}

	t.Run("Enabled", func(t *testing.T) {
		assert.True(t, multi.Enabled(context.Background(), slog.LevelInfo))
		off := &multiHandler{handlers: []slog.Handler{&mockHandler{}, &mockHandler{}}}
		assert.False(t, off.Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("Handle skips disabled handlers", func(t *testing.T) {
		record := slog.NewRecord(time.Now(), slog.LevelInfo, "test message", 0)
		require.NoError(t, multi.Handle(context.Background(), record))
		require.Len(t, h1.getRecords(), 1)
		assert.Empty(t, h2.getRecords())
		assert.Equal(t, "test message", h1.getRecords()[0].Message)
	})

	t.Run("WithAttrs", func(t *testing.T) {
		attrs := []slog.Attr{slog.String("key", "value")}
		newMulti, ok := multi.WithAttrs(attrs).(*multiHandler)
		require.True(t, ok, "WithAttrs should return a *multiHandler")
		for _, h := range newMulti.handlers {
			assert.Equal(t, attrs, h.(*mockHandler).attrs)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		newMulti, ok := multi.WithGroup("harness").(*multiHandler)
		require.True(t, ok, "WithGroup should return a *multiHandler")
		for _, h := range newMulti.handlers {
			assert.Equal(t, "harness", h.(*mockHandler).group)
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Debug level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, closer := NewLogger(&buf, true, "")
		defer closer.Close()

		logger.Debug("debug message")
		assert.Contains(t, buf.String(), "debug message")
	})

	t.Run("Info level drops debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger, _ := NewLogger(&buf, false, "")
		logger.Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("Writer and file", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "perfexp.log")
		logger, closer := NewLogger(&buf, false, path)

		logger.Info("both sinks", "case", "Dispatch/N=100/Virtual")
		require.NoError(t, closer.Close())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "both sinks")
		assert.Contains(t, buf.String(), "Dispatch/N=100/Virtual")
	})

	t.Run("No sinks", func(t *testing.T) {
		logger, closer := NewLogger(nil, false, "")
		assert.NotNil(t, logger)
		logger.Info("discarded")
		assert.NoError(t, closer.Close())
	})
}

func TestNewLogger_FileError(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	invalidPath := filepath.Join(t.TempDir(), "nonexistent", "test.log")
	logger, _ := NewLogger(nil, false, invalidPath)
	assert.NotNil(t, logger)
	assert.Contains(t, buf.String(), "Failed to open log file")
}

func TestLogHelpers(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	LogInfof("hello, %s", "world")

	var logOutput map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logOutput))
	assert.Equal(t, "hello, world", logOutput["msg"])
	assert.Equal(t, "INFO", logOutput["level"])

	buf.Reset()
	Component("runner").Info("tagged")
	assert.Contains(t, buf.String(), `"component":"runner"`)

	buf.Reset()
	LogError("failed", assert.AnError, "group", "KeyedLookup")
	assert.Contains(t, buf.String(), `"group":"KeyedLookup"`)
	assert.Contains(t, buf.String(), `"error"`)
}
