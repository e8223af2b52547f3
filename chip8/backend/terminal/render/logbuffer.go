package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogEntry is a single captured log record.
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// LogBuffer is a thread-safe ring of the most recent log entries.
type LogBuffer struct {
	mutex   sync.RWMutex
	entries []LogEntry
	next    int
	count   int
}

func NewLogBuffer(size int) *LogBuffer {
	if size < 1 {
		size = 1
	}
	return &LogBuffer{entries: make([]LogEntry, size)}
}

// Add stores an entry, overwriting the oldest when full.
func (lb *LogBuffer) Add(entry LogEntry) {
	lb.mutex.Lock()
	defer lb.mutex.Unlock()

	lb.entries[lb.next] = entry
	lb.next = (lb.next + 1) % len(lb.entries)
	if lb.count < len(lb.entries) {
		lb.count++
	}
}

// GetRecent returns up to maxCount entries, newest first. A maxCount of
// zero or less returns everything held.
func (lb *LogBuffer) GetRecent(maxCount int) []LogEntry {
	lb.mutex.RLock()
	defer lb.mutex.RUnlock()

	if lb.count == 0 {
		return nil
	}

	count := lb.count
	if maxCount > 0 && maxCount < count {
		count = maxCount
	}

	size := len(lb.entries)
	result := make([]LogEntry, count)
	for i := range result {
		result[i] = lb.entries[(lb.next-1-i+size)%size]
	}
	return result
}

func (lb *LogBuffer) Len() int {
	lb.mutex.RLock()
	defer lb.mutex.RUnlock()
	return lb.count
}

func (lb *LogBuffer) Clear() {
	lb.mutex.Lock()
	defer lb.mutex.Unlock()
	lb.count = 0
	lb.next = 0
}

// LogBufferHandler is a slog.Handler that captures records into a LogBuffer
// so the terminal can show them in its log panel.
type LogBufferHandler struct {
	buffer *LogBuffer
	level  slog.Leveler
	prefix string
	attrs  []slog.Attr
}

// NewLogBufferHandler creates a handler writing to buffer. Passing a
// *slog.LevelVar allows changing the level at runtime.
func NewLogBufferHandler(buffer *LogBuffer, level slog.Leveler) *LogBufferHandler {
	return &LogBufferHandler{buffer: buffer, level: level}
}

func (h *LogBufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *LogBufferHandler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(record.Message)

	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}
	record.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})

	h.buffer.Add(LogEntry{
		Time:    record.Time,
		Level:   record.Level,
		Message: sb.String(),
	})
	return nil
}

func (h *LogBufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		// groups opened later don't apply to attrs already bound
		a.Key = h.prefix + a.Key
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *LogBufferHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	fmt.Fprintf(sb, " %s%s=%v", prefix, a.Key, a.Value)
}

// FormatLogEntry formats a log entry for display
func FormatLogEntry(entry LogEntry) string {
	levelStr := "???"
	switch entry.Level {
	case slog.LevelDebug:
		levelStr = "DBG"
	case slog.LevelInfo:
		levelStr = "INF"
	case slog.LevelWarn:
		levelStr = "WRN"
	case slog.LevelError:
		levelStr = "ERR"
	}

	return fmt.Sprintf("%s [%s] %s", entry.Time.Format("15:04:05"), levelStr, entry.Message)
}
