// Package logbuf keeps a bounded in-memory ring of recent log records so the
// frontend can poll diagnostics without access to server logs.
package logbuf

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gcn-backend/pkg/api"
)

const DefaultCapacity = 100

type Buffer struct {
	mu       sync.Mutex
	entries  []api.LogEntry // ring, oldest first
	capacity int
	nextId   uint64
}

func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{capacity: capacity, nextId: 1}
}

func (b *Buffer) Append(level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := api.LogEntry{
		Id:      b.nextId,
		Time:    time.Now().UTC(),
		Level:   level,
		Message: message,
	}
	b.nextId++

	b.entries = append(b.entries, entry)
	if len(b.entries) > b.capacity {
		b.entries = b.entries[len(b.entries)-b.capacity:]
	}
}

// Since returns entries with id greater than lastId, oldest first, along with
// the id the caller should poll from next.
func (b *Buffer) Since(lastId uint64) ([]api.LogEntry, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []api.LogEntry
	for _, e := range b.entries {
		if e.Id > lastId {
			out = append(out, e)
		}
	}
	return out, b.nextId - 1
}

// Handler tees slog records into a Buffer before passing them to the wrapped
// handler.
type Handler struct {
	inner slog.Handler
	buf   *Buffer
}

func NewHandler(inner slog.Handler, buf *Buffer) *Handler {
	return &Handler{inner: inner, buf: buf}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(" ")
		sb.WriteString(a.String())
		return true
	})
	h.buf.Append(r.Level.String(), sb.String())

	return h.inner.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs), buf: h.buf}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name), buf: h.buf}
}
