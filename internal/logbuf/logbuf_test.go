package logbuf

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferSince(t *testing.T) {
	buf := NewBuffer(10)
	buf.Append("INFO", "first")
	buf.Append("WARN", "second")
	buf.Append("ERROR", "third")

	entries, lastId := buf.Since(0)
	require.Len(t, entries, 3)
	assert.Equal(t, uint64(3), lastId)
	assert.Equal(t, "first", entries[0].Message)
	assert.Equal(t, "third", entries[2].Message)

	entries, lastId = buf.Since(2)
	require.Len(t, entries, 1)
	assert.Equal(t, "third", entries[0].Message)
	assert.Equal(t, uint64(3), lastId)

	entries, _ = buf.Since(3)
	assert.Empty(t, entries)
}

func TestBufferDropsOldestAtCapacity(t *testing.T) {
	buf := NewBuffer(5)
	for i := 1; i <= 8; i++ {
		buf.Append("INFO", fmt.Sprintf("msg %d", i))
	}

	entries, lastId := buf.Since(0)
	require.Len(t, entries, 5)
	assert.Equal(t, uint64(8), lastId)
	assert.Equal(t, "msg 4", entries[0].Message)
	assert.Equal(t, "msg 8", entries[4].Message)
}

func TestHandlerTeesRecords(t *testing.T) {
	buf := NewBuffer(10)
	logger := slog.New(NewHandler(slog.NewTextHandler(io.Discard, nil), buf))

	logger.Info("processing query", "chat_id", "abc")
	logger.Error("upstream failed")

	entries, _ := buf.Since(0)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Message, "processing query")
	assert.Contains(t, entries[0].Message, "chat_id=abc")
	assert.Equal(t, "ERROR", entries[1].Level)
}
