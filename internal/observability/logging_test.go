package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	assert.Equal(t, "req-123", RequestID(ctx))
	assert.Equal(t, "req-123", GetContext(ctx).RequestID)
}

func TestRequestIDMissing(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
}

func TestMultipleContextValues(t *testing.T) {
	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithPath(ctx, "post.md")
	ctx = WithStage(ctx, "lookup")

	lc := GetContext(ctx)
	assert.Equal(t, LogContext{RequestID: "req-1", Path: "post.md", Stage: "lookup"}, lc)
}

func TestDebugContextMergesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := WithPath(WithRequestID(context.Background(), "req-9"), "a.md")
	DebugContext(ctx, logger, "looking up", slog.String("title", "Hello"))

	out := buf.String()
	require.Contains(t, out, "msg=\"looking up\"")
	assert.Contains(t, out, "request_id=req-9")
	assert.Contains(t, out, "path=a.md")
	assert.Contains(t, out, "title=Hello")
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	DebugContext(context.Background(), logger, "hidden")
	InfoContext(context.Background(), logger, "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
