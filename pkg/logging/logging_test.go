package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelInfo)

	ctx := AppendCtx(context.Background(), slog.String("channel", "DAPI"))
	ctx = AppendCtx(ctx, slog.Int("plane", 3))
	log.InfoContext(ctx, "rendered")
	log.DebugContext(ctx, "hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "rendered", rec["msg"])
	assert.Equal(t, "DAPI", rec["channel"])
	assert.Equal(t, float64(3), rec["plane"])
}

func TestLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelDebug).With("app", "quantctl")
	log.DebugContext(AppendCtx(context.Background(), slog.Group("lut", slog.Int("entries", 256))), "built")
	assert.Contains(t, buf.String(), "app=quantctl")
	assert.Contains(t, buf.String(), "lut.entries=256")
}

func TestRotatingWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quantctl.log")
	w := RotatingWriter(path, 1, 1)
	log := Logger(w, false, slog.LevelInfo)
	log.Info("hello")
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
}
