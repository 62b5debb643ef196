package lottie

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gg-lottie/model"
)

// captureLogs installs a debug text logger and restores the previous one
// when the test ends.
func captureLogs(t *testing.T) (*bytes.Buffer, *slog.Logger) {
	t.Helper()
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &buf, l
}

func TestLoggerSilentByDefault(t *testing.T) {
	ctx := context.Background()
	require.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(ctx, slog.LevelError))
}

func TestSetLoggerReachesLoader(t *testing.T) {
	buf, l := captureLogs(t)
	SetLogger(l)
	assert.Same(t, l, Logger())

	_, err := LoadComposition(document(shapeLayer(`{}`, redRect)))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "composition loaded")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestWithLoggerOption(t *testing.T) {
	buf, l := captureLogs(t)
	comp, err := model.Parse(document(shapeLayer(`{}`, redRect)))
	require.NoError(t, err)

	d, err := NewDrawable(comp, WithLogger(l))
	require.NoError(t, err)
	defer d.Close()

	assert.Same(t, l, Logger())
	assert.Contains(t, buf.String(), "composition set")
}

func TestLoggerSwapRace(t *testing.T) {
	_, l := captureLogs(t)
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(2)
		go func() { defer wg.Done(); SetLogger(l) }()
		go func() { defer wg.Done(); Logger().Debug("race") }()
	}
	wg.Wait()
}
