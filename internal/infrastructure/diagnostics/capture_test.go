package diagnostics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"freee-timecard/internal/infrastructure/browser/fixture"
	"freee-timecard/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedWriter(dir string) *Writer {
	w := NewWriter(dir, logger.NewNop())
	w.now = func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) }
	return w
}

func TestWriter_Capture(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "diag")
	page := fixture.NewPage(fixture.FreeePages())
	require.NoError(t, page.Navigate(ctx, fixture.HomeURL))

	require.NoError(t, fixedWriter(dir).Capture(ctx, page, "dispatch"))

	shot, err := os.ReadFile(filepath.Join(dir, "2026-04-01_09-00-00_dispatch.jpeg"))
	require.NoError(t, err)
	assert.NotEmpty(t, shot)

	snapshot, err := os.ReadFile(filepath.Join(dir, "2026-04-01_09-00-00_dispatch.html"))
	require.NoError(t, err)
	assert.Contains(t, string(snapshot), "global-navigation-body-block")
}

func TestWriter_Capture_PartialFailure(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	page := fixture.NewPage(fixture.FreeePages())
	require.NoError(t, page.Navigate(ctx, fixture.LoginURL))
	boom := errors.New("target closed")
	page.FailOn(fixture.OpScreenshot, boom)

	err := fixedWriter(dir).Capture(ctx, page, "login")
	assert.ErrorIs(t, err, boom)

	_, statErr := os.Stat(filepath.Join(dir, "2026-04-01_09-00-00_login.html"))
	assert.NoError(t, statErr, "html snapshot is still written")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "login", sanitize("login"))
	assert.Equal(t, "a_b", sanitize("a/b"))
	assert.Equal(t, "run", sanitize("///"))
}
