// Package diagnostics saves a screenshot and an HTML snapshot of the page
// when a punch run fails.
package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"freee-timecard/internal/application/port/output"
)

var _ output.DiagnosticsPort = (*Writer)(nil)

type Writer struct {
	dir    string
	logger output.LoggerPort
	now    func() time.Time
}

func NewWriter(dir string, logger output.LoggerPort) *Writer {
	return &Writer{dir: dir, logger: logger, now: time.Now}
}

// Capture writes <timestamp>_<stage>.jpg and .html into the writer's dir.
// Both artifacts are attempted; the joined error reports what failed.
func (w *Writer) Capture(ctx context.Context, page output.PagePort, stage string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create diagnostics dir: %w", err)
	}

	base := filepath.Join(w.dir, fmt.Sprintf("%s_%s", w.now().Format("2006-01-02_15-04-05"), sanitize(stage)))
	var errs []error

	if shot, err := page.Screenshot(ctx); err != nil {
		errs = append(errs, fmt.Errorf("screenshot: %w", err))
	} else if err := os.WriteFile(base+"."+shot.Format, shot.Data, 0o644); err != nil {
		errs = append(errs, fmt.Errorf("write screenshot: %w", err))
	} else {
		w.logger.Info("Saved failure screenshot", "path", base+"."+shot.Format)
	}

	if raw, err := page.HTML(ctx); err != nil {
		errs = append(errs, fmt.Errorf("html: %w", err))
	} else if cleaned, err := CleanHTML(raw, nil); err != nil {
		errs = append(errs, err)
	} else if err := os.WriteFile(base+".html", []byte(cleaned), 0o600); err != nil {
		errs = append(errs, fmt.Errorf("write html: %w", err))
	} else {
		w.logger.Info("Saved failure snapshot", "path", base+".html", "url", page.CurrentURL())
	}

	return errors.Join(errs...)
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, "_")
	if s == "" {
		return "run"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
