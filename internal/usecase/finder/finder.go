// Package finder matches page elements by their visible text.
package finder

import (
	"context"
	"strings"

	"freee-timecard/internal/application/port/output"
)

// Find returns the first element whose visible text contains text.
// Elements whose text cannot be read never match; the failure is logged so
// that markup regressions on the target site stay visible.
func Find(ctx context.Context, log output.LoggerPort, elements []output.ElementPort, text string) (output.ElementPort, bool) {
	for i, el := range elements {
		got, err := el.Text(ctx)
		if err != nil {
			if log != nil {
				log.Warn("Element text unavailable", "index", i, "want", text, "error", err)
			}
			continue
		}
		if strings.Contains(got, text) {
			return el, true
		}
	}
	return nil, false
}

// Texts returns the readable text of each element, trimmed, for diagnostics.
// Unreadable elements are reported as "?".
func Texts(ctx context.Context, elements []output.ElementPort) []string {
	texts := make([]string, 0, len(elements))
	for _, el := range elements {
		t, err := el.Text(ctx)
		if err != nil {
			texts = append(texts, "?")
			continue
		}
		texts = append(texts, strings.TrimSpace(t))
	}
	return texts
}
