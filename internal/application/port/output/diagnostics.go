package output

import "context"

// DiagnosticsPort records the page state when a run fails.
type DiagnosticsPort interface {
	Capture(ctx context.Context, page PagePort, stage string) error
}
