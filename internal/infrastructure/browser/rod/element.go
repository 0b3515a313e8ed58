package rod

import (
	"context"
	"fmt"
	"time"

	"freee-timecard/internal/application/port/output"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

var _ output.ElementPort = (*element)(nil)

type element struct {
	el      *rod.Element
	timeout time.Duration
}

func (e *element) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Timeout(e.timeout).Text()
}

func (e *element) Click(ctx context.Context) error {
	if err := e.el.Context(ctx).Timeout(e.timeout).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}
