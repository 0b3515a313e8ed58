package output

import (
	"context"

	"freee-timecard/internal/domain/entity"
)

// PagePort is the single boundary between the punch flow and a browser tab.
type PagePort interface {
	Navigate(ctx context.Context, url string) error
	Elements(ctx context.Context, selector string) ([]ElementPort, error)
	// WaitElements blocks until at least min elements match selector.
	WaitElements(ctx context.Context, selector string, min int) ([]ElementPort, error)
	// ExpectNavigation must be called before the action that triggers the
	// navigation; the returned func blocks until it completes.
	ExpectNavigation(ctx context.Context) func() error
	InsertText(ctx context.Context, text string) error
	PressEnter(ctx context.Context) error

	Screenshot(ctx context.Context) (*entity.Screenshot, error)
	HTML(ctx context.Context) (string, error)

	CurrentURL() string
	Close()
}

type ElementPort interface {
	Text(ctx context.Context) (string, error)
	Click(ctx context.Context) error
}
