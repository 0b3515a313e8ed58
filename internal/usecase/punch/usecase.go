package punch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freee-timecard/internal/application/port/input"
	"freee-timecard/internal/application/port/output"
	"freee-timecard/internal/domain/entity"
	"freee-timecard/internal/usecase/finder"
)

var _ input.Puncher = (*UseCase)(nil)

var (
	ErrLoginLinkNotFound        = errors.New("login link not found")
	ErrCredentialInputsNotFound = errors.New("credential inputs not found")
	ErrActionButtonNotFound     = errors.New("action button not found")
)

const (
	StageLogin    = "login"
	StageDispatch = "dispatch"
)

// StageError carries the pipeline stage that failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type UseCase struct {
	page        output.PagePort
	site        entity.Site
	credential  entity.Credential
	logger      output.LoggerPort
	ui          output.UserInteractionPort
	diagnostics output.DiagnosticsPort
}

type Option func(*UseCase)

func WithUserInteraction(ui output.UserInteractionPort) Option {
	return func(uc *UseCase) { uc.ui = ui }
}

// WithDiagnostics enables page capture on failure.
func WithDiagnostics(d output.DiagnosticsPort) Option {
	return func(uc *UseCase) { uc.diagnostics = d }
}

func New(
	page output.PagePort,
	site entity.Site,
	credential entity.Credential,
	logger output.LoggerPort,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		page:       page,
		site:       site,
		credential: credential,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) Execute(ctx context.Context, action entity.Action) (*input.PunchResult, error) {
	log := uc.logger.WithField("action", action.String())

	uc.show(ctx, "Logging in", uc.site.EntryURL)
	if err := uc.stage(ctx, log, StageLogin, uc.Login); err != nil {
		return nil, err
	}

	label, _ := uc.site.Label(action)
	uc.show(ctx, "Pressing", label)
	dispatch := func(ctx context.Context) error {
		return uc.Dispatch(ctx, action)
	}
	if err := uc.stage(ctx, log, StageDispatch, dispatch); err != nil {
		return nil, err
	}

	return &input.PunchResult{
		Action:   action,
		FinalURL: uc.page.CurrentURL(),
	}, nil
}

func (uc *UseCase) stage(ctx context.Context, log output.LoggerPort, name string, fn func(context.Context) error) error {
	start := time.Now()
	log.Debug("Stage started", "stage", name)

	if err := fn(ctx); err != nil {
		log.Error("Stage failed", "stage", name, "error", err, "duration_ms", time.Since(start).Milliseconds())
		uc.capture(ctx, log, name)
		return &StageError{Stage: name, Err: err}
	}

	log.Info("Stage completed", "stage", name, "duration_ms", time.Since(start).Milliseconds(), "url", uc.page.CurrentURL())
	return nil
}

// Login opens the entry page, follows the login link and submits the credential.
func (uc *UseCase) Login(ctx context.Context) error {
	if err := uc.page.Navigate(ctx, uc.site.EntryURL); err != nil {
		return fmt.Errorf("open entry page: %w", err)
	}

	links, err := uc.page.Elements(ctx, uc.site.LoginLinkSelector)
	if err != nil {
		return fmt.Errorf("query login links: %w", err)
	}
	link, ok := finder.Find(ctx, uc.logger, links, uc.site.LoginLinkText)
	if !ok {
		uc.logger.Warn("Login link candidates", "texts", finder.Texts(ctx, links))
		return fmt.Errorf("%w: %q among %d candidates", ErrLoginLinkNotFound, uc.site.LoginLinkText, len(links))
	}
	if err := link.Click(ctx); err != nil {
		return fmt.Errorf("click login link: %w", err)
	}

	inputs, err := uc.page.WaitElements(ctx, uc.site.CredentialInputSelector, 2)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCredentialInputsNotFound, err)
	}
	if len(inputs) < 2 {
		return fmt.Errorf("%w: got %d inputs", ErrCredentialInputsNotFound, len(inputs))
	}

	uc.logger.Debug("Submitting credential", "email", uc.credential.MaskedEmail())

	if err := inputs[0].Click(ctx); err != nil {
		return fmt.Errorf("focus email input: %w", err)
	}
	if err := uc.page.InsertText(ctx, uc.credential.Email); err != nil {
		return fmt.Errorf("type email: %w", err)
	}
	if err := inputs[1].Click(ctx); err != nil {
		return fmt.Errorf("focus password input: %w", err)
	}
	if err := uc.page.InsertText(ctx, uc.credential.Password); err != nil {
		return fmt.Errorf("type password: %w", err)
	}
	if err := uc.page.PressEnter(ctx); err != nil {
		return fmt.Errorf("submit credential: %w", err)
	}
	return nil
}

// Dispatch clicks the navigation button for action and waits for the page it opens.
func (uc *UseCase) Dispatch(ctx context.Context, action entity.Action) error {
	label, err := uc.site.Label(action)
	if err != nil {
		return err
	}

	buttons, err := uc.page.WaitElements(ctx, uc.site.ActionButtonSelector, 1)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrActionButtonNotFound, err)
	}
	button, ok := finder.Find(ctx, uc.logger, buttons, label)
	if !ok {
		uc.logger.Warn("Action button candidates", "texts", finder.Texts(ctx, buttons))
		return fmt.Errorf("%w: %q among %d buttons", ErrActionButtonNotFound, label, len(buttons))
	}

	wait := uc.page.ExpectNavigation(ctx)
	if err := button.Click(ctx); err != nil {
		return fmt.Errorf("click %q: %w", label, err)
	}
	if err := wait(); err != nil {
		return fmt.Errorf("wait for navigation after %q: %w", label, err)
	}
	return nil
}

func (uc *UseCase) show(ctx context.Context, stage, detail string) {
	if uc.ui != nil {
		uc.ui.ShowStage(ctx, stage, detail)
	}
}

func (uc *UseCase) capture(ctx context.Context, log output.LoggerPort, stage string) {
	if uc.diagnostics == nil {
		return
	}
	// The run context may already be cancelled; capture on a fresh one.
	captureCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()
	if err := uc.diagnostics.Capture(captureCtx, uc.page, stage); err != nil {
		log.Warn("Diagnostics capture failed", "stage", stage, "error", err)
	}
}
