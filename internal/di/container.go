package di

import (
	"context"
	"fmt"
	"io"

	"freee-timecard/internal/application/port/input"
	"freee-timecard/internal/application/port/output"
	"freee-timecard/internal/domain/entity"
	"freee-timecard/internal/infrastructure/browser/rod"
	"freee-timecard/internal/infrastructure/config"
	"freee-timecard/internal/infrastructure/diagnostics"
	"freee-timecard/internal/infrastructure/logger"
	"freee-timecard/internal/infrastructure/userinteraction"
	"freee-timecard/internal/usecase/punch"
)

type Container struct {
	Page    output.PagePort
	Logger  output.LoggerPort
	UI      output.UserInteractionPort
	Puncher input.Puncher
}

// PageFactory opens the browser tab. Tests swap it for a fixture page.
type PageFactory func(ctx context.Context, cfg rod.BrowserConfig) (output.PagePort, error)

type Config struct {
	Settings config.Settings
	Env      *config.EnvService
	Headless bool
	Site     entity.Site

	Stdout io.Writer
	Stderr io.Writer

	NewPage PageFactory
}

func NewRodPage(ctx context.Context, cfg rod.BrowserConfig) (output.PagePort, error) {
	return rod.NewBrowserAdapter(ctx, cfg)
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Settings.LogLevel
	if cfg.Stderr != nil {
		logCfg.Output = cfg.Stderr
	}
	log, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrConfigLoad, err)
	}

	store := config.NewFileCredentialStore(cfg.Settings.CredentialPath, cfg.Env)
	cred, err := store.Load(ctx)
	if err != nil {
		log.Close()
		return nil, err
	}
	log.Debug("Credential loaded", "path", store.Path(), "email", cred.MaskedEmail())

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.Headless
	browserCfg.Timeout = cfg.Settings.Timeout
	browserCfg.SlowMotion = cfg.Settings.SlowMotion
	browserCfg.NoSandbox = cfg.Settings.NoSandbox

	newPage := cfg.NewPage
	if newPage == nil {
		newPage = NewRodPage
	}
	page, err := newPage(ctx, browserCfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}
	log.Debug("Browser ready", "headless", browserCfg.Headless, "timeout", browserCfg.Timeout)

	var ui *userinteraction.ConsoleUserInteraction
	if cfg.Stdout != nil || cfg.Stderr != nil {
		ui = userinteraction.NewConsoleUserInteractionWithWriters(writerOr(cfg.Stdout, io.Discard), writerOr(cfg.Stderr, io.Discard))
	} else {
		ui = userinteraction.NewConsoleUserInteraction()
	}

	site := cfg.Site
	if site.EntryURL == "" {
		site = entity.FreeeHR
	}

	opts := []punch.Option{punch.WithUserInteraction(ui)}
	if cfg.Settings.DiagnosticsDir != "" {
		opts = append(opts, punch.WithDiagnostics(diagnostics.NewWriter(cfg.Settings.DiagnosticsDir, log)))
	}

	return &Container{
		Page:    page,
		Logger:  log,
		UI:      ui,
		Puncher: punch.New(page, site, cred, log, opts...),
	}, nil
}

func (c *Container) Close() {
	if c.Page != nil {
		c.Page.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
