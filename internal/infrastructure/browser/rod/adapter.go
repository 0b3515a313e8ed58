package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/url"
	"strings"
	"time"

	"freee-timecard/internal/application/port/output"
	"freee-timecard/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.PagePort = (*BrowserAdapter)(nil)

var (
	ErrBrowserLaunch   = errors.New("failed to launch browser")
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidSelector = errors.New("invalid selector")
	ErrBrowserClosed   = errors.New("browser closed")
)

const (
	defaultTimeout    = 30 * time.Second
	defaultWindowSize = "2048,2048"
	maxScreenshotW    = 1024
)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	closed   bool
}

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	NoSandbox  bool
	Trace      bool
	// Bin is the browser executable. Empty means a locally installed
	// Chrome/Chromium, falling back to rod's managed download.
	Bin        string
	WindowSize string
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   true,
		Timeout:    defaultTimeout,
		WindowSize: defaultWindowSize,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.WindowSize == "" {
		cfg.WindowSize = defaultWindowSize
	}

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Set("window-size", cfg.WindowSize).
		Delete("use-mock-keychain")

	bin := cfg.Bin
	if bin == "" {
		if path, ok := launcher.LookPath(); ok {
			bin = path
		}
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBrowserLaunch, err)
	}

	browser := rod.New().
		Context(ctx).
		ControlURL(controlURL).
		Trace(cfg.Trace).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: connect: %w", ErrBrowserLaunch, err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: open page: %w", ErrBrowserLaunch, err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

func (b *BrowserAdapter) IsReady() bool {
	return !b.closed && b.page != nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}
	if !b.IsReady() {
		return ErrBrowserClosed
	}

	p := b.page.Context(ctx).Timeout(b.timeout)
	if err := p.Navigate(rawURL); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) Elements(ctx context.Context, selector string) ([]output.ElementPort, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, ErrInvalidSelector
	}
	if !b.IsReady() {
		return nil, ErrBrowserClosed
	}

	els, err := b.page.Context(ctx).Timeout(b.timeout).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	return b.wrap(els), nil
}

func (b *BrowserAdapter) WaitElements(ctx context.Context, selector string, min int) ([]output.ElementPort, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, ErrInvalidSelector
	}
	if !b.IsReady() {
		return nil, ErrBrowserClosed
	}
	if min < 1 {
		min = 1
	}

	p := b.page.Context(ctx).Timeout(b.timeout)
	err := p.Wait(rod.Eval(`(s, n) => document.querySelectorAll(s).length >= n`, selector, min))
	if err != nil {
		return nil, fmt.Errorf("wait for %d x %s: %w", min, selector, err)
	}

	els, err := p.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	return b.wrap(els), nil
}

func (b *BrowserAdapter) ExpectNavigation(ctx context.Context) func() error {
	if !b.IsReady() {
		return func() error { return ErrBrowserClosed }
	}

	p := b.page.Context(ctx).Timeout(b.timeout)
	wait := p.WaitNavigation(proto.PageLifecycleEventNameLoad)
	return func() error {
		wait()
		if err := p.GetContext().Err(); err != nil {
			return fmt.Errorf("navigation did not finish: %w", err)
		}
		return nil
	}
}

func (b *BrowserAdapter) InsertText(ctx context.Context, text string) error {
	if !b.IsReady() {
		return ErrBrowserClosed
	}
	if err := b.page.Context(ctx).Timeout(b.timeout).InsertText(text); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) PressEnter(ctx context.Context) error {
	if !b.IsReady() {
		return ErrBrowserClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.page.Keyboard.Type(input.Enter); err != nil {
		return fmt.Errorf("failed to press Enter: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	if !b.IsReady() {
		return nil, ErrBrowserClosed
	}

	imgBytes, err := b.page.Context(ctx).Timeout(b.timeout).Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > maxScreenshotW {
		img = imaging.Resize(img, maxScreenshotW, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (b *BrowserAdapter) HTML(ctx context.Context) (string, error) {
	if !b.IsReady() {
		return "", ErrBrowserClosed
	}
	html, err := b.page.Context(ctx).Timeout(b.timeout).HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}
	return html, nil
}

func (b *BrowserAdapter) CurrentURL() string {
	if !b.IsReady() {
		return ""
	}
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

func (b *BrowserAdapter) wrap(els rod.Elements) []output.ElementPort {
	result := make([]output.ElementPort, 0, len(els))
	for _, el := range els {
		result = append(result, &element{el: el, timeout: b.timeout})
	}
	return result
}

func validateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	return nil
}
