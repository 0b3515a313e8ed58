// Package fixture serves fixed HTML documents behind output.PagePort so the
// punch flow can run without a browser.
package fixture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"net/url"
	"strings"

	"freee-timecard/internal/application/port/output"
	"freee-timecard/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

var _ output.PagePort = (*Page)(nil)

var (
	ErrPageNotFound   = errors.New("fixture page not found")
	ErrTimeout        = errors.New("fixture wait timed out")
	ErrStaleElement   = errors.New("element belongs to a previous document")
	ErrNoFocus        = errors.New("no focused input")
	ErrNoNavigation   = errors.New("no navigation happened")
	ErrTextExtraction = errors.New("text extraction failed")
)

// Op names accepted by Page.FailOn.
const (
	OpNavigate   = "navigate"
	OpInsertText = "insert_text"
	OpPressEnter = "press_enter"
	OpScreenshot = "screenshot"
)

type Page struct {
	pages map[string]string
	fails map[string]error

	url     string
	doc     *goquery.Document
	gen     int
	focused *Element
	closed  bool

	visited []string
	clicks  []string
	typed   map[string]string
}

func NewPage(pages map[string]string) *Page {
	return &Page{
		pages: pages,
		fails: make(map[string]error),
		typed: make(map[string]string),
	}
}

// FailOn makes the named operation return err.
func (p *Page) FailOn(op string, err error) {
	p.fails[op] = err
}

func (p *Page) Navigate(ctx context.Context, rawURL string) error {
	if err := p.check(ctx, OpNavigate); err != nil {
		return err
	}
	return p.load(rawURL)
}

func (p *Page) load(rawURL string) error {
	target, err := p.resolve(rawURL)
	if err != nil {
		return err
	}
	body, ok := p.pages[target]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPageNotFound, target)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse %s: %w", target, err)
	}

	p.url = target
	p.doc = doc
	p.gen++
	p.focused = nil
	p.visited = append(p.visited, target)
	return nil
}

func (p *Page) resolve(rawURL string) (string, error) {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if p.url == "" || ref.IsAbs() {
		return ref.String(), nil
	}
	base, err := url.Parse(p.url)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

func (p *Page) Elements(ctx context.Context, selector string) ([]output.ElementPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.doc == nil {
		return nil, nil
	}

	var result []output.ElementPort
	p.doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		result = append(result, &Element{page: p, sel: s, gen: p.gen})
	})
	return result, nil
}

// WaitElements does not wait: fixture documents never change on their own.
func (p *Page) WaitElements(ctx context.Context, selector string, min int) ([]output.ElementPort, error) {
	els, err := p.Elements(ctx, selector)
	if err != nil {
		return nil, err
	}
	if len(els) < min {
		return nil, fmt.Errorf("%w: %q matched %d of %d", ErrTimeout, selector, len(els), min)
	}
	return els, nil
}

func (p *Page) ExpectNavigation(ctx context.Context) func() error {
	gen := p.gen
	return func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.gen == gen {
			return ErrNoNavigation
		}
		return nil
	}
}

func (p *Page) InsertText(ctx context.Context, text string) error {
	if err := p.check(ctx, OpInsertText); err != nil {
		return err
	}
	if p.focused == nil {
		return ErrNoFocus
	}
	key := p.focused.key()
	p.typed[key] += text
	return nil
}

func (p *Page) PressEnter(ctx context.Context) error {
	if err := p.check(ctx, OpPressEnter); err != nil {
		return err
	}
	if p.focused == nil {
		return nil
	}
	form := p.focused.sel.Closest("form")
	if action, ok := form.Attr("action"); ok && action != "" {
		return p.load(action)
	}
	return nil
}

func (p *Page) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	if err := p.check(ctx, OpScreenshot); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.White)
		}
	}
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, nil); err != nil {
		return nil, err
	}
	return &entity.Screenshot{Data: buf.Bytes(), Format: "jpeg", Width: 8, Height: 8}, nil
}

func (p *Page) HTML(ctx context.Context) (string, error) {
	if p.doc == nil {
		return "", nil
	}
	return p.doc.Html()
}

func (p *Page) CurrentURL() string {
	return p.url
}

func (p *Page) Close() {
	p.closed = true
}

// Visited lists every loaded URL in order.
func (p *Page) Visited() []string {
	return append([]string(nil), p.visited...)
}

// Clicks lists the trimmed text of every clicked element in order.
func (p *Page) Clicks() []string {
	return append([]string(nil), p.clicks...)
}

// Typed returns text typed into the input with the given name or id.
func (p *Page) Typed(key string) string {
	return p.typed[key]
}

func (p *Page) Closed() bool {
	return p.closed
}

func (p *Page) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := p.fails[op]; ok {
		return err
	}
	return nil
}

type Element struct {
	page *Page
	sel  *goquery.Selection
	gen  int
}

func (e *Element) Text(ctx context.Context) (string, error) {
	if err := e.live(ctx); err != nil {
		return "", err
	}
	if _, broken := e.sel.Attr("data-text-error"); broken {
		return "", ErrTextExtraction
	}
	return e.sel.Text(), nil
}

func (e *Element) Click(ctx context.Context) error {
	if err := e.live(ctx); err != nil {
		return err
	}
	e.page.clicks = append(e.page.clicks, strings.TrimSpace(e.sel.Text()))

	if goquery.NodeName(e.sel) == "input" {
		e.page.focused = e
		return nil
	}
	for _, attr := range []string{"href", "data-href"} {
		if target, ok := e.sel.Attr(attr); ok && target != "" {
			return e.page.load(target)
		}
	}
	return nil
}

func (e *Element) live(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.gen != e.page.gen {
		return ErrStaleElement
	}
	return nil
}

func (e *Element) key() string {
	for _, attr := range []string{"name", "id"} {
		if v, ok := e.sel.Attr(attr); ok && v != "" {
			return v
		}
	}
	return fmt.Sprintf("input-%d", e.sel.Index())
}
