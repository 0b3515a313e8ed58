package diagnostics

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

type CleanConfig struct {
	TagsToRemove  []string
	AttrsToRemove []string
	MaxOutputSize int
}

// DefaultCleanConfig keeps ids and classes so the snapshot can be checked
// against the selectors in entity.Site.
var DefaultCleanConfig = CleanConfig{
	TagsToRemove: []string{
		"script", "style", "noscript", "svg", "iframe", "link", "meta",
	},
	AttrsToRemove: []string{
		"style", "srcset", "sizes", "loading", "decoding", "fetchpriority", "value",
	},
	MaxOutputSize: 512_000,
}

const truncatedMarker = "\n<!-- snapshot truncated -->"

// CleanHTML strips scripts, styles, comments and event handlers from a page
// snapshot. Input values are dropped so typed credentials never reach disk.
func CleanHTML(rawHTML string, cfg *CleanConfig) (string, error) {
	if cfg == nil {
		cfg = &DefaultCleanConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	body := findElement(doc, "body")
	if body == nil {
		return "", fmt.Errorf("no <body> in snapshot")
	}

	cleanNode(body, cfg)

	var sb strings.Builder
	if err := html.Render(&sb, body); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return truncate(sb.String(), cfg.MaxOutputSize), nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func cleanNode(n *html.Node, cfg *CleanConfig) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.CommentNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && slices.Contains(cfg.TagsToRemove, c.Data):
			n.RemoveChild(c)
		case c.Type == html.ElementNode:
			c.Attr = filterAttributes(c.Attr, cfg)
			cleanNode(c, cfg)
		}
		c = next
	}
}

func filterAttributes(attrs []html.Attribute, cfg *CleanConfig) []html.Attribute {
	kept := attrs[:0]
	for _, attr := range attrs {
		if slices.Contains(cfg.AttrsToRemove, attr.Key) || strings.HasPrefix(attr.Key, "on") {
			continue
		}
		kept = append(kept, attr)
	}
	return kept
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + truncatedMarker
}
