package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// contentSelectors are tried in order when locating the main content of a
// page; the first match wins, otherwise the whole body is used.
var contentSelectors = []string{
	"main", "article", "#content", ".content",
	".post-content", ".entry-content", ".article-content",
}

// WebsiteExtractor fetches a page and reduces it to readable text.
type WebsiteExtractor struct {
	Client *http.Client
}

func NewWebsiteExtractor() *WebsiteExtractor {
	return &WebsiteExtractor{
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Extract fetches the URL, strips script/style nodes, prefers a known
// content container and returns the page title followed by the collapsed
// text, plus response metadata.
func (w *WebsiteExtractor) Extract(ctx context.Context, url string) (string, map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; qaqf-platform/1.0)")

	resp, err := w.Client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch website: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("website returned status %d", resp.StatusCode)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("parse website: %w", err)
	}

	title := pageTitle(root)
	if title == "" {
		title = "No title"
	}

	container := root
	for _, selector := range contentSelectors {
		if node := findBySelector(root, selector); node != nil {
			container = node
			break
		}
	}
	if container == root {
		if body := findByTag(root, "body"); body != nil {
			container = body
		}
	}

	text := collapseLines(collectText(container))
	final := fmt.Sprintf("Title: %s\n\nContent:\n%s", title, text)

	meta := map[string]interface{}{
		"url":            url,
		"title":          title,
		"content_length": len(text),
		"status_code":    resp.StatusCode,
		"content_type":   resp.Header.Get("Content-Type"),
	}

	return final, meta, nil
}

func pageTitle(root *html.Node) string {
	node := findByTag(root, "title")
	if node == nil {
		return ""
	}
	return strings.TrimSpace(collectText(node))
}

func findByTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findBySelector supports the small selector subset the container list
// needs: bare tag names, #id and .class.
func findBySelector(n *html.Node, selector string) *html.Node {
	if n.Type == html.ElementNode && matchesSelector(n, selector) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBySelector(c, selector); found != nil {
			return found
		}
	}
	return nil
}

func matchesSelector(n *html.Node, selector string) bool {
	switch {
	case strings.HasPrefix(selector, "#"):
		return attrValue(n, "id") == selector[1:]
	case strings.HasPrefix(selector, "."):
		for _, class := range strings.Fields(attrValue(n, "class")) {
			if class == selector[1:] {
				return true
			}
		}
		return false
	default:
		return n.Data == selector
	}
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// collectText walks the subtree accumulating text nodes, skipping script and
// style elements.
func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
			return
		}
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapseLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = whitespaceRunRe.ReplaceAllString(strings.TrimSpace(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
