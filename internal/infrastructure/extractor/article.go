package extractor

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsGuard/internal/ports"
)

// Paragraph extraction below this length falls back to the <article> tag.
const minArticleChars = 100

// HTTPExtractor downloads a page and extracts readable article text:
// scripts and styles are dropped, paragraph text is joined, and the
// <article> element serves as fallback for paragraph-poor markup.
type HTTPExtractor struct {
	client *http.Client
}

var _ ports.ArticleExtractor = (*HTTPExtractor)(nil)

// NewHTTPExtractor wires an HTTP client; a nil client gets a 10s timeout
// default.
func NewHTTPExtractor(client *http.Client) *HTTPExtractor {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPExtractor{client: client}
}

// Extract fetches the URL and returns whitespace-normalized article text.
func (e *HTTPExtractor) Extract(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsGuard/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch article: %s returned %s", pageURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse article: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	text := strings.Join(parts, " ")

	if len(text) < minArticleChars {
		if article := doc.Find("article").First(); article.Length() > 0 {
			text = article.Text()
		}
	}

	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "", fmt.Errorf("no article text found at %s", pageURL)
	}
	return text, nil
}
