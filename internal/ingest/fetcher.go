// ABOUTME: Content fetcher for ingestion sources
// ABOUTME: Raw GET for text-export URLs, HTML body extraction for web pages
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves the plain-text content of a source URL.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a Fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch returns the plain text of sourceURL. Direct text-export endpoints
// (Google Docs export?format=txt) return the body unmodified; any other URL
// is treated as an HTML page whose body text is extracted with all markup
// stripped. If extraction fails on a fetched page, the result is an empty
// string rather than an error.
func (f *Fetcher) Fetch(ctx context.Context, sourceURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", sourceURL, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", sourceURL, resp.StatusCode)
	}

	if isTextExport(sourceURL) {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", sourceURL, err)
		}
		return string(body), nil
	}

	return extractBodyText(resp.Body), nil
}

// isTextExport reports whether the URL is a Google Docs plain-text export.
func isTextExport(sourceURL string) bool {
	return strings.Contains(sourceURL, "docs.google.com/document") &&
		strings.Contains(sourceURL, "export?format=txt")
}

// extractBodyText parses HTML and returns the document body's text content.
// Returns "" when the page cannot be parsed or has no body.
func extractBodyText(r io.Reader) string {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("body").Text())
}
