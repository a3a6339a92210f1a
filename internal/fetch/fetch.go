// Package fetch retrieves pages over HTTP and reduces them to main body text.
// It backs the extraction stage's fetch collaborator slot.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResearchAgent/1.0)"

// Error represents a failure fetching or parsing a URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ContentFetcher fetches URLs and extracts readable text. When UseBrowser is
// set, pages that render too little static text are retried through a
// headless browser.
type ContentFetcher struct {
	client     *http.Client
	userAgent  string
	useBrowser bool
	verbose    bool
}

// Config holds ContentFetcher configuration.
type Config struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool
	Verbose    bool
}

// NewContentFetcher creates a ContentFetcher, applying defaults for zero values.
func NewContentFetcher(cfg Config) *ContentFetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &ContentFetcher{
		client:     &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		useBrowser: cfg.UseBrowser,
		verbose:    cfg.Verbose,
	}
}

// FetchContent retrieves a URL and returns its main body text.
// All failures are reported as *Error so extraction can contain them per source.
func (f *ContentFetcher) FetchContent(ctx context.Context, urlStr string) (string, error) {
	html, err := f.fetchHTML(ctx, urlStr)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(html, ResearchPageSelectors())
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}

	if f.useBrowser && ShouldUseBrowser(text) {
		rendered, berr := WithBrowser(ctx, urlStr, f.client.Timeout, f.verbose)
		if berr == nil {
			if btext, terr := ExtractMainText(rendered, ResearchPageSelectors()); terr == nil && len(btext) > len(text) {
				text = btext
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", &Error{URL: urlStr, Message: "no readable content"}
	}
	return text, nil
}

// fetchHTML performs the HTTP GET for a URL.
func (f *ContentFetcher) fetchHTML(ctx context.Context, urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}

// ExtractMainText parses HTML and returns the main body text. Noise elements
// are dropped first; if no content selector matches, the body element is used.
func ExtractMainText(html string, contentSelectors []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	return cleanWhitespace(mainContent.Text()), nil
}

// ResearchPageSelectors returns selectors for general article-like pages.
func ResearchPageSelectors() []string {
	return []string{
		"main",
		"article",
		".post-content",
		".article-content",
		".entry-content",
		".content",
		"#content",
	}
}

// cleanWhitespace trims each line and drops blank lines.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
