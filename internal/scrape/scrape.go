// Package scrape fetches job posting pages and extracts the raw fields the
// normalizer consumes. Rendering goes through a headless browser for
// JavaScript-heavy boards, with a plain HTTP fetch as the fallback.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/laudatorai/laudator/internal/jobdesc"
)

// minContentLength is the minimum extracted text length for a fetch to count
// as successful; shorter pages are treated as unrendered SPA shells.
const minContentLength = 500

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (compatible; LaudatorBot/1.0)"
)

// Error reports a scraping failure for a URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scrape error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("scrape error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Scraper fetches and extracts job postings.
type Scraper struct {
	UseBrowser bool
	Timeout    time.Duration
	UserAgent  string
}

// NewScraper returns a scraper with browser rendering enabled.
func NewScraper() *Scraper {
	return &Scraper{
		UseBrowser: true,
		Timeout:    defaultTimeout,
		UserAgent:  defaultUserAgent,
	}
}

// ScrapeJobPosting retrieves the page at urlStr and extracts raw job content.
// Browser rendering is tried first when enabled; any browser failure degrades
// to a plain HTTP fetch rather than failing the scrape.
func (s *Scraper) ScrapeJobPosting(ctx context.Context, urlStr string) (*jobdesc.RawJobContent, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	var html string
	if s.UseBrowser {
		html, err = s.renderWithBrowser(ctx, urlStr)
		if err != nil {
			log.Printf("[scrape] browser rendering failed for %s, falling back to HTTP: %v", urlStr, err)
			html = ""
		}
	}

	if strings.TrimSpace(html) == "" {
		html, err = s.fetchHTTP(ctx, urlStr)
		if err != nil {
			return nil, err
		}
	}

	raw := extractJobContent(html)
	raw.Metadata["source_url"] = urlStr
	raw.Metadata["scraped_at"] = time.Now().UTC().Format(time.RFC3339)
	return raw, nil
}

// fetchHTTP retrieves the page body over plain HTTP.
func (s *Scraper) fetchHTTP(ctx context.Context, urlStr string) (string, error) {
	client := &http.Client{Timeout: s.timeout()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", s.userAgent())

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return string(body), nil
}

// renderWithBrowser loads the page in headless Chrome and returns the rendered
// HTML. Requires Chrome/Chromium on the host.
func (s *Scraper) renderWithBrowser(ctx context.Context, urlStr string) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, s.timeout())
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to populate the posting.
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if len(strings.TrimSpace(html)) < minContentLength {
		return "", fmt.Errorf("rendered page too short (%d bytes)", len(html))
	}

	return html, nil
}

func (s *Scraper) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return defaultTimeout
}

func (s *Scraper) userAgent() string {
	if s.UserAgent != "" {
		return s.UserAgent
	}
	return defaultUserAgent
}
