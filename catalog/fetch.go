package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultUserAgent identifies newbooks to the catalog server.
const DefaultUserAgent = "newbooks/1.0 (library catalog new-title checker)"

// TransportError reports that a catalog page could not be fetched or read at
// all. It is distinct from a page that was fetched but not understood.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves catalog pages over HTTP.
type Fetcher struct {
	Client     *http.Client
	UserAgent  string
	MaxRetries int
	Logger     *slog.Logger
}

// NewFetcher creates a fetcher with a 10 second timeout. A nil logger
// discards trace output.
func NewFetcher(logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent:  DefaultUserAgent,
		MaxRetries: defaultMaxRetries,
		Logger:     logger,
	}
}

// NormalizeURL prefixes http:// when rawURL carries no scheme.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if strings.Contains(rawURL, "://") {
		return rawURL
	}
	return "http://" + rawURL
}

// Fetch performs a GET on rawURL and parses the response as HTML. Every
// failure is returned as a *TransportError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	target := NormalizeURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", f.UserAgent)

	f.Logger.Debug("fetching catalog page", "url", target)

	resp, err := doWithRetry(ctx, f.Client, req, f.MaxRetries, f.Logger)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	f.Logger.Debug("catalog responded", "url", target, "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("HTTP error: %s", resp.Status)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	return doc, nil
}
