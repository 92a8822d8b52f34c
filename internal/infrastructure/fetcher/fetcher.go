// Package fetcher retrieves raw bulletin items from upstream sources over
// RSS or permitted webpages.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"NoticeScanner/internal/domain"
	"NoticeScanner/internal/ports"
)

const userAgent = "NoticeScanner/1.0"

// Fetcher pulls raw items for one source per call. It performs no retries;
// retry policy belongs to the orchestrator.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

var _ ports.ItemFetcher = (*Fetcher)(nil)

// New wires an HTTP client; timeout bounds each request.
func New(client *http.Client, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{client: client, timeout: timeout, logger: logger}
}

// Fetch retrieves and parses the source according to its strategy.
func (f *Fetcher) Fetch(ctx context.Context, src domain.Source) ([]domain.RawItem, error) {
	if src.Strategy == domain.StrategyWebpage && !src.Permitted {
		return nil, fmt.Errorf("source %s: webpage scraping not permitted", src.Name)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.get(ctx, src)
	if err != nil {
		return nil, err
	}

	switch src.Strategy {
	case domain.StrategyRSS:
		return f.parseFeed(src, body)
	case domain.StrategyWebpage:
		return f.parsePage(src, body)
	default:
		return nil, fmt.Errorf("source %s: unknown strategy %q", src.Name, src.Strategy)
	}
}

func (f *Fetcher) get(ctx context.Context, src domain.Source) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.FetchURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", src.Name, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", &TimeoutError{Source: src.Name, Timeout: f.timeout}
		}
		return "", fmt.Errorf("request %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{Source: src.Name, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", &TimeoutError{Source: src.Name, Timeout: f.timeout}
		}
		return "", fmt.Errorf("read %s body: %w", src.Name, err)
	}

	return string(raw), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseFeed converts RSS/Atom entries into raw items. Entries without a
// usable link are skipped.
func (f *Fetcher) parseFeed(src domain.Source, body string) ([]domain.RawItem, error) {
	parsed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, &ParseError{Source: src.Name, Err: err}
	}

	items := make([]domain.RawItem, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		link := entry.Link
		if link == "" && strings.HasPrefix(entry.GUID, "http") {
			link = entry.GUID
		}
		if link == "" {
			continue
		}

		var published time.Time
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC()
		} else if entry.UpdatedParsed != nil {
			published = entry.UpdatedParsed.UTC()
		}

		items = append(items, domain.RawItem{
			Title:       strings.TrimSpace(entry.Title),
			Description: strings.TrimSpace(entry.Description),
			Link:        link,
			PublishedAt: published,
			SourceName:  src.Name,
		})
	}

	f.debug("feed parsed", "source", src.Name, "items", len(items))
	return items, nil
}

// parsePage extracts notice-shaped blocks from a permitted webpage. Each
// article, list entry, or paragraph becomes a candidate item; downstream
// filtering discards the noise.
func (f *Fetcher) parsePage(src domain.Source, body string) ([]domain.RawItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, &ParseError{Source: src.Name, Err: err}
	}

	var items []domain.RawItem
	doc.Find("article, li, p").Each(func(i int, sel *goquery.Selection) {
		// Keep only the topmost matching block: a p inside a matched
		// article would otherwise emit the same text twice and inflate
		// per-source item counts.
		if sel.ParentsFiltered("article, li, p").Length() > 0 {
			return
		}

		text := strings.TrimSpace(sel.Text())
		if len(text) < 40 {
			return
		}

		title := text
		if idx := strings.IndexAny(text, ".\n"); idx > 0 {
			title = strings.TrimSpace(text[:idx])
		}

		link := src.FetchURL
		if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
			link = absoluteLink(src.FetchURL, href)
		}

		items = append(items, domain.RawItem{
			Title:       title,
			Description: text,
			Link:        link,
			SourceName:  src.Name,
		})
	})

	f.debug("page parsed", "source", src.Name, "blocks", len(items))
	return items, nil
}

func absoluteLink(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(href, "/")
}

func (f *Fetcher) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
