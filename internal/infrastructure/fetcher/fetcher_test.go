package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NoticeScanner/internal/domain"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Court Bulletin</title>
    <item>
      <title>Notice of Sale under Mortgage</title>
      <description>Court File No. CV-24-00012345. Premises at 123 Main Street, Toronto, ON M5V 3A8. Amount owing $750,000.</description>
      <link>https://example.org/notices/1</link>
      <pubDate>%s</pubDate>
    </item>
    <item>
      <title>Item without link is skipped</title>
      <description>No link element present.</description>
    </item>
  </channel>
</rss>`

func rssSource(url string) domain.Source {
	return domain.Source{
		Name:      "test-bulletin",
		FetchURL:  url,
		Strategy:  domain.StrategyRSS,
		Permitted: true,
	}
}

func TestFetchRSS(t *testing.T) {
	t.Parallel()

	published := time.Now().UTC().Add(-24 * time.Hour)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, feedTemplate, published.Format(time.RFC1123Z))
	}))
	defer server.Close()

	f := New(server.Client(), 5*time.Second, nil)
	items, err := f.Fetch(context.Background(), rssSource(server.URL))
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 item (linkless entry skipped), got %d", len(items))
	}

	item := items[0]
	if item.Title != "Notice of Sale under Mortgage" {
		t.Fatalf("unexpected title: %q", item.Title)
	}
	if item.Link != "https://example.org/notices/1" {
		t.Fatalf("unexpected link: %q", item.Link)
	}
	if item.SourceName != "test-bulletin" {
		t.Fatalf("unexpected source name: %q", item.SourceName)
	}
	if item.PublishedAt.IsZero() {
		t.Fatal("expected published date parsed")
	}
}

func TestFetchHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := New(server.Client(), 5*time.Second, nil)
	_, err := f.Fetch(context.Background(), rssSource(server.URL))

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status code: %d", httpErr.StatusCode)
	}
}

func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	f := New(server.Client(), 50*time.Millisecond, nil)
	_, err := f.Fetch(context.Background(), rssSource(server.URL))

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
}

func TestFetchMalformedFeed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not xml at all {{{")
	}))
	defer server.Close()

	f := New(server.Client(), 5*time.Second, nil)
	_, err := f.Fetch(context.Background(), rssSource(server.URL))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestFetchWebpage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
		  <ul>
		    <li>Sale of land for tax arrears: 45 Oak Avenue, Hamilton, Ontario. Minimum tender $310,000. <a href="/notices/77">details</a></li>
		  </ul>
		</body></html>`)
	}))
	defer server.Close()

	src := domain.Source{
		Name:      "test-page",
		FetchURL:  server.URL,
		Strategy:  domain.StrategyWebpage,
		Permitted: true,
	}

	f := New(server.Client(), 5*time.Second, nil)
	items, err := f.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(items) == 0 {
		t.Fatal("expected at least one block from the page")
	}
	if items[0].Link != server.URL+"/notices/77" {
		t.Fatalf("unexpected link: %q", items[0].Link)
	}
}

func TestFetchWebpageCountsNestedBlocksOnce(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
		  <article>
		    <p>Notice of power of sale respecting 123 Main Street, Toronto, ON M5V 3A8, amount owing $750,000.</p>
		  </article>
		</body></html>`)
	}))
	defer server.Close()

	src := domain.Source{
		Name:      "test-page",
		FetchURL:  server.URL,
		Strategy:  domain.StrategyWebpage,
		Permitted: true,
	}

	f := New(server.Client(), 5*time.Second, nil)
	items, err := f.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected nested paragraph reported once, got %d items", len(items))
	}
}

func TestFetchRefusesUnpermittedWebpage(t *testing.T) {
	t.Parallel()

	f := New(nil, time.Second, nil)
	_, err := f.Fetch(context.Background(), domain.Source{
		Name:     "forbidden",
		FetchURL: "https://example.org",
		Strategy: domain.StrategyWebpage,
	})
	if err == nil {
		t.Fatal("expected refusal for unpermitted webpage source")
	}
}
