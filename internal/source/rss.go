// Package source reads catalog items from RSS and Atom feeds.
package source

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"

	"github.com/0x0BSoD/newsBoard/internal/model"
)

const fetchTimeout = 30 * time.Second

// contextTransport injects a context into every outgoing request so that
// context cancellation and deadlines propagate through the rss library.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

type RSSSource struct {
	URL        string
	SourceID   int64
	SourceName string
}

func NewRSSSourceFromModel(m model.Source) RSSSource {
	return RSSSource{
		URL:        m.FeedURL,
		SourceID:   m.ID,
		SourceName: m.Name,
	}
}

func (s RSSSource) Fetch(ctx context.Context) ([]model.Item, error) {
	feed, err := loadFeed(ctx, s.URL)
	if err != nil {
		return nil, err
	}

	return lo.Map(feed.Items, func(item *rss.Item, _ int) model.Item {
		return model.Item{
			Title:      strings.TrimSpace(item.Title),
			Categories: item.Categories,
			Link:       item.Link,
			Pic:        itemImage(item),
			Date:       item.Date,
			SourceName: s.SourceName,
			Summary:    itemText(item),
		}
	}), nil
}

func (s RSSSource) ID() int64 {
	return s.SourceID
}

func (s RSSSource) Name() string {
	return s.SourceName
}

// Probe checks that url serves a parseable feed.
func Probe(ctx context.Context, url string) error {
	_, err := loadFeed(ctx, url)
	return err
}

// itemText prefers the short summary over the full body: overviews are excerpts.
func itemText(item *rss.Item) string {
	if s := strings.TrimSpace(item.Summary); s != "" {
		return s
	}
	return strings.TrimSpace(item.Content)
}

func itemImage(item *rss.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	enc, ok := lo.Find(item.Enclosures, func(e *rss.Enclosure) bool {
		return e != nil && strings.HasPrefix(e.Type, "image/")
	})
	if ok {
		return enc.URL
	}
	return ""
}

func loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	client := &http.Client{
		Transport: contextTransport{ctx: ctx, base: http.DefaultTransport},
		Timeout:   fetchTimeout,
	}
	return rss.FetchByClient(url, client)
}
