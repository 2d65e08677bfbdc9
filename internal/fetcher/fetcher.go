// Package fetcher keeps the article catalog populated from RSS sources.
package fetcher

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/dom"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/0x0BSoD/newsBoard/internal/bookmarks"
	"github.com/0x0BSoD/newsBoard/internal/logging"
	"github.com/0x0BSoD/newsBoard/internal/metrics"
	"github.com/0x0BSoD/newsBoard/internal/model"
	"github.com/0x0BSoD/newsBoard/internal/source"
)

const (
	maxTitleLen    = 200
	maxOverviewLen = 300
)

type Ingester interface {
	Ingest(ctx context.Context, in bookmarks.ArticleInput) (bool, error)
}

type SourceProvider interface {
	Sources(ctx context.Context) ([]model.Source, error)
}

type Source interface {
	ID() int64
	Name() string
	Fetch(ctx context.Context) ([]model.Item, error)
}

type Notifier interface {
	Notify(msg string)
}

type Fetcher struct {
	catalog  Ingester
	sources  SourceProvider
	reporter Notifier

	fetchInterval time.Duration
	newSource     func(model.Source) Source
}

func New(
	catalog Ingester,
	sources SourceProvider,
	reporter Notifier,
	fetchInterval time.Duration,
) *Fetcher {
	return &Fetcher{
		catalog:       catalog,
		sources:       sources,
		reporter:      reporter,
		fetchInterval: fetchInterval,
		newSource: func(m model.Source) Source {
			return source.NewRSSSourceFromModel(m)
		},
	}
}

func (f *Fetcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(f.fetchInterval)
	defer ticker.Stop()

	if err := f.Fetch(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := f.Fetch(ctx); err != nil {
				return err
			}
		}
	}
}

// Fetch pulls every source once. A failing source is logged and reported; it does not stop
// the others.
func (f *Fetcher) Fetch(ctx context.Context) error {
	sources, err := f.sources.Sources(ctx)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup

	for _, m := range sources {
		wg.Add(1)

		go func(src Source) {
			defer wg.Done()

			items, err := src.Fetch(ctx)
			if err != nil {
				f.fail(src, "fetch", err)
				return
			}
			if err := f.processItems(ctx, src, items); err != nil {
				f.fail(src, "process", err)
			}
		}(f.newSource(m))
	}
	wg.Wait()

	return nil
}

func (f *Fetcher) fail(src Source, stage string, err error) {
	logging.Error().Err(err).Int64("source", src.ID()).Str("stage", stage).Msg("catalog source failed")
	if f.reporter != nil {
		f.reporter.Notify("catalog source " + src.Name() + ": " + stage + " failed: " + err.Error())
	}
}

func (f *Fetcher) processItems(ctx context.Context, src Source, items []model.Item) error {
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		added, err := f.catalog.Ingest(ctx, bookmarks.ArticleInput{
			Title:    truncate(item.Title, maxTitleLen),
			Overview: truncate(plainText(item.Summary), maxOverviewLen),
			Link:     item.Link,
			Pic:      item.Pic,
		})
		if err != nil {
			return err
		}
		if added {
			metrics.CatalogIngested.WithLabelValues(src.Name()).Inc()
		}
	}
	return nil
}

// plainText strips markup from feed summaries that carry HTML.
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}

	text := ""
	if doc, err := readability.FromReader(strings.NewReader(s), nil); err == nil {
		text = doc.TextContent
	}
	// Short fragments often have no readable "article"; fall back to the raw text nodes.
	if strings.TrimSpace(text) == "" {
		node, err := html.Parse(strings.NewReader(s))
		if err != nil {
			return strings.TrimSpace(s)
		}
		text = dom.TextContent(node)
	}
	return strings.Join(strings.Fields(text), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
