package fetcher

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0BSoD/newsBoard/internal/bookmarks"
	"github.com/0x0BSoD/newsBoard/internal/metrics"
	"github.com/0x0BSoD/newsBoard/internal/model"
)

type fakeIngester struct {
	mu  sync.Mutex
	got []bookmarks.ArticleInput
	err error
}

func (f *fakeIngester) Ingest(_ context.Context, in bookmarks.ArticleInput) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	f.got = append(f.got, in)
	return true, nil
}

type staticSources []model.Source

func (s staticSources) Sources(context.Context) ([]model.Source, error) { return s, nil }

type fakeSource struct {
	id    int64
	items []model.Item
	err   error
}

func (s fakeSource) ID() int64                                     { return s.id }
func (s fakeSource) Name() string                                  { return "fake" }
func (s fakeSource) Fetch(context.Context) ([]model.Item, error) { return s.items, s.err }

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *recordingNotifier) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func newTestFetcher(ing Ingester, notifier Notifier, bySource map[int64]fakeSource) *Fetcher {
	var sources staticSources
	for id := range bySource {
		sources = append(sources, model.Source{ID: id})
	}
	f := New(ing, sources, notifier, 0)
	f.newSource = func(m model.Source) Source { return bySource[m.ID] }
	return f
}

func TestFetchIngestsItems(t *testing.T) {
	ing := &fakeIngester{}
	f := newTestFetcher(ing, nil, map[int64]fakeSource{
		1: {id: 1, items: []model.Item{
			{Title: "Mars rover finds water", Link: "https://x/mars", Summary: "<p>Space agency <b>confirms</b> ice</p>", Pic: "https://x/m.jpg"},
			{Title: "", Link: "https://x/untitled"},
			{Title: "No link"},
		}},
	})

	before := testutil.ToFloat64(metrics.CatalogIngested.WithLabelValues("fake"))
	require.NoError(t, f.Fetch(context.Background()))

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CatalogIngested.WithLabelValues("fake")))
	require.Len(t, ing.got, 1)
	assert.Equal(t, "Mars rover finds water", ing.got[0].Title)
	assert.NotContains(t, ing.got[0].Overview, "<")
	assert.Contains(t, ing.got[0].Overview, "confirms")
	assert.Equal(t, "https://x/m.jpg", ing.got[0].Pic)
}

func TestFetchReportsFailingSource(t *testing.T) {
	ing := &fakeIngester{}
	notifier := &recordingNotifier{}
	f := newTestFetcher(ing, notifier, map[int64]fakeSource{
		1: {id: 1, err: errors.New("timeout")},
		2: {id: 2, items: []model.Item{{Title: "ok", Link: "https://x/ok"}}},
	})

	require.NoError(t, f.Fetch(context.Background()))

	assert.Len(t, ing.got, 1)
	require.Len(t, notifier.msgs, 1)
	assert.Contains(t, notifier.msgs[0], "timeout")
}

func TestFetchReportsIngestError(t *testing.T) {
	notifier := &recordingNotifier{}
	f := newTestFetcher(&fakeIngester{err: errors.New("embedding down")}, notifier, map[int64]fakeSource{
		1: {id: 1, items: []model.Item{{Title: "t", Link: "https://x/t"}}},
	})

	require.NoError(t, f.Fetch(context.Background()))
	require.Len(t, notifier.msgs, 1)
	assert.Contains(t, notifier.msgs[0], "process")
}

func TestPlainTextAndTruncate(t *testing.T) {
	assert.Equal(t, "plain summary", plainText("  plain summary "))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "héé", truncate("héé", 3))
	assert.Len(t, []rune(truncate(strings.Repeat("é", 400), maxOverviewLen)), maxOverviewLen)
}
