package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0BSoD/newsBoard/internal/model"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Space desk</title>
  <link>https://example.com</link>
  <description>news</description>
  <item>
    <title> Mars rover finds water </title>
    <link>https://example.com/mars</link>
    <description>Space agency confirms ice</description>
    <category>space</category>
    <enclosure url="https://example.com/mars.jpg" type="image/jpeg" length="100"/>
  </item>
</channel>
</rss>`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	src := NewRSSSourceFromModel(model.Source{ID: 7, Name: "space", FeedURL: srv.URL})
	items, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Mars rover finds water", items[0].Title)
	assert.Equal(t, "https://example.com/mars", items[0].Link)
	assert.Equal(t, "Space agency confirms ice", items[0].Summary)
	assert.Equal(t, "https://example.com/mars.jpg", items[0].Pic)
	assert.Equal(t, "space", items[0].SourceName)
	assert.Equal(t, int64(7), src.ID())

	require.NoError(t, Probe(context.Background(), srv.URL))
}

func TestProbeRejectsNonFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	assert.Error(t, Probe(context.Background(), srv.URL))
}
