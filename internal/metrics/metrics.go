// Package metrics exposes prometheus collectors for tagging and feed selection.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TagExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsboard_tag_extractions_total",
			Help: "Tag extractions by workflow and outcome",
		},
		[]string{"workflow", "status"},
	)

	TagsExtracted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsboard_tags_per_article",
			Help:    "Number of tags produced for one article",
			Buckets: []float64{0, 1, 2, 5, 10, 15, 20, 30},
		},
	)

	TagExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsboard_tag_extraction_duration_seconds",
			Help:    "Time spent extracting tags for one article",
			Buckets: prometheus.DefBuckets,
		},
	)

	FeedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsboard_feed_requests_total",
			Help: "Feed requests by selection mode",
		},
		[]string{"mode"},
	)

	FeedArticles = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsboard_feed_articles",
			Help:    "Articles returned by one feed request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	CatalogIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsboard_catalog_ingested_total",
			Help: "Catalog articles ingested from RSS sources",
		},
		[]string{"source"},
	)
)
