package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0x0BSoD/newsBoard/internal/model"
)

// AddSource stores a catalog feed. A feed URL that is already stored fails with ErrDuplicate.
func (s *Store) AddSource(ctx context.Context, src model.Source) (int64, error) {
	var id int64
	err := s.get(ctx, &id,
		`INSERT INTO sources (name, feed_url, created_at) VALUES (?, ?, ?) ON CONFLICT (feed_url) DO NOTHING RETURNING id`,
		src.Name, src.FeedURL, time.Now().UTC(),
	)
	if errors.Is(err, ErrNotFound) {
		return 0, fmt.Errorf("source %q: %w", src.FeedURL, ErrDuplicate)
	}
	if err != nil {
		return 0, fmt.Errorf("insert source: %w", err)
	}
	return id, nil
}

func (s *Store) Sources(ctx context.Context) ([]model.Source, error) {
	sources := make([]model.Source, 0)
	if err := s.selectAll(ctx, &sources, `SELECT id, name, feed_url, created_at FROM sources ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select sources: %w", err)
	}
	return sources, nil
}
