package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/0x0BSoD/newsBoard/internal/model"
)

// GetOrCreatePreference returns the preference whose normalised label equals that of title,
// creating it with title's trimmed spelling when missing.
func (s *Store) GetOrCreatePreference(ctx context.Context, title string) (model.Preference, error) {
	norm := model.Normalize(title)
	if norm == "" {
		return model.Preference{}, errors.New("empty preference label")
	}

	now := time.Now().UTC()
	err := s.exec(ctx,
		`INSERT INTO preferences (title, norm, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (norm) DO NOTHING`,
		strings.TrimSpace(title), norm, now, now,
	)
	if err != nil {
		return model.Preference{}, fmt.Errorf("insert preference %q: %w", norm, err)
	}

	var p model.Preference
	err = s.get(ctx, &p,
		`SELECT id, title, created_at, updated_at FROM preferences WHERE norm = ?`, norm,
	)
	if err != nil {
		return model.Preference{}, fmt.Errorf("select preference %q: %w", norm, err)
	}
	return p, nil
}

func (s *Store) AttachArticlePreference(ctx context.Context, articleID, preferenceID int64) error {
	err := s.exec(ctx,
		`INSERT INTO article_preferences (article_id, preference_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		articleID, preferenceID,
	)
	if err != nil {
		return fmt.Errorf("attach preference %d to article %d: %w", preferenceID, articleID, err)
	}
	return nil
}

func (s *Store) AttachUserPreference(ctx context.Context, userID, preferenceID int64) error {
	err := s.exec(ctx,
		`INSERT INTO user_preferences (user_id, preference_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		userID, preferenceID,
	)
	if err != nil {
		return fmt.Errorf("attach preference %d to user %d: %w", preferenceID, userID, err)
	}
	return s.exec(ctx, `UPDATE preferences SET updated_at = ? WHERE id = ?`, time.Now().UTC(), preferenceID)
}

func (s *Store) ClearUserPreferences(ctx context.Context, userID int64) error {
	if err := s.exec(ctx, `DELETE FROM user_preferences WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear preferences of user %d: %w", userID, err)
	}
	return nil
}

// UserPreferenceTitles lists the user's preference labels, most recently touched first.
func (s *Store) UserPreferenceTitles(ctx context.Context, userID int64) ([]string, error) {
	titles := make([]string, 0)
	err := s.selectAll(ctx, &titles,
		`SELECT p.title FROM preferences p
		JOIN user_preferences up ON up.preference_id = p.id
		WHERE up.user_id = ?
		ORDER BY p.updated_at DESC, p.created_at DESC, p.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select user preferences: %w", err)
	}
	return titles, nil
}
