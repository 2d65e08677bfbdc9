package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/0x0BSoD/newsBoard/internal/model"
)

func (s *Store) CreateBoard(ctx context.Context, userID int64, name string) (model.Board, error) {
	b := model.Board{Name: name, UserID: userID, CreatedAt: time.Now().UTC()}
	err := s.get(ctx, &b.ID,
		`INSERT INTO boards (name, user_id, created_at) VALUES (?, ?, ?) RETURNING id`,
		b.Name, b.UserID, b.CreatedAt,
	)
	if err != nil {
		return model.Board{}, fmt.Errorf("insert board: %w", err)
	}
	return b, nil
}

// BoardByName returns the user's board with that name. Names are not unique per user; the
// oldest board wins.
func (s *Store) BoardByName(ctx context.Context, userID int64, name string) (model.Board, error) {
	var b model.Board
	err := s.get(ctx, &b,
		`SELECT id, name, user_id, created_at FROM boards WHERE user_id = ? AND name = ? ORDER BY id LIMIT 1`,
		userID, name,
	)
	return b, err
}

func (s *Store) BoardByID(ctx context.Context, id int64) (model.Board, error) {
	var b model.Board
	err := s.get(ctx, &b, `SELECT id, name, user_id, created_at FROM boards WHERE id = ?`, id)
	return b, err
}

func (s *Store) BoardsByUser(ctx context.Context, userID int64) ([]model.Board, error) {
	boards := make([]model.Board, 0)
	err := s.selectAll(ctx, &boards,
		`SELECT id, name, user_id, created_at FROM boards WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select boards: %w", err)
	}
	return boards, nil
}

// AddArticleToBoard is idempotent.
func (s *Store) AddArticleToBoard(ctx context.Context, articleID, boardID int64) error {
	err := s.exec(ctx,
		`INSERT INTO board_articles (board_id, article_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		boardID, articleID,
	)
	if err != nil {
		return fmt.Errorf("attach article %d to board %d: %w", articleID, boardID, err)
	}
	return nil
}
