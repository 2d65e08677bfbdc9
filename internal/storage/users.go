package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/0x0BSoD/newsBoard/internal/model"
)

// CreateUser inserts u and returns its ID. A taken name or email fails with ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u model.User) (int64, error) {
	var id int64
	err := s.get(ctx, &id,
		`INSERT INTO users (name, email, description) VALUES (?, ?, ?) ON CONFLICT DO NOTHING RETURNING id`,
		u.Name, u.Email, u.Description,
	)
	if errors.Is(err, ErrNotFound) {
		return 0, fmt.Errorf("user %q: %w", u.Name, ErrDuplicate)
	}
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// UpdateUser rewrites the name and description of the user with u.ID. Email is the login
// identity and stays as created.
func (s *Store) UpdateUser(ctx context.Context, u model.User) error {
	other, err := s.UserByName(ctx, u.Name)
	switch {
	case err == nil && other.ID != u.ID:
		return fmt.Errorf("user %q: %w", u.Name, ErrDuplicate)
	case err != nil && !errors.Is(err, ErrNotFound):
		return err
	}

	res, err := s.q.ExecContext(ctx, s.q.Rebind(`UPDATE users SET name = ?, description = ? WHERE id = ?`),
		u.Name, u.Description, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := s.get(ctx, &u, `SELECT id, name, email, description FROM users WHERE id = ?`, id)
	return u, err
}

func (s *Store) UserByName(ctx context.Context, name string) (model.User, error) {
	var u model.User
	err := s.get(ctx, &u, `SELECT id, name, email, description FROM users WHERE name = ?`, name)
	return u, err
}
