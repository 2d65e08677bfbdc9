// Package model defines the data structures used in the newsBoard application: users and the
// boards they own, articles saved into boards, the preference labels attached to both, and the
// RSS sources the catalog is fed from.
package model

import (
	"strings"
	"time"
)

// Normalize trims and case-folds a preference label or article title.
// Every identity comparison on labels goes through it.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type User struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Email       string `db:"email"`
	Description string `db:"description"`
}

type Preference struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Board struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type Article struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Overview    string    `db:"overview"`
	Link        string    `db:"link"`
	Pic         string    `db:"pic"`
	CreatedAt   time.Time `db:"created_at"`
	Preferences []string  `db:"-"`
}

// ArticleView is the render-ready record handed to the presentation layer.
type ArticleView struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Pic      string `json:"pic"`
	Overview string `json:"overview"`
	Link     string `json:"link"`
	CanSave  bool   `json:"show_save"`
}

type Source struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	FeedURL   string    `db:"feed_url"`
	CreatedAt time.Time `db:"created_at"`
}

type Item struct {
	Title      string
	Categories []string
	Link       string
	Pic        string
	Date       time.Time
	Summary    string
	SourceName string
}
