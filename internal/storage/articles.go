package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/0x0BSoD/newsBoard/internal/model"
)

const articleColumns = `a.id, a.title, a.overview, a.link, a.pic, a.created_at`

func (s *Store) CreateArticle(ctx context.Context, a model.Article) (model.Article, error) {
	a.CreatedAt = time.Now().UTC()
	err := s.get(ctx, &a.ID,
		`INSERT INTO articles (title, overview, link, pic, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		a.Title, a.Overview, a.Link, a.Pic, a.CreatedAt,
	)
	if err != nil {
		return model.Article{}, fmt.Errorf("insert article: %w", err)
	}
	return a, nil
}

func (s *Store) ArticleExistsByLink(ctx context.Context, link string) (bool, error) {
	var n int
	if err := s.get(ctx, &n, `SELECT COUNT(*) FROM articles WHERE link = ?`, link); err != nil {
		return false, fmt.Errorf("count articles by link: %w", err)
	}
	return n > 0, nil
}

// Catalog returns every article, newest first, with its preference labels loaded.
func (s *Store) Catalog(ctx context.Context) ([]model.Article, error) {
	articles := make([]model.Article, 0)
	err := s.selectAll(ctx, &articles,
		`SELECT `+articleColumns+` FROM articles a ORDER BY a.created_at DESC, a.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select catalog: %w", err)
	}

	type labelRow struct {
		ArticleID int64  `db:"article_id"`
		Title     string `db:"title"`
	}
	var labels []labelRow
	err = s.selectAll(ctx, &labels,
		`SELECT ap.article_id, p.title FROM article_preferences ap
		JOIN preferences p ON p.id = ap.preference_id
		ORDER BY ap.article_id, p.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("select article preferences: %w", err)
	}

	byArticle := lo.GroupBy(labels, func(r labelRow) int64 { return r.ArticleID })
	for i := range articles {
		articles[i].Preferences = lo.Map(byArticle[articles[i].ID], func(r labelRow, _ int) string {
			return r.Title
		})
	}
	return articles, nil
}

func (s *Store) ArticlesByBoard(ctx context.Context, boardID int64) ([]model.Article, error) {
	articles := make([]model.Article, 0)
	err := s.selectAll(ctx, &articles,
		`SELECT `+articleColumns+` FROM articles a
		JOIN board_articles ba ON ba.article_id = a.id
		WHERE ba.board_id = ?
		ORDER BY a.created_at DESC, a.id DESC`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("select board articles: %w", err)
	}
	return articles, nil
}

// SavedTitles lists the distinct titles of articles on any of the user's boards.
func (s *Store) SavedTitles(ctx context.Context, userID int64) ([]string, error) {
	titles := make([]string, 0)
	err := s.selectAll(ctx, &titles,
		`SELECT DISTINCT a.title FROM articles a
		JOIN board_articles ba ON ba.article_id = a.id
		JOIN boards b ON b.id = ba.board_id
		WHERE b.user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select saved titles: %w", err)
	}
	return titles, nil
}

// OwnedArticleIDs returns the IDs of articles on any of the user's boards.
func (s *Store) OwnedArticleIDs(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	var ids []int64
	err := s.selectAll(ctx, &ids,
		`SELECT DISTINCT ba.article_id FROM board_articles ba
		JOIN boards b ON b.id = ba.board_id
		WHERE b.user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select owned articles: %w", err)
	}
	return lo.SliceToMap(ids, func(id int64) (int64, struct{}) { return id, struct{}{} }), nil
}
