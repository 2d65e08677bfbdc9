// Package bookmarks implements the user-facing workflows: saving articles into boards,
// tagging them, maintaining the preference feedback loop, and building the feed.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/0x0BSoD/newsBoard/internal/feed"
	"github.com/0x0BSoD/newsBoard/internal/logging"
	"github.com/0x0BSoD/newsBoard/internal/metrics"
	"github.com/0x0BSoD/newsBoard/internal/model"
	"github.com/0x0BSoD/newsBoard/internal/storage"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
	ErrConflict = errors.New("already exists")
)

type TagExtractor interface {
	Extract(ctx context.Context, title, description string) ([]string, error)
}

type ArticleInput struct {
	Title    string
	Overview string
	Link     string
	Pic      string
}

type Service struct {
	store     *storage.Store
	extractor TagExtractor
}

func New(store *storage.Store, extractor TagExtractor) *Service {
	return &Service{store: store, extractor: extractor}
}

// Feed returns the article views for the user's home feed.
func (s *Service) Feed(ctx context.Context, userID int64, query string) ([]model.ArticleView, error) {
	catalog, err := s.store.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	saved, err := s.store.SavedTitles(ctx, userID)
	if err != nil {
		return nil, err
	}
	owned, err := s.store.OwnedArticleIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.store.UserPreferenceTitles(ctx, userID)
	if err != nil {
		return nil, err
	}

	selected := feed.Select(catalog, saved, prefs, query)

	metrics.FeedRequests.WithLabelValues(feedMode(query, prefs)).Inc()
	metrics.FeedArticles.Observe(float64(len(selected)))

	return feed.Views(selected, owned), nil
}

func feedMode(query string, prefs []string) string {
	switch {
	case strings.TrimSpace(query) != "":
		return "query"
	case len(feed.Keywords(prefs)) > 0:
		return "preferences"
	default:
		return "fallback"
	}
}

// SaveToBoard stores a new article on the user's named board and tags it.
// An unknown board fails with ErrNotFound before anything is written or extracted. Tags are
// extracted before the write transaction opens; an extraction failure writes nothing.
func (s *Service) SaveToBoard(ctx context.Context, userID int64, boardName string, in ArticleInput) (model.Board, error) {
	board, err := s.store.BoardByName(ctx, userID, boardName)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Board{}, fmt.Errorf("board %q: %w", boardName, ErrNotFound)
	}
	if err != nil {
		return model.Board{}, err
	}

	tags, err := s.extract(ctx, "save", in.Title, in.Overview)
	if err != nil {
		return model.Board{}, err
	}

	err = s.store.InTx(ctx, func(tx *storage.Store) error {
		return saveTagged(ctx, tx, userID, board.ID, in, tags)
	})
	if err != nil {
		return model.Board{}, err
	}

	logging.Info().Int64("user", userID).Str("board", board.Name).Str("title", in.Title).Msg("article saved")
	return board, nil
}

// CreateBoard creates a board and, when title, overview and link are all given, saves the
// article onto it.
func (s *Service) CreateBoard(ctx context.Context, userID int64, name string, in *ArticleInput) (model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Board{}, fmt.Errorf("board name is required: %w", ErrInvalid)
	}

	withArticle := in != nil && in.Title != "" && in.Overview != "" && in.Link != ""

	var tags []string
	if withArticle {
		var err error
		if tags, err = s.extract(ctx, "create_board", in.Title, in.Overview); err != nil {
			return model.Board{}, err
		}
	}

	var board model.Board
	err := s.store.InTx(ctx, func(tx *storage.Store) error {
		var err error
		if board, err = tx.CreateBoard(ctx, userID, name); err != nil {
			return err
		}
		if !withArticle {
			return nil
		}
		return saveTagged(ctx, tx, userID, board.ID, *in, tags)
	})
	if err != nil {
		return model.Board{}, err
	}

	logging.Info().Int64("user", userID).Str("board", board.Name).Msg("board created")
	return board, nil
}

// saveTagged creates the article on the board and attaches every tag to both the article and
// the user.
func saveTagged(ctx context.Context, tx *storage.Store, userID, boardID int64, in ArticleInput, tags []string) error {
	article, err := tx.CreateArticle(ctx, model.Article{
		Title:    in.Title,
		Overview: in.Overview,
		Link:     in.Link,
		Pic:      in.Pic,
	})
	if err != nil {
		return err
	}
	if err := tx.AddArticleToBoard(ctx, article.ID, boardID); err != nil {
		return err
	}

	for _, tag := range tags {
		pref, err := tx.GetOrCreatePreference(ctx, tag)
		if err != nil {
			return err
		}
		if err := tx.AttachArticlePreference(ctx, article.ID, pref.ID); err != nil {
			return err
		}
		if err := tx.AttachUserPreference(ctx, userID, pref.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) extract(ctx context.Context, workflow, title, overview string) ([]string, error) {
	start := time.Now()
	tags, err := s.extractor.Extract(ctx, title, overview)
	metrics.TagExtractionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TagExtractions.WithLabelValues(workflow, "error").Inc()
		return nil, fmt.Errorf("extract tags: %w", err)
	}

	metrics.TagExtractions.WithLabelValues(workflow, "ok").Inc()
	metrics.TagsExtracted.Observe(float64(len(tags)))
	logging.Debug().Str("title", title).Strs("tags", tags).Msg("tags extracted")
	return tags, nil
}

// SetPreferences replaces the user's preferences with titles.
func (s *Service) SetPreferences(ctx context.Context, userID int64, titles []string) error {
	return s.store.InTx(ctx, func(tx *storage.Store) error {
		if err := tx.ClearUserPreferences(ctx, userID); err != nil {
			return err
		}
		for _, title := range titles {
			if strings.TrimSpace(title) == "" {
				continue
			}
			pref, err := tx.GetOrCreatePreference(ctx, title)
			if err != nil {
				return err
			}
			if err := tx.AttachUserPreference(ctx, userID, pref.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) Preferences(ctx context.Context, userID int64) ([]string, error) {
	return s.store.UserPreferenceTitles(ctx, userID)
}

// Boards lists the boards of the user with that name.
func (s *Service) Boards(ctx context.Context, userName string) ([]model.Board, error) {
	user, err := s.store.UserByName(ctx, userName)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("user %q: %w", userName, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.store.BoardsByUser(ctx, user.ID)
}

// BoardArticles lists a board's articles as seen by viewerID; zero means anonymous.
func (s *Service) BoardArticles(ctx context.Context, viewerID, boardID int64) (model.Board, []model.ArticleView, error) {
	board, err := s.store.BoardByID(ctx, boardID)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Board{}, nil, fmt.Errorf("board %d: %w", boardID, ErrNotFound)
	}
	if err != nil {
		return model.Board{}, nil, err
	}

	articles, err := s.store.ArticlesByBoard(ctx, boardID)
	if err != nil {
		return model.Board{}, nil, err
	}

	var saved []string
	if viewerID != 0 {
		if saved, err = s.store.SavedTitles(ctx, viewerID); err != nil {
			return model.Board{}, nil, err
		}
	}

	return board, feed.BoardViews(articles, viewerID != 0, saved), nil
}

// CreateUser registers a user profile. Name and email are required and must both be unused.
func (s *Service) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if u.Name == "" || u.Email == "" {
		return model.User{}, fmt.Errorf("name and email are required: %w", ErrInvalid)
	}

	id, err := s.store.CreateUser(ctx, u)
	if errors.Is(err, storage.ErrDuplicate) {
		return model.User{}, fmt.Errorf("user %q or email %q: %w", u.Name, u.Email, ErrConflict)
	}
	if err != nil {
		return model.User{}, err
	}
	u.ID = id

	logging.Info().Int64("user", id).Str("name", u.Name).Msg("user created")
	return u, nil
}

// User returns the profile of the user with that name.
func (s *Service) User(ctx context.Context, name string) (model.User, error) {
	u, err := s.store.UserByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return model.User{}, fmt.Errorf("user %q: %w", name, ErrNotFound)
	}
	return u, err
}

// UpdateProfile changes the name and description of userID.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, name, description string) (model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.User{}, fmt.Errorf("name is required: %w", ErrInvalid)
	}

	var u model.User
	err := s.store.InTx(ctx, func(tx *storage.Store) error {
		if err := tx.UpdateUser(ctx, model.User{ID: userID, Name: name, Description: description}); err != nil {
			return err
		}
		var err error
		u, err = tx.UserByID(ctx, userID)
		return err
	})
	switch {
	case errors.Is(err, storage.ErrDuplicate):
		return model.User{}, fmt.Errorf("user %q: %w", name, ErrConflict)
	case errors.Is(err, storage.ErrNotFound):
		return model.User{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	case err != nil:
		return model.User{}, err
	}
	return u, nil
}

// UserExists reports whether id names a stored user.
func (s *Service) UserExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.store.UserByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Ingest adds an article to the catalog without placing it on any board. Articles whose link
// is already stored are skipped and reported as not added.
func (s *Service) Ingest(ctx context.Context, in ArticleInput) (bool, error) {
	if in.Link != "" {
		exists, err := s.store.ArticleExistsByLink(ctx, in.Link)
		if err != nil {
			return false, err
		}
		if exists {
			return false, nil
		}
	}

	tags, err := s.extract(ctx, "ingest", in.Title, in.Overview)
	if err != nil {
		return false, err
	}

	err = s.store.InTx(ctx, func(tx *storage.Store) error {
		article, err := tx.CreateArticle(ctx, model.Article{
			Title:    in.Title,
			Overview: in.Overview,
			Link:     in.Link,
			Pic:      in.Pic,
		})
		if err != nil {
			return err
		}
		for _, tag := range tags {
			pref, err := tx.GetOrCreatePreference(ctx, tag)
			if err != nil {
				return err
			}
			if err := tx.AttachArticlePreference(ctx, article.ID, pref.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
