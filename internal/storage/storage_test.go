package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0BSoD/newsBoard/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), "sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newUser(t *testing.T, s *Store, name string) int64 {
	t.Helper()

	id, err := s.CreateUser(context.Background(), model.User{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return id
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Migrate(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := newUser(t, s, "ada")

	u, err := s.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Name)

	u, err = s.UserByName(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	_, err = s.UserByName(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardsAndArticles(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ada := newUser(t, s, "ada")
	bob := newUser(t, s, "bob")

	reading, err := s.CreateBoard(ctx, ada, "reading")
	require.NoError(t, err)
	bobs, err := s.CreateBoard(ctx, bob, "later")
	require.NoError(t, err)

	got, err := s.BoardByName(ctx, ada, "reading")
	require.NoError(t, err)
	assert.Equal(t, reading.ID, got.ID)

	_, err = s.BoardByName(ctx, bob, "reading")
	assert.ErrorIs(t, err, ErrNotFound)

	a, err := s.CreateArticle(ctx, model.Article{Title: "SpaceX launches new rocket", Overview: "o", Link: "https://x/1"})
	require.NoError(t, err)
	b, err := s.CreateArticle(ctx, model.Article{Title: "Snake Facts", Link: "https://x/2"})
	require.NoError(t, err)

	require.NoError(t, s.AddArticleToBoard(ctx, a.ID, reading.ID))
	require.NoError(t, s.AddArticleToBoard(ctx, a.ID, reading.ID))
	require.NoError(t, s.AddArticleToBoard(ctx, b.ID, bobs.ID))

	onBoard, err := s.ArticlesByBoard(ctx, reading.ID)
	require.NoError(t, err)
	require.Len(t, onBoard, 1)
	assert.Equal(t, a.ID, onBoard[0].ID)

	titles, err := s.SavedTitles(ctx, ada)
	require.NoError(t, err)
	assert.Equal(t, []string{"SpaceX launches new rocket"}, titles)

	owned, err := s.OwnedArticleIDs(ctx, ada)
	require.NoError(t, err)
	assert.Equal(t, map[int64]struct{}{a.ID: {}}, owned)

	boards, err := s.BoardsByUser(ctx, ada)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "reading", boards[0].Name)

	exists, err := s.ArticleExistsByLink(ctx, "https://x/2")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetOrCreatePreferenceCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p1, err := s.GetOrCreatePreference(ctx, "Space")
	require.NoError(t, err)
	p2, err := s.GetOrCreatePreference(ctx, "  space ")
	require.NoError(t, err)
	p3, err := s.GetOrCreatePreference(ctx, "SPACE")
	require.NoError(t, err)

	assert.Equal(t, p1.ID, p2.ID)
	assert.Equal(t, p1.ID, p3.ID)
	assert.Equal(t, "Space", p3.Title)

	_, err = s.GetOrCreatePreference(ctx, "   ")
	assert.Error(t, err)
}

func TestPreferencesAttachAndCatalog(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ada := newUser(t, s, "ada")

	a, err := s.CreateArticle(ctx, model.Article{Title: "Mars rover finds water"})
	require.NoError(t, err)
	_, err = s.CreateArticle(ctx, model.Article{Title: "Untagged"})
	require.NoError(t, err)

	for _, label := range []string{"space", "science"} {
		p, err := s.GetOrCreatePreference(ctx, label)
		require.NoError(t, err)
		require.NoError(t, s.AttachArticlePreference(ctx, a.ID, p.ID))
		require.NoError(t, s.AttachArticlePreference(ctx, a.ID, p.ID))
		require.NoError(t, s.AttachUserPreference(ctx, ada, p.ID))
		require.NoError(t, s.AttachUserPreference(ctx, ada, p.ID))
	}

	catalog, err := s.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	for _, c := range catalog {
		if c.ID == a.ID {
			assert.Equal(t, []string{"space", "science"}, c.Preferences)
		} else {
			assert.Empty(t, c.Preferences)
		}
	}

	titles, err := s.UserPreferenceTitles(ctx, ada)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"space", "science"}, titles)

	require.NoError(t, s.ClearUserPreferences(ctx, ada))
	titles, err = s.UserPreferenceTitles(ctx, ada)
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.InTx(ctx, func(tx *Store) error {
		_, err := tx.CreateArticle(ctx, model.Article{Title: "doomed"})
		require.NoError(t, err)
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	catalog, err := s.Catalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestSources(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id, err := s.AddSource(ctx, model.Source{Name: "hn", FeedURL: "https://hnrss.org/frontpage"})
	require.NoError(t, err)

	sources, err := s.Sources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, id, sources[0].ID)
	assert.Equal(t, "hn", sources[0].Name)
}

func TestAddSourceDuplicateURL(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.AddSource(ctx, model.Source{Name: "hn", FeedURL: "https://hnrss.org/frontpage"})
	require.NoError(t, err)

	_, err = s.AddSource(ctx, model.Source{Name: "hacker news", FeedURL: "https://hnrss.org/frontpage"})
	require.ErrorIs(t, err, ErrDuplicate)

	sources, err := s.Sources(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 1)
}

func TestCreateUserDuplicate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreateUser(ctx, model.User{Name: "ada", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, model.User{Name: "ada", Email: "other@example.com"})
	require.ErrorIs(t, err, ErrDuplicate)
	_, err = s.CreateUser(ctx, model.User{Name: "grace", Email: "ada@example.com"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ada := newUser(t, s, "ada")
	newUser(t, s, "bob")

	require.NoError(t, s.UpdateUser(ctx, model.User{ID: ada, Name: "ada", Description: "engines"}))
	u, err := s.UserByID(ctx, ada)
	require.NoError(t, err)
	assert.Equal(t, "engines", u.Description)
	assert.Equal(t, "ada@example.com", u.Email)

	require.ErrorIs(t, s.UpdateUser(ctx, model.User{ID: ada, Name: "bob"}), ErrDuplicate)
	require.ErrorIs(t, s.UpdateUser(ctx, model.User{ID: 999, Name: "nobody"}), ErrNotFound)
}
