// Package feed decides which catalog articles a user sees.
//
// Selection is a pure function over already loaded collections: the caller provides the
// catalog, the titles the user has saved, the user's preference titles and an optional search
// query. No ranking is applied; output order follows the catalog.
package feed

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/0x0BSoD/newsBoard/internal/model"
)

var (
	keywordPattern = regexp.MustCompile(`[a-z0-9]+`)

	keywordStopWords = map[string]struct{}{
		"and": {}, "the": {}, "for": {}, "of": {}, "to": {}, "in": {}, "on": {}, "with": {},
		"a": {}, "an": {}, "amp": {},
	}
)

// Keywords splits preference titles into the distinct tokens used for matching, in order of
// first appearance. "Health & Fitness" yields "health" and "fitness".
func Keywords(preferenceTitles []string) []string {
	var out []string
	for _, title := range preferenceTitles {
		for _, w := range keywordPattern.FindAllString(strings.ToLower(title), -1) {
			if len(w) < 3 {
				continue
			}
			if _, stop := keywordStopWords[w]; stop {
				continue
			}
			out = append(out, w)
		}
	}
	return lo.Uniq(out)
}

// Select filters the catalog for one user.
//
// With a query, an article matches when its title, overview or any preference label contains
// the query. Without one, it matches when any preference label contains a keyword derived from
// the user's preference titles; a user with no usable keywords sees the whole catalog.
// Articles whose title is in savedTitles are dropped, and the first article of each title wins.
func Select(catalog []model.Article, savedTitles, preferenceTitles []string, query string) []model.Article {
	match := matchAll
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		match = matchQuery(q)
	} else if kws := Keywords(preferenceTitles); len(kws) > 0 {
		match = matchKeywords(kws)
	}

	excluded := lo.SliceToMap(savedTitles, func(t string) (string, struct{}) {
		return t, struct{}{}
	})

	seen := make(map[string]struct{})
	out := make([]model.Article, 0)
	for _, a := range catalog {
		if _, ok := excluded[a.Title]; ok {
			continue
		}
		if _, ok := seen[a.Title]; ok {
			continue
		}
		if !match(a) {
			continue
		}
		seen[a.Title] = struct{}{}
		out = append(out, a)
	}
	return out
}

func matchAll(model.Article) bool { return true }

func matchQuery(q string) func(model.Article) bool {
	return func(a model.Article) bool {
		if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Overview), q) {
			return true
		}
		return lo.SomeBy(a.Preferences, func(p string) bool {
			return strings.Contains(strings.ToLower(p), q)
		})
	}
}

func matchKeywords(keywords []string) func(model.Article) bool {
	return func(a model.Article) bool {
		return lo.SomeBy(a.Preferences, func(p string) bool {
			p = strings.ToLower(p)
			return lo.SomeBy(keywords, func(kw string) bool {
				return strings.Contains(p, kw)
			})
		})
	}
}

// Views renders feed articles. CanSave is false for articles already on one of the viewer's
// own boards, by article identity rather than title.
func Views(articles []model.Article, owned map[int64]struct{}) []model.ArticleView {
	return lo.Map(articles, func(a model.Article, _ int) model.ArticleView {
		_, has := owned[a.ID]
		return view(a, !has)
	})
}

// BoardViews renders a board's articles for a viewer. CanSave is true only for a signed-in
// viewer who has not saved an article with the same title.
func BoardViews(articles []model.Article, signedIn bool, savedTitles []string) []model.ArticleView {
	saved := lo.SliceToMap(savedTitles, func(t string) (string, struct{}) {
		return t, struct{}{}
	})
	return lo.Map(articles, func(a model.Article, _ int) model.ArticleView {
		_, has := saved[a.Title]
		return view(a, signedIn && !has)
	})
}

func view(a model.Article, canSave bool) model.ArticleView {
	return model.ArticleView{
		ID:       a.ID,
		Title:    a.Title,
		Pic:      a.Pic,
		Overview: a.Overview,
		Link:     a.Link,
		CanSave:  canSave,
	}
}
