// Package tagger turns the title and description of an article into a set of topical tags.
//
// An Extractor runs a list of independent strategies over the same text and unions their
// output. Tags are returned normalised (trimmed, lowercase) and without duplicates; no order
// is promised.
package tagger

import (
	"context"
	"fmt"
	"strings"

	"github.com/0x0BSoD/newsBoard/internal/model"
)

type Strategy interface {
	Name() string
	Extract(ctx context.Context, text string) ([]string, error)
}

type Extractor struct {
	strategies []Strategy
}

func New(strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

// Extract joins title and description with a space and runs every strategy on the result.
// Any strategy error fails the whole call: partial tagging would skew the user's preferences.
func (e *Extractor) Extract(ctx context.Context, title, description string) ([]string, error) {
	text := title + " " + description
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	var (
		seen = make(map[string]struct{})
		tags = make([]string, 0)
	)
	for _, s := range e.strategies {
		found, err := s.Extract(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("%s strategy: %w", s.Name(), err)
		}
		for _, tag := range found {
			norm := model.Normalize(tag)
			if norm == "" {
				continue
			}
			if _, ok := seen[norm]; ok {
				continue
			}
			seen[norm] = struct{}{}
			tags = append(tags, norm)
		}
	}

	return tags, nil
}
