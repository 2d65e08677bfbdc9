package tagger

import (
	"context"

	"github.com/samber/lo"

	"github.com/0x0BSoD/newsBoard/internal/keyphrase"
)

const DefaultMinScore = 0.45

type Scorer interface {
	Score(ctx context.Context, text string) ([]keyphrase.Candidate, error)
}

// KeyphraseStrategy keeps the embedding model's candidates scoring at least MinScore.
type KeyphraseStrategy struct {
	scorer   Scorer
	minScore float64
}

func NewKeyphraseStrategy(scorer Scorer, minScore float64) *KeyphraseStrategy {
	return &KeyphraseStrategy{scorer: scorer, minScore: minScore}
}

func (s *KeyphraseStrategy) Name() string { return "keyphrase" }

func (s *KeyphraseStrategy) Extract(ctx context.Context, text string) ([]string, error) {
	candidates, err := s.scorer.Score(ctx, text)
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(candidates, func(c keyphrase.Candidate, _ int) (string, bool) {
		return c.Phrase, c.Score >= s.minScore
	}), nil
}
