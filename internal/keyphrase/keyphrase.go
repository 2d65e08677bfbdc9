// Package keyphrase extracts short key phrases from a document by comparing the embedding of
// every candidate 1-2 word phrase with the embedding of the whole document.
package keyphrase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/0x0BSoD/newsBoard/internal/embedding"
)

const (
	DefaultTopN = 10
	batchSize   = 128
)

type Candidate struct {
	Phrase string
	Score  float64
}

// Model is read-only after construction and safe for concurrent use.
type Model struct {
	embedder embedding.Embedder
	topN     int
}

func NewModel(embedder embedding.Embedder, topN int) *Model {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Model{embedder: embedder, topN: topN}
}

// Score returns up to topN candidates ordered by descending similarity to text.
// Scores are cosine similarities clamped to [0,1].
func (m *Model) Score(ctx context.Context, text string) ([]Candidate, error) {
	phrases := Candidates(text)
	if len(phrases) == 0 {
		return nil, nil
	}

	docVec, err := m.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed document: %w", err)
	}

	scored := make([]Candidate, 0, len(phrases))
	for _, chunk := range lo.Chunk(phrases, batchSize) {
		vecs, err := m.embedder.Embed(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("embed candidates: %w", err)
		}
		for i, v := range vecs {
			scored = append(scored, Candidate{
				Phrase: chunk[i],
				Score:  clamp01(cosine(docVec[0], v)),
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > m.topN {
		scored = scored[:m.topN]
	}
	return scored, nil
}

// Runs of two or more Unicode letters, digits or underscores.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Candidates lists the distinct unigrams and bigrams of text, lowercased, with English stop
// words removed before bigrams are formed. The result is sorted.
func Candidates(text string) []string {
	tokens := lo.Filter(tokenPattern.FindAllString(strings.ToLower(text), -1), func(t string, _ int) bool {
		_, stop := englishStopWords[t]
		return !stop
	})

	set := make(map[string]struct{}, 2*len(tokens))
	for i, t := range tokens {
		set[t] = struct{}{}
		if i+1 < len(tokens) {
			set[t+" "+tokens[i+1]] = struct{}{}
		}
	}

	out := lo.Keys(set)
	sort.Strings(out)
	return out
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

var ErrNotLoaded = errors.New("keyphrase: model not loaded")

// Loader builds the Model once per process. The first Load probes the embedding backend;
// a failed probe is cached and returned to every later caller.
type Loader struct {
	build func() (embedding.Embedder, error)
	topN  int

	once  sync.Once
	model *Model
	err   error
}

func NewLoader(build func() (embedding.Embedder, error), topN int) *Loader {
	return &Loader{build: build, topN: topN}
}

func (l *Loader) Load(ctx context.Context) (*Model, error) {
	l.once.Do(func() {
		e, err := l.build()
		if err != nil {
			l.err = fmt.Errorf("build embedder: %w", err)
			return
		}
		if _, err := e.Embed(ctx, []string{"ready"}); err != nil {
			l.err = fmt.Errorf("probe embedding model: %w", err)
			return
		}
		l.model = NewModel(e, l.topN)
	})

	if l.err != nil {
		return nil, l.err
	}
	if l.model == nil {
		return nil, ErrNotLoaded
	}
	return l.model, nil
}
