package tagger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0BSoD/newsBoard/internal/keyphrase"
	"github.com/0x0BSoD/newsBoard/internal/model"
)

type stubScorer struct {
	candidates []keyphrase.Candidate
	err        error
	calls      int
}

func (s *stubScorer) Score(context.Context, string) ([]keyphrase.Candidate, error) {
	s.calls++
	return s.candidates, s.err
}

// runeEmbedder derives a vector from the letters of each text. It holds no state.
type runeEmbedder struct{}

func (runeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, 4)
		for _, r := range strings.ToLower(t) {
			v[int(r)%len(v)]++
		}
		out[i] = v
	}
	return out, nil
}

type fixedStrategy []string

func (f fixedStrategy) Name() string { return "fixed" }

func (f fixedStrategy) Extract(context.Context, string) ([]string, error) { return f, nil }

func defaultExtractor(scorer Scorer) *Extractor {
	return New(
		NewKeyphraseStrategy(scorer, DefaultMinScore),
		NewVocabularyStrategy(DefaultVocabulary),
		NewTopWordsStrategy(DefaultTopWords),
	)
}

func TestExtractEmptyInput(t *testing.T) {
	scorer := &stubScorer{}

	tags, err := defaultExtractor(scorer).Extract(context.Background(), "", "")
	require.NoError(t, err)

	assert.NotNil(t, tags)
	assert.Empty(t, tags)
	assert.Zero(t, scorer.calls)
}

func TestExtractSpaceXRoundTrip(t *testing.T) {
	tags, err := defaultExtractor(&stubScorer{}).Extract(
		context.Background(),
		"SpaceX launches new rocket",
		"NASA partners on private spaceflight mission",
	)
	require.NoError(t, err)

	assert.Contains(t, tags, "space")
	assert.Contains(t, tags, "nasa")
}

func TestExtractUnionsAndDedupsCaseInsensitively(t *testing.T) {
	e := New(
		fixedStrategy{"Space", "rocket"},
		fixedStrategy{"SPACE ", "nasa"},
		fixedStrategy{"Rocket", ""},
	)

	tags, err := e.Extract(context.Background(), "x", "")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"space", "rocket", "nasa"}, tags)
}

func TestExtractNoDuplicates(t *testing.T) {
	scorer := &stubScorer{candidates: []keyphrase.Candidate{
		{Phrase: "machine learning", Score: 0.8},
		{Phrase: "learning", Score: 0.6},
	}}

	tags, err := defaultExtractor(scorer).Extract(
		context.Background(),
		"Machine Learning and machine learning",
		"learning about MACHINE LEARNING",
	)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, tag := range tags {
		norm := model.Normalize(tag)
		assert.False(t, seen[norm], "duplicate tag %q", tag)
		seen[norm] = true
	}
	assert.Contains(t, tags, "machine learning")
}

func TestExtractPropagatesScorerError(t *testing.T) {
	_, err := defaultExtractor(&stubScorer{err: errors.New("timeout")}).Extract(context.Background(), "title", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyphrase")
}

func TestKeyphraseStrategyThreshold(t *testing.T) {
	s := NewKeyphraseStrategy(&stubScorer{candidates: []keyphrase.Candidate{
		{Phrase: "rocket launch", Score: 0.71},
		{Phrase: "spacex", Score: 0.45},
		{Phrase: "new", Score: 0.449},
	}}, DefaultMinScore)

	got, err := s.Extract(context.Background(), "anything")
	require.NoError(t, err)

	assert.Equal(t, []string{"rocket launch", "spacex"}, got)
}

func TestVocabularyWithoutEmbedding(t *testing.T) {
	e := New(NewVocabularyStrategy(DefaultVocabulary))

	tags, err := e.Extract(context.Background(), "Premier League FOOTBALL recap", "Cricket too")
	require.NoError(t, err)

	assert.Contains(t, tags, "football")
	assert.Contains(t, tags, "cricket")
}

func TestVocabularySizeCountsDistinctPhrases(t *testing.T) {
	s := NewVocabularyStrategy([]string{"space", "Space", "nasa", ""})

	assert.Equal(t, 2, s.Size())
	assert.Len(t, DefaultVocabulary, NewVocabularyStrategy(DefaultVocabulary).Size())
}

func TestDefaultVocabularyShape(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range DefaultVocabulary {
		assert.Equal(t, strings.ToLower(v), v)
		assert.False(t, seen[v], "duplicate vocabulary entry %q", v)
		seen[v] = true
	}
	assert.GreaterOrEqual(t, len(DefaultVocabulary), 150)
	assert.LessOrEqual(t, len(DefaultVocabulary), 250)
}

func TestTopWords(t *testing.T) {
	got := TopWords("Go go GO zig rust rust the the the an it py3 abc_def café", 5)

	assert.Equal(t, []string{"rust", "zig"}, got)
}

func TestTopWordsRulesOutShortAndStopwords(t *testing.T) {
	got := TopWords("The cat and the dog: who, what, where? ox ox ox", 5)

	assert.Equal(t, []string{"cat", "dog"}, got)
}

func TestTopWordsTieBreakFirstSeen(t *testing.T) {
	got := TopWords("delta alpha charlie bravo echo foxtrot alpha delta", 5)

	assert.Equal(t, []string{"delta", "alpha", "charlie", "bravo", "echo"}, got)
}

func TestTopWordsLimit(t *testing.T) {
	got := NewTopWordsStrategy(0)
	words, err := got.Extract(context.Background(), "one two three four five six seven eight nine ten")
	require.NoError(t, err)

	assert.Len(t, words, DefaultTopWords)
	for _, w := range words {
		assert.GreaterOrEqual(t, len(w), 3)
		_, stop := topWordStopWords[w]
		assert.False(t, stop)
	}
}

func TestExtractConcurrent(t *testing.T) {
	e := defaultExtractor(keyphrase.NewModel(runeEmbedder{}, keyphrase.DefaultTopN))
	const title, overview = "SpaceX launches new rocket", "NASA partners on private spaceflight mission"

	want, err := e.Extract(context.Background(), title, overview)
	require.NoError(t, err)
	require.NotEmpty(t, want)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Extract(context.Background(), title, overview)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
