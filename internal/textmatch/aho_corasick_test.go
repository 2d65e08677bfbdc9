package textmatch

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindCaseInsensitive(t *testing.T) {
	m := New([]string{"space", "nasa", "machine learning"})

	got := m.Find("SpaceX and NASA bet on Machine Learning")

	assert.ElementsMatch(t, []string{"space", "nasa", "machine learning"}, got)
}

func TestFindOverlappingPatterns(t *testing.T) {
	m := New([]string{"he", "she", "his", "hers"})

	got := m.Find("ushers")

	assert.ElementsMatch(t, []string{"she", "he", "hers"}, got)
}

func TestFindSubstringInsideWords(t *testing.T) {
	m := New([]string{"art", "war"})

	assert.ElementsMatch(t, []string{"art", "war"}, m.Find("Startup software"))
}

func TestFindReportsEachPatternOnce(t *testing.T) {
	m := New([]string{"go"})

	assert.Equal(t, []string{"go"}, m.Find("go go gopher"))
}

func TestNewDropsDuplicatesAndEmpty(t *testing.T) {
	m := New([]string{"Science", "science", "", "SCIENCE", "tech"})

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"Science"}, m.Find("computer science"))
}

func TestFindNoMatches(t *testing.T) {
	m := New([]string{"cricket"})

	assert.Empty(t, m.Find("baseball season opens"))
	assert.Empty(t, m.Find(""))
	assert.Empty(t, New(nil).Find("anything"))
}

func TestFindMatchesAgainstNaiveScan(t *testing.T) {
	patterns := []string{"data", "data science", "science", "big data", "ai", "sci"}
	text := "Big Data meets data science in the AI lab"
	m := New(patterns)

	var want []string
	lower := strings.ToLower(text)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			want = append(want, p)
		}
	}

	assert.ElementsMatch(t, want, m.Find(text))
}

func TestFindConcurrent(t *testing.T) {
	m := New([]string{"football", "cricket"})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []string{"cricket"}, m.Find("Cricket world cup"))
		}()
	}
	wg.Wait()
}
