package tagger

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

const DefaultTopWords = 5

// wordPattern splits text into word-character runs. Only runs made entirely of a-z count as
// words, so "py3" or "café" contribute nothing.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// TopWordsStrategy returns the most frequent non-stopword words.
type TopWordsStrategy struct {
	n int
}

func NewTopWordsStrategy(n int) *TopWordsStrategy {
	if n <= 0 {
		n = DefaultTopWords
	}
	return &TopWordsStrategy{n: n}
}

func (s *TopWordsStrategy) Name() string { return "top_words" }

func (s *TopWordsStrategy) Extract(_ context.Context, text string) ([]string, error) {
	return TopWords(text, s.n), nil
}

// TopWords counts words in order of first appearance; ties keep that order.
func TopWords(text string, n int) []string {
	var (
		counts = make(map[string]int)
		order  []string
	)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(w) < 3 || !isAlpha(w) {
			continue
		}
		if _, stop := topWordStopWords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

func isAlpha(w string) bool {
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

var topWordStopWords = map[string]struct{}{
	"the": {}, "and": {}, "to": {}, "of": {}, "in": {}, "a": {}, "for": {}, "is": {}, "on": {},
	"with": {}, "that": {}, "this": {}, "by": {}, "an": {}, "as": {}, "it": {}, "from": {},
	"at": {}, "be": {}, "are": {}, "was": {}, "or": {}, "which": {}, "but": {}, "we": {},
	"can": {}, "has": {}, "have": {}, "why": {}, "not": {}, "all": {}, "if": {}, "so": {},
	"do": {}, "you": {}, "your": {}, "they": {}, "their": {}, "he": {}, "she": {}, "him": {},
	"her": {}, "my": {}, "me": {}, "us": {}, "our": {}, "what": {}, "who": {}, "when": {},
	"where": {}, "how": {}, "does": {},
}
