// Package textmatch finds every occurrence of a fixed set of phrases inside free text in a
// single pass, using an Aho-Corasick automaton. Matching is case-insensitive.
package textmatch

import "strings"

// Matcher is immutable once built and safe for concurrent use.
type Matcher struct {
	root     *node
	patterns []string
}

type node struct {
	children map[rune]*node
	failure  *node
	output   []int // indices into Matcher.patterns ending here
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// New builds a matcher for patterns. Empty and duplicate (case-insensitive) patterns are
// ignored; the first spelling of a duplicate is the one reported.
func New(patterns []string) *Matcher {
	m := &Matcher{root: newNode()}

	seen := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		key := strings.ToLower(p)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		m.insert(len(m.patterns), key)
		m.patterns = append(m.patterns, p)
	}

	m.buildFailureLinks()
	return m
}

func (m *Matcher) insert(index int, text string) {
	n := m.root
	for _, ch := range text {
		child, ok := n.children[ch]
		if !ok {
			child = newNode()
			n.children[ch] = child
		}
		n = child
	}
	n.output = append(n.output, index)
}

// buildFailureLinks walks the trie breadth first so every node's failure target is final
// before its children are visited.
func (m *Matcher) buildFailureLinks() {
	queue := make([]*node, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}

			if fail == nil {
				child.failure = m.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// Find returns every pattern occurring in text, each once, in order of first match end.
func (m *Matcher) Find(text string) []string {
	if len(m.patterns) == 0 || text == "" {
		return nil
	}

	var (
		found = make([]bool, len(m.patterns))
		out   []string
		n     = m.root
	)

	for _, ch := range strings.ToLower(text) {
		for n != m.root && n.children[ch] == nil {
			n = n.failure
		}
		if next, ok := n.children[ch]; ok {
			n = next
		}

		for _, idx := range n.output {
			if found[idx] {
				continue
			}
			found[idx] = true
			out = append(out, m.patterns[idx])
		}
	}

	return out
}

// Len reports the number of distinct patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}
