package nlp

import "slices"

// Match is one phrase hit: tokens [Start, End) matched a pattern under Label.
type Match struct {
	Label      string
	Start, End int
}

// PhraseMatcher locates exact token-sequence patterns in a document.
// It is safe for concurrent Match calls once all Add calls have returned.
type PhraseMatcher struct {
	root *trieNode
}

type trieNode struct {
	next   map[string]*trieNode
	labels []string
}

// NewPhraseMatcher returns an empty matcher.
func NewPhraseMatcher() *PhraseMatcher {
	return &PhraseMatcher{root: &trieNode{next: map[string]*trieNode{}}}
}

// Add registers patterns under label. Empty patterns are ignored and a
// pattern already present under the same label is not added twice.
func (m *PhraseMatcher) Add(label string, patterns [][]string) {
	for _, p := range patterns {
		if len(p) == 0 {
			continue
		}
		n := m.root
		for _, w := range p {
			child, ok := n.next[w]
			if !ok {
				child = &trieNode{next: map[string]*trieNode{}}
				n.next[w] = child
			}
			n = child
		}
		if !slices.Contains(n.labels, label) {
			n.labels = append(n.labels, label)
		}
	}
}

// Match returns every hit, overlaps included, sorted by start then end.
func (m *PhraseMatcher) Match(doc *Document) []Match {
	texts := doc.Texts()
	var out []Match
	for start := range texts {
		n := m.root
		for end := start; end < len(texts); end++ {
			child, ok := n.next[texts[end]]
			if !ok {
				break
			}
			n = child
			for _, l := range n.labels {
				out = append(out, Match{Label: l, Start: start, End: end + 1})
			}
		}
	}
	return out
}
