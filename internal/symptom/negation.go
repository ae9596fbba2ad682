package symptom

import "github.com/Skufu/symptomrx/internal/nlp"

var negationWords = map[string]bool{
	"no":      true,
	"not":     true,
	"n't":     true,
	"don't":   true,
	"doesn't": true,
	"never":   true,
	"without": true,
	"lack":    true,
}

func isNegationCue(t nlp.Token) bool {
	return t.Dep() == "neg" || negationWords[t.Lower()]
}

// NegationCues collects the distinct negation words scoping over root:
// the head's children, every ancestor and its children, and root's subtree.
func NegationCues(root nlp.Token) map[string]struct{} {
	cues := make(map[string]struct{})

	for _, child := range root.Head().Children() {
		if isNegationCue(child) {
			cues[child.Text()] = struct{}{}
		}
	}

	for anc := range root.Ancestors() {
		if negationWords[anc.Lower()] {
			cues[anc.Text()] = struct{}{}
		}
		for _, child := range anc.Children() {
			if isNegationCue(child) {
				cues[child.Text()] = struct{}{}
			}
		}
	}

	// cues governed beneath the mention, e.g. "headache, not really"
	for desc := range root.Subtree() {
		if negationWords[desc.Lower()] {
			cues[desc.Text()] = struct{}{}
		}
	}
	return cues
}

// IsNegated reports an odd number of distinct cues; two cancel out.
func IsNegated(root nlp.Token) bool {
	return len(NegationCues(root))%2 == 1
}
