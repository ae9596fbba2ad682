package symptom

import "github.com/Skufu/symptomrx/internal/nlp"

var (
	contrastWords = map[string]bool{"but": true, "however": true}
	recoveryWords = map[string]bool{
		"fine":      true,
		"better":    true,
		"well":      true,
		"okay":      true,
		"recovered": true,
	}
)

// ResolvedByContrast reports whether any contrastive conjunction dominates a
// recovery word ("... but i'm fine now"). The first hit wins.
func ResolvedByContrast(doc *nlp.Document) bool {
	for tok := range doc.Tokens() {
		if !contrastWords[tok.Lower()] {
			continue
		}
		for desc := range tok.Subtree() {
			if recoveryWords[desc.Lower()] {
				return true
			}
		}
	}
	return false
}
