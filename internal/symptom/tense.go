package symptom

import "github.com/Skufu/symptomrx/internal/nlp"

// Tense of the predicate governing a mention.
type Tense string

const (
	TensePast    Tense = "past"
	TensePresent Tense = "present"
	TenseFuture  Tense = "future"
	TenseUnknown Tense = "unknown"
)

// TenseOf classifies root's head by its fine-grained tag. Future is a literal
// check for "will" or "going" on the head only.
func TenseOf(root nlp.Token) Tense {
	verb := root.Head()
	switch verb.Tag() {
	case "VBD", "VBN":
		return TensePast
	case "VBZ", "VBP":
		return TensePresent
	}
	switch verb.Text() {
	case "will", "going":
		return TenseFuture
	}
	return TenseUnknown
}
