// Package symptom extracts currently active, non-negated symptom mentions
// from parsed free text.
package symptom

import (
	"context"
	"fmt"

	"github.com/Skufu/symptomrx/internal/medication"
	"github.com/Skufu/symptomrx/internal/nlp"
)

// MatchLabel is the matcher label every symptom pattern is registered under.
const MatchLabel = "SYMPTOMS"

// Tokenizer builds pattern token sequences the way the engine tokenizes input.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]string, error)
}

// Lexicon is the immutable set of known symptom phrases and their matcher.
type Lexicon struct {
	phrases []string
	matcher *nlp.PhraseMatcher
}

// NewLexicon derives the distinct symptom phrases from meds and builds the
// matcher. Any tokenizer failure is returned; callers treat it as fatal.
func NewLexicon(ctx context.Context, tok Tokenizer, meds []medication.Medication) (*Lexicon, error) {
	phrases := medication.Symptoms(meds)
	patterns := make([][]string, 0, len(phrases))
	for _, p := range phrases {
		words, err := tok.Tokenize(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("tokenize symptom %q: %w", p, err)
		}
		patterns = append(patterns, words)
	}

	m := nlp.NewPhraseMatcher()
	m.Add(MatchLabel, patterns)
	return &Lexicon{phrases: phrases, matcher: m}, nil
}

// Phrases returns a copy of the known symptom phrases.
func (l *Lexicon) Phrases() []string {
	return append([]string(nil), l.phrases...)
}

// Tag locates symptom phrases in doc. Hits may overlap or share a root.
func (l *Lexicon) Tag(doc *nlp.Document) []nlp.Match {
	return l.matcher.Match(doc)
}
