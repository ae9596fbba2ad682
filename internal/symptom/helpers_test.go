package symptom

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skufu/symptomrx/internal/medication"
	"github.com/Skufu/symptomrx/internal/nlp"
)

type tk struct {
	text, tag, dep string
	head           int
}

func build(t *testing.T, toks ...tk) *nlp.Document {
	t.Helper()
	records := make([]nlp.TokenData, len(toks))
	for i, k := range toks {
		records[i] = nlp.TokenData{Index: i, Text: k.text, Whitespace: " ", Tag: k.tag, Dep: k.dep, Head: k.head}
	}
	records[len(records)-1].Whitespace = ""
	doc, err := nlp.NewDocument(records)
	require.NoError(t, err)
	return doc
}

// fakeEngine returns canned parses keyed by the lower-cased input and
// tokenizes on whitespace.
type fakeEngine struct {
	docs  map[string]*nlp.Document
	calls int
}

func (f *fakeEngine) Parse(_ context.Context, text string) (*nlp.Document, error) {
	f.calls++
	doc, ok := f.docs[text]
	if !ok {
		return nil, errors.New("no canned parse for " + text)
	}
	return doc, nil
}

func (f *fakeEngine) Tokenize(_ context.Context, text string) ([]string, error) {
	return strings.Fields(text), nil
}

var testKB = []medication.Medication{
	{Name: "Ibuprofen", Symptoms: []string{"headache", "fever", "sore throat"}},
	{Name: "Lozenge", Symptoms: []string{"sore throat", "throat"}},
	{Name: "Dextromethorphan", Symptoms: []string{"cough"}},
}

func newTestExtractor(t *testing.T, docs map[string]*nlp.Document) (*Extractor, *fakeEngine) {
	t.Helper()
	engine := &fakeEngine{docs: docs}
	lex, err := NewLexicon(context.Background(), engine, testKB)
	require.NoError(t, err)
	return NewExtractor(engine, lex, nil), engine
}

// Parses shared across tests, spaCy-style.
func haveHeadache(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 1},
		tk{"have", "VBP", "ROOT", 1},
		tk{"a", "DT", "det", 3},
		tk{"headache", "NN", "dobj", 1},
	)
}

func doNotHaveHeadache(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 3},
		tk{"do", "VBP", "aux", 3},
		tk{"not", "RB", "neg", 3},
		tk{"have", "VB", "ROOT", 3},
		tk{"a", "DT", "det", 5},
		tk{"headache", "NN", "dobj", 3},
	)
}

func dontHaveHeadache(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 3},
		tk{"do", "VBP", "aux", 3},
		tk{"n't", "RB", "neg", 3},
		tk{"have", "VB", "ROOT", 3},
		tk{"a", "DT", "det", 5},
		tk{"headache", "NN", "dobj", 3},
	)
}

func neverHadNoHeadache(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 2},
		tk{"never", "RB", "neg", 2},
		tk{"had", "VBD", "ROOT", 2},
		tk{"no", "DT", "det", 4},
		tk{"headache", "NN", "dobj", 2},
	)
}

func dontHaveNoHeadache(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 3},
		tk{"do", "VBP", "aux", 3},
		tk{"n't", "RB", "neg", 3},
		tk{"have", "VB", "ROOT", 3},
		tk{"no", "DT", "det", 5},
		tk{"headache", "NN", "dobj", 3},
	)
}

func haveNoHeadache(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 1},
		tk{"have", "VBP", "ROOT", 1},
		tk{"no", "DT", "det", 3},
		tk{"headache", "NN", "dobj", 1},
	)
}

func notThinkFever(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 3},
		tk{"do", "VBP", "aux", 3},
		tk{"not", "RB", "neg", 3},
		tk{"think", "VB", "ROOT", 3},
		tk{"i", "PRP", "nsubj", 5},
		tk{"have", "VBP", "ccomp", 3},
		tk{"a", "DT", "det", 7},
		tk{"fever", "NN", "dobj", 5},
	)
}

func hadHeadacheYesterday(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 1},
		tk{"had", "VBD", "ROOT", 1},
		tk{"a", "DT", "det", 3},
		tk{"headache", "NN", "dobj", 1},
		tk{"yesterday", "NN", "npadvmod", 1},
	)
}

func willHaveHeadache(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 2},
		tk{"will", "MD", "aux", 2},
		tk{"have", "VB", "ROOT", 2},
		tk{"a", "DT", "det", 4},
		tk{"headache", "NN", "dobj", 2},
	)
}

// "but" heads the recovery clause.
func headacheButFine(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 1},
		tk{"have", "VBP", "ROOT", 1},
		tk{"a", "DT", "det", 3},
		tk{"headache", "NN", "dobj", 1},
		tk{"but", "CC", "cc", 1},
		tk{"i", "PRP", "nsubj", 6},
		tk{"am", "VBP", "conj", 4},
		tk{"fine", "JJ", "acomp", 6},
		tk{"now", "RB", "advmod", 6},
	)
}

// "but" is a leaf coordinator, the usual parse.
func headacheButFineFlat(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 1},
		tk{"have", "VBP", "ROOT", 1},
		tk{"a", "DT", "det", 3},
		tk{"headache", "NN", "dobj", 1},
		tk{"but", "CC", "cc", 1},
		tk{"i", "PRP", "nsubj", 6},
		tk{"am", "VBP", "conj", 1},
		tk{"fine", "JJ", "acomp", 6},
		tk{"now", "RB", "advmod", 6},
	)
}

func haveSoreThroat(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 1},
		tk{"have", "VBP", "ROOT", 1},
		tk{"a", "DT", "det", 4},
		tk{"sore", "JJ", "amod", 4},
		tk{"throat", "NN", "dobj", 1},
	)
}

func coughAndCough(t *testing.T) *nlp.Document {
	return build(t,
		tk{"i", "PRP", "nsubj", 1},
		tk{"have", "VBP", "ROOT", 1},
		tk{"a", "DT", "det", 3},
		tk{"cough", "NN", "dobj", 1},
		tk{"and", "CC", "cc", 3},
		tk{"a", "DT", "det", 6},
		tk{"cough", "NN", "conj", 3},
	)
}
