// Package nlp defines the capability the symptom pipeline consumes from a
// natural-language engine: dependency-parsed tokens with head, children,
// ancestor and subtree accessors, plus a phrase matcher over token texts.
package nlp

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrMalformedParse is returned when engine output does not form a dependency
// forest rooted at self-headed tokens.
var ErrMalformedParse = errors.New("nlp: malformed parse")

// Token is one parsed token. Implementations are read-only.
type Token interface {
	Index() int
	Text() string
	Lower() string
	Tag() string
	Dep() string
	// Head returns the governing token; a sentence root returns itself.
	Head() Token
	Children() []Token
	// Ancestors walks root-ward, excluding the token itself.
	Ancestors() iter.Seq[Token]
	// Subtree yields every dominated token, inclusive, in document order.
	Subtree() iter.Seq[Token]
}

// Engine is the external parser.
type Engine interface {
	Parse(ctx context.Context, text string) (*Document, error)
	Tokenize(ctx context.Context, text string) ([]string, error)
}

// TokenData is the wire record for a parsed token. Head is an absolute index
// into the document; Whitespace is the text trailing the token ("" or " ").
type TokenData struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	Whitespace string `json:"whitespace"`
	Tag        string `json:"tag"`
	Dep        string `json:"dep"`
	Head       int    `json:"head"`
}

// Document is a parsed text.
type Document struct {
	data     []TokenData
	tokens   []*token
	children [][]int
}

// NewDocument validates records and links them into a tree.
func NewDocument(records []TokenData) (*Document, error) {
	d := &Document{
		data:     records,
		tokens:   make([]*token, len(records)),
		children: make([][]int, len(records)),
	}
	for i, r := range records {
		if r.Index != i {
			return nil, fmt.Errorf("%w: token %d has index %d", ErrMalformedParse, i, r.Index)
		}
		if r.Head < 0 || r.Head >= len(records) {
			return nil, fmt.Errorf("%w: token %d has head %d out of range", ErrMalformedParse, i, r.Head)
		}
		d.tokens[i] = &token{doc: d, i: i}
		if r.Head != i {
			d.children[r.Head] = append(d.children[r.Head], i)
		}
	}
	for i := range records {
		steps := 0
		for j := i; records[j].Head != j; j = records[j].Head {
			steps++
			if steps > len(records) {
				return nil, fmt.Errorf("%w: cycle through token %d", ErrMalformedParse, i)
			}
		}
	}
	return d, nil
}

// Len returns the number of tokens.
func (d *Document) Len() int { return len(d.tokens) }

// Token returns the i-th token.
func (d *Document) Token(i int) Token { return d.tokens[i] }

// Tokens yields every token in order.
func (d *Document) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for _, t := range d.tokens {
			if !yield(t) {
				return
			}
		}
	}
}

// Span returns tokens [start, end).
func (d *Document) Span(start, end int) Span {
	return Span{doc: d, Start: start, End: end}
}

// Texts returns the token texts in order.
func (d *Document) Texts() []string {
	out := make([]string, len(d.data))
	for i, r := range d.data {
		out[i] = r.Text
	}
	return out
}

// Span is a contiguous token range.
type Span struct {
	doc        *Document
	Start, End int
}

// Text returns the span's surface text without trailing whitespace.
func (s Span) Text() string {
	var b strings.Builder
	for i := s.Start; i < s.End; i++ {
		b.WriteString(s.doc.data[i].Text)
		if i < s.End-1 {
			b.WriteString(s.doc.data[i].Whitespace)
		}
	}
	return b.String()
}

// Root returns the span token highest in the tree. Ties go to the earliest.
func (s Span) Root() Token {
	best, bestDepth := -1, 0
	for i := s.Start; i < s.End; i++ {
		depth := s.doc.depth(i)
		if best < 0 || depth < bestDepth {
			best, bestDepth = i, depth
		}
	}
	if best < 0 {
		return nil
	}
	return s.doc.tokens[best]
}

func (d *Document) depth(i int) int {
	n := 0
	for j := i; d.data[j].Head != j; j = d.data[j].Head {
		n++
	}
	return n
}

type token struct {
	doc *Document
	i   int
}

func (t *token) Index() int    { return t.i }
func (t *token) Text() string  { return t.doc.data[t.i].Text }
func (t *token) Lower() string { return strings.ToLower(t.doc.data[t.i].Text) }
func (t *token) Tag() string   { return t.doc.data[t.i].Tag }
func (t *token) Dep() string   { return t.doc.data[t.i].Dep }

func (t *token) Head() Token {
	return t.doc.tokens[t.doc.data[t.i].Head]
}

func (t *token) Children() []Token {
	idx := t.doc.children[t.i]
	out := make([]Token, len(idx))
	for k, c := range idx {
		out[k] = t.doc.tokens[c]
	}
	return out
}

func (t *token) Ancestors() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for j := t.i; t.doc.data[j].Head != j; {
			j = t.doc.data[j].Head
			if !yield(t.doc.tokens[j]) {
				return
			}
		}
	}
}

func (t *token) Subtree() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for j := range t.doc.tokens {
			if j == t.i || t.doc.dominates(t.i, j) {
				if !yield(t.doc.tokens[j]) {
					return
				}
			}
		}
	}
}

// dominates reports whether a is a proper ancestor of b.
func (d *Document) dominates(a, b int) bool {
	for j := b; d.data[j].Head != j; {
		j = d.data[j].Head
		if j == a {
			return true
		}
	}
	return false
}
