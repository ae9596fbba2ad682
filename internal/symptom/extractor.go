package symptom

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Skufu/symptomrx/internal/nlp"
)

// Parser is the engine entry point the extractor needs.
type Parser interface {
	Parse(ctx context.Context, text string) (*nlp.Document, error)
}

// Detection is the judgment on one mention.
type Detection struct {
	Symptom string `json:"symptom"`
	Negated bool   `json:"negated"`
	Tense   Tense  `json:"tense"`
	Current bool   `json:"current"`
}

// Included reports whether the mention counts as an active symptom.
func (d Detection) Included() bool { return d.Current && !d.Negated }

// Analysis is the per-request result.
type Analysis struct {
	Detections []Detection
	Contrast   bool
}

// Symptoms returns the included phrases, once each, in detection order.
func (a *Analysis) Symptoms() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, d := range a.Detections {
		if !d.Included() {
			continue
		}
		if _, ok := seen[d.Symptom]; ok {
			continue
		}
		seen[d.Symptom] = struct{}{}
		out = append(out, d.Symptom)
	}
	return out
}

// Extractor runs the filtering pipeline. It holds only shared read-only state
// and is safe for concurrent use.
type Extractor struct {
	parser  Parser
	lexicon *Lexicon
	logger  *zap.Logger
}

// NewExtractor wires an extractor. A nil logger discards output.
func NewExtractor(parser Parser, lexicon *Lexicon, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{parser: parser, lexicon: lexicon, logger: logger}
}

// Extract returns the currently active, non-negated symptoms in text.
func (e *Extractor) Extract(ctx context.Context, text string) ([]string, error) {
	a, err := e.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}
	return a.Symptoms(), nil
}

// Analyze parses text and judges every distinct mention.
func (e *Extractor) Analyze(ctx context.Context, text string) (*Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return &Analysis{}, nil
	}
	doc, err := e.parser.Parse(ctx, strings.ToLower(text))
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return e.analyzeDocument(doc), nil
}

func (e *Extractor) analyzeDocument(doc *nlp.Document) *Analysis {
	a := &Analysis{Contrast: ResolvedByContrast(doc)}
	processed := make(map[int]struct{})

	for _, m := range e.lexicon.Tag(doc) {
		span := doc.Span(m.Start, m.End)
		root := span.Root()
		if _, ok := processed[root.Index()]; ok {
			MentionsSkippedTotal.Inc()
			continue
		}
		processed[root.Index()] = struct{}{}

		cues := NegationCues(root)
		d := Detection{
			Symptom: span.Text(),
			Negated: len(cues)%2 == 1,
			Tense:   TenseOf(root),
		}
		d.Current = d.Tense != TensePast && !a.Contrast
		a.Detections = append(a.Detections, d)

		DetectionsTotal.WithLabelValues(outcome(d, a.Contrast)).Inc()
		e.logger.Debug("symptom mention",
			zap.String("symptom", d.Symptom),
			zap.String("root", root.Text()),
			zap.Strings("negation_cues", cueList(cues)),
			zap.String("tense", string(d.Tense)),
			zap.Bool("contrast", a.Contrast),
			zap.Bool("included", d.Included()),
		)
	}
	return a
}

func outcome(d Detection, contrast bool) string {
	switch {
	case d.Included():
		return "included"
	case d.Negated:
		return "negated"
	case contrast:
		return "contrast"
	default:
		return "past"
	}
}

func cueList(cues map[string]struct{}) []string {
	out := make([]string, 0, len(cues))
	for c := range cues {
		out = append(out, c)
	}
	return out
}
