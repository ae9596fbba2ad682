// Package medication holds the medication knowledge base and maps detected
// symptoms to the medications that treat them.
package medication

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyKnowledgeBase  = errors.New("medication: knowledge base has no medications")
	ErrDuplicateMedication = errors.New("medication: duplicate medication name")
)

// Medication is one knowledge-base record. Read-only after load.
type Medication struct {
	Name     string   `json:"name"`
	Symptoms []string `json:"symptoms"`
}

// Treats reports whether symptom is listed for m.
func (m Medication) Treats(symptom string) bool {
	return slices.Contains(m.Symptoms, symptom)
}

// NormalizeSymptom applies NFKC and collapses whitespace. Case is kept.
func NormalizeSymptom(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFKC.String(s)
}

// Symptoms returns the distinct symptom phrases across meds in first-seen order.
func Symptoms(meds []Medication) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range meds {
		for _, s := range m.Symptoms {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func validate(meds []Medication) ([]Medication, error) {
	if len(meds) == 0 {
		return nil, ErrEmptyKnowledgeBase
	}
	names := make(map[string]struct{}, len(meds))
	out := make([]Medication, 0, len(meds))
	for _, m := range meds {
		if _, ok := names[m.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMedication, m.Name)
		}
		names[m.Name] = struct{}{}

		symptoms := make([]string, 0, len(m.Symptoms))
		for _, s := range m.Symptoms {
			if n := NormalizeSymptom(s); n != "" {
				symptoms = append(symptoms, n)
			}
		}
		out = append(out, Medication{Name: m.Name, Symptoms: symptoms})
	}
	return out, nil
}
