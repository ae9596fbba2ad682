package medication

// Recommendation groups the detected symptoms a medication treats.
type Recommendation struct {
	Medication string   `json:"medication"`
	Symptoms   []string `json:"symptoms"`
}

// Recommend returns one record per medication treating at least one of
// symptoms, in first-implicated order. Symptoms are appended once per
// (symptom, medication) hit; a repeated input symptom is appended again.
func Recommend(meds []Medication, symptoms []string) []Recommendation {
	index := make(map[string]int)
	out := []Recommendation{}
	for _, s := range symptoms {
		for _, m := range meds {
			if !m.Treats(s) {
				continue
			}
			i, ok := index[m.Name]
			if !ok {
				i = len(out)
				index[m.Name] = i
				out = append(out, Recommendation{Medication: m.Name, Symptoms: []string{}})
			}
			out[i].Symptoms = append(out[i].Symptoms, s)
		}
	}
	return out
}
