// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single deal suggestion search.
type Summary struct {
	Scope           string   `json:"scope"`
	TargetName      string   `json:"targetName"`
	Field           string   `json:"field"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	Threshold       float64  `json:"threshold"`
	Achieved        float64  `json:"achieved"`
	Headroom        float64  `json:"headroom"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}

// Find returns the summary for field, if present.
func Find(summaries []Summary, field string) (Summary, bool) {
	for _, summary := range summaries {
		if summary.Field == field {
			return summary, true
		}
	}
	return Summary{}, false
}
