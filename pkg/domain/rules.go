package domain

// Warning is a human-readable finding emitted by a warning rule.
type Warning struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result aggregates warnings from the rules engine in evaluation order.
type Result struct {
	Warnings []Warning
}

// Add appends a warning attributed to rule.
func (r *Result) Add(rule, message string) {
	r.Warnings = append(r.Warnings, Warning{Rule: rule, Message: message})
}

// Merge appends warnings from another result.
func (r *Result) Merge(other Result) {
	if len(other.Warnings) == 0 {
		return
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Messages returns the warning texts in order.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		out = append(out, w.Message)
	}
	return out
}
