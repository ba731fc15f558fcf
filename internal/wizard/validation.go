package wizard

import "strings"

// ValidationError describes why a step cannot be left yet.
type ValidationError struct {
	Title    string   // dialog title
	Intro    string   // sentence shown before the failed checks
	Problems []string // every failed check, in display order
}

// Message renders the dialog body: the intro followed by one
// "<problem> detected." sentence per failed check.
func (e *ValidationError) Message() string {
	var b strings.Builder
	b.WriteString(e.Intro)
	for _, p := range e.Problems {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(p)
		b.WriteString(" detected.")
	}
	return b.String()
}

func (e *ValidationError) Error() string {
	return e.Title + ": " + e.Message()
}

// Has reports whether problem is among the failed checks.
func (e *ValidationError) Has(problem string) bool {
	for _, p := range e.Problems {
		if p == problem {
			return true
		}
	}
	return false
}
