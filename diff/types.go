package diff

import "fmt"

// Delta reports which side of a line-level comparison a reported line
// belongs to.
type Delta int

const (
	// NEW marks a line that belongs to stream B: either the new value of a
	// changed line, or a line past the end of stream A.
	NEW Delta = iota // >

	// OLD marks a line that belongs to stream A: either the old value of a
	// changed line, or a line past the end of stream B.
	OLD // <
)

func (d Delta) String() string {
	switch d {
	case NEW:
		return ">"
	case OLD:
		return "<"
	default:
		return "?"
	}
}

// ResultFunc is called once per reported line. For a line that differs at
// the same index in both streams it is called twice, OLD before NEW.
// Returning an error terminates the comparison.
type ResultFunc func(d Delta, index int, line string) error

// Result contains counters describing the comparison of two line streams.
type Result struct {
	// TotalA is the number of lines read from stream A
	TotalA int

	// TotalB is the number of lines read from stream B
	TotalB int

	// Common is the number of indexes where both streams held equal lines
	Common int

	// Changed is the number of indexes where both streams held lines that differ
	Changed int

	// ExtraA is the number of lines in A past the end of B
	ExtraA int

	// ExtraB is the number of lines in B past the end of A
	ExtraB int
}

// Equal reports whether the comparison found the two streams identical.
func (r *Result) Equal() bool {
	return r.Changed == 0 && r.ExtraA == 0 && r.ExtraB == 0
}

func (r *Result) String() string {
	return fmt.Sprintf("A: %d/%d\tB: %d/%d\tchanged: %d\tcommon: %d",
		r.ExtraA, r.TotalA, r.ExtraB, r.TotalB, r.Changed, r.Common)
}
