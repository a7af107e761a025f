package linefile

// Action selects what a rewrite pass does with the current line.
type Action int

const (
	// Keep writes the line through unchanged.
	Keep Action = iota

	// Replace writes the decision's text in place of the line.
	Replace

	// InsertBefore writes the decision's text, then the line.
	InsertBefore

	// Drop writes nothing, deleting the line.
	Drop
)

// Decision is the outcome of an EditFunc for a single line.
type Decision struct {
	Action Action
	Text   string
}

// KeepLine keeps the current line unchanged.
func KeepLine() Decision {
	return Decision{Action: Keep}
}

// ReplaceLine replaces the current line with text.
func ReplaceLine(text string) Decision {
	return Decision{Action: Replace, Text: text}
}

// InsertLine inserts text immediately before the current line.
func InsertLine(text string) Decision {
	return Decision{Action: InsertBefore, Text: text}
}

// DropLine deletes the current line.
func DropLine() Decision {
	return Decision{Action: Drop}
}

// EditFunc decides, for each (line, index) pair in order, how the rewrite
// pass transforms the line. It is called exactly once per input line.
type EditFunc func(line string, index int) Decision
