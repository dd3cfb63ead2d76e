package dice

import (
	"strconv"
	"strings"
)

// Record captures the outcome of one individual die roll.
type Record struct {
	Sides   int // Number of faces on the die
	Outcome int // Face value rolled, in [1, Sides]
}

// Logger is an ordered, append-only log of individual die rolls.
//
// A Logger is created by the caller, passed into one evaluation, and
// inspected afterward. It is never reset automatically: records appended
// before a later evaluation failure remain, and reusing a Logger across
// evaluations accumulates records. Callers that want a fresh log create a
// fresh Logger.
type Logger struct {
	records []Record
}

// NewLogger creates an empty Logger.
func NewLogger() *Logger {
	return &Logger{}
}

// Append adds one roll record. Appending to a nil Logger is a no-op so the
// evaluator can treat "no logger" and "logger" uniformly.
func (l *Logger) Append(record Record) {
	if l == nil {
		return
	}
	l.records = append(l.records, record)
}

// Len returns the number of recorded rolls.
func (l *Logger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.records)
}

// Records returns a copy of the recorded rolls in roll order.
func (l *Logger) Records() []Record {
	if l == nil || len(l.records) == 0 {
		return nil
	}
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// String renders the outcomes as a comma-separated list, or a placeholder
// when no dice were rolled.
func (l *Logger) String() string {
	if l.Len() == 0 {
		return "No dice rolled"
	}
	parts := make([]string, len(l.records))
	for i, record := range l.records {
		parts[i] = strconv.Itoa(record.Outcome)
	}
	return strings.Join(parts, ", ")
}
