// Package check evaluates formula totals against difficulty targets.
package check

// MeetsDifficulty returns true if total >= difficulty.
// This is the most common difficulty check in tabletop RPGs.
func MeetsDifficulty(total float64, difficulty int) bool {
	return total >= float64(difficulty)
}

// Margin calculates the margin of success or failure.
// Positive values indicate success, negative indicate failure.
func Margin(total float64, difficulty int) float64 {
	return total - float64(difficulty)
}

// Result represents the outcome of a difficulty check.
type Result struct {
	Difficulty int
	Success    bool
	Margin     float64
}

// Check performs a difficulty check against an evaluated formula total.
func Check(total float64, difficulty int) Result {
	return Result{
		Difficulty: difficulty,
		Success:    MeetsDifficulty(total, difficulty),
		Margin:     Margin(total, difficulty),
	}
}
