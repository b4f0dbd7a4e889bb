package catalog

import "fmt"

// Style selects how assistance is requested for a task.
type Style string

const (
	StyleMeta       Style = "meta"
	StylePseudocode Style = "pseudocode"
	StyleIterative  Style = "iterative"
	StyleBreakDebug Style = "breakDebug"
	StyleCode       Style = "code"
)

// AllStyles returns every recognized style.
func AllStyles() []Style {
	return []Style{StyleMeta, StylePseudocode, StyleIterative, StyleBreakDebug, StyleCode}
}

// ParseStyle maps a wire value to a Style.
func ParseStyle(s string) (Style, error) {
	for _, st := range AllStyles() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown task style: %q", s)
}

// Task is one named step of a practice session.
type Task struct {
	Name  string
	Style Style
}

// Difficulty names a time profile.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns the difficulties in selection order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty maps a label to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range AllDifficulties() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty: %q", s)
}

// Next cycles easy -> medium -> hard -> easy.
func (d Difficulty) Next() Difficulty {
	all := AllDifficulties()
	for i, x := range all {
		if x == d {
			return all[(i+1)%len(all)]
		}
	}
	return Easy
}

// Profile is the time allocation for one difficulty.
// TotalSeconds and the sum of TaskSeconds are independent budgets.
type Profile struct {
	Difficulty   Difficulty
	TotalSeconds int
	TaskSeconds  []int
}

// TaskDuration returns the allocation for the task at index i, or 0 when
// i is out of range.
func (p Profile) TaskDuration(i int) int {
	if i < 0 || i >= len(p.TaskSeconds) {
		return 0
	}
	return p.TaskSeconds[i]
}
