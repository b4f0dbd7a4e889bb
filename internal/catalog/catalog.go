package catalog

import (
	"fmt"
	"strings"
)

// Catalog holds the ordered task list and the per-difficulty profiles.
// It is read-only after construction.
type Catalog struct {
	tasks    []Task
	profiles map[Difficulty]Profile
}

// New builds a catalog and validates it.
func New(tasks []Task, profiles []Profile) (*Catalog, error) {
	c := &Catalog{
		tasks:    append([]Task(nil), tasks...),
		profiles: make(map[Difficulty]Profile, len(profiles)),
	}
	for _, p := range profiles {
		p.TaskSeconds = append([]int(nil), p.TaskSeconds...)
		c.profiles[p.Difficulty] = p
	}
	if err := validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns the built-in seven-task catalog.
func Default() *Catalog {
	c, err := New(defaultTasks, defaultProfiles)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid built-in catalog: %v", err))
	}
	return c
}

// Tasks returns a copy of the ordered task list.
func (c *Catalog) Tasks() []Task {
	return append([]Task(nil), c.tasks...)
}

// Len returns the number of tasks.
func (c *Catalog) Len() int {
	return len(c.tasks)
}

// Task returns the task at index i.
func (c *Catalog) Task(i int) (Task, bool) {
	if i < 0 || i >= len(c.tasks) {
		return Task{}, false
	}
	return c.tasks[i], true
}

// Profile returns the time profile for a difficulty.
func (c *Catalog) Profile(d Difficulty) (Profile, error) {
	p, ok := c.profiles[d]
	if !ok {
		return Profile{}, fmt.Errorf("no profile for difficulty %q", d)
	}
	p.TaskSeconds = append([]int(nil), p.TaskSeconds...)
	return p, nil
}

// Entry is one row of the visible task list.
type Entry struct {
	Index         int
	Task          Task
	Seconds       int
	DurationLabel string
}

// Label renders the row as "<name> - <minutes> min".
func (e Entry) Label() string {
	return fmt.Sprintf("%s - %s", e.Task.Name, e.DurationLabel)
}

// Listing builds the task list for a difficulty.
func (c *Catalog) Listing(d Difficulty) ([]Entry, error) {
	p, err := c.Profile(d)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(c.tasks))
	for i, t := range c.tasks {
		secs := p.TaskDuration(i)
		out[i] = Entry{
			Index:         i,
			Task:          t,
			Seconds:       secs,
			DurationLabel: FormatMinutes(secs),
		}
	}
	return out, nil
}

// FormatMinutes renders seconds as fractional minutes with two decimals,
// e.g. 90 -> "1.50 min".
func FormatMinutes(seconds int) string {
	return fmt.Sprintf("%.2f min", float64(seconds)/60)
}

func validate(c *Catalog) error {
	var errs []string

	if len(c.tasks) == 0 {
		errs = append(errs, "catalog has no tasks")
	}
	for i, t := range c.tasks {
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, fmt.Sprintf("task %d has no name", i+1))
		}
		if _, err := ParseStyle(string(t.Style)); err != nil {
			errs = append(errs, fmt.Sprintf("task %q: %v", t.Name, err))
		}
	}

	for _, d := range AllDifficulties() {
		p, ok := c.profiles[d]
		if !ok {
			errs = append(errs, fmt.Sprintf("missing profile for %q", d))
			continue
		}
		if p.TotalSeconds <= 0 {
			errs = append(errs, fmt.Sprintf("%s: total must be positive", d))
		}
		if len(p.TaskSeconds) != len(c.tasks) {
			errs = append(errs, fmt.Sprintf("%s: %d durations for %d tasks", d, len(p.TaskSeconds), len(c.tasks)))
		}
		for i, s := range p.TaskSeconds {
			if s <= 0 {
				errs = append(errs, fmt.Sprintf("%s: duration %d must be positive", d, i+1))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
