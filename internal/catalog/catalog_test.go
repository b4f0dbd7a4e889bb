package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Tables(t *testing.T) {
	c := Default()
	require.Equal(t, 7, c.Len())

	tests := []struct {
		diff  Difficulty
		total int
		first int
	}{
		{Easy, 900, 60},
		{Medium, 1800, 120},
		{Hard, 2700, 180},
	}
	for _, tt := range tests {
		t.Run(string(tt.diff), func(t *testing.T) {
			p, err := c.Profile(tt.diff)
			require.NoError(t, err)
			assert.Equal(t, tt.total, p.TotalSeconds)
			assert.Len(t, p.TaskSeconds, c.Len())
			assert.Equal(t, tt.first, p.TaskDuration(0))
		})
	}
}

func TestDefault_Styles(t *testing.T) {
	c := Default()
	first, ok := c.Task(0)
	require.True(t, ok)
	assert.Equal(t, StyleMeta, first.Style)

	seen := map[Style]bool{}
	for _, task := range c.Tasks() {
		seen[task.Style] = true
	}
	for _, s := range AllStyles() {
		assert.True(t, seen[s], "style %s unused by built-in catalog", s)
	}
}

func TestProfile_ReturnsCopy(t *testing.T) {
	c := Default()
	p, err := c.Profile(Easy)
	require.NoError(t, err)
	p.TaskSeconds[0] = 1

	again, err := c.Profile(Easy)
	require.NoError(t, err)
	assert.Equal(t, 60, again.TaskSeconds[0])
}

func TestProfile_Unknown(t *testing.T) {
	_, err := Default().Profile("brutal")
	assert.Error(t, err)
}

func TestTaskDuration_OutOfRange(t *testing.T) {
	p := Profile{TaskSeconds: []int{10}}
	assert.Equal(t, 0, p.TaskDuration(-1))
	assert.Equal(t, 0, p.TaskDuration(1))
}

func TestListing(t *testing.T) {
	entries, err := Default().Listing(Medium)
	require.NoError(t, err)
	require.Len(t, entries, 7)

	assert.Equal(t, "Read Instructions Aloud - 2.00 min", entries[0].Label())
	assert.Equal(t, 720, entries[3].Seconds)
	assert.Equal(t, "12.00 min", entries[3].DurationLabel)
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "1.00 min", FormatMinutes(60))
	assert.Equal(t, "1.50 min", FormatMinutes(90))
	assert.Equal(t, "0.25 min", FormatMinutes(15))
}

func TestParseDifficultyAndNext(t *testing.T) {
	d, err := ParseDifficulty("hard")
	require.NoError(t, err)
	assert.Equal(t, Hard, d)
	assert.Equal(t, Easy, d.Next())
	assert.Equal(t, Medium, Easy.Next())

	_, err = ParseDifficulty("HARD")
	assert.Error(t, err)
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("breakDebug")
	require.NoError(t, err)
	assert.Equal(t, StyleBreakDebug, s)

	_, err = ParseStyle("essay")
	assert.Error(t, err)
}

func TestNew_Validation(t *testing.T) {
	good := []Task{{Name: "One", Style: StyleCode}}
	full := func(secs []int) []Profile {
		return []Profile{
			{Difficulty: Easy, TotalSeconds: 10, TaskSeconds: secs},
			{Difficulty: Medium, TotalSeconds: 10, TaskSeconds: []int{10}},
			{Difficulty: Hard, TotalSeconds: 10, TaskSeconds: []int{10}},
		}
	}

	tests := []struct {
		name     string
		tasks    []Task
		profiles []Profile
		wantErr  bool
	}{
		{"valid", good, full([]int{10}), false},
		{"no tasks", nil, full(nil), true},
		{"unknown style", []Task{{Name: "One", Style: "poem"}}, full([]int{10}), true},
		{"length mismatch", good, full([]int{10, 20}), true},
		{"zero duration", good, full([]int{0}), true},
		{"missing difficulty", good, full([]int{10})[:2], true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tasks, tt.profiles)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

const sampleYAML = `
tasks:
  - name: Restate
    style: meta
  - name: Solve
    style: code
difficulties:
  easy:   {total: 300, tasks: [60, 240]}
  medium: {total: 600, tasks: [120, 480]}
  hard:   {total: 900, tasks: [180, 720]}
`

func TestParse_YAML(t *testing.T) {
	c, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	p, err := c.Profile(Hard)
	require.NoError(t, err)
	assert.Equal(t, []int{180, 720}, p.TaskSeconds)
}

func TestParse_UnknownDifficulty(t *testing.T) {
	_, err := Parse([]byte("tasks: [{name: a, style: code}]\ndifficulties:\n  insane: {total: 1, tasks: [1]}\n"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, 7, c.Len())

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	c, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
