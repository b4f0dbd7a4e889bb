package catalog

var defaultTasks = []Task{
	{Name: "Read Instructions Aloud", Style: StyleMeta},
	{Name: "Pseudo-test-code Aloud", Style: StylePseudocode},
	{Name: "Pseudo-function-code Aloud", Style: StylePseudocode},
	{Name: "Function-code-translation Aloud", Style: StyleCode},
	{Name: "Test-code-translation Aloud", Style: StyleCode},
	{Name: "Break & Debug Aloud", Style: StyleBreakDebug},
	{Name: "Space-time-solution-complexity Aloud", Style: StyleIterative},
}

var defaultProfiles = []Profile{
	{Difficulty: Easy, TotalSeconds: 900, TaskSeconds: []int{60, 120, 120, 360, 120, 60, 60}},
	{Difficulty: Medium, TotalSeconds: 1800, TaskSeconds: []int{120, 240, 240, 720, 240, 120, 120}},
	{Difficulty: Hard, TotalSeconds: 2700, TaskSeconds: []int{180, 360, 360, 1080, 360, 180, 180}},
}
