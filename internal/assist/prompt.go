package assist

import (
	"fmt"
	"strings"

	"github.com/abhisek/aloud/internal/catalog"
	"github.com/abhisek/aloud/internal/llm"
)

// MetaMessage is the fixed reply for meta tasks. It is shown without
// calling the completion service.
const MetaMessage = "Read the challenge out loud, slowly, start to finish.\n" +
	"Then restate it in your own words: the inputs, the expected output, " +
	"the constraints, and at least two edge cases.\n" +
	"Ask any clarifying question you would ask an interviewer before moving on."

const noSuggestion = "None provided"

// template is the per-style prompt recipe.
type template struct {
	system       string
	instructions string
	maxTokens    int
}

var templates = map[catalog.Style]template{
	catalog.StylePseudocode: {
		system: "You explain algorithms as plain, language-agnostic pseudocode. " +
			"Never use the syntax of any real programming language.",
		instructions: `Describe a solution as short, numbered, high-level steps.
- No code syntax, no function signatures, no language keywords
- One idea per step
- Put all steps inside a single fenced block tagged text`,
		maxTokens: 700,
	},
	catalog.StyleIterative: {
		system: "You are a senior engineer who improves solutions step by step " +
			"and states their complexity precisely.",
		instructions: `Give three solutions in order: the original approach, then two further optimized alternatives.
For each solution:
- one fenced code block with the full solution
- immediately after the block, exactly two lines:
Time Complexity: <big-O with one short reason>
Space Complexity: <big-O with one short reason>
No other commentary.`,
		maxTokens: 2048,
	},
	catalog.StyleBreakDebug: {
		system: "You review candidate solutions and reply with exactly two lines.",
		instructions: `Reply with exactly two lines and nothing else:
Break: <one concrete input or change that breaks the candidate solution>
Debug: <one concrete way to find and fix that failure>`,
		maxTokens: 200,
	},
	catalog.StyleCode: {
		system: "You return ONLY the clean final solution. No explanation. " +
			"Put the code in one fenced code block.",
		instructions: `Return ONLY one working solution.
- If a suggested solution is provided, start from it and fix what is wrong
- No explanation
- No commentary
- Exactly one fenced code block`,
		maxTokens: 1024,
	},
}

// templateFor returns the recipe for a style. Unknown styles prompt like
// code.
func templateFor(s catalog.Style) template {
	if t, ok := templates[s]; ok {
		return t
	}
	return templates[catalog.StyleCode]
}

// BuildPrompt renders the provider request for r. Meta requests never
// reach this point.
func BuildPrompt(r Request) llm.Request {
	t := templateFor(r.Style)

	suggested := strings.TrimSpace(r.SuggestedSolution)
	if suggested == "" {
		suggested = noSuggestion
	}

	user := fmt.Sprintf(`Task: %s

Challenge Question:
%s

Suggested Solution (optional):
%s

INSTRUCTIONS:
%s
`, r.TaskName, strings.TrimSpace(r.Challenge), suggested, t.instructions)

	return llm.Request{
		System:      t.system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		MaxTokens:   t.maxTokens,
		Temperature: 0.2,
	}
}
