// Package assist turns a task's challenge text into rendered assistance:
// it picks a prompt per task style, calls a Completer and parses the reply
// into code and complexity segments.
package assist

import (
	"context"

	"github.com/abhisek/aloud/internal/catalog"
)

// Request is one assistance call. It is built fresh per dispatch.
type Request struct {
	TaskName          string
	Challenge         string
	SuggestedSolution string
	Style             catalog.Style
}

// Segment is one code region of a reply and the complexity notes that
// follow it. Either field may be empty.
type Segment struct {
	Code       string `json:"code"`
	Complexity string `json:"complexity"`
}

// Reply is a parsed assistance reply. It always holds at least one segment.
type Reply struct {
	Segments []Segment `json:"segments"`
}

// Completer sends a Request to a text-completion service and returns the
// raw reply text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// SolveRequest is the JSON body of POST /api/solve.
type SolveRequest struct {
	TaskName          string `json:"taskName"`
	ChallengeQuestion string `json:"challengeQuestion"`
	SuggestedSolution string `json:"suggestedSolution"`
	TaskStyle         string `json:"taskStyle"`
}

// SolveResponse is the JSON body returned by POST /api/solve. Solution is
// set on success and Error on failure.
type SolveResponse struct {
	Solution string `json:"solution,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ToSolveRequest converts r to its wire form.
func (r Request) ToSolveRequest() SolveRequest {
	return SolveRequest{
		TaskName:          r.TaskName,
		ChallengeQuestion: r.Challenge,
		SuggestedSolution: r.SuggestedSolution,
		TaskStyle:         string(r.Style),
	}
}

// RequestFromSolve converts a wire request. Unknown styles are kept as-is
// and prompt like code.
func RequestFromSolve(s SolveRequest) Request {
	return Request{
		TaskName:          s.TaskName,
		Challenge:         s.ChallengeQuestion,
		SuggestedSolution: s.SuggestedSolution,
		Style:             catalog.Style(s.TaskStyle),
	}
}
