package drill

import "github.com/abhisek/aloud/internal/assist"

// assistDoneMsg delivers a finished assistance request. It is matched to
// its panel by requestID; replies for closed or reopened panels are
// dropped.
type assistDoneMsg struct {
	index     int
	requestID string
	reply     *assist.Reply
	err       error
}

func (assistDoneMsg) Background() {}
