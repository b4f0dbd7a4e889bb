package assist

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/aloud/internal/catalog"
	"github.com/abhisek/aloud/internal/llm"
)

// Dispatcher maps a task's style to an assistance call and parses the
// reply. It holds no per-request state and is safe for concurrent use
// when its Completer is.
type Dispatcher struct {
	completer Completer
	log       *zap.Logger
}

// NewDispatcher creates a Dispatcher that sends non-meta requests to c.
func NewDispatcher(c Completer, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{completer: c, log: log}
}

// Dispatch returns assistance for task. A blank challenge fails with
// KindEmptyInput before anything is sent; meta tasks return MetaMessage
// without calling the Completer.
func (d *Dispatcher) Dispatch(ctx context.Context, task catalog.Task, challenge, suggested string) (*Reply, error) {
	challenge = strings.TrimSpace(challenge)
	// Blank input is rejected before the meta check, so meta tasks still need a challenge.
	if challenge == "" {
		return nil, &RequestError{Kind: KindEmptyInput}
	}

	if task.Style == catalog.StyleMeta {
		reply := Parse(MetaMessage)
		return &reply, nil
	}

	req := Request{
		TaskName:          task.Name,
		Challenge:         challenge,
		SuggestedSolution: strings.TrimSpace(suggested),
		Style:             task.Style,
	}

	raw, err := d.completer.Complete(llm.WithPurpose(ctx, string(task.Style)), req)
	if err != nil {
		d.log.Warn("assistance request failed",
			zap.String("task", task.Name),
			zap.String("style", string(task.Style)),
			zap.Error(err))
		return nil, asRequestError(err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &RequestError{Kind: KindMalformedReply}
	}

	reply := Parse(raw)
	d.log.Debug("assistance reply parsed",
		zap.String("task", task.Name),
		zap.Int("segments", len(reply.Segments)))
	return &reply, nil
}

// asRequestError keeps RequestErrors and classifies everything else as a
// transport failure.
func asRequestError(err error) *RequestError {
	var re *RequestError
	if errors.As(err, &re) {
		return re
	}
	return &RequestError{Kind: KindTransport, Err: err}
}
