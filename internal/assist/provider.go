package assist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abhisek/aloud/internal/llm"
)

// ProviderCompleter answers requests in-process through an LLM provider.
// It is what the /api/solve handler runs.
type ProviderCompleter struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewProviderCompleter wraps p. A zero timeout means no extra deadline.
func NewProviderCompleter(p llm.Provider, timeout time.Duration) *ProviderCompleter {
	return &ProviderCompleter{provider: p, timeout: timeout}
}

func (c *ProviderCompleter) Complete(ctx context.Context, req Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if llm.PurposeFrom(ctx) == "unknown" {
		ctx = llm.WithPurpose(ctx, string(req.Style))
	}

	resp, err := c.provider.Generate(ctx, BuildPrompt(req))
	if err != nil {
		return "", classifyProviderError(err)
	}

	solution := strings.TrimSpace(resp.Content)
	if solution == "" {
		return "", &RequestError{Kind: KindMalformedReply}
	}
	return solution, nil
}

// ModelID reports the underlying model.
func (c *ProviderCompleter) ModelID() string {
	return c.provider.ModelID()
}

func classifyProviderError(err error) *RequestError {
	var (
		inv    *llm.ErrInvalidResponse
		maxTok *llm.ErrMaxTokensExceeded
	)
	if errors.As(err, &inv) || errors.As(err, &maxTok) {
		return &RequestError{Kind: KindMalformedReply, Err: err}
	}
	return &RequestError{Kind: KindTransport, Err: err}
}
