package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SolvePath is the assistance endpoint.
const SolvePath = "/api/solve"

const maxReplyBytes = 1 << 20

// HTTPClient is a Completer that POSTs to an assistance server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a client for the server at baseURL. A nil hc uses
// a client with a 60 second timeout.
func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *HTTPClient) Complete(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req.ToSolveRequest())
	if err != nil {
		return "", &RequestError{Kind: KindTransport, Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SolvePath, bytes.NewReader(body))
	if err != nil {
		return "", &RequestError{Kind: KindTransport, Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &RequestError{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", &RequestError{Kind: KindTransport, Status: resp.StatusCode, Err: fmt.Errorf("read reply: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure SolveResponse
		_ = json.Unmarshal(data, &failure)
		return "", &RequestError{
			Kind:    KindTransport,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(failure.Error),
		}
	}

	out, err := validateSolveResponse(data)
	if err != nil {
		return "", &RequestError{Kind: KindMalformedReply, Status: resp.StatusCode, Err: err}
	}
	return out.Solution, nil
}
