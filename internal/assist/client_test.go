package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aloud/internal/catalog"
)

func newTestServer(t *testing.T, status int, body string, seen *SolveRequest) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, SolvePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", srv.Client())
}

var sampleRequest = Request{
	TaskName:          "Pseudo-test-code Aloud",
	Challenge:         "Two sum",
	SuggestedSolution: "hash map",
	Style:             catalog.StylePseudocode,
}

func TestHTTPClient_Success(t *testing.T) {
	var seen SolveRequest
	c := newTestServer(t, http.StatusOK, `{"solution":"`+"```text\\n1. scan\\n```"+`"}`, &seen)

	out, err := c.Complete(context.Background(), sampleRequest)
	require.NoError(t, err)
	assert.Equal(t, "```text\n1. scan\n```", out)
	assert.Equal(t, SolveRequest{
		TaskName:          "Pseudo-test-code Aloud",
		ChallengeQuestion: "Two sum",
		SuggestedSolution: "hash map",
		TaskStyle:         "pseudocode",
	}, seen)
}

func TestHTTPClient_ServerErrorMessage(t *testing.T) {
	c := newTestServer(t, http.StatusInternalServerError, `{"error":"Failed to generate solution"}`, nil)

	_, err := c.Complete(context.Background(), sampleRequest)
	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindTransport, re.Kind)
	assert.Equal(t, http.StatusInternalServerError, re.Status)
	assert.Equal(t, "Failed to generate solution", re.UserMessage())
}

func TestHTTPClient_ServerErrorWithoutBody(t *testing.T) {
	c := newTestServer(t, http.StatusBadGateway, `<html>bad gateway</html>`, nil)

	_, err := c.Complete(context.Background(), sampleRequest)
	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindTransport, re.Kind)
	assert.Equal(t, http.StatusBadGateway, re.Status)
	assert.Equal(t, DefaultErrorMessage, re.UserMessage())
}

func TestHTTPClient_MalformedReplies(t *testing.T) {
	bodies := map[string]string{
		"missing solution": `{}`,
		"blank solution":   `{"solution":"   "}`,
		"wrong type":       `{"solution":42}`,
		"not json":         `solution: yes`,
		"array":            `["solution"]`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestServer(t, http.StatusOK, body, nil)
			_, err := c.Complete(context.Background(), sampleRequest)
			assert.True(t, IsKind(err, KindMalformedReply), "got %v", err)
		})
	}
}

func TestHTTPClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url, nil).Complete(context.Background(), sampleRequest)
	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindTransport, re.Kind)
	assert.Zero(t, re.Status)
	assert.Error(t, re.Unwrap())
}

func TestHTTPClient_ThroughDispatcher(t *testing.T) {
	c := newTestServer(t, http.StatusOK,
		`{"solution":"`+"```go\\nx := 1\\n```\\nTime Complexity: O(1)\\nSpace Complexity: O(1)"+`"}`, nil)

	reply, err := NewDispatcher(c, nil).Dispatch(context.Background(),
		catalog.Task{Name: "Space-time-solution-complexity Aloud", Style: catalog.StyleIterative}, "q", "")
	require.NoError(t, err)
	require.Len(t, reply.Segments, 1)
	assert.Equal(t, "x := 1", reply.Segments[0].Code)
	assert.Equal(t, "Time Complexity: O(1)\nSpace Complexity: O(1)", reply.Segments[0].Complexity)
}

func TestHTTPClient_BaseURLTrimmed(t *testing.T) {
	assert.Equal(t, "http://localhost:3000", NewHTTPClient("http://localhost:3000/", nil).baseURL)
}
