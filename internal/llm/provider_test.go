package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/aloud/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: "first", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: "second"},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "a"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Content != "first" {
		t.Fatalf("expected first, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "b"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Content != "second" {
		t.Fatalf("expected second, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_Fallback(t *testing.T) {
	mock := NewMockProvider()
	mock.Fallback = "canned"
	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "canned" {
		t.Fatalf("expected fallback, got %q", resp.Content)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: "x"})

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	last, ok := mock.LastCall()
	if !ok || last.System != "sys" {
		t.Fatalf("expected system 'sys', got %q", last.System)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "breakDebug")
	if p := PurposeFrom(ctx); p != "breakDebug" {
		t.Fatalf("expected 'breakDebug', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearProviderEnv(t *testing.T) {
	for _, k := range []string{
		"ALOUD_LLM_PROVIDER", "ALOUD_OPENAI_API_KEY", "ALOUD_ANTHROPIC_API_KEY",
		"ALOUD_GEMINI_API_KEY", "ALOUD_OPENROUTER_API_KEY", "ALOUD_LLM_TIMEOUT",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("ALOUD_LLM_PROVIDER", "anthropic")
	t.Setenv("ALOUD_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("ALOUD_ANTHROPIC_MODEL", "claude-sonnet")
	t.Setenv("ALOUD_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-ant" || cfg.Anthropic.Model != "claude-sonnet" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout.String() != "5s" {
		t.Fatalf("timeout = %s, want 5s", cfg.Timeout)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("openai default model = %q", cfg.OpenAI.Model)
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("discovers standard key", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
		cfg, err := ResolveConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Provider != "anthropic" {
			t.Fatalf("provider = %q, want anthropic", cfg.Provider)
		}
	})

	t.Run("explicit provider without key fails", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("ALOUD_LLM_PROVIDER", "gemini")
		t.Setenv("OPENAI_API_KEY", "sk")
		if _, err := ResolveConfig(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		clearProviderEnv(t)
		if _, err := ResolveConfig(); err == nil {
			t.Fatal("expected error")
		}
	})
}

type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEvent(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: "reply",
		Usage:   Usage{InputTokens: 12, OutputTokens: 3},
	})
	repo := &recordingRepo{}
	p := WithLogging(mock, "openai", repo, nil)

	ctx := WithPurpose(context.Background(), "code")
	_, err := p.Generate(ctx, Request{
		System:   "sys prompt",
		Messages: []Message{{Role: RoleUser, Content: "question"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "openai" || e.Model != "mock" || e.Purpose != "code" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if !e.Success || e.InputTokens != 12 || e.OutputTokens != 3 || e.ResponseBody != "reply" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if !strings.Contains(e.RequestBody, "[system]\nsys prompt") || !strings.Contains(e.RequestBody, "[user]\nquestion") {
		t.Fatalf("unexpected request body: %q", e.RequestBody)
	}
}

func TestLoggingProvider_RecordsFailureAndIgnoresRepoError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}})
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(mock, "openai", repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("unexpected events: %+v", repo.events)
	}
	if repo.events[0].Purpose != "unknown" {
		t.Fatalf("purpose = %q, want unknown", repo.events[0].Purpose)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: "ok"})
	p := WithLogging(mock, "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock", Retry: retryConfig()}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(resp.Content, "```") {
		t.Fatalf("expected fenced fallback, got %q", resp.Content)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	got := c.Cost(1_000_000, 1_000_000)
	if got < 0.749 || got > 0.751 {
		t.Fatalf("cost = %f, want 0.75", got)
	}
	if LookupCost("openai/gpt-4o-mini") == nil {
		t.Fatal("expected vendor-prefixed lookup to resolve")
	}
	if LookupCost("made-up-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
