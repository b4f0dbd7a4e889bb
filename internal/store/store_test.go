package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/aloud/ent/llmrequestevent"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='llm_request_events'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "llm_request_events" {
		t.Errorf("table name = %q, want 'llm_request_events'", name)
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "code", Success: true,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "code", Success: true,
	}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Sequence != 2 || events[1].Sequence != 1 {
		t.Errorf("sequences = %d,%d, want 2,1", events[0].Sequence, events[1].Sequence)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAppendAndGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-haiku-4-5-20251001",
		Purpose:      "breakDebug",
		InputTokens:  120,
		OutputTokens: 40,
		LatencyMs:    850,
		Success:      false,
		ErrorMessage: "rate limited",
		RequestBody:  "[system]\nhi",
		ResponseBody: "",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.Purpose != "breakDebug" || e.Success || e.ErrorMessage != "rate limited" {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.InputTokens != 120 || e.OutputTokens != 40 || e.LatencyMs != 850 {
		t.Errorf("tokens/latency = %d/%d/%d", e.InputTokens, e.OutputTokens, e.LatencyMs)
	}
	if e.RequestBody != "[system]\nhi" {
		t.Errorf("request body = %q", e.RequestBody)
	}
	if e.Timestamp.Before(before) {
		t.Errorf("timestamp %v before %v", e.Timestamp, before)
	}
}

func TestGetLLMEventMissing(t *testing.T) {
	s := openTestStore(t)
	e, err := s.EventRepo().GetLLMEvent(context.Background(), 999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e != nil {
		t.Errorf("expected nil event, got %+v", e)
	}
}

func TestQueryLLMEventsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	purposes := []string{"code", "pseudocode", "code", "iterative", "code"}
	for i, p := range purposes {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "openai", Model: "gpt-4o-mini", Purpose: p, Success: true,
		}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	code, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "code"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(code) != 3 {
		t.Errorf("code events = %d, want 3", len(code))
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(limited) != 2 || limited[0].Sequence != 5 {
		t.Errorf("limited = %+v", limited)
	}

	window, err := repo.QueryLLMEvents(ctx, QueryOpts{After: 1, Before: 4})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(window) != 2 {
		t.Errorf("window events = %d, want 2", len(window))
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "code", InputTokens: 100, OutputTokens: 50, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "code", InputTokens: 200, OutputTokens: 70, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "iterative", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "iterative", LatencyMs: 10, Success: false},
	}
	for _, d := range data {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	code := byPurpose[0]
	if code.Purpose != "code" || code.Calls != 2 || code.InputTokens != 300 ||
		code.OutputTokens != 120 || code.AvgLatencyMs != 200 || code.Failures != 0 {
		t.Errorf("code usage = %+v", code)
	}
	if byPurpose[1].Failures != 1 {
		t.Errorf("iterative failures = %d, want 1", byPurpose[1].Failures)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("models = %d, want 2", len(byModel))
	}
	if byModel[0].Model != "gpt-4o-mini" || byModel[0].Calls != 2 {
		t.Errorf("model usage[0] = %+v", byModel[0])
	}
	if byModel[1].Model != "gpt-4o" || byModel[1].Calls != 1 {
		t.Errorf("model usage[1] = %+v", byModel[1])
	}
}

func TestEventsWrittenThroughEntClient(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "pseudocode",
		InputTokens: 12, Success: true, ResponseBody: "1. read n",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	row, err := s.Client().LLMRequestEvent.Query().
		Where(llmrequestevent.Purpose("pseudocode")).
		Only(ctx)
	if err != nil {
		t.Fatalf("ent query: %v", err)
	}
	if row.Sequence != 1 || row.Provider != "gemini" || row.ResponseBody != "1. read n" {
		t.Errorf("row = %+v", row)
	}
	if row.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	var idx string
	err = s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='llmrequestevent_purpose'",
	).Scan(&idx)
	if err != nil {
		t.Fatalf("purpose index missing: %v", err)
	}
}
