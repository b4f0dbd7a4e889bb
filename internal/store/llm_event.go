package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/abhisek/aloud/ent"
	"github.com/abhisek/aloud/ent/llmrequestevent"
	"github.com/abhisek/aloud/ent/predicate"
)

var (
	_ EventRepo   = (*EntEventRepo)(nil)
	_ EventReader = (*EntEventRepo)(nil)
)

// EntEventRepo implements EventRepo and EventReader backed by ent and the
// global sequence counter.
type EntEventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *EntEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.LLMRequestEvent.Create().
		SetSequence(seqNum).
		SetTimestamp(time.Now().UTC()).
		SetProvider(data.Provider).
		SetModel(data.Model).
		SetPurpose(data.Purpose).
		SetInputTokens(data.InputTokens).
		SetOutputTokens(data.OutputTokens).
		SetLatencyMs(data.LatencyMs).
		SetSuccess(data.Success).
		SetErrorMessage(data.ErrorMessage).
		SetRequestBody(data.RequestBody).
		SetResponseBody(data.ResponseBody).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

// QueryLLMEvents returns events newest first.
func (r *EntEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	var preds []predicate.LLMRequestEvent
	if opts.Purpose != "" {
		preds = append(preds, llmrequestevent.Purpose(opts.Purpose))
	}
	if opts.After > 0 {
		preds = append(preds, llmrequestevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, llmrequestevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, llmrequestevent.TimestampGTE(opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, llmrequestevent.TimestampLTE(opts.To.UTC()))
	}

	q := r.client.LLMRequestEvent.Query().
		Where(preds...).
		Order(llmrequestevent.BySequence(entsql.OrderDesc()))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}

	events := make([]LLMRequestEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, toEvent(row))
	}
	return events, nil
}

// GetLLMEvent returns the event with the given id, or nil if none exists.
func (r *EntEventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	row, err := r.client.LLMRequestEvent.Get(ctx, id)
	if ent.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	e := toEvent(row)
	return &e, nil
}

// LLMUsageByPurpose aggregates every call per purpose, most used first.
func (r *EntEventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	var totals []struct {
		Purpose      string  `json:"purpose"`
		Count        int     `json:"count"`
		InputTokens  int     `json:"input_tokens"`
		OutputTokens int     `json:"output_tokens"`
		AvgLatency   float64 `json:"avg_latency"`
	}
	err := r.client.LLMRequestEvent.Query().
		GroupBy(llmrequestevent.FieldPurpose).
		Aggregate(
			ent.As(ent.Count(), "count"),
			ent.As(ent.Sum(llmrequestevent.FieldInputTokens), "input_tokens"),
			ent.As(ent.Sum(llmrequestevent.FieldOutputTokens), "output_tokens"),
			ent.As(ent.Mean(llmrequestevent.FieldLatencyMs), "avg_latency"),
		).
		Scan(ctx, &totals)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}

	var failed []struct {
		Purpose string `json:"purpose"`
		Count   int    `json:"count"`
	}
	err = r.client.LLMRequestEvent.Query().
		Where(llmrequestevent.Success(false)).
		GroupBy(llmrequestevent.FieldPurpose).
		Aggregate(ent.As(ent.Count(), "count")).
		Scan(ctx, &failed)
	if err != nil {
		return nil, fmt.Errorf("query failures by purpose: %w", err)
	}
	failures := make(map[string]int, len(failed))
	for _, f := range failed {
		failures[f.Purpose] = f.Count
	}

	out := make([]PurposeUsage, 0, len(totals))
	for _, t := range totals {
		out = append(out, PurposeUsage{
			Purpose:      t.Purpose,
			Calls:        t.Count,
			InputTokens:  t.InputTokens,
			OutputTokens: t.OutputTokens,
			AvgLatencyMs: int64(t.AvgLatency),
			Failures:     failures[t.Purpose],
		})
	}
	slices.SortFunc(out, func(a, b PurposeUsage) int {
		return cmp.Or(cmp.Compare(b.Calls, a.Calls), cmp.Compare(a.Purpose, b.Purpose))
	})
	return out, nil
}

// LLMUsageByModel aggregates successful calls per model, most used first.
func (r *EntEventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	var totals []struct {
		Model        string `json:"model"`
		Count        int    `json:"count"`
		InputTokens  int    `json:"input_tokens"`
		OutputTokens int    `json:"output_tokens"`
	}
	err := r.client.LLMRequestEvent.Query().
		Where(llmrequestevent.Success(true)).
		GroupBy(llmrequestevent.FieldModel).
		Aggregate(
			ent.As(ent.Count(), "count"),
			ent.As(ent.Sum(llmrequestevent.FieldInputTokens), "input_tokens"),
			ent.As(ent.Sum(llmrequestevent.FieldOutputTokens), "output_tokens"),
		).
		Scan(ctx, &totals)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}

	out := make([]ModelUsage, 0, len(totals))
	for _, t := range totals {
		out = append(out, ModelUsage{
			Model:        t.Model,
			Calls:        t.Count,
			InputTokens:  t.InputTokens,
			OutputTokens: t.OutputTokens,
		})
	}
	slices.SortFunc(out, func(a, b ModelUsage) int {
		return cmp.Or(cmp.Compare(b.Calls, a.Calls), cmp.Compare(a.Model, b.Model))
	})
	return out, nil
}

func toEvent(row *ent.LLMRequestEvent) LLMRequestEvent {
	return LLMRequestEvent{
		ID:        row.ID,
		Sequence:  row.Sequence,
		Timestamp: row.Timestamp.UTC(),
		LLMRequestEventData: LLMRequestEventData{
			Provider:     row.Provider,
			Model:        row.Model,
			Purpose:      row.Purpose,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			LatencyMs:    row.LatencyMs,
			Success:      row.Success,
			ErrorMessage: row.ErrorMessage,
			RequestBody:  row.RequestBody,
			ResponseBody: row.ResponseBody,
		},
	}
}
