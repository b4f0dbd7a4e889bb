package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent records every provider call made on behalf of a task so
// cost and failures can be reviewed with `aloud history`. Rows are
// append-only, so every field is immutable.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").
			Immutable().
			Comment("Provider name: openai, anthropic, gemini"),
		field.String("model").
			Immutable().
			Comment("Actual model ID used"),
		field.String("purpose").
			Immutable().
			Comment("Task style the call answered: code, pseudocode, iterative, breakDebug"),
		field.Int("input_tokens").
			Default(0).
			Immutable().
			Comment("Tokens in the request"),
		field.Int("output_tokens").
			Default(0).
			Immutable().
			Comment("Tokens in the response"),
		field.Int64("latency_ms").
			Default(0).
			Immutable().
			Comment("Wall-clock time for the request"),
		field.Bool("success").
			Immutable().
			Comment("Whether the request succeeded"),
		field.String("error_message").
			Default("").
			Immutable().
			Comment("Error message if failed"),
		field.Text("request_body").
			Default("").
			Immutable().
			Comment("Rendered prompt sent to the provider"),
		field.Text("response_body").
			Default("").
			Immutable().
			Comment("Raw completion text returned by the provider"),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("provider"),
		index.Fields("purpose"),
		index.Fields("success"),
	}
}
