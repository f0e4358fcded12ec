package store

import (
	"context"
	"database/sql"
	"fmt"
)

var llmRequestColumns = []string{
	"provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.append(ctx, tableLLMRequests, llmRequestColumns, []any{
		data.Provider,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
	})
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	opts.SessionID = "" // not tracked per session
	var out []LLMRequestEvent
	err := queryEvents(ctx, r.db, selectEvents(tableLLMRequests, opts, llmRequestColumns...), func(rows *sql.Rows) error {
		var e LLMRequestEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp,
			&e.Provider, &e.Model, &e.Purpose, &e.InputTokens, &e.OutputTokens,
			&e.LatencyMs, &e.Success, &e.ErrorMessage,
		); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM request events: %w", err)
	}
	return out, nil
}
