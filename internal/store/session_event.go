package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

var sessionColumns = []string{
	"session_id", "action", "tier",
	"questions_served", "correct_answers", "score", "duration_secs",
}

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	err := r.append(ctx, tableSessions, sessionColumns, []any{
		data.SessionID,
		data.Action,
		data.Tier.String(),
		data.QuestionsServed,
		data.CorrectAnswers,
		data.Score,
		data.DurationSecs,
	})
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) Sessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	var out []SessionEvent
	err := queryEvents(ctx, r.db, selectEvents(tableSessions, opts, sessionColumns...), func(rows *sql.Rows) error {
		var (
			e    SessionEvent
			tier string
		)
		if err := rows.Scan(&e.Sequence, &e.Timestamp,
			&e.SessionID, &e.Action, &tier,
			&e.QuestionsServed, &e.CorrectAnswers, &e.Score, &e.DurationSecs,
		); err != nil {
			return err
		}
		t, err := difficulty.ParseTier(tier)
		if err != nil {
			return err
		}
		e.Tier = t
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return out, nil
}
