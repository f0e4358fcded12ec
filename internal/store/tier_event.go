package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

var tierChangeColumns = []string{"session_id", "from_tier", "to_tier", "reason", "accuracy"}

func (r *eventRepo) AppendTierChange(ctx context.Context, data TierChangeEventData) error {
	err := r.append(ctx, tableTierChanges, tierChangeColumns, []any{
		data.SessionID,
		data.From.String(),
		data.To.String(),
		data.Reason,
		data.Accuracy,
	})
	if err != nil {
		return fmt.Errorf("save tier change event: %w", err)
	}
	return nil
}

func (r *eventRepo) TierChanges(ctx context.Context, opts QueryOpts) ([]TierChangeEvent, error) {
	var out []TierChangeEvent
	err := queryEvents(ctx, r.db, selectEvents(tableTierChanges, opts, tierChangeColumns...), func(rows *sql.Rows) error {
		var (
			e        TierChangeEvent
			from, to string
			err      error
		)
		if err := rows.Scan(&e.Sequence, &e.Timestamp,
			&e.SessionID, &from, &to, &e.Reason, &e.Accuracy,
		); err != nil {
			return err
		}
		if e.From, err = difficulty.ParseTier(from); err != nil {
			return err
		}
		if e.To, err = difficulty.ParseTier(to); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query tier change events: %w", err)
	}
	return out, nil
}
