package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

var answerColumns = []string{
	"session_id", "tier", "question_id", "question_text",
	"chosen_answer", "correct_answer", "correct", "points",
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	err := r.append(ctx, tableAnswers, answerColumns, []any{
		data.SessionID,
		data.Tier.String(),
		data.QuestionID,
		data.QuestionText,
		data.ChosenAnswer,
		data.CorrectAnswer,
		data.Correct,
		data.Points,
	})
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	var out []AnswerEvent
	err := queryEvents(ctx, r.db, selectEvents(tableAnswers, opts, answerColumns...), func(rows *sql.Rows) error {
		var (
			e    AnswerEvent
			tier string
		)
		if err := rows.Scan(&e.Sequence, &e.Timestamp,
			&e.SessionID, &tier, &e.QuestionID, &e.QuestionText,
			&e.ChosenAnswer, &e.CorrectAnswer, &e.Correct, &e.Points,
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
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return out, nil
}
