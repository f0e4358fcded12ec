package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/progress"
)

// ProgressRepo stores the progress record as one summary row plus one row
// per tier.
type ProgressRepo struct {
	db  *sql.DB
	log *zap.SugaredLogger
	now func() time.Time
}

var _ progress.Store = (*ProgressRepo)(nil)

// WithLogger returns a copy of the repo that logs through log.
func (r *ProgressRepo) WithLogger(log *zap.SugaredLogger) *ProgressRepo {
	c := *r
	c.log = log
	return &c
}

func (r *ProgressRepo) logger() *zap.SugaredLogger {
	if r.log == nil {
		return zap.NewNop().Sugar()
	}
	return r.log
}

// Load returns the stored record. A missing or unreadable record yields a
// fresh default record.
func (r *ProgressRepo) Load(ctx context.Context) (*progress.Record, error) {
	rec, err := r.load(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		r.logger().Infow("no stored progress, starting fresh")
		return progress.NewRecord(r.now()), nil
	case err != nil:
		r.logger().Warnw("could not read stored progress, starting fresh", "error", err)
		return progress.NewRecord(r.now()), nil
	}
	return rec, nil
}

func (r *ProgressRepo) load(ctx context.Context) (*progress.Record, error) {
	query, args := builder().
		Select("current_tier", "questions_answered", "correct_answers", "total_score",
			"sessions_played", "best_accuracy", "created_at", "updated_at").
		From(builder().Table(tableProgress)).
		Where(entsql.EQ("id", progressSingleton)).
		Query()

	rec := progress.NewRecord(r.now())
	var tier string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&tier, &rec.QuestionsAnswered, &rec.CorrectAnswers, &rec.TotalScore,
		&rec.SessionsPlayed, &rec.BestAccuracy, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rec.CurrentTier, err = difficulty.ParseTier(tier); err != nil {
		return nil, err
	}

	query, args = builder().Select("tier", "answered", "correct").
		From(builder().Table(tableTierStats)).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tier stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name string
			s    progress.TierStats
		)
		if err := rows.Scan(&name, &s.Answered, &s.Correct); err != nil {
			return nil, err
		}
		t, err := difficulty.ParseTier(name)
		if err != nil {
			return nil, err
		}
		rec.Tiers[t] = &s
	}
	return rec, rows.Err()
}

// Save writes the record in a single transaction.
func (r *ProgressRepo) Save(ctx context.Context, rec *progress.Record) (err error) {
	rec.Normalize()
	rec.UpdatedAt = r.now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin progress tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	query, args := builder().Insert(tableProgress).
		Columns("id", "current_tier", "questions_answered", "correct_answers", "total_score",
			"sessions_played", "best_accuracy", "created_at", "updated_at").
		Values(progressSingleton, rec.CurrentTier.String(), rec.QuestionsAnswered, rec.CorrectAnswers,
			rec.TotalScore, rec.SessionsPlayed, rec.BestAccuracy, rec.CreatedAt.UTC(), rec.UpdatedAt.UTC()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress record: %w", err)
	}

	for _, t := range difficulty.AllTiers {
		s := rec.Tier(t)
		query, args := builder().Insert(tableTierStats).
			Columns("tier", "answered", "correct").
			Values(t.String(), s.Answered, s.Correct).
			OnConflict(entsql.ConflictColumns("tier"), entsql.ResolveWithNewValues()).
			Query()
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save %s stats: %w", t, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit progress: %w", err)
	}
	return nil
}
