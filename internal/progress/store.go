package progress

import (
	"context"
	"time"
)

// Store persists the progress record.
//
// Load treats a missing or unreadable record as a new user and returns a
// default record; only Save reports failures.
type Store interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, r *Record) error
}

// Reset overwrites the stored record with a fresh default one.
func Reset(ctx context.Context, s Store, now time.Time) (*Record, error) {
	r := NewRecord(now)
	if err := s.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
