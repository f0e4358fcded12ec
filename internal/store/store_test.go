package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/progress"
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

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, tbl := range tables() {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", tbl.Name,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", tbl.Name, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendAnswer(ctx, AnswerEventData{SessionID: "a", Tier: difficulty.Easy}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.EventRepo().RecentAnswers(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent answers: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("answers = %d, want 1", len(got))
	}
	// The sequence keeps counting after reopen.
	if err := s.EventRepo().AppendAnswer(ctx, AnswerEventData{SessionID: "a", Tier: difficulty.Easy}); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, _ = s.EventRepo().RecentAnswers(ctx, QueryOpts{Limit: 1})
	if got[0].Sequence != 2 {
		t.Errorf("sequence = %d, want 2", got[0].Sequence)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Open already created the counter; a second one shares the row.
	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestAnswersAndTierChangesShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.AppendAnswer(ctx, AnswerEventData{
			SessionID:     "s1",
			Tier:          difficulty.Easy,
			QuestionID:    "easy-001",
			QuestionText:  "What is 2 + 2?",
			ChosenAnswer:  "4",
			CorrectAnswer: "4",
			Correct:       true,
			Points:        10,
		})
		if err != nil {
			t.Fatalf("append answer %d: %v", i, err)
		}
	}
	err := repo.AppendTierChange(ctx, TierChangeEventData{
		SessionID: "s1",
		From:      difficulty.Easy,
		To:        difficulty.Medium,
		Reason:    ReasonPromoted,
		Accuracy:  1,
	})
	if err != nil {
		t.Fatalf("append tier change: %v", err)
	}

	answers, err := repo.RecentAnswers(ctx, QueryOpts{Limit: 3})
	if err != nil {
		t.Fatalf("recent answers: %v", err)
	}
	if len(answers) != 3 {
		t.Fatalf("answers = %d, want 3", len(answers))
	}
	if answers[0].Sequence != 5 || answers[2].Sequence != 3 {
		t.Errorf("answer sequences = %d..%d, want 5..3", answers[0].Sequence, answers[2].Sequence)
	}
	if !answers[0].Correct || answers[0].Tier != difficulty.Easy || answers[0].Points != 10 {
		t.Errorf("answer = %+v", answers[0])
	}

	changes, err := repo.TierChanges(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("tier changes: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("tier changes = %d, want 1", len(changes))
	}
	c := changes[0]
	if c.Sequence != 6 || c.From != difficulty.Easy || c.To != difficulty.Medium || c.Reason != ReasonPromoted {
		t.Errorf("tier change = %+v", c)
	}
}

func TestQueryOptsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, sid := range []string{"a", "a", "b", "b", "b"} {
		if err := repo.AppendAnswer(ctx, AnswerEventData{SessionID: sid, Tier: difficulty.Medium, Points: i}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"all", QueryOpts{}, 5},
		{"limit", QueryOpts{Limit: 2}, 2},
		{"after", QueryOpts{After: 3}, 2},
		{"before", QueryOpts{Before: 3}, 2},
		{"window", QueryOpts{After: 1, Before: 5}, 3},
		{"session", QueryOpts{SessionID: "b"}, 3},
		{"future", QueryOpts{From: time.Now().Add(time.Hour)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.RecentAnswers(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSessionsAndLLMRequests(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSession(ctx, SessionEventData{SessionID: "s1", Action: SessionStart, Tier: difficulty.Hard}); err != nil {
		t.Fatalf("append session: %v", err)
	}
	if err := repo.AppendSession(ctx, SessionEventData{
		SessionID: "s1", Action: SessionEnd, Tier: difficulty.Hard,
		QuestionsServed: 4, CorrectAnswers: 3, Score: 60, DurationSecs: 42,
	}); err != nil {
		t.Fatalf("append session: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock-model", Purpose: "question-gen",
		InputTokens: 10, OutputTokens: 20, LatencyMs: 5, Success: true,
	}); err != nil {
		t.Fatalf("append llm request: %v", err)
	}

	sessions, err := repo.Sessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(sessions) != 2 || sessions[0].Action != SessionEnd || sessions[0].Score != 60 {
		t.Errorf("sessions = %+v", sessions)
	}

	reqs, err := repo.LLMRequests(ctx, QueryOpts{SessionID: "ignored"})
	if err != nil {
		t.Fatalf("llm requests: %v", err)
	}
	if len(reqs) != 1 || !reqs[0].Success || reqs[0].Purpose != "question-gen" {
		t.Errorf("llm requests = %+v", reqs)
	}
}

func TestProgressRepoDefaultsWhenEmpty(t *testing.T) {
	s := openTestStore(t)

	rec, err := s.ProgressRepo().Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.CurrentTier != difficulty.Easy {
		t.Errorf("tier = %v, want easy", rec.CurrentTier)
	}
	if rec.QuestionsAnswered != 0 {
		t.Errorf("answered = %d, want 0", rec.QuestionsAnswered)
	}
}

func TestProgressRepoRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	rec := progress.NewRecord(time.Now())
	rec.BeginSession()
	rec.RecordAnswer(difficulty.Easy, true, 10)
	rec.RecordAnswer(difficulty.Medium, false, 15)
	rec.CurrentTier = difficulty.Medium
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A second save overwrites rather than duplicating rows.
	rec.RecordAnswer(difficulty.Medium, true, 15)
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentTier != difficulty.Medium {
		t.Errorf("tier = %v, want medium", got.CurrentTier)
	}
	if got.QuestionsAnswered != 3 || got.CorrectAnswers != 2 || got.TotalScore != 25 {
		t.Errorf("totals = %d/%d/%d, want 3/2/25", got.QuestionsAnswered, got.CorrectAnswers, got.TotalScore)
	}
	if got.SessionsPlayed != 1 {
		t.Errorf("sessions = %d, want 1", got.SessionsPlayed)
	}
	if m := got.Tier(difficulty.Medium); m.Answered != 2 || m.Correct != 1 {
		t.Errorf("medium stats = %+v, want 2/1", m)
	}

	var rows int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + tableTierStats).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != len(difficulty.AllTiers) {
		t.Errorf("tier rows = %d, want %d", rows, len(difficulty.AllTiers))
	}

	if _, err := progress.Reset(ctx, repo, time.Now()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, _ = repo.Load(ctx)
	if got.CurrentTier != difficulty.Easy || got.QuestionsAnswered != 0 {
		t.Errorf("after reset = %+v", got)
	}
}
