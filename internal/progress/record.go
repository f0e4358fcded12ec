package progress

import (
	"time"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

// TierStats holds cumulative counts for one tier.
type TierStats struct {
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

// Accuracy returns Correct/Answered, or 0 when nothing was answered.
func (s TierStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// Record is the persisted statistics of the single local user.
type Record struct {
	CurrentTier       difficulty.Tier                `json:"current_tier"`
	Tiers             map[difficulty.Tier]*TierStats `json:"tiers"`
	QuestionsAnswered int                            `json:"questions_answered"`
	CorrectAnswers    int                            `json:"correct_answers"`
	TotalScore        int                            `json:"total_score"`
	SessionsPlayed    int                            `json:"sessions_played"`
	BestAccuracy      float64                        `json:"best_accuracy"` // percent, 0-100
	CreatedAt         time.Time                      `json:"created_at"`
	UpdatedAt         time.Time                      `json:"updated_at"`
}

// NewRecord returns a zeroed record for a new user starting at Easy.
func NewRecord(now time.Time) *Record {
	r := &Record{
		CurrentTier: difficulty.Easy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.Normalize()
	return r
}

// Normalize fills in missing per-tier entries and repairs an invalid tier.
func (r *Record) Normalize() {
	if r.Tiers == nil {
		r.Tiers = make(map[difficulty.Tier]*TierStats, len(difficulty.AllTiers))
	}
	for _, t := range difficulty.AllTiers {
		if r.Tiers[t] == nil {
			r.Tiers[t] = &TierStats{}
		}
	}
	if !r.CurrentTier.Valid() {
		r.CurrentTier = difficulty.Easy
	}
}

// Tier returns the stats for t, never nil.
func (r *Record) Tier(t difficulty.Tier) TierStats {
	if s := r.Tiers[t]; s != nil {
		return *s
	}
	return TierStats{}
}

// RecordAnswer adds one answer given at tier to the cumulative counts.
func (r *Record) RecordAnswer(tier difficulty.Tier, correct bool, points int) {
	r.Normalize()
	s := r.Tiers[tier]
	if s == nil {
		s = &TierStats{}
		r.Tiers[tier] = s
	}
	s.Answered++
	r.QuestionsAnswered++
	if correct {
		s.Correct++
		r.CorrectAnswers++
		r.TotalScore += points
	}
	if acc := r.Accuracy() * 100; acc > r.BestAccuracy {
		r.BestAccuracy = acc
	}
}

// BeginSession counts a new session as played.
func (r *Record) BeginSession() {
	r.SessionsPlayed++
}

// Accuracy returns the overall ratio of correct answers.
func (r *Record) Accuracy() float64 {
	if r.QuestionsAnswered == 0 {
		return 0
	}
	return float64(r.CorrectAnswers) / float64(r.QuestionsAnswered)
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := *r
	c.Tiers = make(map[difficulty.Tier]*TierStats, len(r.Tiers))
	for t, s := range r.Tiers {
		if s != nil {
			cp := *s
			c.Tiers[t] = &cp
		}
	}
	return &c
}
