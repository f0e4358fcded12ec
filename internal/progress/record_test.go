package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

func TestRecordAnswer(t *testing.T) {
	r := NewRecord(time.Now())

	r.RecordAnswer(difficulty.Medium, true, 15)
	r.RecordAnswer(difficulty.Medium, false, 15)
	r.RecordAnswer(difficulty.Hard, true, 20)

	assert.Equal(t, 3, r.QuestionsAnswered)
	assert.Equal(t, 2, r.CorrectAnswers)
	assert.Equal(t, 35, r.TotalScore)
	assert.InDelta(t, 2.0/3.0, r.Accuracy(), 1e-9)
	assert.InDelta(t, 0.5, r.Tier(difficulty.Medium).Accuracy(), 1e-9)
	assert.InDelta(t, 100.0, r.BestAccuracy, 1e-9, "best accuracy tracks the peak")
}

func TestClone(t *testing.T) {
	r := NewRecord(time.Now())
	r.RecordAnswer(difficulty.Easy, true, 10)

	c := r.Clone()
	c.RecordAnswer(difficulty.Easy, true, 10)

	assert.Equal(t, 1, r.Tier(difficulty.Easy).Answered)
	assert.Equal(t, 2, c.Tier(difficulty.Easy).Answered)
}

func TestNormalizeRepairsTier(t *testing.T) {
	r := &Record{CurrentTier: difficulty.Tier(42)}
	r.Normalize()
	assert.Equal(t, difficulty.Easy, r.CurrentTier)
	assert.Len(t, r.Tiers, len(difficulty.AllTiers))
}

func TestTierStatsAccuracyEmpty(t *testing.T) {
	assert.Zero(t, TierStats{}.Accuracy())
}
