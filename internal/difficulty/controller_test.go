package difficulty

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, start Tier) *Controller {
	t.Helper()
	c, err := NewController(DefaultConfig(), start)
	require.NoError(t, err)
	return c
}

func feed(c *Controller, answers ...bool) []Result {
	results := make([]Result, 0, len(answers))
	for _, a := range answers {
		results = append(results, c.RecordAnswer(a))
	}
	return results
}

func TestRecordAnswer_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		start      Tier
		answers    []bool
		wantChange Change
		wantTier   Tier
		wantWindow int
	}{
		{"all correct at easy promotes", Easy, []bool{true, true, true, true, true}, Promoted, Medium, 0},
		{"one of five at medium demotes", Medium, []bool{false, false, true, false, false}, Demoted, Easy, 0},
		{"three of five at medium holds", Medium, []bool{true, true, false, true, false}, Held, Medium, 5},
		{"exactly 80 percent promotes", Easy, []bool{true, false, true, true, true}, Promoted, Medium, 0},
		{"exactly 40 percent demotes", Hard, []bool{true, false, true, false, false}, Demoted, Medium, 0},
		{"all correct at hard holds", Hard, []bool{true, true, true, true, true}, Held, Hard, 5},
		{"all wrong at easy holds", Easy, []bool{false, false, false, false, false}, Held, Easy, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, tt.start)
			results := feed(c, tt.answers...)
			last := results[len(results)-1]

			assert.Equal(t, tt.wantChange, last.Change)
			assert.Equal(t, tt.start, last.From)
			assert.Equal(t, tt.wantTier, last.Tier)
			assert.Equal(t, tt.wantTier, c.Tier())
			assert.Len(t, c.Window(), tt.wantWindow)
		})
	}
}

func TestRecordAnswer_HoldsUntilWindowFull(t *testing.T) {
	c := newTestController(t, Easy)
	for i, r := range feed(c, true, true, true, true) {
		assert.Equal(t, Held, r.Change, "answer %d", i+1)
	}
	assert.Equal(t, Easy, c.Tier())
	assert.Len(t, c.Window(), 4)
}

func TestRecordAnswer_HeldWindowEvictsOldest(t *testing.T) {
	c := newTestController(t, Medium)
	feed(c, true, true, false, true, false)
	require.Len(t, c.Window(), 5)

	// Evicts the first true; window becomes [1,0,1,0,1] = 60%.
	r := c.RecordAnswer(true)
	assert.Equal(t, Held, r.Change)
	assert.InDelta(t, 0.6, r.Accuracy, 1e-9)
	w := c.Window()
	require.Len(t, w, 5)
	assert.Equal(t, []bool{true, false, true, false, true}, correctness(w))
}

func TestRecordAnswer_FreshWindowAfterTransition(t *testing.T) {
	c := newTestController(t, Easy)
	feed(c, true, true, true, true, true)
	require.Equal(t, Medium, c.Tier())
	assert.Empty(t, c.Window())

	// Four more answers cannot move the tier, whatever they are.
	for _, r := range feed(c, false, false, false, false) {
		assert.Equal(t, Held, r.Change)
	}
	assert.Equal(t, Medium, c.Tier())

	r := c.RecordAnswer(false)
	assert.Equal(t, Demoted, r.Change)
	assert.Zero(t, r.Accuracy, "accuracy is reported from the window before it is cleared")
	assert.Equal(t, Easy, c.Tier())
}

func TestRecordAnswer_CappedTierKeepsWindow(t *testing.T) {
	c := newTestController(t, Hard)
	feed(c, true, true, true, true, true)
	assert.Len(t, c.Window(), 5)

	// Window keeps sliding at the cap; a bad run can still demote.
	feed(c, false, false)
	assert.Equal(t, Hard, c.Tier())
	r := c.RecordAnswer(false)
	assert.Equal(t, Demoted, r.Change)
	assert.Equal(t, Medium, c.Tier())
}

func TestRecordAnswer_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 200; trial++ {
		start := AllTiers[rng.IntN(len(AllTiers))]
		c := newTestController(t, start)
		sinceTransition := 0

		for i := 0; i < 60; i++ {
			r := c.RecordAnswer(rng.IntN(2) == 0)
			sinceTransition++

			require.LessOrEqual(t, len(c.Window()), DefaultWindowSize)

			if r.Changed() {
				require.GreaterOrEqual(t, sinceTransition, DefaultWindowSize,
					"transition fired %d answers after the previous one", sinceTransition)
				require.Empty(t, c.Window())
				sinceTransition = 0
			}
			if r.From == Hard {
				require.NotEqual(t, Promoted, r.Change)
			}
			if r.From == Easy {
				require.NotEqual(t, Demoted, r.Change)
			}
		}
	}
}

func TestRecordAnswer_HighAccuracyNeverDemotes(t *testing.T) {
	// Every window of five with at most one miss is >= 80%.
	patterns := [][]bool{
		{true, true, true, true, true},
		{false, true, true, true, true},
		{true, true, false, true, true},
		{true, true, true, true, false},
	}
	for _, p := range patterns {
		c := newTestController(t, Medium)
		var promoted int
		for batch := 0; batch < 3; batch++ {
			for _, r := range feed(c, p...) {
				assert.NotEqual(t, Demoted, r.Change)
				if r.Change == Promoted {
					promoted++
				}
			}
		}
		assert.Equal(t, 1, promoted, "pattern %v", p)
		assert.Equal(t, Hard, c.Tier())
	}
}

func TestRecordAnswer_LowAccuracyDemotesOncePerBatch(t *testing.T) {
	c := newTestController(t, Hard)
	var demoted int
	for batch := 0; batch < 4; batch++ {
		for _, r := range feed(c, false, true, false, false, true) {
			assert.NotEqual(t, Promoted, r.Change)
			if r.Change == Demoted {
				demoted++
			}
		}
	}
	assert.Equal(t, 2, demoted)
	assert.Equal(t, Easy, c.Tier())
}

func TestController_ForceTierAndReset(t *testing.T) {
	c := newTestController(t, Easy)
	feed(c, true, true)

	c.ForceTier(Hard)
	assert.Equal(t, Hard, c.Tier())
	assert.Empty(t, c.Window())

	c.ForceTier(Tier(9))
	assert.Equal(t, Hard, c.Tier())

	feed(c, true)
	c.Reset()
	assert.Equal(t, Easy, c.Tier())
	assert.Empty(t, c.Window())
}

func TestController_NeighbourTiers(t *testing.T) {
	c := newTestController(t, Easy)
	assert.True(t, c.CanPromote())
	assert.False(t, c.CanDemote())
	assert.Equal(t, Medium, c.NextTier())
	assert.Equal(t, Easy, c.PreviousTier())

	c.ForceTier(Hard)
	assert.False(t, c.CanPromote())
	assert.True(t, c.CanDemote())
	assert.Equal(t, Hard, c.NextTier())
	assert.Equal(t, Medium, c.PreviousTier())
}

func TestController_Info(t *testing.T) {
	c := newTestController(t, Medium)
	feed(c, true, false, true, true)

	info := c.Info()
	assert.Equal(t, Medium, info.Tier)
	assert.Equal(t, 1, info.TierIndex)
	assert.Equal(t, 3, info.TierCount)
	assert.InDelta(t, 0.75, info.Accuracy, 1e-9)
	assert.Equal(t, 4, info.WindowFill)
	assert.Equal(t, 5, info.WindowCapacity)
}

func TestNewController_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero window", Config{WindowSize: 0, PromotionThreshold: 0.8, DemotionThreshold: 0.4}},
		{"inverted thresholds", Config{WindowSize: 5, PromotionThreshold: 0.4, DemotionThreshold: 0.8}},
		{"promotion above one", Config{WindowSize: 5, PromotionThreshold: 1.2, DemotionThreshold: 0.4}},
		{"negative demotion", Config{WindowSize: 5, PromotionThreshold: 0.8, DemotionThreshold: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewController(tt.cfg, Easy)
			assert.Error(t, err)
		})
	}
}

func TestNewController_InvalidStartFallsBackToEasy(t *testing.T) {
	c := newTestController(t, Tier(-1))
	assert.Equal(t, Easy, c.Tier())
}

func correctness(w []Outcome) []bool {
	out := make([]bool, len(w))
	for i, o := range w {
		out[i] = o.Correct
	}
	return out
}
