package difficulty

import "fmt"

// Change describes what a recorded answer did to the tier.
type Change string

const (
	Held     Change = "held"
	Promoted Change = "promoted"
	Demoted  Change = "demoted"
)

// Default adaptation parameters.
const (
	DefaultWindowSize         = 5
	DefaultPromotionThreshold = 0.80
	DefaultDemotionThreshold  = 0.40
)

// Config holds the adaptation parameters for a Controller.
type Config struct {
	WindowSize         int     `mapstructure:"window_size"`
	PromotionThreshold float64 `mapstructure:"promotion_threshold"`
	DemotionThreshold  float64 `mapstructure:"demotion_threshold"`
}

// DefaultConfig returns a window of 5 with 80%/40% thresholds.
func DefaultConfig() Config {
	return Config{
		WindowSize:         DefaultWindowSize,
		PromotionThreshold: DefaultPromotionThreshold,
		DemotionThreshold:  DefaultDemotionThreshold,
	}
}

// Validate checks that the thresholds are ordered and the window is non-empty.
func (c Config) Validate() error {
	if c.WindowSize < 1 {
		return fmt.Errorf("window size must be at least 1, got %d", c.WindowSize)
	}
	if c.DemotionThreshold < 0 || c.PromotionThreshold > 1 {
		return fmt.Errorf("thresholds must lie in [0, 1], got demote=%.2f promote=%.2f",
			c.DemotionThreshold, c.PromotionThreshold)
	}
	if c.DemotionThreshold >= c.PromotionThreshold {
		return fmt.Errorf("demotion threshold %.2f must be below promotion threshold %.2f",
			c.DemotionThreshold, c.PromotionThreshold)
	}
	return nil
}

// Result is returned by RecordAnswer.
type Result struct {
	Change Change
	From   Tier
	Tier   Tier // tier after the answer was applied
	// Accuracy is the window accuracy the rule was evaluated against,
	// taken before a transition clears the window.
	Accuracy float64
}

// Changed reports whether the tier moved.
func (r Result) Changed() bool {
	return r.Change != Held
}

// Info summarizes controller state for display.
type Info struct {
	Tier           Tier
	TierIndex      int
	TierCount      int
	Accuracy       float64 // rolling accuracy of the window, 0.0-1.0
	WindowFill     int
	WindowCapacity int
}

// Controller decides tier transitions from a rolling window of outcomes.
//
// A transition is only evaluated once the window is full. Every promotion
// or demotion clears the window, so the new tier needs a full window of
// fresh answers before it can move again. At a capped tier a qualifying
// window is a no-op and the window is kept.
type Controller struct {
	cfg    Config
	tier   Tier
	window *Window
}

// NewController creates a controller starting at tier start.
// An invalid start tier falls back to Easy.
func NewController(cfg Config, start Tier) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !start.Valid() {
		start = Easy
	}
	return &Controller{
		cfg:    cfg,
		tier:   start,
		window: NewWindow(cfg.WindowSize),
	}, nil
}

// RecordAnswer appends an outcome at the current tier and applies the
// adaptation rule.
func (c *Controller) RecordAnswer(correct bool) Result {
	from := c.tier
	c.window.Push(Outcome{Correct: correct, Tier: c.tier})
	accuracy := c.window.Accuracy()
	held := Result{Change: Held, From: from, Tier: from, Accuracy: accuracy}

	if !c.window.Full() {
		return held
	}

	if accuracy >= c.cfg.PromotionThreshold {
		if next, ok := c.tier.Harder(); ok {
			c.tier = next
			c.window.Clear()
			return Result{Change: Promoted, From: from, Tier: next, Accuracy: accuracy}
		}
	}
	if accuracy <= c.cfg.DemotionThreshold {
		if prev, ok := c.tier.Easier(); ok {
			c.tier = prev
			c.window.Clear()
			return Result{Change: Demoted, From: from, Tier: prev, Accuracy: accuracy}
		}
	}
	return held
}

// Tier returns the current tier.
func (c *Controller) Tier() Tier {
	return c.tier
}

// Config returns the adaptation parameters.
func (c *Controller) Config() Config {
	return c.cfg
}

// Accuracy returns the rolling accuracy of the current window.
func (c *Controller) Accuracy() float64 {
	return c.window.Accuracy()
}

// Window returns a copy of the current window, oldest first.
func (c *Controller) Window() []Outcome {
	return c.window.Outcomes()
}

// Info returns a display summary of the controller state.
func (c *Controller) Info() Info {
	return Info{
		Tier:           c.tier,
		TierIndex:      c.tier.Index(),
		TierCount:      len(AllTiers),
		Accuracy:       c.window.Accuracy(),
		WindowFill:     c.window.Len(),
		WindowCapacity: c.window.Cap(),
	}
}

// CanPromote reports whether a harder tier exists.
func (c *Controller) CanPromote() bool {
	_, ok := c.tier.Harder()
	return ok
}

// CanDemote reports whether an easier tier exists.
func (c *Controller) CanDemote() bool {
	_, ok := c.tier.Easier()
	return ok
}

// NextTier returns the tier a promotion would move to, or the current tier if capped.
func (c *Controller) NextTier() Tier {
	t, _ := c.tier.Harder()
	return t
}

// PreviousTier returns the tier a demotion would move to, or the current tier if capped.
func (c *Controller) PreviousTier() Tier {
	t, _ := c.tier.Easier()
	return t
}

// ForceTier sets the tier directly and clears the window.
// Invalid tiers are ignored.
func (c *Controller) ForceTier(t Tier) {
	if !t.Valid() {
		return
	}
	c.tier = t
	c.window.Clear()
}

// Reset returns the controller to Easy with an empty window.
func (c *Controller) Reset() {
	c.tier = Easy
	c.window.Clear()
}
