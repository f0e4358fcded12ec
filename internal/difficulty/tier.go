package difficulty

import (
	"errors"
	"fmt"
	"strings"
)

// Tier is a difficulty level. Tiers are totally ordered: Easy < Medium < Hard.
type Tier int

const (
	Easy Tier = iota
	Medium
	Hard
)

// ErrUnknownTier is returned when parsing a tier name that does not exist.
var ErrUnknownTier = errors.New("unknown tier")

// AllTiers lists every tier from easiest to hardest.
var AllTiers = []Tier{Easy, Medium, Hard}

var tierNames = [...]string{"easy", "medium", "hard"}

// String returns the lower-case tier name.
func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// DisplayName returns the capitalized tier name for the UI.
func (t Tier) DisplayName() string {
	s := t.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Valid reports whether t is one of the defined tiers.
func (t Tier) Valid() bool {
	return t >= Easy && t <= Hard
}

// Index returns the zero-based position of t in AllTiers.
func (t Tier) Index() int {
	return int(t)
}

// Harder returns the next tier up and false if t is already the hardest.
func (t Tier) Harder() (Tier, bool) {
	if t >= Hard {
		return t, false
	}
	return t + 1, true
}

// Easier returns the next tier down and false if t is already the easiest.
func (t Tier) Easier() (Tier, bool) {
	if t <= Easy {
		return t, false
	}
	return t - 1, true
}

// ParseTier parses a tier name, ignoring case and surrounding whitespace.
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == name {
			return Tier(i), nil
		}
	}
	return Easy, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTier, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
