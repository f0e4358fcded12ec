package difficulty

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"easy", Easy, false},
		{"Medium", Medium, false},
		{"  HARD ", Hard, false},
		{"expert", Easy, true},
		{"", Easy, true},
	}
	for _, tt := range tests {
		got, err := ParseTier(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownTier) {
				t.Errorf("ParseTier(%q) error = %v, want ErrUnknownTier", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTier(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTierOrdering(t *testing.T) {
	if next, ok := Easy.Harder(); !ok || next != Medium {
		t.Errorf("Easy.Harder() = %v, %v", next, ok)
	}
	if _, ok := Hard.Harder(); ok {
		t.Error("Hard.Harder() should report no harder tier")
	}
	if prev, ok := Hard.Easier(); !ok || prev != Medium {
		t.Errorf("Hard.Easier() = %v, %v", prev, ok)
	}
	if _, ok := Easy.Easier(); ok {
		t.Error("Easy.Easier() should report no easier tier")
	}
}

func TestTierJSON(t *testing.T) {
	type wrapper struct {
		Tier Tier `json:"tier"`
	}
	b, err := json.Marshal(wrapper{Tier: Medium})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"tier":"medium"}` {
		t.Errorf("marshal = %s", b)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"tier":"hard"}`), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Tier != Hard {
		t.Errorf("unmarshal tier = %v, want hard", w.Tier)
	}

	if err := json.Unmarshal([]byte(`{"tier":"legendary"}`), &w); err == nil {
		t.Error("expected error for unknown tier")
	}
}

func TestTierDisplayName(t *testing.T) {
	if got := Medium.DisplayName(); got != "Medium" {
		t.Errorf("DisplayName = %q", got)
	}
}
