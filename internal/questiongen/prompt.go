package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

const systemPrompt = `You write questions for a general-knowledge multiple-choice quiz.

Rules:
- Write exactly one question with exactly 4 options, one of them correct.
- Options must be distinct and short. Distractors should be plausible.
- correct_answer must be copied character for character from options.
- Match the requested difficulty tier.
- Do not repeat or rephrase any question in the "already in the bank" list.
- Use plain text only.`

var tierGuidance = map[difficulty.Tier]string{
	difficulty.Easy:   "Common knowledge most adults know; simple arithmetic; no trick wording.",
	difficulty.Medium: "Needs some schooling or general reading; two-step reasoning at most.",
	difficulty.Hard:   "Specialist or precise facts; multi-step reasoning; close distractors.",
}

// userPrompt renders the per-request instructions.
func userPrompt(in Input, maxExisting int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Tier: %s\n", in.Tier)
	fmt.Fprintf(&b, "Guidance: %s\n", tierGuidance[in.Tier])
	if in.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	}

	b.WriteString("\nAlready in the bank:\n")
	existing := in.Existing
	if maxExisting > 0 && len(existing) > maxExisting {
		existing = existing[len(existing)-maxExisting:]
	}
	if len(existing) == 0 {
		b.WriteString("None")
	}
	for i, q := range existing {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}

	return strings.TrimRight(b.String(), "\n")
}
