package questions

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

// bankFile is the on-disk layout of questions_<tier>.json.
type bankFile struct {
	Questions []questionRecord `json:"questions"`
}

type questionRecord struct {
	ID            string   `json:"id,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	CorrectIndex  *int     `json:"correct_index,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// FileName returns the bank file name for a tier.
func FileName(tier difficulty.Tier) string {
	return fmt.Sprintf("questions_%s.json", tier)
}

// decodeBank validates and decodes a bank file. The file's tier wins over
// any per-record difficulty label.
func decodeBank(raw []byte, tier difficulty.Tier) ([]Question, error) {
	if err := validateBankJSON(raw); err != nil {
		return nil, err
	}

	var bf bankFile
	if err := json.Unmarshal(raw, &bf); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	out := make([]Question, 0, len(bf.Questions))
	for i, rec := range bf.Questions {
		q, err := rec.toQuestion(tier, i)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func (r questionRecord) toQuestion(tier difficulty.Tier, pos int) (Question, error) {
	q := Question{
		ID:          r.ID,
		Prompt:      r.Question,
		Options:     r.Options,
		Tier:        tier,
		Explanation: r.Explanation,
	}
	if q.ID == "" {
		q.ID = fmt.Sprintf("%s-%03d", tier, pos+1)
	}

	switch {
	case r.CorrectIndex != nil:
		q.CorrectIndex = *r.CorrectIndex
	default:
		q.CorrectIndex = indexOf(r.Options, r.CorrectAnswer)
		if q.CorrectIndex < 0 {
			return Question{}, fmt.Errorf("correct answer %q is not one of the options", r.CorrectAnswer)
		}
	}

	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

func encodeBank(qs []Question) ([]byte, error) {
	bf := bankFile{Questions: make([]questionRecord, 0, len(qs))}
	for _, q := range qs {
		idx := q.CorrectIndex
		bf.Questions = append(bf.Questions, questionRecord{
			ID:            q.ID,
			Question:      q.Prompt,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer(),
			CorrectIndex:  &idx,
			Difficulty:    q.Tier.String(),
			Explanation:   q.Explanation,
		})
	}
	b, err := json.MarshalIndent(bf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	return append(b, '\n'), nil
}

func indexOf(options []string, answer string) int {
	want := strings.TrimSpace(answer)
	for i, opt := range options {
		if strings.TrimSpace(opt) == want {
			return i
		}
	}
	return -1
}
