package questions

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/fileutil"
)

//go:embed defaults/*.json
var defaultBanks embed.FS

// Source supplies questions for a tier.
type Source interface {
	// RandomQuestion picks a question uniformly at random from the tier.
	// Returns an error wrapping ErrNoQuestionsAvailable if the tier is empty.
	RandomQuestion(tier difficulty.Tier) (Question, error)
}

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

// Bank holds the question banks for every tier, backed by one JSON file per tier.
type Bank struct {
	dir       string
	questions map[difficulty.Tier][]Question
	picker    Picker
	log       *zap.SugaredLogger
	seed      bool
}

var _ Source = (*Bank)(nil)

// Option configures a Bank.
type Option func(*Bank)

// WithPicker sets the randomness source used by RandomQuestion.
func WithPicker(p Picker) Option {
	return func(b *Bank) { b.picker = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(b *Bank) { b.log = l }
}

// WithoutSeeding disables writing the built-in banks for missing files.
// Missing files then load as empty tiers.
func WithoutSeeding() Option {
	return func(b *Bank) { b.seed = false }
}

// Load reads questions_<tier>.json for every tier from dir. Missing files
// are seeded from the built-in banks and written to dir.
func Load(dir string, opts ...Option) (*Bank, error) {
	b := &Bank{
		dir:       dir,
		questions: make(map[difficulty.Tier][]Question, len(difficulty.AllTiers)),
		picker:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:       zap.NewNop().Sugar(),
		seed:      true,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create question dir: %w", err)
	}

	for _, tier := range difficulty.AllTiers {
		qs, err := b.loadTier(tier)
		if err != nil {
			return nil, err
		}
		b.questions[tier] = qs
		b.log.Debugw("loaded question bank", "tier", tier.String(), "count", len(qs))
	}
	return b, nil
}

func (b *Bank) loadTier(tier difficulty.Tier) ([]Question, error) {
	path := b.path(tier)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if !b.seed {
			return nil, nil
		}
		return b.seedTier(tier)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	qs, err := decodeBank(raw, tier)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return qs, nil
}

func (b *Bank) seedTier(tier difficulty.Tier) ([]Question, error) {
	raw, err := defaultBanks.ReadFile("defaults/" + FileName(tier))
	if err != nil {
		return nil, fmt.Errorf("read built-in %s bank: %w", tier, err)
	}
	qs, err := decodeBank(raw, tier)
	if err != nil {
		return nil, fmt.Errorf("decode built-in %s bank: %w", tier, err)
	}

	// A failed write still leaves the built-in questions usable this run.
	if err := b.writeTier(tier, qs); err != nil {
		b.log.Warnw("could not write default question bank", "tier", tier.String(), "error", err)
	} else {
		b.log.Infow("seeded default question bank", "tier", tier.String(), "path", b.path(tier))
	}
	return qs, nil
}

// RandomQuestion returns a uniformly random question from tier.
func (b *Bank) RandomQuestion(tier difficulty.Tier) (Question, error) {
	qs := b.questions[tier]
	if len(qs) == 0 {
		return Question{}, fmt.Errorf("%w for tier %s", ErrNoQuestionsAvailable, tier)
	}
	return qs[b.picker.IntN(len(qs))], nil
}

// Count returns the number of questions in tier.
func (b *Bank) Count(tier difficulty.Tier) int {
	return len(b.questions[tier])
}

// All returns a copy of the questions in tier.
func (b *Bank) All(tier difficulty.Tier) []Question {
	out := make([]Question, len(b.questions[tier]))
	copy(out, b.questions[tier])
	return out
}

// Prompts returns the prompt text of every question in tier.
func (b *Bank) Prompts(tier difficulty.Tier) []string {
	out := make([]string, 0, len(b.questions[tier]))
	for _, q := range b.questions[tier] {
		out = append(out, q.Prompt)
	}
	return out
}

// Add validates q, appends it to its tier and rewrites the tier's file.
// Duplicate prompts (ignoring case and spacing) are rejected.
func (b *Bank) Add(q Question) (Question, error) {
	tier := q.Tier
	if q.ID == "" {
		q.ID = fmt.Sprintf("%s-%03d", tier, len(b.questions[tier])+1)
	}
	if err := q.Validate(); err != nil {
		return Question{}, fmt.Errorf("invalid question: %w", err)
	}
	for _, existing := range b.questions[tier] {
		if normalizePrompt(existing.Prompt) == normalizePrompt(q.Prompt) {
			return Question{}, fmt.Errorf("duplicate question in %s bank: %q", tier, q.Prompt)
		}
	}

	updated := append(b.All(tier), q)
	if err := b.writeTier(tier, updated); err != nil {
		return Question{}, err
	}
	b.questions[tier] = updated
	return q, nil
}

// Dir returns the directory holding the bank files.
func (b *Bank) Dir() string {
	return b.dir
}

func (b *Bank) writeTier(tier difficulty.Tier, qs []Question) error {
	data, err := encodeBank(qs)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(b.path(tier), data, 0o644); err != nil {
		return fmt.Errorf("write %s bank: %w", tier, err)
	}
	return nil
}

func (b *Bank) path(tier difficulty.Tier) string {
	return filepath.Join(b.dir, FileName(tier))
}

func normalizePrompt(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
