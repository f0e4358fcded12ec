package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/adaptiquiz/internal/store"
)

// Recorder persists one row per LLM request. store.EventRepo satisfies it.
type Recorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

type retrying struct {
	inner Provider
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

// WithRetry retries transient failures with exponential backoff and ±20%
// jitter. A rate limit carrying RetryAfter waits exactly that long.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retrying{inner: p, cfg: cfg, sleep: sleepCtx}
}

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		lastErr     error
		invalidSeen bool
	)
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retryable(err, &invalidSeen) || attempt == r.cfg.MaxAttempts-1 {
			break
		}
		if err := r.sleep(ctx, r.wait(attempt, err)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (r *retrying) ModelID() string { return r.inner.ModelID() }

func (r *retrying) wait(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := math.Min(
		float64(r.cfg.InitialWait)*math.Pow(r.cfg.Multiplier, float64(attempt)),
		float64(r.cfg.MaxWait),
	)
	d += d * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(d, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type logging struct {
	inner    Provider
	provider string
	rec      Recorder
	log      *zap.SugaredLogger
	now      func() time.Time
}

// WithLogging logs every request and appends it to rec when rec is non-nil.
// Recording failures are logged and never fail the request.
func WithLogging(p Provider, providerName string, rec Recorder, log *zap.SugaredLogger) Provider {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &logging{inner: p, provider: providerName, rec: rec, log: log, now: time.Now}
}

func (l *logging) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: l.now().Sub(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warnw("llm request failed",
			"provider", data.Provider, "model", data.Model, "purpose", data.Purpose,
			"latency_ms", data.LatencyMs, "error", err)
	} else {
		l.log.Debugw("llm request",
			"provider", data.Provider, "model", data.Model, "purpose", data.Purpose,
			"latency_ms", data.LatencyMs, "tokens", resp.Usage.Total())
	}

	if l.rec != nil {
		if recErr := l.rec.AppendLLMRequest(ctx, data); recErr != nil {
			l.log.Warnw("failed to record llm request", "error", recErr)
		}
	}
	return resp, err
}

func (l *logging) ModelID() string { return l.inner.ModelID() }

type deadline struct {
	inner Provider
	d     time.Duration
}

// WithTimeout bounds each Generate call, retries included, by d.
// A non-positive d returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &deadline{inner: p, d: d}
}

func (t *deadline) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *deadline) ModelID() string { return t.inner.ModelID() }
