package resilience

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/kbukum/flinker/errors"
	"github.com/kbukum/flinker/rx"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		BackoffFactor:  2.0,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), DefaultRetryConfig(), "op", func(context.Context) (string, error) {
		calls++
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %s", result)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_SucceedsAfterRetryableFailures(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), fastRetry(3), "op", func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.Unavailable("backend")
		}
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" || calls != 3 {
		t.Errorf("expected success on call 3, got %q after %d calls", result, calls)
	}
}

func TestRetry_Exhausted(t *testing.T) {
	calls := 0
	last := errors.Timeout("fetch")
	_, err := Retry(context.Background(), fastRetry(3), "fetch", func(context.Context) (int, error) {
		calls++
		return 0, last
	})

	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	appErr, ok := errors.As(err)
	if !ok || appErr.Code != errors.ErrCodeExhausted {
		t.Fatalf("expected RETRIES_EXHAUSTED, got %v", err)
	}
	if appErr.Details["attempts"] != 3 {
		t.Errorf("expected attempts=3, got %v", appErr.Details["attempts"])
	}
	if !stderrors.Is(err, last) {
		t.Error("exhausted error should wrap the last failure")
	}
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	notFound := errors.NotFound("user", "7")
	_, err := Retry(context.Background(), fastRetry(5), "op", func(context.Context) (int, error) {
		calls++
		return 0, notFound
	})

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if err != notFound {
		t.Errorf("expected the original error, got %v", err)
	}
}

func TestRetry_CustomRetryIf(t *testing.T) {
	cfg := fastRetry(3)
	cfg.RetryIf = func(error) bool { return true }
	calls := 0
	_, err := Retry(context.Background(), cfg, "op", func(context.Context) (int, error) {
		calls++
		return 0, stderrors.New("plain")
	})
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if errors.CodeOf(err) != errors.ErrCodeExhausted {
		t.Errorf("expected RETRIES_EXHAUSTED, got %v", err)
	}
}

func TestRetry_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastRetry(10)
	cfg.InitialBackoff = time.Second
	cfg.MaxBackoff = time.Second

	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := Retry(ctx, cfg, "op", func(context.Context) (int, error) {
		calls++
		return 0, errors.Unavailable("backend")
	})

	if errors.CodeOf(err) != errors.ErrCodeCancelled {
		t.Errorf("expected CANCELLED, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancel, got %d", calls)
	}
}

func TestRetry_OnRetryCallback(t *testing.T) {
	cfg := fastRetry(3)
	var attempts []int
	cfg.OnRetry = func(attempt int, _ error, backoff time.Duration) {
		attempts = append(attempts, attempt)
		if backoff <= 0 {
			t.Errorf("expected positive backoff, got %v", backoff)
		}
	}
	_ = RetryFunc(context.Background(), cfg, "op", func(context.Context) error {
		return errors.Unavailable("backend")
	})

	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("expected OnRetry for attempts [1 2], got %v", attempts)
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
	}
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{5, time.Second},
	}
	for _, tc := range tests {
		if got := calculateBackoff(tc.attempt, cfg); got != tc.want {
			t.Errorf("attempt %d: expected %v, got %v", tc.attempt, tc.want, got)
		}
	}
}

func TestCalculateBackoff_JitterBounds(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  1.0,
		Jitter:         0.5,
	}
	for i := 0; i < 50; i++ {
		got := calculateBackoff(1, cfg)
		if got < 50*time.Millisecond || got > 150*time.Millisecond {
			t.Fatalf("backoff %v outside jitter bounds", got)
		}
	}
}

func TestRetryConfig_ApplyDefaults(t *testing.T) {
	var cfg RetryConfig
	cfg.ApplyDefaults()
	d := DefaultRetryConfig()
	if cfg.MaxAttempts != d.MaxAttempts || cfg.InitialBackoff != d.InitialBackoff ||
		cfg.MaxBackoff != d.MaxBackoff || cfg.BackoffFactor != d.BackoffFactor {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.RetryIf == nil {
		t.Error("expected default RetryIf")
	}
	if cfg.Jitter != 0 {
		t.Errorf("jitter should stay as set, got %v", cfg.Jitter)
	}
}

// stepScheduler queues delayed calls until the test runs them.
type stepScheduler struct {
	queued []func()
	delays []time.Duration
}

type stepTimer struct{ stopped *bool }

func (t stepTimer) Stop() bool {
	was := *t.stopped
	*t.stopped = true
	return !was
}

func (s *stepScheduler) AfterFunc(d time.Duration, fn func()) rx.Timer {
	stopped := false
	s.delays = append(s.delays, d)
	s.queued = append(s.queued, func() {
		if !stopped {
			stopped = true
			fn()
		}
	})
	return stepTimer{&stopped}
}

func (s *stepScheduler) runNext() bool {
	if len(s.queued) == 0 {
		return false
	}
	fn := s.queued[0]
	s.queued = s.queued[1:]
	fn()
	return true
}

func TestRetryOperation_SucceedsAfterFailures(t *testing.T) {
	sched := &stepScheduler{}
	var attempts []*rx.Operation[string]
	op := RetryOperation(sched, fastRetry(3), "fetch", func(n int) *rx.Operation[string] {
		a := rx.NewOperation[string]()
		attempts = append(attempts, a)
		return a
	})

	var got []string
	completed := false
	op.Pipe().
		OnReceive(func(v string) { got = append(got, v) }).
		OnComplete(func() { completed = true }).
		Subscribe()

	attempts[0].Fail(errors.Unavailable("backend"))
	if op.IsResolved() {
		t.Fatal("should wait for the backoff")
	}
	if !sched.runNext() {
		t.Fatal("expected a scheduled retry")
	}
	if len(attempts) != 2 {
		t.Fatalf("expected second attempt, got %d", len(attempts))
	}
	attempts[1].Success("profile")

	if len(got) != 1 || got[0] != "profile" || !completed {
		t.Errorf("expected [profile] then completion, got %v completed=%v", got, completed)
	}
	if len(sched.delays) != 1 || sched.delays[0] != time.Millisecond {
		t.Errorf("expected one 1ms backoff, got %v", sched.delays)
	}
}

func TestRetryOperation_Exhausted(t *testing.T) {
	sched := &stepScheduler{}
	op := RetryOperation(sched, fastRetry(2), "fetch", func(n int) *rx.Operation[int] {
		a := rx.NewOperation[int]()
		a.Fail(errors.Timeout("fetch"))
		return a
	})
	for sched.runNext() {
	}

	if !op.IsResolved() {
		t.Fatal("expected resolution")
	}
	if errors.CodeOf(op.Err()) != errors.ErrCodeExhausted {
		t.Errorf("expected RETRIES_EXHAUSTED, got %v", op.Err())
	}
}

func TestRetryOperation_NonRetryableFailsAtOnce(t *testing.T) {
	sched := &stepScheduler{}
	invalid := errors.InvalidInput("id", "empty")
	op := RetryOperation(sched, fastRetry(5), "fetch", func(n int) *rx.Operation[int] {
		a := rx.NewOperation[int]()
		a.Fail(invalid)
		return a
	})

	if op.Err() != invalid {
		t.Errorf("expected the original error, got %v", op.Err())
	}
	if len(sched.queued) != 0 {
		t.Error("no retry should be scheduled")
	}
}

func TestRetryOperation_EarlyResolveStopsRetries(t *testing.T) {
	sched := &stepScheduler{}
	calls := 0
	op := RetryOperation(sched, fastRetry(5), "fetch", func(n int) *rx.Operation[int] {
		calls++
		a := rx.NewOperation[int]()
		a.Fail(errors.Unavailable("backend"))
		return a
	})

	op.Fail(errors.Cancelled("fetch"))
	if sched.runNext() && calls != 1 {
		t.Errorf("expected no further attempts, got %d calls", calls)
	}
	if errors.CodeOf(op.Err()) != errors.ErrCodeCancelled {
		t.Errorf("expected CANCELLED, got %v", op.Err())
	}
}

func TestRetry_SingleAttemptKeepsError(t *testing.T) {
	unavailable := errors.Unavailable("backend")
	_, err := Retry(context.Background(), fastRetry(1), "op", func(context.Context) (int, error) {
		return 0, unavailable
	})
	if err != unavailable {
		t.Errorf("expected the original error, got %v", err)
	}
}
