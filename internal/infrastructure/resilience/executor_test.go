package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     time.Millisecond,
		RetryMultiplier:     1.0,
		BreakerEnabled:      false,
	}
}

func retryableClassifier(error) ErrorClassification {
	return ErrorClassification{Retryable: true, RecordFailure: true}
}

func TestExecuteRetriesUntilSuccess(t *testing.T) {
	executor := NewExecutor(fastConfig())

	calls := 0
	err := executor.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, retryableClassifier)

	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestExecuteStopsAtMaxAttempts(t *testing.T) {
	executor := NewExecutor(fastConfig())

	calls := 0
	wantErr := errors.New("still failing")
	err := executor.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return wantErr
	}, retryableClassifier)

	if !errors.Is(err, wantErr) {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestExecuteDoesNotRetryPermanentFailure(t *testing.T) {
	executor := NewExecutor(fastConfig())

	calls := 0
	err := executor.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return errors.New("bad request")
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: false}
	})

	if err == nil {
		t.Fatal("expected the failure to surface")
	}
	if calls != 1 {
		t.Fatalf("permanent failure must not be retried, got %d attempts", calls)
	}
}

func TestExecuteRespectsContextCancellation(t *testing.T) {
	executor := NewExecutor(Config{
		RetryMaxAttempts:    5,
		RetryInitialBackoff: time.Minute,
		RetryMaxBackoff:     time.Minute,
		RetryMultiplier:     1.0,
		BreakerEnabled:      false,
	})

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	start := time.Now()
	err := executor.Execute(ctx, "op", func(context.Context) error {
		calls++
		cancel()
		return errors.New("transient")
	}, retryableClassifier)

	if err == nil {
		t.Fatal("expected an error after cancellation")
	}
	if calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", calls)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("cancellation must interrupt the backoff wait")
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryMaxAttempts = 1
	cfg.BreakerEnabled = true
	cfg.BreakerMinRequests = 3
	cfg.BreakerFailureRatio = 0.5
	cfg.BreakerOpenTimeout = time.Minute
	cfg.BreakerHalfOpenMaxCalls = 1
	executor := NewExecutor(cfg)

	upstream := errors.New("upstream down")
	for i := 0; i < 3; i++ {
		err := executor.Execute(context.Background(), "op", func(context.Context) error {
			return upstream
		}, retryableClassifier)
		if !errors.Is(err, upstream) {
			t.Fatalf("attempt %d: error = %v", i, err)
		}
	}

	calls := 0
	err := executor.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	}, retryableClassifier)

	if !IsCircuitOpen(err) {
		t.Fatalf("expected the breaker to short-circuit, got %v", err)
	}
	if calls != 0 {
		t.Fatal("open breaker must not reach the upstream callback")
	}
}

func TestBreakerIgnoresUnrecordedFailures(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryMaxAttempts = 1
	cfg.BreakerEnabled = true
	cfg.BreakerMinRequests = 2
	cfg.BreakerFailureRatio = 0.5
	executor := NewExecutor(cfg)

	unrecorded := func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: false}
	}
	for i := 0; i < 10; i++ {
		_ = executor.Execute(context.Background(), "op", func(context.Context) error {
			return errors.New("client mistake")
		}, unrecorded)
	}

	calls := 0
	err := executor.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	}, unrecorded)

	if err != nil {
		t.Fatalf("breaker must stay closed, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected the call to go through, got %d", calls)
	}
}
