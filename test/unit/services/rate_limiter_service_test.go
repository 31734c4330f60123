package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	impl "github.com/imageon/fedipost/internal/application/services"
	"github.com/imageon/fedipost/test/mocks"
)

func TestAllow_UnderLimit(t *testing.T) {
	repo := &mocks.RateLimitRepositoryMock{IncrementWindowFn: func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
		return 5, time.Now().Truncate(window), nil
	}}
	svc := impl.NewRateLimiterService(repo, &impl.RateLimiterConfig{PostsPerMinute: 10}, nil)

	allowed, remaining, limit, _, err := svc.Allow(context.Background(), "1.2.3.4")
	if err != nil || !allowed {
		t.Fatalf("expected allowed, got allowed=%v err=%v", allowed, err)
	}
	if limit != 10 || remaining != 5 {
		t.Fatalf("unexpected limit/remaining: %d/%d", limit, remaining)
	}
}

func TestAllow_OverLimit(t *testing.T) {
	repo := &mocks.RateLimitRepositoryMock{IncrementWindowFn: func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
		return 11, time.Now().Truncate(window), nil
	}}
	svc := impl.NewRateLimiterService(repo, &impl.RateLimiterConfig{PostsPerMinute: 10}, nil)

	allowed, _, _, _, err := svc.Allow(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatalf("expected request over the limit to be denied")
	}
}

func TestAllow_FailsOpenOnStorageError(t *testing.T) {
	repo := &mocks.RateLimitRepositoryMock{IncrementWindowFn: func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
		return 0, time.Now(), errors.New("redis down")
	}}
	svc := impl.NewRateLimiterService(repo, nil, nil)

	allowed, _, _, _, err := svc.Allow(context.Background(), "1.2.3.4")
	if !allowed {
		t.Fatalf("limiter must fail open when the counter store is down")
	}
	if err == nil {
		t.Fatalf("storage error should still be reported to the caller")
	}
}
