package database

import (
	"context"
	"fmt"
	"time"

	"github.com/questionboard/questionboard/pkg/logger"
)

// Retry calls connect up to attempts times, doubling the wait between tries.
// It tolerates startup races with database containers.
func Retry(ctx context.Context, name string, attempts int, backoff time.Duration, connect func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = connect(ctx); err == nil {
			return nil
		}
		logger.Warnf("attempt %d/%d: failed to connect to %s: %v", attempt, attempts, name, err)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", name, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("could not connect to %s after %d attempts: %w", name, attempts, err)
}
