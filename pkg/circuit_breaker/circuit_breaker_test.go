package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/libhub/library-service/pkg/circuit_breaker"
)

func Test_circuitBreaker_Call(t *testing.T) {
	successfulService := func() error {
		return nil
	}
	failingService := func() error {
		return errors.New("service error")
	}

	cb := circuit_breaker.New(10, 100*time.Millisecond, 0.30, 3)

	for i := 0; i < 80; i++ {
		require.NoError(t, cb.Call(successfulService))
	}

	// trip the breaker with a failing tail
	var errOpenSeen bool
	for i := 0; i < 40; i++ {
		if err := cb.Call(failingService); errors.Is(err, circuit_breaker.ErrOpenCB) {
			errOpenSeen = true
		}
	}
	require.True(t, errOpenSeen, "breaker must open and fail fast")

	// wait for half-open, then recover with consecutive successes
	time.Sleep(150 * time.Millisecond)
	for i := 0; i < 15; i++ {
		if err := cb.Call(successfulService); err != nil {
			t.Fatalf("call %d during recovery: %v", i, err)
		}
	}

	// a fresh failing streak in half-open must reopen immediately
	cb.Reset()
	for i := 0; i < 40; i++ {
		_ = cb.Call(failingService)
	}
	require.ErrorIs(t, cb.Call(successfulService), circuit_breaker.ErrOpenCB)
}
