package batch

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunKeepsOrder(t *testing.T) {
	items := []string{"bir", "iki", "üç", "dört"}

	results := Run(context.Background(), items, 2, func(_ context.Context, s string) (string, error) {
		time.Sleep(time.Duration(len(s)) * time.Millisecond)
		return strings.ToUpper(s), nil
	})

	require.Len(t, results, len(items))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.NoError(t, r.Err)
		assert.Equal(t, strings.ToUpper(items[i]), r.Value)
	}
}

func TestRunLimitsWorkers(t *testing.T) {
	var running, peak int32

	Run(context.Background(), make([]int, 20), 3, func(_ context.Context, _ int) (struct{}, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return struct{}{}, nil
	})

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
	assert.Greater(t, atomic.LoadInt32(&peak), int32(0))
}

func TestRunErrors(t *testing.T) {
	errOdd := errors.New("tek")

	results := Run(context.Background(), []int{1, 2, 3}, 0, func(_ context.Context, n int) (int, error) {
		if n%2 == 1 {
			return 0, errOdd
		}
		return n * 10, nil
	})

	assert.ErrorIs(t, results[0].Err, errOdd)
	assert.Equal(t, 20, results[1].Value)
	assert.ErrorIs(t, results[2].Err, errOdd)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	results := Run(ctx, []int{1, 2, 3}, 1, func(_ context.Context, n int) (int, error) {
		atomic.AddInt32(&calls, 1)
		return n, nil
	})

	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
