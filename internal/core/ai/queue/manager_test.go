package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ingredient-analyzer/internal/pkg/common"
)

func TestManagerLimitsConcurrency(t *testing.T) {
	m := newManager(2, 10)

	var active, peak int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Do(context.Background(), func(context.Context) error {
				n := atomic.AddInt64(&active, 1)
				for {
					p := atomic.LoadInt64(&peak)
					if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt64(&active, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(2))
	status := m.GetQueueStatus()
	assert.Equal(t, int64(8), status.ProcessedCount)
	assert.Equal(t, 0, status.Active)
	assert.Equal(t, 0, status.QueueLength)
}

func TestManagerRejectsWhenQueueFull(t *testing.T) {
	m := newManager(1, 0)

	release, err := m.Acquire(context.Background())
	require.NoError(t, err)

	_, err = m.Acquire(context.Background())
	assert.True(t, errors.Is(err, common.ErrQueueFull))
	assert.Equal(t, int64(1), m.GetQueueStatus().RejectedCount)

	release()
	release()
	next, err := m.Acquire(context.Background())
	require.NoError(t, err)
	next()
}

func TestManagerWaitRespectsContext(t *testing.T) {
	m := newManager(1, 1)
	release, err := m.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = m.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, m.GetQueueStatus().QueueLength)
}

func TestManagerClose(t *testing.T) {
	m := newManager(1, 1)
	m.Close()
	m.Close()

	_, err := m.Acquire(context.Background())
	assert.Error(t, err)
	assert.True(t, m.GetQueueStatus().Closed)
}

func TestDoPropagatesError(t *testing.T) {
	m := newManager(1, 1)
	want := errors.New("upstream")
	err := m.Do(context.Background(), func(context.Context) error { return want })
	assert.ErrorIs(t, err, want)
	assert.Equal(t, int64(1), m.GetQueueStatus().ProcessedCount)
}
