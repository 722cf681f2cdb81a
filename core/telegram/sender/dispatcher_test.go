package sender

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	d := NewDispatcher(Options{
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
		MaxDuration:  time.Second,
	})
	t.Cleanup(d.Close)
	return d
}

func TestDispatcherPreservesOrder(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	var got []int
	for i := 1; i <= 5; i++ {
		i := i
		require.NoError(t, d.Do(ctx, "sendMessage", func() error {
			got = append(got, i)
			return nil
		}))
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestDispatcherRetriesTransientFailures(t *testing.T) {
	d := newTestDispatcher(t)

	calls := 0
	err := d.Do(context.Background(), "sendMessage", func() error {
		calls++
		if calls < 3 {
			return &net.OpError{Op: "dial", Err: errors.New("connection refused")}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Zero(t, d.ErrorCount())
}

func TestDispatcherDoesNotRetryPermanentFailures(t *testing.T) {
	d := newTestDispatcher(t)

	calls := 0
	err := d.Do(context.Background(), "sendMessage", func() error {
		calls++
		return errors.New("telegram: bad request (400)")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(1), d.ErrorCount())
}

func TestDispatcherRejectsAfterClose(t *testing.T) {
	d := NewDispatcher(Options{})
	d.Close()

	err := d.Do(context.Background(), "sendMessage", func() error { return nil })
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestRedactToken(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot12345:AAH-secret/sendMessage": EOF`)
	assert.NotContains(t, redactToken(err), "AAH-secret")
	assert.Contains(t, redactToken(err), "bot<redacted>")
}
