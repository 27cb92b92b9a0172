package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerCoalescesBurst(t *testing.T) {
	d := New(30 * time.Millisecond)

	var calls, last atomic.Int64
	for i := 1; i <= 5; i++ {
		n := int64(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, int64(5), last.Load())
	assert.False(t, d.Pending())
}

func TestCancelDropsPendingCall(t *testing.T) {
	d := New(20 * time.Millisecond)

	var calls atomic.Int64
	d.Trigger(func() { calls.Add(1) })
	require.True(t, d.Pending())

	d.Cancel()
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, calls.Load())
	assert.False(t, d.Pending())
}

func TestFlushRunsImmediatelyOnce(t *testing.T) {
	d := New(time.Hour)

	var calls atomic.Int64
	d.Trigger(func() { calls.Add(1) })

	assert.True(t, d.Flush())
	assert.Equal(t, int64(1), calls.Load())
	assert.False(t, d.Flush())
	assert.Equal(t, int64(1), calls.Load())
}

func TestStopDisablesTrigger(t *testing.T) {
	d := New(10 * time.Millisecond)
	d.Stop()

	var calls atomic.Int64
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
