package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerManagerFires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tm := NewTimerManager(clock)
	gameID := uuid.New()

	var fired atomic.Int32
	tm.Arm(gameID, 20*time.Second, func(id uuid.UUID) {
		assert.Equal(t, gameID, id)
		fired.Add(1)
	})
	require.True(t, tm.Armed(gameID))

	clock.Advance(20 * time.Second)

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
	assert.False(t, tm.Armed(gameID))
}

func TestTimerManagerDisarmPreventsFire(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tm := NewTimerManager(clock)
	gameID := uuid.New()

	var fired atomic.Int32
	tm.Arm(gameID, 20*time.Second, func(uuid.UUID) { fired.Add(1) })
	tm.Disarm(gameID)
	assert.False(t, tm.Armed(gameID))

	clock.Advance(time.Minute)

	// Give any stray goroutine a chance to misbehave.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestTimerManagerDisarmIsIdempotent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tm := NewTimerManager(clock)
	gameID := uuid.New()

	tm.Disarm(gameID) // nothing armed, no-op

	tm.Arm(gameID, time.Second, func(uuid.UUID) {})
	tm.Disarm(gameID)
	tm.Disarm(gameID)
	assert.False(t, tm.Armed(gameID))
}

func TestTimerManagerArmReplacesPrevious(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tm := NewTimerManager(clock)
	gameID := uuid.New()

	var oldFired, newFired atomic.Int32
	tm.Arm(gameID, 10*time.Second, func(uuid.UUID) { oldFired.Add(1) })
	tm.Arm(gameID, 30*time.Second, func(uuid.UUID) { newFired.Add(1) })

	// Past the old deadline: the replaced timer must stay silent.
	clock.Advance(15 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), oldFired.Load())
	assert.Equal(t, int32(0), newFired.Load())

	clock.Advance(15 * time.Second)
	require.Eventually(t, func() bool { return newFired.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(0), oldFired.Load())
}

func TestTimerManagerIndependentSessions(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tm := NewTimerManager(clock)
	a, b := uuid.New(), uuid.New()

	var firedA, firedB atomic.Int32
	tm.Arm(a, 10*time.Second, func(uuid.UUID) { firedA.Add(1) })
	tm.Arm(b, 20*time.Second, func(uuid.UUID) { firedB.Add(1) })

	clock.Advance(10 * time.Second)
	require.Eventually(t, func() bool { return firedA.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(0), firedB.Load())
	assert.True(t, tm.Armed(b))

	clock.Advance(10 * time.Second)
	require.Eventually(t, func() bool { return firedB.Load() == 1 }, time.Second, time.Millisecond)
}
