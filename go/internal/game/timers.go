package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// TimerManager owns at most one live turn timer per session. Arm atomically
// replaces any existing timer; a replaced or disarmed timer can never deliver
// a late fire. Callbacks receive only the session id and must re-validate
// session state themselves.
type TimerManager struct {
	clock clockwork.Clock

	mu     sync.Mutex
	timers map[uuid.UUID]*armedTimer
}

type armedTimer struct {
	timer  clockwork.Timer
	cancel chan struct{}
}

// NewTimerManager creates a timer manager on the given clock.
func NewTimerManager(clock clockwork.Clock) *TimerManager {
	return &TimerManager{
		clock:  clock,
		timers: make(map[uuid.UUID]*armedTimer),
	}
}

// Arm installs a one-shot timer for the session, replacing and cancelling any
// existing one first. onFire runs on its own goroutine when the timer expires.
func (m *TimerManager) Arm(gameID uuid.UUID, d time.Duration, onFire func(uuid.UUID)) {
	at := &armedTimer{
		timer:  m.clock.NewTimer(d),
		cancel: make(chan struct{}),
	}

	m.mu.Lock()
	if prev, ok := m.timers[gameID]; ok {
		stopAndDrainTimer(prev.timer)
		close(prev.cancel)
		log.Debug().Str("game_id", gameID.String()).Msg("replaced existing turn timer")
	}
	m.timers[gameID] = at
	m.mu.Unlock()

	go func() {
		select {
		case <-at.timer.Chan():
			// The fire can race a concurrent Arm/Disarm. Only deliver if this
			// timer is still the registered one for the session.
			m.mu.Lock()
			cur, ok := m.timers[gameID]
			if !ok || cur != at {
				m.mu.Unlock()
				return
			}
			delete(m.timers, gameID)
			m.mu.Unlock()
			onFire(gameID)
		case <-at.cancel:
		}
	}()

	log.Debug().
		Str("game_id", gameID.String()).
		Dur("duration", d).
		Msg("armed turn timer")
}

// Disarm cancels and removes the session's timer. No-op if none is armed.
func (m *TimerManager) Disarm(gameID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if at, ok := m.timers[gameID]; ok {
		stopAndDrainTimer(at.timer)
		close(at.cancel)
		delete(m.timers, gameID)
		log.Debug().Str("game_id", gameID.String()).Msg("disarmed turn timer")
	}
}

// Armed reports whether the session currently has a live timer.
func (m *TimerManager) Armed(gameID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.timers[gameID]
	return ok
}

// stopAndDrainTimer safely stops a timer and drains its channel, following
// the pattern from the time.Timer.Stop documentation.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
