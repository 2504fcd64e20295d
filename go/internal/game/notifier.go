package game

import "context"

// Notifier pushes session snapshots to every connection subscribed to the
// session's channel. Pushes are fire-and-forget; delivery failures are the
// transport's problem, not the engine's.
type Notifier interface {
	// GameUpdated is published on every state change.
	GameUpdated(ctx context.Context, snap Snapshot)
	// GameTimeout is additionally published when a session resolves by
	// timeout or disconnect forfeiture.
	GameTimeout(ctx context.Context, snap Snapshot)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) GameUpdated(context.Context, Snapshot) {}
func (NopNotifier) GameTimeout(context.Context, Snapshot) {}
