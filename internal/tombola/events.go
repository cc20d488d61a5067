package tombola

import "time"

// Event types published after a successful commit.
const (
	EventParticipantRegistered = "participant_registered"
	EventWinnerDrawn           = "winner_drawn"
	EventDrawCancelled         = "draw_cancelled"
	EventStats                 = "stats"
)

// Event is a notification about a raffle state change, consumed by the live
// results feed.
type Event struct {
	Type string      `json:"event_type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

// Notifier receives events. Implementations must not block.
type Notifier interface {
	Notify(Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}
