package ledger

import (
	"github.com/rs/zerolog"
)

// Event is a typed notification emitted by a component. Concrete event
// structs live next to their emitters.
type Event interface {
	EventName() string
}

// Recorder collects emitted events in order and mirrors each one to the
// structured log. Tests inspect the collected slice; operators read the log.
type Recorder struct {
	log    zerolog.Logger
	events []Event
}

func NewRecorder(log zerolog.Logger) *Recorder {
	return &Recorder{log: log}
}

func (r *Recorder) Emit(e Event) {
	r.events = append(r.events, e)
	r.log.Debug().Str("event", e.EventName()).Interface("payload", e).Msg("event emitted")
}

// Events returns the emitted events in emission order.
func (r *Recorder) Events() []Event {
	return r.events
}

// Find returns the events with the given name, in emission order.
func (r *Recorder) Find(name string) []Event {
	var out []Event
	for _, e := range r.events {
		if e.EventName() == name {
			out = append(out, e)
		}
	}
	return out
}
