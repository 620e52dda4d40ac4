// Package announce collects announcement text for delivery to a client.
// The navigation core emits lines through the Announcer port; the HTTP
// layer drains them into each response.
package announce

import (
	"sync"

	"worldnav/internal/app/ports"
)

type Entry struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
}

type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

var _ ports.Announcer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Announce(text string, priority ports.Priority) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Text: text, Priority: priority.String()})
}

// Drain returns everything announced since the last call and clears
// the buffer.
func (r *Recorder) Drain() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.entries
	r.entries = nil
	return out
}
