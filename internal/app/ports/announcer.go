package ports

type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "normal"
	}
}

// Announcer receives user-facing status lines. Fire and forget; the core
// never inspects the outcome.
type Announcer interface {
	Announce(text string, priority Priority)
}
