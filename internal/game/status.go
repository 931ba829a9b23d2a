package game

// Status is the lifecycle state of a Session.
type Status int

const (
	NotStarted Status = iota
	Armed
	InProgress
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Armed:
		return "armed"
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "unknown"
}

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool {
	return s == Won || s == Lost
}
