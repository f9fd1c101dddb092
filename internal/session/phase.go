package session

// Phase is the top-level state of a session.
type Phase int

const (
	Idle Phase = iota
	Running
	Paused
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}

	return "unknown"
}

// Live reports whether a session is in progress.
func (p Phase) Live() bool {
	return p == Running || p == Paused
}
