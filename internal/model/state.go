package model

// ConnectionState is the lifecycle state of a stream client. Exactly one
// state is held at a time; every transition is total given the current
// state and the triggering event.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connecting
	Connected
	Reconnecting
	Exhausted
)

var stateNames = map[ConnectionState]string{
	Disconnected: "disconnected",
	Connecting:   "connecting",
	Connected:    "connected",
	Reconnecting: "reconnecting",
	Exhausted:    "exhausted",
}

func (s ConnectionState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the state requires an external Open call to exit.
func (s ConnectionState) Terminal() bool {
	return s == Disconnected || s == Exhausted
}
