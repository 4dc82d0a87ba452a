package explorer

import "github.com/couchcryptid/wildfire-explorer/internal/domain"

// Playback is the play/pause status of the selection.
type Playback int

const (
	Stopped Playback = iota
	Playing
)

func (p Playback) String() string {
	if p == Playing {
		return "playing"
	}
	return "stopped"
}

// Selection is a value snapshot of the selection state.
type Selection struct {
	Year     int      `json:"year"`
	Cause    string   `json:"cause"`
	Playback Playback `json:"-"`
}

// HasCause reports whether a cause is currently selected.
func (s Selection) HasCause() bool { return s.Cause != domain.NoCause }

// Playing reports whether playback is running.
func (s Selection) Playing() bool { return s.Playback == Playing }
