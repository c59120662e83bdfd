package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-racer/internal/event"
)

// defaultKeyRelease is used when the configured release delay is not set.
// It covers the usual terminal auto-repeat delay, so a held key does not
// drop out before its repeats start.
const defaultKeyRelease = 500 * time.Millisecond

// KeyMapper translates Bubble Tea key messages into engine events.
// Terminals report presses (and auto-repeats) but never releases, so the
// mapper synthesizes a KeyUp once a key has been quiet for the release
// delay.
type KeyMapper struct {
	release time.Duration
	seq     map[string]uint64
}

// keyReleaseMsg fires when a key may have been released.
type keyReleaseMsg struct {
	key string
	seq uint64
}

// NewKeyMapper creates a mapper with the given release delay.
func NewKeyMapper(release time.Duration) *KeyMapper {
	if release <= 0 {
		release = defaultKeyRelease
	}
	return &KeyMapper{release: release, seq: make(map[string]uint64)}
}

// MapKey translates a key message. ctrl+c is an OS quit request; every
// other key becomes a KeyDown plus a command that later reports its
// release.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (event.Event, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return event.Quit{}, nil
	}

	km.seq[key]++
	seq := km.seq[key]
	return event.KeyDown{Key: key}, tea.Tick(km.release, func(time.Time) tea.Msg {
		return keyReleaseMsg{key: key, seq: seq}
	})
}

// Release returns the KeyUp for msg if no newer press of the key arrived
// since it was scheduled.
func (km *KeyMapper) Release(msg keyReleaseMsg) (event.KeyUp, bool) {
	if km.seq[msg.key] != msg.seq {
		return event.KeyUp{}, false
	}
	delete(km.seq, msg.key)
	return event.KeyUp{Key: msg.key}, true
}
