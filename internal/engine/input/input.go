// Package input translates SDL2 events into viewer events.
package input

import (
	"errors"
	"fmt"
	"sort"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/cubeviewer/internal/controls"
)

// Binding errors.
var (
	ErrUnknownKey   = errors.New("unknown key name")
	ErrDuplicateKey = errors.New("key bound to more than one action")
)

// Keymap binds SDL key codes to actions.
type Keymap map[sdl.Keycode]controls.Action

// NewKeymap builds a keymap from action names to SDL key names
// ("W", "Up", "Keypad +", ...). Single letters are case-insensitive.
func NewKeymap(bindings map[string][]string) (Keymap, error) {
	// Sorted so that a conflict is always reported the same way.
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	km := make(Keymap)
	for _, name := range names {
		action, err := controls.ParseAction(name)
		if err != nil {
			return nil, err
		}
		for _, keyName := range bindings[name] {
			key := sdl.GetKeyFromName(keyName)
			if key == sdl.K_UNKNOWN {
				return nil, fmt.Errorf("%w %q for %s", ErrUnknownKey, keyName, name)
			}
			if prev, ok := km[key]; ok && prev != action {
				return nil, fmt.Errorf("%w: %q for %s and %s", ErrDuplicateKey, keyName, prev, action)
			}
			km[key] = action
		}
	}
	return km, nil
}

// Input drains the SDL event queue.
type Input struct {
	keys   Keymap
	events []controls.Event
}

// New creates an input handler using the given key bindings.
func New(keys Keymap) *Input {
	return &Input{
		keys:   keys,
		events: make([]controls.Event, 0, 16),
	}
}

// Poll returns every pending event. The returned slice is reused by the
// next call.
func (i *Input) Poll() []controls.Event {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := i.translate(event); ok {
			i.events = append(i.events, e)
		}
	}
	return i.events
}

func (i *Input) translate(event sdl.Event) (controls.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return controls.Event{Type: controls.EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return controls.Event{
				Type:   controls.EventResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		// Key repeats count as presses.
		if e.Type != sdl.KEYDOWN {
			break
		}
		if action, ok := i.keys[e.Keysym.Sym]; ok {
			return controls.Event{Type: controls.EventAction, Action: action}, true
		}
	}
	return controls.Event{}, false
}
