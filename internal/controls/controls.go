// Package controls maps viewer actions to state transitions. It has no
// dependency on the windowing layer; internal/engine/input turns SDL key
// events into Actions.
package controls

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/cubeviewer/internal/engine/camera"
	"github.com/Faultbox/cubeviewer/internal/engine/lighting"
)

// Action is a named viewer command triggered by a key press.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionStrafeLeft
	ActionStrafeRight
	ActionLookUp
	ActionLookDown
	ActionLookLeft
	ActionLookRight
	ActionSink
	ActionRise
	ActionLightUp
	ActionLightDown
	ActionHelp
	ActionScreenshot
	ActionToggleBounds
	ActionReload
	ActionQuit
)

var actionNames = map[Action]string{
	ActionForward:      "forward",
	ActionBackward:     "backward",
	ActionStrafeLeft:   "strafe_left",
	ActionStrafeRight:  "strafe_right",
	ActionLookUp:       "look_up",
	ActionLookDown:     "look_down",
	ActionLookLeft:     "look_left",
	ActionLookRight:    "look_right",
	ActionSink:         "sink",
	ActionRise:         "rise",
	ActionLightUp:      "light_up",
	ActionLightDown:    "light_down",
	ActionHelp:         "help",
	ActionScreenshot:   "screenshot",
	ActionToggleBounds: "toggle_bounds",
	ActionReload:       "reload",
	ActionQuit:         "quit",
}

// String returns the config name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction returns the action with the given config name.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// ActionNames returns all config names in sorted order.
func ActionNames() []string {
	names := make([]string, 0, len(actionNames))
	for _, n := range actionNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// EventType distinguishes viewer events.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventAction
	EventResize
	EventReload // Watched asset files changed on disk
)

// Event is a windowing event already translated for the viewer.
type Event struct {
	Type   EventType
	Action Action
	Width  int
	Height int
}

// Tuning holds per-event step sizes.
type Tuning struct {
	MoveStep  float32 // Horizontal translation per key event
	LiftStep  float32 // Vertical translation per key event
	TurnStep  float32 // Degrees per key event
	LightStep float32 // Diffuse change per key event
}

// DefaultTuning returns the classic step sizes.
func DefaultTuning() Tuning {
	return Tuning{
		MoveStep:  0.1,
		LiftStep:  0.05,
		TurnStep:  1.0,
		LightStep: 0.1,
	}
}

// Dispatcher applies actions to the camera and the light. The two maps touch
// disjoint state, so an action may appear in both without ordering concerns.
type Dispatcher struct {
	movement map[Action]func(*camera.FlyCamera)
	lighting map[Action]func(*lighting.Lights)
}

// NewDispatcher builds the action tables for the given tuning.
func NewDispatcher(t Tuning) *Dispatcher {
	return &Dispatcher{
		movement: map[Action]func(*camera.FlyCamera){
			ActionForward:     func(c *camera.FlyCamera) { c.MoveForward(t.MoveStep) },
			ActionBackward:    func(c *camera.FlyCamera) { c.MoveBackward(t.MoveStep) },
			ActionStrafeLeft:  func(c *camera.FlyCamera) { c.StrafeLeft(t.MoveStep) },
			ActionStrafeRight: func(c *camera.FlyCamera) { c.StrafeRight(t.MoveStep) },
			ActionLookUp:      func(c *camera.FlyCamera) { c.Tilt(t.TurnStep) },
			ActionLookDown:    func(c *camera.FlyCamera) { c.Tilt(-t.TurnStep) },
			ActionLookLeft:    func(c *camera.FlyCamera) { c.Turn(t.TurnStep) },
			ActionLookRight:   func(c *camera.FlyCamera) { c.Turn(-t.TurnStep) },
			ActionSink:        func(c *camera.FlyCamera) { c.Lift(-t.LiftStep) },
			ActionRise:        func(c *camera.FlyCamera) { c.Lift(t.LiftStep) },
		},
		lighting: map[Action]func(*lighting.Lights){
			ActionLightUp:   func(l *lighting.Lights) { l.AdjustDiffuse(t.LightStep) },
			ActionLightDown: func(l *lighting.Lights) { l.AdjustDiffuse(-t.LightStep) },
		},
	}
}

// Apply runs the movement and lighting transitions bound to a. It reports
// whether either table handled the action.
func (d *Dispatcher) Apply(a Action, cam *camera.FlyCamera, lights *lighting.Lights) bool {
	handled := false
	if fn, ok := d.movement[a]; ok {
		fn(cam)
		handled = true
	}
	if fn, ok := d.lighting[a]; ok {
		fn(lights)
		handled = true
	}
	return handled
}

// HelpText describes the default key bindings.
const HelpText = "W, A, S, D: move the camera forward, left, back, right\n" +
	"Arrows: rotate the camera view\n" +
	"Q, E: lower and raise the camera\n" +
	"+, -: increase and decrease the diffuse light intensity\n" +
	"B: show or hide the bounding box\n" +
	"F1: show this help\n" +
	"F5: reload the mesh and texture\n" +
	"F12: save a screenshot\n" +
	"Esc: quit"

// BindingsHelp lists each bound action with its keys, in action order.
func BindingsHelp(bindings map[string][]string) string {
	var b strings.Builder
	for a := ActionForward; a <= ActionQuit; a++ {
		keys := bindings[a.String()]
		if len(keys) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", strings.ReplaceAll(a.String(), "_", " "), strings.Join(keys, ", "))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
