// Package input polls SDL2 events and tracks held key and button state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType discriminates Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventScroll
)

// Modifiers holds the modifier key state captured with an event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Super bool
}

// Event is one processed input event.
//
// Inhibited marks the event as consumed by an earlier handler in the
// frame (a UI layer, a picking pass). Later handlers such as cameras
// must skip inhibited events.
type Event struct {
	Type      EventType
	Key       sdl.Scancode
	Mods      Modifiers
	Width     int
	Height    int
	MouseX    float32
	MouseY    float32
	DeltaX    float32
	DeltaY    float32
	Button    uint8
	Inhibited bool
}

// Inhibit marks the event consumed.
func (e *Event) Inhibit() { e.Inhibited = true }

// Input polls SDL and exposes per-frame events plus held state.
type Input struct {
	events  []Event
	keys    map[sdl.Scancode]bool
	buttons map[uint8]bool
	mouseX  float32
	mouseY  float32
}

// New creates an input poller.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		keys:    make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// Poll drains the SDL event queue. Returns true when the application
// should quit.
func (in *Input) Poll() bool {
	in.events = in.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			in.events = append(in.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				in.events = append(in.events, Event{
					Type:   EventResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			ev := Event{
				Key:  e.Keysym.Scancode,
				Mods: modifiers(e.Keysym.Mod),
			}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
				in.keys[e.Keysym.Scancode] = true
			} else {
				ev.Type = EventKeyUp
				delete(in.keys, e.Keysym.Scancode)
			}
			in.events = append(in.events, ev)

		case *sdl.MouseMotionEvent:
			in.mouseX, in.mouseY = float32(e.X), float32(e.Y)
			in.events = append(in.events, Event{
				Type:   EventMouseMove,
				MouseX: float32(e.X),
				MouseY: float32(e.Y),
				DeltaX: float32(e.XRel),
				DeltaY: float32(e.YRel),
				Mods:   modifiers(sdl.GetModState()),
			})

		case *sdl.MouseButtonEvent:
			ev := Event{
				MouseX: float32(e.X),
				MouseY: float32(e.Y),
				Button: e.Button,
				Mods:   modifiers(sdl.GetModState()),
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = EventMouseDown
				in.buttons[e.Button] = true
			} else {
				ev.Type = EventMouseUp
				delete(in.buttons, e.Button)
			}
			in.events = append(in.events, ev)

		case *sdl.MouseWheelEvent:
			in.events = append(in.events, Event{
				Type:   EventScroll,
				DeltaX: float32(e.X),
				DeltaY: float32(e.Y),
				Mods:   modifiers(sdl.GetModState()),
			})
		}
	}

	return quit
}

// Events returns the events polled this frame. The slice is valid until
// the next Poll; handlers may mutate entries to inhibit them.
func (in *Input) Events() []Event {
	return in.events
}

// KeyHeld reports whether the key is currently held down.
func (in *Input) KeyHeld(sc sdl.Scancode) bool {
	return in.keys[sc]
}

// ButtonHeld reports whether the mouse button is currently held down.
func (in *Input) ButtonHeld(button uint8) bool {
	return in.buttons[button]
}

// MousePos returns the last known cursor position in window coordinates.
func (in *Input) MousePos() (float32, float32) {
	return in.mouseX, in.mouseY
}

func modifiers(mod sdl.Keymod) Modifiers {
	return Modifiers{
		Shift: mod&sdl.KMOD_SHIFT != 0,
		Ctrl:  mod&sdl.KMOD_CTRL != 0,
		Alt:   mod&sdl.KMOD_ALT != 0,
		Super: mod&sdl.KMOD_GUI != 0,
	}
}
