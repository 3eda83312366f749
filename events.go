package sprites

import "github.com/hajimehoshi/ebiten/v2"

// EventKind identifies a sprite event.
type EventKind uint8

const (
	EventHover          EventKind = iota // pointer entered or left the sprite; see Event.Hover
	EventClick                           // button pressed over the sprite
	EventRelease                         // button released after a press on the sprite
	EventStateEnter                      // a state became current
	EventAnimationFrame                  // animation playback entered a frame
	EventCollide                         // CheckCollision found an overlap
	eventKindCount
)

func (k EventKind) String() string {
	switch k {
	case EventHover:
		return "hover"
	case EventClick:
		return "click"
	case EventRelease:
		return "release"
	case EventStateEnter:
		return "state_enter"
	case EventAnimationFrame:
		return "animation_frame"
	case EventCollide:
		return "collide"
	default:
		return "unknown"
	}
}

// Event is delivered to handlers. Fields not relevant to Kind are zero.
type Event struct {
	Kind   EventKind
	Sprite *Sprite

	// Pointer events.
	X, Y   float64
	Button ebiten.MouseButton
	Hover  bool // true on enter, false on leave

	// EventStateEnter.
	State string
	From  string

	// EventAnimationFrame.
	Anim  string
	Frame int

	// EventCollide.
	Other *Sprite
}

// EventSink receives a copy of every event a sprite fires, after its own
// handlers ran. The ecs package bridges it to a donburi world.
type EventSink interface {
	Emit(Event)
}

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	lists  [eventKindCount][]eventHandler
	nextID uint32
}

// Handle allows removing a registered event handler.
type Handle struct {
	id   uint32
	reg  *handlerRegistry
	kind EventKind
}

// Remove unregisters the handler so it no longer fires. Removing twice is a
// no-op.
func (h Handle) Remove() {
	if h.reg == nil || h.kind >= eventKindCount {
		return
	}
	s := h.reg.lists[h.kind]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.lists[h.kind] = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) add(kind EventKind, fn func(Event)) Handle {
	if kind >= eventKindCount || fn == nil {
		return Handle{}
	}
	r.nextID++
	id := r.nextID
	r.lists[kind] = append(r.lists[kind], eventHandler{id: id, fn: fn})
	return Handle{id: id, reg: r, kind: kind}
}

// count returns the number of handlers registered for kind.
func (r *handlerRegistry) count(kind EventKind) int {
	return len(r.lists[kind])
}

// fire calls the handlers of ev.Kind in registration order. Handlers added
// or removed while firing take effect from the next event.
func (r *handlerRegistry) fire(ev Event) {
	if ev.Kind >= eventKindCount {
		return
	}
	hs := r.lists[ev.Kind]
	switch len(hs) {
	case 0:
		return
	case 1:
		hs[0].fn(ev)
		return
	}
	snapshot := make([]eventHandler, len(hs))
	copy(snapshot, hs)
	for _, h := range snapshot {
		h.fn(ev)
	}
}
