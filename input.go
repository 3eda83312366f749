package sprites

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Hit shapes ---

// HitShape is an optional hit area in sprite-local coordinates. Sprites
// without one are hit-tested against their bounds.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is a rectangular hit area in local coordinates. Edges hit.
type HitRect Rect

func (r HitRect) Contains(x, y float64) bool { return Rect(r).Contains(x, y) }

// HitCircle is a circular hit area in local coordinates. The rim hits.
type HitCircle struct {
	Center Vec2
	Radius float64
}

func (c HitCircle) Contains(x, y float64) bool {
	return math.Hypot(x-c.Center.X, y-c.Center.Y) <= c.Radius
}

// HitPolygon is a polygon hit area in local coordinates. Any simple
// polygon works, concave or convex, in either winding; fewer than three
// points never hit.
type HitPolygon struct {
	Points []Vec2
}

// Contains uses the even-odd rule: a ray cast to the right of (x, y)
// crosses the outline an odd number of times when the point is inside.
func (p HitPolygon) Contains(x, y float64) bool {
	if len(p.Points) < 3 {
		return false
	}
	inside := false
	prev := p.Points[len(p.Points)-1]
	for _, cur := range p.Points {
		if (cur.Y > y) != (prev.Y > y) {
			cross := cur.X + (y-cur.Y)*(prev.X-cur.X)/(prev.Y-cur.Y)
			if x < cross {
				inside = !inside
			}
		}
		prev = cur
	}
	return inside
}

// --- Pointer input ---

// PointerState is a snapshot of one pointer, in the same coordinate space as
// sprite bounds.
type PointerState struct {
	X, Y   float64
	Down   bool
	Button ebiten.MouseButton
}

// PollPointer reads the mouse. The first pressed button of left, right and
// middle is reported.
func PollPointer() PointerState {
	mx, my := ebiten.CursorPosition()
	p := PointerState{X: float64(mx), Y: float64(my)}
	for _, b := range [...]ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight, ebiten.MouseButtonMiddle} {
		if ebiten.IsMouseButtonPressed(b) {
			p.Down = true
			p.Button = b
			break
		}
	}
	return p
}

// pointerTracker holds what a sprite remembers between pointer snapshots.
type pointerTracker struct {
	hovered   bool
	down      bool
	pressedOn bool               // the press started over the sprite
	button    ebiten.MouseButton // button captured at press time
}

// HandlePointer runs the pointer state machine for p: hover enter and leave
// when the pointer crosses the sprite, click when a press starts over it and
// release when that press ends, wherever the pointer is by then.
func (s *Sprite) HandlePointer(p PointerState) {
	ps := &s.pointer
	inside := s.HitTest(p.X, p.Y)

	if inside != ps.hovered {
		ps.hovered = inside
		s.Fire(Event{Kind: EventHover, X: p.X, Y: p.Y, Button: p.Button, Hover: inside})
	}

	switch {
	case p.Down && !ps.down:
		// Just pressed: capture the button for the rest of the interaction.
		ps.down = true
		ps.button = p.Button
		ps.pressedOn = inside
		if inside {
			s.Fire(Event{Kind: EventClick, X: p.X, Y: p.Y, Button: ps.button})
		}
	case !p.Down && ps.down:
		if ps.pressedOn {
			s.Fire(Event{Kind: EventRelease, X: p.X, Y: p.Y, Button: ps.button})
		}
		ps.down = false
		ps.pressedOn = false
	}
}

// Hovered reports whether the pointer was over the sprite at the last
// HandlePointer call.
func (s *Sprite) Hovered() bool { return s.pointer.hovered }

// Pressed reports whether a press that started over the sprite is held.
func (s *Sprite) Pressed() bool { return s.pointer.down && s.pointer.pressedOn }

// HitTest reports whether the point (x, y) hits the sprite. Uses HitShape if
// set; otherwise the bounds.
func (s *Sprite) HitTest(x, y float64) bool {
	if s.HitShape != nil {
		return s.HitShape.Contains(x-s.bounds.X, y-s.bounds.Y)
	}
	if s.bounds.Empty() {
		return false
	}
	return s.bounds.Contains(x, y)
}
