package sprites

import "github.com/hajimehoshi/ebiten/v2"

// Sprite is the base every sprite variant builds on: a named rectangle with
// a composed visual and an event registry. Positions are in the coordinate
// space of whatever Surface the sprite is drawn onto.
type Sprite struct {
	Name string

	// HitShape, when set, replaces the bounds for pointer hit testing.
	HitShape HitShape

	// Visible controls drawing. Invisible sprites still receive events.
	Visible bool

	bounds   Rect
	visual   ComposedVisual
	handlers handlerRegistry
	sink     EventSink
	pointer  pointerTracker
}

// NewSprite creates a visible sprite with an empty visual.
func NewSprite(name string, bounds Rect) *Sprite {
	s := &Sprite{}
	s.init(name, bounds)
	return s
}

func (s *Sprite) init(name string, bounds Rect) {
	s.Name = name
	s.Visible = true
	s.bounds = bounds
}

// Bounds returns the sprite rectangle.
func (s *Sprite) Bounds() Rect { return s.bounds }

// Position returns the top-left corner.
func (s *Sprite) Position() Vec2 { return Vec2{s.bounds.X, s.bounds.Y} }

// SetPosition moves the sprite without changing its size.
func (s *Sprite) SetPosition(x, y float64) {
	s.bounds.X, s.bounds.Y = x, y
}

// Visual returns the current composed visual.
func (s *Sprite) Visual() ComposedVisual { return s.visual }

// SetVisual replaces the composed visual.
func (s *Sprite) SetVisual(v ComposedVisual) { s.visual = v }

// On registers fn for events of the given kind. Handlers of a kind run in
// registration order.
func (s *Sprite) On(kind EventKind, fn func(Event)) Handle {
	return s.handlers.add(kind, fn)
}

// SetSink forwards every fired event to sink after the sprite's handlers.
// A nil sink disconnects.
func (s *Sprite) SetSink(sink EventSink) { s.sink = sink }

// Fire delivers ev to the handlers registered for ev.Kind and then to the
// sink. ev.Sprite is set to s.
func (s *Sprite) Fire(ev Event) {
	ev.Sprite = s
	s.handlers.fire(ev)
	if s.sink != nil {
		s.sink.Emit(ev)
	}
}

// CheckCollision reports whether s and other overlap and, if so, fires
// EventCollide on both.
func (s *Sprite) CheckCollision(other *Sprite) bool {
	if other == nil || other == s || !s.bounds.Intersects(other.bounds) {
		return false
	}
	s.Fire(Event{Kind: EventCollide, Other: other})
	other.Fire(Event{Kind: EventCollide, Other: s})
	return true
}

// Draw replays the visual onto dst at the sprite position.
func (s *Sprite) Draw(dst Surface) {
	if !s.Visible {
		return
	}
	s.visual.Render(dst, s.Position())
}

// DrawTo draws onto an ebiten image.
func (s *Sprite) DrawTo(dst *ebiten.Image) {
	s.Draw(NewEbitenSurface(dst))
}
