package sprites

import (
	"errors"
	"slices"
)

// DefaultState is the name of the state a StatedSprite starts in.
const DefaultState = "default"

// TransitionSpec configures one state change. A zero Keys set interpolates
// every attribute.
type TransitionSpec struct {
	Duration float64 // seconds
	Easing   Easing
	Keys     AttrSet
	Force    bool // restart even if name is already the selected state
}

// Option configures a StatedSprite at construction time.
type Option func(*StatedSprite)

// WithCapabilities adds optional style features the sprite accepts.
func WithCapabilities(c Capabilities) Option {
	return func(s *StatedSprite) { s.caps |= c }
}

// WithAssets sets the catalog styles are resolved and built against.
func WithAssets(a *Assets) Option {
	return func(s *StatedSprite) { s.assets = a }
}

// WithBuilder shares b, and its conversion cache, with other sprites. It
// overrides WithAssets and WithConverter.
func WithBuilder(b *Builder) Option {
	return func(s *StatedSprite) { s.builder = b }
}

// WithConverter sets the image converter used by the sprite's own builder.
func WithConverter(c Converter) Option {
	return func(s *StatedSprite) { s.conv = c }
}

// WithTransition makes SelectState interpolate over duration seconds with
// easing instead of snapping.
func WithTransition(duration float64, easing Easing) Option {
	return func(s *StatedSprite) {
		s.transition = &TransitionSpec{Duration: duration, Easing: easing}
	}
}

// StateOption modifies SetState.
type StateOption func(*stateEdit)

type stateEdit struct {
	noRebuild bool
}

// WithoutRebuild stores an edit of the active state without applying it; the
// new style shows on the next selection of the state.
func WithoutRebuild() StateOption {
	return func(e *stateEdit) { e.noRebuild = true }
}

// StatedSprite is a sprite whose look is driven by named states. Selecting a
// state resolves its descriptor and either snaps to it or interpolates
// towards it; Tick advances the interpolation and any animation and rebuilds
// the visual when something changed.
type StatedSprite struct {
	Sprite

	// LastErr is the most recent failure inside Tick or a rebuild. Tick
	// never returns errors; it logs them and records them here.
	LastErr error

	caps       Capabilities
	assets     *Assets
	conv       Converter
	builder    *Builder
	transition *TransitionSpec

	states map[string]Descriptor
	order  []string

	current string // committed state
	target  string // state being transitioned to, "" when idle
	style   CanonicalStyle
	trans   *Transition

	anim     *AnimationController
	animName string
	frozen   bool
	dirty    bool
}

// NewStatedSprite creates a sprite in DefaultState with descriptor def. The
// initial visual is built immediately; a missing asset is logged and
// recorded in LastErr, while an invalid descriptor is returned.
func NewStatedSprite(name string, bounds Rect, def Descriptor, opts ...Option) (*StatedSprite, error) {
	s := &StatedSprite{states: make(map[string]Descriptor)}
	s.init(name, bounds)
	for _, o := range opts {
		o(s)
	}
	if s.builder == nil {
		s.builder = NewBuilder(s.assets, s.conv)
	}
	s.assets = s.builder.Assets()

	style, err := s.resolve(def)
	if err != nil {
		return nil, err
	}
	s.states[DefaultState] = def
	s.order = append(s.order, DefaultState)
	s.current = DefaultState
	s.setStyle(style)
	s.rebuild()
	return s, nil
}

// NewAnimatedSprite is NewStatedSprite with animation support.
func NewAnimatedSprite(name string, bounds Rect, def Descriptor, opts ...Option) (*StatedSprite, error) {
	return NewStatedSprite(name, bounds, def, append([]Option{WithCapabilities(CapAnimation)}, opts...)...)
}

func (s *StatedSprite) resolve(d Descriptor) (CanonicalStyle, error) {
	return Resolve(d, ResolveContext{
		Bounds: s.bounds.Size(),
		Caps:   s.caps,
		Assets: s.assets,
	})
}

// Capabilities returns the style features the sprite accepts.
func (s *StatedSprite) Capabilities() Capabilities { return s.caps }

// Builder returns the builder composing the sprite's visuals.
func (s *StatedSprite) Builder() *Builder { return s.builder }

// State returns the committed state. During a transition it is the state
// being left.
func (s *StatedSprite) State() string { return s.current }

// Target returns the state being transitioned to, or "" when idle.
func (s *StatedSprite) Target() string { return s.target }

// Selected returns the state most recently selected: the target while
// transitioning, the committed state otherwise.
func (s *StatedSprite) Selected() string {
	if s.target != "" {
		return s.target
	}
	return s.current
}

// Transitioning reports whether a transition is in flight.
func (s *StatedSprite) Transitioning() bool { return s.trans != nil }

// Style returns the style currently displayed.
func (s *StatedSprite) Style() CanonicalStyle { return s.style }

// States returns the registered state names in registration order.
func (s *StatedSprite) States() []string { return slices.Clone(s.order) }

// StateDescriptor returns the descriptor registered for name.
func (s *StatedSprite) StateDescriptor(name string) (Descriptor, bool) {
	d, ok := s.states[name]
	return d, ok
}

// SetState adds or replaces a state. The descriptor is validated against the
// sprite's current size and capabilities. Replacing the active state applies
// the new style at once, without a transition, unless WithoutRebuild is
// given. Replacing the target of an in-flight transition retargets it.
func (s *StatedSprite) SetState(name string, d Descriptor, opts ...StateOption) error {
	if name == "" {
		return &UnknownStateError{Name: name}
	}
	style, err := s.resolve(d)
	if err != nil {
		return err
	}
	var edit stateEdit
	for _, o := range opts {
		o(&edit)
	}

	if _, ok := s.states[name]; !ok {
		s.order = append(s.order, name)
	}
	s.states[name] = d

	if edit.noRebuild {
		return nil
	}
	switch {
	case s.trans != nil && name == s.target:
		s.trans.retarget(style)
	case s.trans == nil && name == s.current:
		prev := s.animName
		s.setStyle(style)
		if s.anim == nil && s.animName != "" && s.animName == prev {
			s.bindAnimation()
		}
		s.rebuild()
	}
	return nil
}

// RemoveState unregisters a state. The committed state and the target of an
// in-flight transition cannot be removed.
func (s *StatedSprite) RemoveState(name string) error {
	if _, ok := s.states[name]; !ok {
		return &UnknownStateError{Name: name}
	}
	if name == s.current || name == s.target {
		return ErrActiveState
	}
	delete(s.states, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
	return nil
}

// SelectState switches to the named state using the transition configured
// with WithTransition, or snaps if none was configured. Selecting the state
// already selected does nothing.
func (s *StatedSprite) SelectState(name string) error {
	if s.transition == nil {
		if _, ok := s.states[name]; !ok {
			return &UnknownStateError{Name: name}
		}
		if name == s.Selected() {
			return nil
		}
		style, err := s.resolve(s.states[name])
		if err != nil {
			return err
		}
		s.snap(name, style)
		return nil
	}
	return s.TransitionTo(name, *s.transition)
}

// TransitionTo interpolates to the named state as configured by spec. A
// transition already in flight is cancelled and the new one starts from the
// style displayed at this instant. An unusable spec makes the sprite snap to
// the state and returns a *TransitionConfigError.
func (s *StatedSprite) TransitionTo(name string, spec TransitionSpec) error {
	d, ok := s.states[name]
	if !ok {
		return &UnknownStateError{Name: name}
	}
	if !spec.Force && name == s.Selected() {
		return nil
	}
	end, err := s.resolve(d)
	if err != nil {
		return err
	}

	tr, err := NewTransition(s.style, end, spec.Duration, spec.Easing, spec.Keys)
	if err != nil {
		logger.Error("transition failed, snapping", "sprite", s.Name, "state", name, "err", err)
		s.snap(name, end)
		return err
	}
	s.trans = tr
	s.target = name
	return nil
}

// snap commits name immediately and rebuilds.
func (s *StatedSprite) snap(name string, style CanonicalStyle) {
	s.trans = nil
	s.target = ""
	s.setStyle(style)
	s.rebuild()
	s.commit(name)
}

func (s *StatedSprite) commit(name string) {
	from := s.current
	s.current = name
	s.Fire(Event{Kind: EventStateEnter, State: name, From: from})
}

// Tick advances the sprite by dt seconds: the transition is sampled first,
// then the animation advances, then the visual is rebuilt if anything
// changed. A transition reaching its end commits the target state and fires
// EventStateEnter. Failures never escape Tick.
func (s *StatedSprite) Tick(dt float64) {
	changed := s.dirty
	var committed string

	if s.trans != nil {
		style, done := s.trans.Update(dt)
		s.setStyle(style)
		changed = true
		if done {
			committed = s.target
			s.trans = nil
			s.target = ""
		}
	}
	if s.anim != nil && !s.frozen && s.anim.Advance(dt) {
		changed = true
	}
	if changed {
		s.rebuild()
	}
	if committed != "" {
		s.commit(committed)
	}
}

// SetSize resizes the sprite, keeping its position. Styles are re-resolved
// against the new size, so img_scale "auto" follows it.
func (s *StatedSprite) SetSize(w, h float64) error {
	old := s.bounds
	s.bounds.Width, s.bounds.Height = w, h

	cur, err := s.resolve(s.states[s.current])
	if err != nil {
		s.bounds = old
		return err
	}
	if s.trans != nil {
		end, err := s.resolve(s.states[s.target])
		if err != nil {
			s.bounds = old
			return err
		}
		s.trans.retarget(end)
		s.dirty = true
		return nil
	}
	s.setStyle(cur)
	s.rebuild()
	return nil
}

// Refresh forces a rebuild on the next Tick, e.g. after assets were added.
// An animation that could not be found earlier is looked up again.
func (s *StatedSprite) Refresh() {
	s.dirty = true
	if s.anim == nil && s.animName != "" {
		s.bindAnimation()
	}
}

// Animation returns the controller playing the current style's animation,
// or nil.
func (s *StatedSprite) Animation() *AnimationController { return s.anim }

// Freeze stops animation playback from advancing on Tick.
func (s *StatedSprite) Freeze() { s.frozen = true }

// Unfreeze resumes animation playback.
func (s *StatedSprite) Unfreeze() { s.frozen = false }

// Frozen reports whether animation playback is frozen.
func (s *StatedSprite) Frozen() bool { return s.frozen }

// setStyle installs style as the displayed style and switches the animation
// controller when the animation reference changed.
func (s *StatedSprite) setStyle(style CanonicalStyle) {
	if style != s.style {
		s.dirty = true
	}
	s.style = style
	if style.Anim == s.animName {
		return
	}
	s.animName = style.Anim
	s.bindAnimation()
}

// bindAnimation starts a controller for animName, or leaves none when the
// name is empty or not in the catalog.
func (s *StatedSprite) bindAnimation() {
	s.anim = nil
	name := s.animName
	if name == "" {
		return
	}
	table := s.assets.Animations()
	id, ok := table.Lookup(name)
	if !ok {
		s.fail(&AssetResolutionError{Kind: AssetAnimation, Ref: name})
		return
	}
	c := NewAnimationController(table, id)
	c.OnVisit = func(frame int) {
		s.Fire(Event{Kind: EventAnimationFrame, Anim: name, Frame: frame})
	}
	s.anim = c
	c.Play()
}

// rebuild composes the displayed style. On failure the previous visual is
// kept.
func (s *StatedSprite) rebuild() {
	s.dirty = false
	var frame *Frame
	if s.anim != nil {
		if f, ok := s.anim.CurrentFrame(); ok {
			frame = &f
		}
	}
	v, err := s.builder.Build(s.style, frame)
	if err != nil {
		s.fail(err)
		return
	}
	s.visual = v
}

func (s *StatedSprite) fail(err error) {
	s.LastErr = err
	var ae *AssetResolutionError
	if errors.As(err, &ae) {
		logger.Error("asset resolution failed, keeping previous visual",
			"sprite", s.Name, "kind", ae.Kind, "ref", ae.Ref)
		return
	}
	logger.Error("sprite update failed", "sprite", s.Name, "err", err)
}
