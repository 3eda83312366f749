package sprites

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultFPS is the playback rate used when AnimOptions.FPS is zero.
const DefaultFPS = 12

// Frame is one image of an animation, drawn at Offset relative to the
// sprite's image position.
type Frame struct {
	Image  *ebiten.Image
	Offset Vec2
}

// FrameEvent is passed to frame callbacks.
type FrameEvent struct {
	Anim  string // name the animation was registered under, if any
	Frame int    // frame index that was entered
}

// FrameFunc is called when playback enters a frame.
type FrameFunc func(FrameEvent)

// AnimOptions configures an animation at construction time.
type AnimOptions struct {
	FPS     float64 // frames per second at speed 1; 0 means DefaultFPS
	Speed   float64 // playback multiplier; 0 means 1
	Once    bool    // stop on the last frame instead of looping
	FlipX   bool    // mirror every frame horizontally
	FlipY   bool    // mirror every frame vertically
	Offset  Vec2    // offset added to every frame
	Offsets []Vec2  // per-frame offsets; missing entries are zero
}

// Animation is an immutable-by-convention sequence of frames. A single
// definition may be shared by many sprites; each sprite plays it through its
// own AnimationController. After construction only the speed, the loop flag
// and the callback bindings change.
type Animation struct {
	name      string
	frames    []Frame
	fps       float64
	speed     float64
	loop      bool
	callbacks map[int][]FrameFunc
	endFuncs  []func()
}

var errNoFrames = errors.New("sprites: animation has no frames")

// NewAnimation builds an animation from pre-loaded images.
func NewAnimation(images []*ebiten.Image, opts AnimOptions) (*Animation, error) {
	if len(images) == 0 {
		return nil, errNoFrames
	}
	for i, img := range images {
		if img == nil {
			return nil, fmt.Errorf("sprites: animation frame %d is nil", i)
		}
	}
	a := &Animation{
		frames:    make([]Frame, len(images)),
		fps:       opts.FPS,
		speed:     opts.Speed,
		loop:      !opts.Once,
		callbacks: make(map[int][]FrameFunc),
	}
	if a.fps <= 0 {
		a.fps = DefaultFPS
	}
	if a.speed <= 0 {
		a.speed = 1
	}
	for i, img := range images {
		if opts.FlipX || opts.FlipY {
			img = flipImage(img, opts.FlipX, opts.FlipY)
		}
		off := opts.Offset
		if i < len(opts.Offsets) {
			off.X += opts.Offsets[i].X
			off.Y += opts.Offsets[i].Y
		}
		a.frames[i] = Frame{Image: img, Offset: off}
	}
	return a, nil
}

// flipImage returns a mirrored copy of img.
func flipImage(img *ebiten.Image, x, y bool) *ebiten.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := ebiten.NewImage(w, h)
	var op ebiten.DrawImageOptions
	sx, sy := 1.0, 1.0
	if x {
		sx = -1
	}
	if y {
		sy = -1
	}
	op.GeoM.Scale(sx, sy)
	if x {
		op.GeoM.Translate(float64(w), 0)
	}
	if y {
		op.GeoM.Translate(0, float64(h))
	}
	out.DrawImage(img, &op)
	return out
}

// Name returns the name the animation was registered under.
func (a *Animation) Name() string { return a.name }

// Len returns the number of frames.
func (a *Animation) Len() int { return len(a.frames) }

// Frame returns frame i. It panics if i is out of range.
func (a *Animation) Frame(i int) Frame { return a.frames[i] }

// FPS returns the base frame rate.
func (a *Animation) FPS() float64 { return a.fps }

// Speed returns the playback multiplier.
func (a *Animation) Speed() float64 { return a.speed }

// Loop reports whether playback wraps to the first frame.
func (a *Animation) Loop() bool { return a.loop }

// SetSpeed sets the playback multiplier shared by every controller playing
// this animation. Negative values are treated as 0 (frozen).
func (a *Animation) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	a.speed = speed
}

// SetLoop sets whether playback wraps to the first frame.
func (a *Animation) SetLoop(loop bool) { a.loop = loop }

// FrameSize returns the size of the first frame.
func (a *Animation) FrameSize() Vec2 {
	b := a.frames[0].Image.Bounds()
	return Vec2{float64(b.Dx()), float64(b.Dy())}
}

// OnFrame binds fn to frame i. Callbacks of a frame run in registration order
// every time playback enters that frame.
func (a *Animation) OnFrame(i int, fn FrameFunc) error {
	if i < 0 || i >= len(a.frames) {
		return fmt.Errorf("sprites: frame %d out of range [0, %d)", i, len(a.frames))
	}
	if fn == nil {
		return nil
	}
	a.callbacks[i] = append(a.callbacks[i], fn)
	return nil
}

// OnEnd registers fn to run when a non-looping animation reaches its last
// frame and stops.
func (a *Animation) OnEnd(fn func()) {
	if fn != nil {
		a.endFuncs = append(a.endFuncs, fn)
	}
}

// frameDuration returns seconds per frame for the given controller
// multiplier, or 0 when playback is frozen.
func (a *Animation) frameDuration(mult float64) float64 {
	rate := a.fps * a.speed * mult
	if rate <= 0 {
		return 0
	}
	return 1 / rate
}

// --- AnimationTable ---

// AnimID indexes an animation in an AnimationTable.
type AnimID int32

// NoAnim is the AnimID of "no animation".
const NoAnim AnimID = -1

// AnimationTable stores shared animation definitions. Sprites refer to
// animations by name in styles and by AnimID at playback time.
type AnimationTable struct {
	anims []*Animation
	names map[string]AnimID
}

// NewAnimationTable creates an empty table.
func NewAnimationTable() *AnimationTable {
	return &AnimationTable{names: make(map[string]AnimID)}
}

// Add registers a under name and returns its id. Adding under an existing
// name replaces the definition in place and keeps the id.
func (t *AnimationTable) Add(name string, a *Animation) AnimID {
	a.name = name
	if id, ok := t.names[name]; ok {
		t.anims[id] = a
		return id
	}
	id := AnimID(len(t.anims))
	t.anims = append(t.anims, a)
	t.names[name] = id
	return id
}

// Get returns the animation for id, or nil.
func (t *AnimationTable) Get(id AnimID) *Animation {
	if t == nil || id < 0 || int(id) >= len(t.anims) {
		return nil
	}
	return t.anims[id]
}

// Lookup returns the id registered for name.
func (t *AnimationTable) Lookup(name string) (AnimID, bool) {
	if t == nil {
		return NoAnim, false
	}
	id, ok := t.names[name]
	return id, ok
}

// Len returns the number of registered animations.
func (t *AnimationTable) Len() int { return len(t.anims) }

// Names returns the registered names in sorted order.
func (t *AnimationTable) Names() []string {
	out := make([]string, 0, len(t.names))
	for n := range t.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
