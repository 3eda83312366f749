package sprites

import "math"

// AnimationController is a per-sprite playback cursor over a shared
// Animation. It holds the frame index and timing state; the definition is
// looked up in the table by id and never modified.
type AnimationController struct {
	table   *AnimationTable
	id      AnimID
	frame   int
	elapsed float64
	speed   float64
	state   PlayState

	// OnVisit, if set, runs after the frame callbacks each time playback
	// enters a frame.
	OnVisit func(frame int)
}

// NewAnimationController creates a stopped controller for the animation id.
func NewAnimationController(table *AnimationTable, id AnimID) *AnimationController {
	return &AnimationController{table: table, id: id, speed: 1}
}

// Animation returns the definition being played, or nil if the id is not in
// the table.
func (c *AnimationController) Animation() *Animation {
	return c.table.Get(c.id)
}

// ID returns the animation id.
func (c *AnimationController) ID() AnimID { return c.id }

// State returns the playback state.
func (c *AnimationController) State() PlayState { return c.state }

// Frame returns the current frame index.
func (c *AnimationController) Frame() int { return c.frame }

// Speed returns the controller multiplier.
func (c *AnimationController) Speed() float64 { return c.speed }

// SetSpeed sets the controller multiplier, applied on top of the animation's
// own speed. Negative values are treated as 0.
func (c *AnimationController) SetSpeed(factor float64) {
	if factor < 0 {
		factor = 0
	}
	c.speed = factor
}

// CurrentFrame returns the frame image and offset at the cursor.
func (c *AnimationController) CurrentFrame() (Frame, bool) {
	a := c.Animation()
	if a == nil || c.frame >= a.Len() {
		return Frame{}, false
	}
	return a.frames[c.frame], true
}

// Play starts playback. From Stopped it enters frame 0 (firing its
// callbacks); from Paused it resumes where it left off.
func (c *AnimationController) Play() {
	switch c.state {
	case Playing:
		return
	case Paused:
		c.state = Playing
		return
	}
	if c.Animation() == nil {
		return
	}
	c.state = Playing
	c.frame = 0
	c.elapsed = 0
	c.visit(0)
}

// Pause halts playback keeping the cursor.
func (c *AnimationController) Pause() {
	if c.state == Playing {
		c.state = Paused
	}
}

// Stop halts playback and rewinds to frame 0.
func (c *AnimationController) Stop() {
	c.state = Stopped
	c.frame = 0
	c.elapsed = 0
}

// Seek moves the cursor to frame i (clamped to the valid range) and resets the
// frame timer. Callbacks of skipped frames and of the target frame do not run.
func (c *AnimationController) Seek(i int) {
	a := c.Animation()
	if a == nil {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= a.Len() {
		i = a.Len() - 1
	}
	c.frame = i
	c.elapsed = 0
}

// Advance accumulates dt seconds of playback. Each time the accumulated time
// crosses the frame duration the cursor moves one frame and the entered
// frame's callbacks run. A looping animation wraps to frame 0; otherwise the
// cursor stays on the last frame, the end callbacks run and the controller
// stops. Advance reports whether the frame changed.
func (c *AnimationController) Advance(dt float64) bool {
	if c.state != Playing || !(dt > 0) {
		return false
	}
	a := c.Animation()
	if a == nil {
		return false
	}
	per := a.frameDuration(c.speed)
	if per == 0 {
		return false
	}

	changed := false
	c.elapsed += dt
	for steps := 0; c.elapsed >= per; steps++ {
		if steps == a.Len() {
			// At most one loop per call; the rest of a long stall is dropped.
			c.elapsed = math.Mod(c.elapsed, per)
			break
		}
		c.elapsed -= per
		next := c.frame + 1
		if next >= a.Len() {
			if !a.loop {
				c.state = Stopped
				c.elapsed = 0
				for _, fn := range a.endFuncs {
					fn()
				}
				break
			}
			next = 0
		}
		c.frame = next
		changed = true
		c.visit(next)
		if c.state != Playing {
			// A callback paused or stopped playback.
			break
		}
	}
	return changed
}

func (c *AnimationController) visit(frame int) {
	a := c.Animation()
	if a == nil {
		return
	}
	if fns := a.callbacks[frame]; len(fns) > 0 {
		ev := FrameEvent{Anim: a.name, Frame: frame}
		for _, fn := range fns {
			fn(ev)
		}
	}
	if c.OnVisit != nil {
		c.OnVisit(frame)
	}
}
