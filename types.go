package sprites

import (
	"image/color"
	"math"
)

// Color is a straight-alpha RGBA color with 8-bit channels.
type Color = color.NRGBA

// Transparent is the zero color. Layers whose color is fully transparent are
// not emitted by the builder.
var Transparent = Color{}

// White is the default text color.
var White = Color{R: 255, G: 255, B: 255, A: 255}

// Vec2 is a 2D vector used for positions, offsets, sizes and scale factors.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Size returns the width and height as a Vec2.
func (r Rect) Size() Vec2 {
	return Vec2{r.Width, r.Height}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X + dx, r.Y + dy, r.Width, r.Height}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// RadiusUnset marks a corner that is not rounded.
const RadiusUnset = -1

// Radii holds per-corner radii in the order top-left, top-right,
// bottom-left, bottom-right. A corner set to RadiusUnset is square.
type Radii [4]float64

// NoRadii is the canonical value for a rectangle without rounded corners.
var NoRadii = Radii{RadiusUnset, RadiusUnset, RadiusUnset, RadiusUnset}

// Radius returns Radii with all four corners set to r.
func Radius(r float64) Radii {
	return Radii{r, r, r, r}
}

// Corners builds Radii from up to four values. Missing corners are
// RadiusUnset. Extra values are ignored.
func Corners(v ...float64) Radii {
	out := NoRadii
	for i := 0; i < len(v) && i < 4; i++ {
		out[i] = v[i]
	}
	return out
}

// clamped returns the radii limited to half the shorter side of a w×h box,
// with unset corners reported as 0.
func (r Radii) clamped(w, h float64) [4]float64 {
	limit := math.Min(w, h) / 2
	var out [4]float64
	for i, v := range r {
		if v <= 0 {
			continue
		}
		out[i] = math.Min(v, limit)
	}
	return out
}

// Rounded reports whether any corner has a positive radius.
func (r Radii) Rounded() bool {
	for _, v := range r {
		if v > 0 {
			return true
		}
	}
	return false
}

// Capabilities is a bitmask of optional style features a sprite variant
// accepts. Styles using a feature the sprite does not declare are rejected.
type Capabilities uint8

const (
	CapAnimation  Capabilities = 1 << iota // accepts the anim attribute
	CapForeground                          // accepts fg, fg_radius and fg_rect
)

// Has reports whether every bit of c2 is present in c.
func (c Capabilities) Has(c2 Capabilities) bool {
	return c&c2 == c2
}

// PlayState is the playback state of an AnimationController.
type PlayState uint8

const (
	Stopped PlayState = iota // frame cursor reset, not advancing
	Playing                  // advancing on every Advance call
	Paused                   // cursor kept, not advancing
)

func (s PlayState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}
