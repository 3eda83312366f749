package sprites

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// OpKind identifies the primitive a DrawOp issues.
type OpKind uint8

const (
	OpFill   OpKind = iota // filled, optionally rounded rectangle
	OpStroke               // rectangle border
	OpImage                // image stretched to Rect
	OpText                 // text at Pos
)

func (k OpKind) String() string {
	switch k {
	case OpFill:
		return "fill"
	case OpStroke:
		return "stroke"
	case OpImage:
		return "image"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// DrawOp is a single drawing primitive in sprite-local coordinates. Only the
// fields relevant to Kind are set.
type DrawOp struct {
	Kind  OpKind
	Rect  Rect
	Color Color
	Radii Radii
	Width float64

	Image *ebiten.Image

	Text      string
	Face      text.Face
	Antialias bool
	Pos       Vec2
	Scale     float64 // text size factor; 0 draws at natural size
	Centered  bool
}

// ComposedVisual is the drawable result of building a CanonicalStyle: the
// sprite size plus an ordered list of draw operations, back to front. It is a
// value; rebuilding it does not affect copies already handed out.
type ComposedVisual struct {
	Size Vec2
	Ops  []DrawOp
}

// Equal reports whether v and o replay to the same drawing.
func (v ComposedVisual) Equal(o ComposedVisual) bool {
	if v.Size != o.Size || len(v.Ops) != len(o.Ops) {
		return false
	}
	for i := range v.Ops {
		if v.Ops[i] != o.Ops[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether nothing has been built yet.
func (v ComposedVisual) IsZero() bool {
	return v.Size == (Vec2{}) && len(v.Ops) == 0
}

// Render replays the operations onto dst with the sprite's top-left corner
// at origin.
func (v ComposedVisual) Render(dst Surface, origin Vec2) {
	for _, op := range v.Ops {
		r := op.Rect.Translate(origin.X, origin.Y)
		switch op.Kind {
		case OpFill:
			dst.DrawFilledRect(r, op.Color, op.Radii)
		case OpStroke:
			dst.DrawStrokedRect(r, op.Color, op.Width, op.Radii)
		case OpImage:
			dst.DrawImage(op.Image, r)
		case OpText:
			scale := op.Scale
			if scale == 0 {
				scale = 1
			}
			dst.DrawText(op.Text, op.Face, op.Color, op.Antialias,
				Vec2{op.Pos.X + origin.X, op.Pos.Y + origin.Y}, scale, op.Centered)
		}
	}
}
