package sprites

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// surfaceCall records one Surface method call.
type surfaceCall struct {
	Method string
	Rect   Rect
	Color  Color
	Radii  Radii
	Width  float64
	Image  *ebiten.Image
	Text   string
	Pos    Vec2
	Scale  float64
}

// recordingSurface is a Surface that records calls instead of drawing.
type recordingSurface struct {
	calls       []surfaceCall
	conversions int
}

func (s *recordingSurface) DrawFilledRect(r Rect, c Color, radii Radii) {
	s.calls = append(s.calls, surfaceCall{Method: "fill", Rect: r, Color: c, Radii: radii})
}

func (s *recordingSurface) DrawStrokedRect(r Rect, c Color, width float64, radii Radii) {
	s.calls = append(s.calls, surfaceCall{Method: "stroke", Rect: r, Color: c, Width: width, Radii: radii})
}

func (s *recordingSurface) DrawImage(img *ebiten.Image, dst Rect) {
	s.calls = append(s.calls, surfaceCall{Method: "image", Rect: dst, Image: img})
}

func (s *recordingSurface) DrawText(str string, face text.Face, c Color, antialias bool, pos Vec2, scale float64, centered bool) {
	s.calls = append(s.calls, surfaceCall{Method: "text", Text: str, Color: c, Pos: pos, Scale: scale})
}

// ConvertForFastBlit counts conversions and returns the source unchanged.
func (s *recordingSurface) ConvertForFastBlit(img *ebiten.Image, withAlpha bool) *ebiten.Image {
	s.conversions++
	return img
}

func (s *recordingSurface) methods() []string {
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.Method
	}
	return out
}

// countingConverter counts conversions per call.
type countingConverter struct {
	n int
}

func (c *countingConverter) ConvertForFastBlit(img *ebiten.Image, withAlpha bool) *ebiten.Image {
	c.n++
	return img
}

// sizer is a SourceSizer over fixed sizes.
type sizer map[string]Vec2

func (s sizer) SourceSize(kind AssetKind, ref string) (Vec2, bool) {
	v, ok := s[ref]
	return v, ok
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func rgba(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func opsKinds(v ComposedVisual) []OpKind {
	out := make([]OpKind, len(v.Ops))
	for i, op := range v.Ops {
		out[i] = op.Kind
	}
	return out
}
