package sprites

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Converter prepares images for repeated drawing. Builders call it once per
// distinct source image and alpha flag.
type Converter interface {
	ConvertForFastBlit(img *ebiten.Image, withAlpha bool) *ebiten.Image
}

// Surface is the drawing target a ComposedVisual is replayed onto.
// Coordinates are in the surface's pixel space.
type Surface interface {
	Converter

	DrawFilledRect(r Rect, c Color, radii Radii)
	DrawStrokedRect(r Rect, c Color, width float64, radii Radii)
	DrawImage(img *ebiten.Image, dst Rect)
	// DrawText draws s scaled by scale, with its centre at pos when centered
	// is true, or its top-left at pos otherwise.
	DrawText(s string, face text.Face, c Color, antialias bool, pos Vec2, scale float64, centered bool)
}

// EbitenSurface draws onto an *ebiten.Image.
type EbitenSurface struct {
	Target *ebiten.Image
}

// NewEbitenSurface wraps dst.
func NewEbitenSurface(dst *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{Target: dst}
}

// DrawFilledRect fills r, rounding the corners given in radii.
func (s *EbitenSurface) DrawFilledRect(r Rect, c Color, radii Radii) {
	if r.Empty() || c.A == 0 {
		return
	}
	verts, inds := buildPolygonFan(roundedRectOutline(r, radii), c)
	s.drawTriangles(verts, inds)
}

// DrawStrokedRect draws a border of the given width inside r.
func (s *EbitenSurface) DrawStrokedRect(r Rect, c Color, width float64, radii Radii) {
	if r.Empty() || c.A == 0 || width <= 0 {
		return
	}
	width = math.Min(width, math.Min(r.Width, r.Height)/2)
	inner := Rect{r.X + width, r.Y + width, r.Width - 2*width, r.Height - 2*width}
	outer := roundedRectOutline(r, radii)
	verts, inds := buildRing(outer, roundedRectOutline(inner, insetRadii(radii, width)), c)
	s.drawTriangles(verts, inds)
}

func (s *EbitenSurface) drawTriangles(verts []ebiten.Vertex, inds []uint16) {
	if len(inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	s.Target.DrawTriangles(verts, inds, ensureWhitePixel(), &op)
}

// DrawImage draws img stretched to dst.
func (s *EbitenSurface) DrawImage(img *ebiten.Image, dst Rect) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || dst.Empty() {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(dst.Width/float64(b.Dx()), dst.Height/float64(b.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.Filter = ebiten.FilterLinear
	s.Target.DrawImage(img, &op)
}

// DrawText draws s with face. Without antialiasing the text is snapped to
// whole pixels and sampled with the nearest filter.
func (s *EbitenSurface) DrawText(str string, face text.Face, c Color, antialias bool, pos Vec2, scale float64, centered bool) {
	if str == "" || face == nil || c.A == 0 || scale <= 0 {
		return
	}
	op := &text.DrawOptions{}
	if centered {
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
	}
	if !antialias {
		pos = Vec2{math.Round(pos.X), math.Round(pos.Y)}
		op.Filter = ebiten.FilterNearest
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(c)
	m := face.Metrics()
	op.LineSpacing = m.HAscent + m.HDescent + m.HLineGap
	text.Draw(s.Target, str, face, op)
}

// ConvertForFastBlit copies img into a fresh image. Without alpha the copy
// is composited over opaque black, so transparent pixels become black.
func (s *EbitenSurface) ConvertForFastBlit(img *ebiten.Image, withAlpha bool) *ebiten.Image {
	return convertImage(img, withAlpha)
}

func convertImage(img *ebiten.Image, withAlpha bool) *ebiten.Image {
	b := img.Bounds()
	out := ebiten.NewImage(b.Dx(), b.Dy())
	if !withAlpha {
		out.Fill(color.Black)
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-float64(b.Min.X), -float64(b.Min.Y))
	out.DrawImage(img, &op)
	return out
}

// ImageConverter is a Converter without a drawing target.
type ImageConverter struct{}

// ConvertForFastBlit implements Converter.
func (ImageConverter) ConvertForFastBlit(img *ebiten.Image, withAlpha bool) *ebiten.Image {
	return convertImage(img, withAlpha)
}
