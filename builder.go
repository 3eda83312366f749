package sprites

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// textPadding is the gap kept between text and the inner edge of the border.
const textPadding = 5

type convKey struct {
	src   *ebiten.Image
	alpha bool
}

// Builder turns canonical styles into composed visuals. It owns a cache of
// converted images so each distinct source image is converted at most once
// per alpha flag.
type Builder struct {
	assets *Assets
	conv   Converter
	cache  map[convKey]*ebiten.Image
}

// NewBuilder creates a builder over assets. A nil converter copies images
// with ImageConverter.
func NewBuilder(assets *Assets, conv Converter) *Builder {
	if assets == nil {
		assets = NewAssets()
	}
	if conv == nil {
		conv = ImageConverter{}
	}
	return &Builder{
		assets: assets,
		conv:   conv,
		cache:  make(map[convKey]*ebiten.Image),
	}
}

// Assets returns the catalog the builder resolves names against.
func (b *Builder) Assets() *Assets { return b.assets }

// CacheLen returns the number of converted images held.
func (b *Builder) CacheLen() int { return len(b.cache) }

// Build composes s into draw operations, back to front: background,
// foreground, border, image or animation frame, text. frame, when non-nil,
// takes the place of the style's image. A missing image or font returns an
// *AssetResolutionError and a zero visual.
func (b *Builder) Build(s CanonicalStyle, frame *Frame) (ComposedVisual, error) {
	var (
		src    *ebiten.Image
		offset Vec2
	)
	switch {
	case frame != nil && frame.Image != nil:
		src, offset = frame.Image, frame.Offset
	case s.Image != "":
		img, err := b.assets.Image(s.Image)
		if err != nil {
			return ComposedVisual{}, err
		}
		src = img
	}

	v := ComposedVisual{Size: s.Size, Ops: make([]DrawOp, 0, 5)}
	bounds := s.Bounds()

	if s.BG.A > 0 {
		v.Ops = append(v.Ops, DrawOp{Kind: OpFill, Rect: bounds, Color: s.BG, Radii: s.BorderRadius})
	}
	if s.FG.A > 0 && !s.FGRect.Empty() {
		v.Ops = append(v.Ops, DrawOp{Kind: OpFill, Rect: s.FGRect, Color: s.FG, Radii: s.FGRadius})
	}
	if s.Border.A > 0 && s.BorderWidth > 0 {
		v.Ops = append(v.Ops, DrawOp{Kind: OpStroke, Rect: bounds, Color: s.Border, Width: s.BorderWidth, Radii: s.BorderRadius})
	}
	if src != nil {
		img := b.convert(src, s.ImgAlpha)
		ib := img.Bounds()
		dst := Rect{
			X:      offset.X,
			Y:      offset.Y,
			Width:  float64(ib.Dx()) * s.ImgScale.X,
			Height: float64(ib.Dy()) * s.ImgScale.Y,
		}
		if !dst.Empty() {
			v.Ops = append(v.Ops, DrawOp{Kind: OpImage, Rect: dst, Image: img})
		}
	}
	if s.Text != "" {
		face, err := b.assets.Font(s.Font)
		if err != nil {
			return ComposedVisual{}, err
		}
		v.Ops = append(v.Ops, DrawOp{
			Kind:      OpText,
			Text:      s.Text,
			Face:      face,
			Color:     s.TextColor,
			Antialias: s.TextAntialias,
			Pos:       s.TextPos,
			Scale:     fitText(s.Text, face, s.textRoom()),
			Centered:  true,
		})
	}
	return v, nil
}

// textRoom is the area text may fill: the sprite inside its border, less
// padding on every side.
func (s CanonicalStyle) textRoom() Vec2 {
	inset := 2.0 * textPadding
	if s.Border.A > 0 {
		inset += 2 * s.BorderWidth
	}
	return Vec2{max(s.Size.X-inset, 1), max(s.Size.Y-inset, 1)}
}

// fitText returns the factor that shrinks str to fit room, or 1 when it
// already fits. Text is never enlarged.
func fitText(str string, face text.Face, room Vec2) float64 {
	m := face.Metrics()
	w, h := text.Measure(str, face, m.HAscent+m.HDescent+m.HLineGap)
	if w <= 0 || h <= 0 {
		return 1
	}
	return min(1, room.X/w, room.Y/h)
}

func (b *Builder) convert(src *ebiten.Image, alpha bool) *ebiten.Image {
	k := convKey{src, alpha}
	if img, ok := b.cache[k]; ok {
		return img
	}
	img := b.conv.ConvertForFastBlit(src, alpha)
	if img == nil {
		img = src
	}
	b.cache[k] = img
	return img
}
