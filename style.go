package sprites

import "math"

// Defaults applied to unset descriptor attributes.
const (
	DefaultBorderWidth = 2
)

// CanonicalStyle is a fully resolved style: every attribute holds a concrete
// value, corner radii are normalized to four entries and img_scale is a
// numeric factor. It is comparable with ==, and is renderable without any
// further lookups besides the assets it names.
type CanonicalStyle struct {
	// Size is the sprite size the style was resolved against.
	Size Vec2

	Image         string
	ImgAlpha      bool
	ImgScale      Vec2
	Anim          string
	BG            Color
	Border        Color
	BorderWidth   float64
	BorderRadius  Radii
	Text          string
	Font          string
	TextAntialias bool
	TextColor     Color
	TextPos       Vec2
	FG            Color
	FGRadius      Radii
	FGRect        Rect
}

// SourceSizer reports the pixel size of a named image or of the first frame
// of a named animation. *Assets implements it.
type SourceSizer interface {
	SourceSize(kind AssetKind, ref string) (Vec2, bool)
}

// ResolveContext carries what resolution depends on besides the descriptor.
type ResolveContext struct {
	Bounds Vec2         // current sprite size
	Caps   Capabilities // features the sprite variant accepts
	Assets SourceSizer  // used by img_scale "auto"; may be nil
}

// Resolve validates d and fills every unset attribute with its default.
// Errors are *InvalidStyleError. Resolve is pure: the same descriptor and
// context always produce the same CanonicalStyle.
func Resolve(d Descriptor, ctx ResolveContext) (CanonicalStyle, error) {
	if d.Anim.Set && d.Anim.Value != "" && !ctx.Caps.Has(CapAnimation) {
		return CanonicalStyle{}, invalidf(AttrAnim.String(), "sprite does not support animations")
	}
	if !ctx.Caps.Has(CapForeground) {
		for _, f := range []struct {
			a   Attr
			set bool
		}{{AttrFG, d.FG.Set}, {AttrFGRadius, d.FGRadius.Set}, {AttrFGRect, d.FGRect.Set}} {
			if f.set {
				return CanonicalStyle{}, invalidf(f.a.String(), "sprite does not support a foreground")
			}
		}
	}
	if d.Image.Value != "" && d.Anim.Value != "" {
		return CanonicalStyle{}, invalidf(AttrAnim.String(), "cannot be combined with image %q", d.Image.Value)
	}

	s := CanonicalStyle{
		Size:          ctx.Bounds,
		Image:         d.Image.Value,
		ImgAlpha:      d.ImgAlpha.Value,
		Anim:          d.Anim.Value,
		BG:            d.BG.Value,
		Border:        d.Border.Value,
		BorderWidth:   d.BorderWidth.Or(DefaultBorderWidth),
		BorderRadius:  normalizeRadii(d.BorderRadius.Or(NoRadii)),
		Text:          d.Text.Value,
		Font:          d.Font.Value,
		TextAntialias: d.TextAntialias.Or(true),
		TextColor:     d.TextColor.Or(White),
		TextPos:       Vec2{ctx.Bounds.X / 2, ctx.Bounds.Y / 2},
		FG:            d.FG.Value,
		FGRadius:      normalizeRadii(d.FGRadius.Or(NoRadii)),
		FGRect:        d.FGRect.Or(Rect{0, 0, ctx.Bounds.X, ctx.Bounds.Y}),
	}

	for _, f := range []struct {
		a    Attr
		nums []float64
	}{
		{AttrImgScale, []float64{d.ImgScale.Value.X, d.ImgScale.Value.Y}},
		{AttrBorderWidth, []float64{s.BorderWidth}},
		{AttrBorderRadius, d.BorderRadius.Value[:]},
		{AttrTextPos, []float64{d.TextPos.Value.X, d.TextPos.Value.Y}},
		{AttrFGRadius, d.FGRadius.Value[:]},
		{AttrFGRect, []float64{s.FGRect.X, s.FGRect.Y, s.FGRect.Width, s.FGRect.Height}},
	} {
		if err := checkFinite(f.a.String(), f.nums...); err != nil {
			return CanonicalStyle{}, err
		}
	}
	if s.BorderWidth < 0 {
		return CanonicalStyle{}, invalidf(AttrBorderWidth.String(), "must be >= 0, got %v", s.BorderWidth)
	}
	if s.FGRect.Width < 0 || s.FGRect.Height < 0 {
		return CanonicalStyle{}, invalidf(AttrFGRect.String(), "negative size %vx%v", s.FGRect.Width, s.FGRect.Height)
	}

	if d.TextPos.Set {
		if s.Text == "" {
			logger.Warn("text_pos ignored: style has no text", "text_pos", d.TextPos.Value)
		} else {
			s.TextPos = d.TextPos.Value
		}
	}

	scale, err := resolveScale(d, ctx)
	if err != nil {
		return CanonicalStyle{}, err
	}
	s.ImgScale = scale
	return s, nil
}

func resolveScale(d Descriptor, ctx ResolveContext) (Vec2, error) {
	sc := d.ImgScale.Or(Factor(1, 1))
	if sc.Mode == ScaleFactor {
		if sc.X < 0 || sc.Y < 0 {
			return Vec2{}, invalidf(AttrImgScale.String(), "negative factor (%v, %v)", sc.X, sc.Y)
		}
		return Vec2{sc.X, sc.Y}, nil
	}

	// "auto": stretch the source to the bounds.
	var (
		src Vec2
		ok  bool
	)
	if ctx.Assets != nil {
		switch {
		case d.Image.Value != "":
			src, ok = ctx.Assets.SourceSize(AssetImage, d.Image.Value)
		case d.Anim.Value != "":
			src, ok = ctx.Assets.SourceSize(AssetAnimation, d.Anim.Value)
		}
	}
	if !ok || src.X <= 0 || src.Y <= 0 {
		return Vec2{1, 1}, nil
	}
	return Vec2{ctx.Bounds.X / src.X, ctx.Bounds.Y / src.Y}, nil
}

// normalizeRadii maps every negative corner to RadiusUnset.
func normalizeRadii(r Radii) Radii {
	for i, v := range r {
		if v < 0 || math.IsNaN(v) {
			r[i] = RadiusUnset
		}
	}
	return r
}

// Descriptor re-expresses s as a descriptor. Resolving the result with the
// context s was resolved against yields s again.
func (s CanonicalStyle) Descriptor() Descriptor {
	d := Descriptor{
		Image:         Some(s.Image),
		ImgAlpha:      Some(s.ImgAlpha),
		ImgScale:      Some(Factor(s.ImgScale.X, s.ImgScale.Y)),
		BG:            Some(s.BG),
		Border:        Some(s.Border),
		BorderWidth:   Some(s.BorderWidth),
		BorderRadius:  Some(s.BorderRadius),
		Text:          Some(s.Text),
		Font:          Some(s.Font),
		TextAntialias: Some(s.TextAntialias),
		TextColor:     Some(s.TextColor),
	}
	if s.Anim != "" {
		d.Anim = Some(s.Anim)
	}
	if s.Text != "" {
		d.TextPos = Some(s.TextPos)
	}
	// The foreground group is only legal on foreground-capable sprites, so
	// it is emitted only when it differs from the defaults.
	if s.FG != Transparent || s.FGRadius != NoRadii || s.FGRect != (Rect{0, 0, s.Size.X, s.Size.Y}) {
		d.FG = Some(s.FG)
		d.FGRadius = Some(s.FGRadius)
		d.FGRect = Some(s.FGRect)
	}
	return d
}

// Bounds returns the local rectangle the style covers.
func (s CanonicalStyle) Bounds() Rect {
	return Rect{0, 0, s.Size.X, s.Size.Y}
}

// DefaultStyle resolves an empty descriptor for the given size.
func DefaultStyle(size Vec2) CanonicalStyle {
	s, _ := Resolve(Descriptor{}, ResolveContext{Bounds: size})
	return s
}
