package sprites

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Sample returns the style between start and end at normalized time t.
// t is clamped to [0, 1]; at 0 the result is start and at 1 it is end,
// whatever the easing curve. Colors, scalars, rectangles, points, scale
// factors and corner radii blend by easing(t); every other attribute is
// start's value below t = 0.5 and end's value from 0.5 on.
func Sample(start, end CanonicalStyle, easing Easing, t float64) CanonicalStyle {
	return SampleKeys(start, end, easing, t, AllAttrs)
}

// SampleKeys is Sample restricted to the attributes in keys. Attributes
// outside keys take end's value immediately.
func SampleKeys(start, end CanonicalStyle, easing Easing, t float64, keys AttrSet) CanonicalStyle {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t >= 1 {
		return end
	}
	if easing == nil {
		easing = Linear
	}

	var p float64
	if t > 0 {
		p = easing(t)
	}
	late := t >= 0.5

	out := end
	out.Size = lerpVec(start.Size, end.Size, p)

	if keys.Has(AttrImage) {
		out.Image = snap(start.Image, end.Image, late)
	}
	if keys.Has(AttrImgAlpha) {
		out.ImgAlpha = snap(start.ImgAlpha, end.ImgAlpha, late)
	}
	if keys.Has(AttrImgScale) {
		out.ImgScale = lerpVec(start.ImgScale, end.ImgScale, p)
		out.ImgScale.X = math.Max(out.ImgScale.X, 0)
		out.ImgScale.Y = math.Max(out.ImgScale.Y, 0)
	}
	if keys.Has(AttrAnim) {
		out.Anim = snap(start.Anim, end.Anim, late)
	}
	if keys.Has(AttrBG) {
		out.BG = lerpColor(start.BG, end.BG, p)
	}
	if keys.Has(AttrBorder) {
		out.Border = lerpColor(start.Border, end.Border, p)
	}
	if keys.Has(AttrBorderWidth) {
		out.BorderWidth = math.Max(lerp(start.BorderWidth, end.BorderWidth, p), 0)
	}
	if keys.Has(AttrBorderRadius) {
		out.BorderRadius = lerpRadii(start.BorderRadius, end.BorderRadius, p, late)
	}
	if keys.Has(AttrText) {
		out.Text = snap(start.Text, end.Text, late)
	}
	if keys.Has(AttrFont) {
		out.Font = snap(start.Font, end.Font, late)
	}
	if keys.Has(AttrTextAntialias) {
		out.TextAntialias = snap(start.TextAntialias, end.TextAntialias, late)
	}
	if keys.Has(AttrTextColor) {
		out.TextColor = lerpColor(start.TextColor, end.TextColor, p)
	}
	if keys.Has(AttrTextPos) {
		out.TextPos = lerpVec(start.TextPos, end.TextPos, p)
	}
	if keys.Has(AttrFG) {
		out.FG = lerpColor(start.FG, end.FG, p)
	}
	if keys.Has(AttrFGRadius) {
		out.FGRadius = lerpRadii(start.FGRadius, end.FGRadius, p, late)
	}
	if keys.Has(AttrFGRect) {
		out.FGRect = Rect{
			X:      lerp(start.FGRect.X, end.FGRect.X, p),
			Y:      lerp(start.FGRect.Y, end.FGRect.Y, p),
			Width:  math.Max(lerp(start.FGRect.Width, end.FGRect.Width, p), 0),
			Height: math.Max(lerp(start.FGRect.Height, end.FGRect.Height, p), 0),
		}
	}
	return out
}

func snap[T any](a, b T, late bool) T {
	if late {
		return b
	}
	return a
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

func lerpVec(a, b Vec2, p float64) Vec2 {
	return Vec2{lerp(a.X, b.X, p), lerp(a.Y, b.Y, p)}
}

func lerpChannel(a, b uint8, p float64) uint8 {
	v := math.Round(lerp(float64(a), float64(b), p))
	return uint8(math.Min(math.Max(v, 0), 255))
}

func lerpColor(a, b Color, p float64) Color {
	return Color{
		R: lerpChannel(a.R, b.R, p),
		G: lerpChannel(a.G, b.G, p),
		B: lerpChannel(a.B, b.B, p),
		A: lerpChannel(a.A, b.A, p),
	}
}

// lerpRadii blends each corner. A corner that is unset on either side has no
// meaningful midpoint and snaps like a non-interpolable attribute.
func lerpRadii(a, b Radii, p float64, late bool) Radii {
	var out Radii
	for i := range out {
		if a[i] == RadiusUnset || b[i] == RadiusUnset {
			out[i] = snap(a[i], b[i], late)
			continue
		}
		out[i] = math.Max(lerp(a[i], b[i], p), 0)
	}
	return out
}

// Transition interpolates between two styles over a fixed duration. The
// clock is a gween tween from 0 to 1 with linear easing; the style easing is
// applied by Sample. Call Update once per tick.
type Transition struct {
	start, end CanonicalStyle
	easing     Easing
	keys       AttrSet
	duration   float64
	clock      *gween.Tween
	t          float64
	style      CanonicalStyle

	// Done is set once the transition reaches its end style.
	Done bool
}

// NewTransition validates the configuration and returns a transition at
// t = 0. A non-positive duration or a nil easing is a *TransitionConfigError.
// A zero keys set means all attributes.
func NewTransition(start, end CanonicalStyle, duration float64, easing Easing, keys AttrSet) (*Transition, error) {
	if easing == nil {
		return nil, &TransitionConfigError{Reason: "missing easing function"}
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil, &TransitionConfigError{Reason: "duration must be positive and finite"}
	}
	if keys == 0 {
		keys = AllAttrs
	}
	return &Transition{
		start:    start,
		end:      end,
		easing:   easing,
		keys:     keys,
		duration: duration,
		clock:    gween.New(0, 1, float32(duration), ease.Linear),
		style:    start,
	}, nil
}

// Update advances the transition by dt seconds and returns the sampled style.
// Over-stepping past the duration clamps to the end style.
func (tr *Transition) Update(dt float64) (CanonicalStyle, bool) {
	if tr.Done {
		return tr.end, true
	}
	if dt < 0 {
		dt = 0
	}
	v, finished := tr.clock.Update(float32(dt))
	tr.t = float64(v)
	if finished || tr.t >= 1 {
		tr.t = 1
		tr.Done = true
	}
	tr.style = SampleKeys(tr.start, tr.end, tr.easing, tr.t, tr.keys)
	return tr.style, tr.Done
}

// Style returns the most recently sampled style.
func (tr *Transition) Style() CanonicalStyle { return tr.style }

// Progress returns the normalized time in [0, 1].
func (tr *Transition) Progress() float64 { return tr.t }

// Start returns the style the transition started from.
func (tr *Transition) Start() CanonicalStyle { return tr.start }

// End returns the target style.
func (tr *Transition) End() CanonicalStyle { return tr.end }

// Duration returns the configured duration in seconds.
func (tr *Transition) Duration() float64 { return tr.duration }

// retarget replaces the end style, keeping the clock. Used when the target
// state is re-resolved, e.g. after a resize.
func (tr *Transition) retarget(end CanonicalStyle) {
	tr.end = end
	tr.style = SampleKeys(tr.start, tr.end, tr.easing, tr.t, tr.keys)
}
