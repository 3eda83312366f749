package sprites

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Opt is an optional descriptor field. The zero value is unset.
type Opt[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true}
}

// Or returns the value if set, otherwise def.
func (o Opt[T]) Or(def T) T {
	if o.Set {
		return o.Value
	}
	return def
}

// ScaleMode selects how img_scale is interpreted.
type ScaleMode uint8

const (
	ScaleFactor ScaleMode = iota // X and Y are factors applied to the source size
	ScaleAuto                    // stretch the source to the sprite bounds
)

// Scale is the img_scale value as written in a descriptor.
type Scale struct {
	Mode ScaleMode
	X, Y float64
}

// AutoScale stretches the image to the sprite bounds.
var AutoScale = Scale{Mode: ScaleAuto}

// Factor returns a per-axis scale factor.
func Factor(x, y float64) Scale {
	return Scale{Mode: ScaleFactor, X: x, Y: y}
}

// Descriptor is a possibly partial style. Every attribute of the closed set
// has its own field; unset fields take defaults when resolved.
type Descriptor struct {
	Image         Opt[string]
	ImgAlpha      Opt[bool]
	ImgScale      Opt[Scale]
	Anim          Opt[string]
	BG            Opt[Color]
	Border        Opt[Color]
	BorderWidth   Opt[float64]
	BorderRadius  Opt[Radii]
	Text          Opt[string]
	Font          Opt[string]
	TextAntialias Opt[bool]
	TextColor     Opt[Color]
	TextPos       Opt[Vec2]
	FG            Opt[Color]
	FGRadius      Opt[Radii]
	FGRect        Opt[Rect]
}

// Attrs returns the set of attributes present in d.
func (d Descriptor) Attrs() AttrSet {
	var s AttrSet
	mark := func(a Attr, set bool) {
		if set {
			s |= 1 << a
		}
	}
	mark(AttrImage, d.Image.Set)
	mark(AttrImgAlpha, d.ImgAlpha.Set)
	mark(AttrImgScale, d.ImgScale.Set)
	mark(AttrAnim, d.Anim.Set)
	mark(AttrBG, d.BG.Set)
	mark(AttrBorder, d.Border.Set)
	mark(AttrBorderWidth, d.BorderWidth.Set)
	mark(AttrBorderRadius, d.BorderRadius.Set)
	mark(AttrText, d.Text.Set)
	mark(AttrFont, d.Font.Set)
	mark(AttrTextAntialias, d.TextAntialias.Set)
	mark(AttrTextColor, d.TextColor.Set)
	mark(AttrTextPos, d.TextPos.Set)
	mark(AttrFG, d.FG.Set)
	mark(AttrFGRadius, d.FGRadius.Set)
	mark(AttrFGRect, d.FGRect.Set)
	return s
}

// Merge returns d with every field set in over replacing the one in d.
func (d Descriptor) Merge(over Descriptor) Descriptor {
	pick(&d.Image, over.Image)
	pick(&d.ImgAlpha, over.ImgAlpha)
	pick(&d.ImgScale, over.ImgScale)
	pick(&d.Anim, over.Anim)
	pick(&d.BG, over.BG)
	pick(&d.Border, over.Border)
	pick(&d.BorderWidth, over.BorderWidth)
	pick(&d.BorderRadius, over.BorderRadius)
	pick(&d.Text, over.Text)
	pick(&d.Font, over.Font)
	pick(&d.TextAntialias, over.TextAntialias)
	pick(&d.TextColor, over.TextColor)
	pick(&d.TextPos, over.TextPos)
	pick(&d.FG, over.FG)
	pick(&d.FGRadius, over.FGRadius)
	pick(&d.FGRect, over.FGRect)
	return d
}

func pick[T any](dst *Opt[T], src Opt[T]) {
	if src.Set {
		*dst = src
	}
}

// ParseDescriptor builds a Descriptor from a dynamic mapping such as a decoded
// TOML table. Unknown keys and values of the wrong type are reported as
// *InvalidStyleError. Keys are checked in sorted order so the reported error
// is stable.
func ParseDescriptor(m map[string]any) (Descriptor, error) {
	var d Descriptor
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := m[key]
		a, ok := AttrByName(key)
		if !ok {
			return Descriptor{}, invalidf(key, "unknown attribute")
		}
		var err error
		switch a {
		case AttrImage:
			d.Image.Value, err = parseString(key, v)
			d.Image.Set = true
		case AttrAnim:
			d.Anim.Value, err = parseString(key, v)
			d.Anim.Set = true
		case AttrText:
			d.Text.Value, err = parseString(key, v)
			d.Text.Set = true
		case AttrFont:
			d.Font.Value, err = parseString(key, v)
			d.Font.Set = true
		case AttrImgAlpha:
			d.ImgAlpha.Value, err = parseBool(key, v)
			d.ImgAlpha.Set = true
		case AttrTextAntialias:
			d.TextAntialias.Value, err = parseBool(key, v)
			d.TextAntialias.Set = true
		case AttrImgScale:
			d.ImgScale.Value, err = parseScale(key, v)
			d.ImgScale.Set = true
		case AttrBG:
			d.BG.Value, err = ParseColor(key, v)
			d.BG.Set = true
		case AttrBorder:
			d.Border.Value, err = ParseColor(key, v)
			d.Border.Set = true
		case AttrTextColor:
			d.TextColor.Value, err = ParseColor(key, v)
			d.TextColor.Set = true
		case AttrFG:
			d.FG.Value, err = ParseColor(key, v)
			d.FG.Set = true
		case AttrBorderWidth:
			d.BorderWidth.Value, err = parseScalar(key, v)
			d.BorderWidth.Set = true
		case AttrBorderRadius:
			d.BorderRadius.Value, err = parseRadii(key, v)
			d.BorderRadius.Set = true
		case AttrFGRadius:
			d.FGRadius.Value, err = parseRadii(key, v)
			d.FGRadius.Set = true
		case AttrTextPos:
			d.TextPos.Value, err = parsePoint(key, v)
			d.TextPos.Set = true
		case AttrFGRect:
			d.FGRect.Value, err = parseRect(key, v)
			d.FGRect.Set = true
		}
		if err != nil {
			return Descriptor{}, err
		}
	}
	return d, nil
}

// --- value parsers ---

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// toNumbers accepts the list shapes produced by decoders ([]any) and by Go
// callers ([]float64, []int).
func toNumbers(v any) ([]float64, bool) {
	switch l := v.(type) {
	case []float64:
		return l, true
	case []int:
		out := make([]float64, len(l))
		for i, n := range l {
			out[i] = float64(n)
		}
		return out, true
	case []int64:
		out := make([]float64, len(l))
		for i, n := range l {
			out[i] = float64(n)
		}
		return out, true
	case []any:
		out := make([]float64, len(l))
		for i, e := range l {
			f, ok := toFloat(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func parseString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalidf(key, "want string, got %T", v)
	}
	return s, nil
}

func parseBool(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, invalidf(key, "want bool, got %T", v)
	}
	return b, nil
}

func parseScalar(key string, v any) (float64, error) {
	f, ok := toFloat(v)
	if !ok {
		return 0, invalidf(key, "want number, got %T", v)
	}
	if err := checkFinite(key, f); err != nil {
		return 0, err
	}
	return f, nil
}

func checkFinite(key string, nums ...float64) error {
	for _, n := range nums {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return invalidf(key, "not a finite number")
		}
	}
	return nil
}

// ParseColor converts a color value: a color.Color, a list of 3 or 4 channel
// values in 0..255, a "#rrggbb" or "#rrggbbaa" hex string, or an SVG color
// name. Three-channel colors are opaque.
func ParseColor(key string, v any) (Color, error) {
	switch c := v.(type) {
	case Color:
		return c, nil
	case color.Color:
		return color.NRGBAModel.Convert(c).(color.NRGBA), nil
	case string:
		return parseColorString(key, c)
	}

	nums, ok := toNumbers(v)
	if !ok {
		return Color{}, invalidf(key, "want color, got %T", v)
	}
	if len(nums) != 3 && len(nums) != 4 {
		return Color{}, invalidf(key, "color needs 3 or 4 channels, got %d", len(nums))
	}
	var ch [4]uint8
	ch[3] = 255
	for i, n := range nums {
		if n < 0 || n > 255 || n != math.Trunc(n) {
			return Color{}, invalidf(key, "channel %d = %v, want integer in 0..255", i, n)
		}
		ch[i] = uint8(n)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func parseColorString(key, s string) (Color, error) {
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return Color{}, invalidf(key, "hex color %q must have 6 or 8 digits", s)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, invalidf(key, "hex color %q: %v", s, err)
		}
		if len(hex) == 6 {
			n = n<<8 | 0xff
		}
		return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, invalidf(key, "unknown color name %q", s)
	}
	return Color{R: named.R, G: named.G, B: named.B, A: named.A}, nil
}

// parseRadii accepts a single radius for all corners or up to four
// per-corner values. Corners not given are RadiusUnset.
func parseRadii(key string, v any) (Radii, error) {
	if r, ok := v.(Radii); ok {
		return r, checkFinite(key, r[:]...)
	}
	if f, ok := toFloat(v); ok {
		return Radius(f), checkFinite(key, f)
	}
	nums, ok := toNumbers(v)
	if !ok {
		return Radii{}, invalidf(key, "want number or list of up to 4 numbers, got %T", v)
	}
	if len(nums) == 0 || len(nums) > 4 {
		return Radii{}, invalidf(key, "want 1 to 4 corner radii, got %d", len(nums))
	}
	if err := checkFinite(key, nums...); err != nil {
		return Radii{}, err
	}
	return Corners(nums...), nil
}

func parseScale(key string, v any) (Scale, error) {
	switch s := v.(type) {
	case Scale:
		if err := checkFinite(key, s.X, s.Y); err != nil {
			return Scale{}, err
		}
		return s, nil
	case string:
		if s == "auto" {
			return AutoScale, nil
		}
		return Scale{}, invalidf(key, "want \"auto\" or a factor, got %q", s)
	}
	nums, ok := toNumbers(v)
	if f, isNum := toFloat(v); isNum {
		nums, ok = []float64{f, f}, true
	}
	if !ok || len(nums) != 2 {
		return Scale{}, invalidf(key, "want \"auto\", a number or [x, y]")
	}
	if err := checkFinite(key, nums...); err != nil {
		return Scale{}, err
	}
	return Factor(nums[0], nums[1]), nil
}

func parsePoint(key string, v any) (Vec2, error) {
	nums, ok := toNumbers(v)
	if p, isPoint := v.(Vec2); isPoint {
		nums, ok = []float64{p.X, p.Y}, true
	}
	if !ok || len(nums) != 2 {
		return Vec2{}, invalidf(key, "want [x, y]")
	}
	if err := checkFinite(key, nums...); err != nil {
		return Vec2{}, err
	}
	return Vec2{nums[0], nums[1]}, nil
}

func parseRect(key string, v any) (Rect, error) {
	nums, ok := toNumbers(v)
	if r, isRect := v.(Rect); isRect {
		nums, ok = []float64{r.X, r.Y, r.Width, r.Height}, true
	}
	if !ok || len(nums) != 4 {
		return Rect{}, invalidf(key, "want [x, y, width, height]")
	}
	if err := checkFinite(key, nums...); err != nil {
		return Rect{}, err
	}
	return Rect{nums[0], nums[1], nums[2], nums[3]}, nil
}

// String renders the set attributes in key order, for logs.
func (d Descriptor) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	set := d.Attrs()
	for _, a := range Attrs() {
		if !set.Has(a) {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s=%v", a, d.value(a))
	}
	b.WriteByte('}')
	return b.String()
}

func (d Descriptor) value(a Attr) any {
	switch a {
	case AttrImage:
		return d.Image.Value
	case AttrImgAlpha:
		return d.ImgAlpha.Value
	case AttrImgScale:
		return d.ImgScale.Value
	case AttrAnim:
		return d.Anim.Value
	case AttrBG:
		return d.BG.Value
	case AttrBorder:
		return d.Border.Value
	case AttrBorderWidth:
		return d.BorderWidth.Value
	case AttrBorderRadius:
		return d.BorderRadius.Value
	case AttrText:
		return d.Text.Value
	case AttrFont:
		return d.Font.Value
	case AttrTextAntialias:
		return d.TextAntialias.Value
	case AttrTextColor:
		return d.TextColor.Value
	case AttrTextPos:
		return d.TextPos.Value
	case AttrFG:
		return d.FG.Value
	case AttrFGRadius:
		return d.FGRadius.Value
	case AttrFGRect:
		return d.FGRect.Value
	}
	return nil
}
