package sprites

import "strconv"

// Attr identifies one attribute of the closed style attribute set.
type Attr uint8

const (
	AttrImage         Attr = iota // image reference drawn over the background
	AttrImgAlpha                  // keep the image alpha channel when converting
	AttrImgScale                  // image scale factor or "auto"
	AttrAnim                      // animation reference (CapAnimation only)
	AttrBG                        // background fill color
	AttrBorder                    // border stroke color
	AttrBorderWidth               // border stroke width in pixels
	AttrBorderRadius              // corner radii shared by background and border
	AttrText                      // text content
	AttrFont                      // font reference
	AttrTextAntialias             // antialiased text rendering
	AttrTextColor                 // text color
	AttrTextPos                   // text centre position; unset centres in bounds
	AttrFG                        // foreground fill color (CapForeground only)
	AttrFGRadius                  // foreground corner radii (CapForeground only)
	AttrFGRect                    // foreground rectangle (CapForeground only)

	attrCount
)

var attrNames = [attrCount]string{
	AttrImage:         "image",
	AttrImgAlpha:      "img_alpha",
	AttrImgScale:      "img_scale",
	AttrAnim:          "anim",
	AttrBG:            "bg",
	AttrBorder:        "border",
	AttrBorderWidth:   "border_width",
	AttrBorderRadius:  "border_radius",
	AttrText:          "text",
	AttrFont:          "font",
	AttrTextAntialias: "text_antialias",
	AttrTextColor:     "text_color",
	AttrTextPos:       "text_pos",
	AttrFG:            "fg",
	AttrFGRadius:      "fg_radius",
	AttrFGRect:        "fg_rect",
}

// String returns the attribute's descriptor key.
func (a Attr) String() string {
	if a < attrCount {
		return attrNames[a]
	}
	return "attr(" + strconv.Itoa(int(a)) + ")"
}

// AttrByName returns the attribute for a descriptor key.
func AttrByName(name string) (Attr, bool) {
	for i, n := range attrNames {
		if n == name {
			return Attr(i), true
		}
	}
	return 0, false
}

// Attrs returns every attribute in declaration order.
func Attrs() []Attr {
	out := make([]Attr, attrCount)
	for i := range out {
		out[i] = Attr(i)
	}
	return out
}

// Kind is the semantic type of an attribute.
type Kind uint8

const (
	KindColor Kind = iota
	KindScalar
	KindRect
	KindRadii
	KindPoint
	KindScale
	KindImage
	KindAnimation
	KindFont
	KindText
	KindBool
)

// Interpolable reports whether values of this kind blend during a transition.
// The rest snap from start to end at the halfway point.
func (k Kind) Interpolable() bool {
	switch k {
	case KindColor, KindScalar, KindRect, KindRadii, KindPoint, KindScale:
		return true
	}
	return false
}

// Kind returns the attribute's semantic type.
func (a Attr) Kind() Kind {
	switch a {
	case AttrBG, AttrBorder, AttrTextColor, AttrFG:
		return KindColor
	case AttrBorderWidth:
		return KindScalar
	case AttrFGRect:
		return KindRect
	case AttrBorderRadius, AttrFGRadius:
		return KindRadii
	case AttrTextPos:
		return KindPoint
	case AttrImgScale:
		return KindScale
	case AttrImage:
		return KindImage
	case AttrAnim:
		return KindAnimation
	case AttrFont:
		return KindFont
	case AttrText:
		return KindText
	default:
		return KindBool
	}
}

// AttrSet is a set of attributes.
type AttrSet uint32

// AllAttrs contains every attribute.
const AllAttrs = AttrSet(1<<attrCount - 1)

// NewAttrSet returns a set holding the given attributes.
func NewAttrSet(attrs ...Attr) AttrSet {
	var s AttrSet
	for _, a := range attrs {
		s |= 1 << a
	}
	return s
}

// Has reports whether a is in the set.
func (s AttrSet) Has(a Attr) bool {
	return s&(1<<a) != 0
}

// Len returns the number of attributes in the set.
func (s AttrSet) Len() int {
	n := 0
	for a := Attr(0); a < attrCount; a++ {
		if s.Has(a) {
			n++
		}
	}
	return n
}

// ParseAttrSet converts descriptor keys into a set. Unknown keys are an
// InvalidStyleError.
func ParseAttrSet(names ...string) (AttrSet, error) {
	var s AttrSet
	for _, n := range names {
		a, ok := AttrByName(n)
		if !ok {
			return 0, invalidf(n, "unknown attribute")
		}
		s |= 1 << a
	}
	return s, nil
}
