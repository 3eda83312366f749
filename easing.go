package sprites

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// Easing maps normalized time in [0, 1] to a blend factor. Built-in curves
// return 0 at 0 and 1 at 1, but overshooting curves may leave [0, 1] in
// between. Any function with this signature can be used as a custom easing.
type Easing func(t float64) float64

// FromTween adapts a gween easing function. Every curve in
// github.com/tanema/gween/ease (elastic, bounce, out-in variants) can be used
// this way.
func FromTween(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// builtin pins a gween curve to exactly 0 and 1 at the ends. Some of the
// exponential curves are off by a thousandth there.
func builtin(fn ease.TweenFunc) Easing {
	e := FromTween(fn)
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return e(t)
	}
}

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

var easings = map[string]Easing{
	"linear": Linear,

	"sine_in":     builtin(ease.InSine),
	"sine_out":    builtin(ease.OutSine),
	"sine_in_out": builtin(ease.InOutSine),

	"quadric_in":     builtin(ease.InQuad),
	"quadric_out":    builtin(ease.OutQuad),
	"quadric_in_out": builtin(ease.InOutQuad),

	"cubic_in":     builtin(ease.InCubic),
	"cubic_out":    builtin(ease.OutCubic),
	"cubic_in_out": builtin(ease.InOutCubic),

	"quartic_in":     builtin(ease.InQuart),
	"quartic_out":    builtin(ease.OutQuart),
	"quartic_in_out": builtin(ease.InOutQuart),

	"quintic_in":     builtin(ease.InQuint),
	"quintic_out":    builtin(ease.OutQuint),
	"quintic_in_out": builtin(ease.InOutQuint),

	"exponential_in":     builtin(ease.InExpo),
	"exponential_out":    builtin(ease.OutExpo),
	"exponential_in_out": builtin(ease.InOutExpo),

	"circular_in":     builtin(ease.InCirc),
	"circular_out":    builtin(ease.OutCirc),
	"circular_in_out": builtin(ease.InOutCirc),

	"back_in":     builtin(ease.InBack),
	"back_out":    builtin(ease.OutBack),
	"back_in_out": builtin(ease.InOutBack),
}

// EasingByName returns a built-in easing.
func EasingByName(name string) (Easing, bool) {
	e, ok := easings[name]
	return e, ok
}

// EasingNames lists the built-in easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
