package sprites

import (
	"errors"
	"fmt"
)

// ErrActiveState is returned when removing the state a sprite is currently in.
var ErrActiveState = errors.New("sprites: cannot remove the active state")

// InvalidStyleError reports a bad descriptor: an unknown attribute, a value of
// the wrong type, or an illegal combination of attributes.
type InvalidStyleError struct {
	Key    string // attribute name as written by the caller
	Reason string
}

func (e *InvalidStyleError) Error() string {
	if e.Key == "" {
		return "sprites: invalid style: " + e.Reason
	}
	return fmt.Sprintf("sprites: invalid style attribute %q: %s", e.Key, e.Reason)
}

func invalidf(key, format string, args ...any) *InvalidStyleError {
	return &InvalidStyleError{Key: key, Reason: fmt.Sprintf(format, args...)}
}

// UnknownStateError is returned when a state name is not registered on the
// sprite. The sprite is left unchanged.
type UnknownStateError struct {
	Name string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("sprites: unknown state %q", e.Name)
}

// AssetKind names the kind of reference that failed to resolve.
type AssetKind uint8

const (
	AssetImage AssetKind = iota
	AssetFont
	AssetAnimation
)

func (k AssetKind) String() string {
	switch k {
	case AssetImage:
		return "image"
	case AssetFont:
		return "font"
	case AssetAnimation:
		return "animation"
	default:
		return "asset"
	}
}

// AssetResolutionError reports a missing or unusable image, font or animation.
// It is recovered locally: the sprite keeps its previous visual.
type AssetResolutionError struct {
	Kind AssetKind
	Ref  string
	Err  error
}

func (e *AssetResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sprites: cannot resolve %s %q: %v", e.Kind, e.Ref, e.Err)
	}
	return fmt.Sprintf("sprites: cannot resolve %s %q", e.Kind, e.Ref)
}

func (e *AssetResolutionError) Unwrap() error { return e.Err }

// TransitionConfigError reports an unusable transition configuration. The
// sprite falls back to an immediate snap.
type TransitionConfigError struct {
	Reason string
}

func (e *TransitionConfigError) Error() string {
	return "sprites: invalid transition: " + e.Reason
}
