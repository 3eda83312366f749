package sprites

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Sheet is a sprite declared in TOML:
//
//	name = "play"
//	size = [160, 48]
//	position = [20, 20]
//	capabilities = ["foreground"]
//
//	[transition]
//	duration = 0.2
//	easing = "cubic_out"
//
//	[states.default]
//	bg = [40, 40, 40]
//	text = "Play"
//
//	[states.hover]
//	bg = "#505050"
//
// Every state other than "default" inherits the attributes it does not set
// from the default state.
type Sheet struct {
	Name         string                    `toml:"name"`
	Size         []float64                 `toml:"size"`
	Position     []float64                 `toml:"position"`
	Capabilities []string                  `toml:"capabilities"`
	Transition   *SheetTransition          `toml:"transition"`
	States       map[string]map[string]any `toml:"states"`
}

// SheetTransition is the [transition] table of a sheet.
type SheetTransition struct {
	Duration float64  `toml:"duration"`
	Easing   string   `toml:"easing"`
	Keys     []string `toml:"keys"`
}

var capabilityNames = map[string]Capabilities{
	"animation":  CapAnimation,
	"foreground": CapForeground,
}

// LoadSheet decodes a sheet. Unknown top-level keys are an error; the
// states themselves are checked by Validate and Build.
func LoadSheet(data []byte) (*Sheet, error) {
	var sh Sheet
	md, err := toml.Decode(string(data), &sh)
	if err != nil {
		return nil, fmt.Errorf("sprites: failed to parse sheet: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("sprites: unknown sheet keys: %s", strings.Join(keys, ", "))
	}
	return &sh, nil
}

// LoadSheetFile reads and decodes the sheet at path in fsys.
func LoadSheetFile(fsys fs.FS, path string) (*Sheet, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("sprites: read sheet: %w", err)
	}
	sh, err := LoadSheet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sh, nil
}

// Bounds returns the sprite rectangle declared by size and position.
func (sh *Sheet) Bounds() (Rect, error) {
	var r Rect
	switch len(sh.Size) {
	case 0:
	case 2:
		r.Width, r.Height = sh.Size[0], sh.Size[1]
	default:
		return Rect{}, fmt.Errorf("sprites: size wants [w, h], got %d values", len(sh.Size))
	}
	if r.Width < 0 || r.Height < 0 {
		return Rect{}, fmt.Errorf("sprites: negative size %vx%v", r.Width, r.Height)
	}
	switch len(sh.Position) {
	case 0:
	case 2:
		r.X, r.Y = sh.Position[0], sh.Position[1]
	default:
		return Rect{}, fmt.Errorf("sprites: position wants [x, y], got %d values", len(sh.Position))
	}
	return r, nil
}

// Caps returns the declared capabilities.
func (sh *Sheet) Caps() (Capabilities, error) {
	var c Capabilities
	for _, name := range sh.Capabilities {
		bit, ok := capabilityNames[name]
		if !ok {
			return 0, fmt.Errorf("sprites: unknown capability %q", name)
		}
		c |= bit
	}
	return c, nil
}

// TransitionSpec returns the transition used by SelectState. ok is false
// when the sheet declares none.
func (sh *Sheet) TransitionSpec() (spec TransitionSpec, ok bool, err error) {
	if sh.Transition == nil {
		return TransitionSpec{}, false, nil
	}
	name := sh.Transition.Easing
	if name == "" {
		name = "linear"
	}
	easing, found := EasingByName(name)
	if !found {
		return TransitionSpec{}, false, &TransitionConfigError{Reason: fmt.Sprintf("unknown easing %q", name)}
	}
	keys, err := ParseAttrSet(sh.Transition.Keys...)
	if err != nil {
		return TransitionSpec{}, false, err
	}
	return TransitionSpec{Duration: sh.Transition.Duration, Easing: easing, Keys: keys}, true, nil
}

// StateNames returns the declared state names, default first and the rest
// sorted.
func (sh *Sheet) StateNames() []string {
	names := make([]string, 0, len(sh.States))
	for n := range sh.States {
		if n != DefaultState {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	if _, ok := sh.States[DefaultState]; ok {
		names = append([]string{DefaultState}, names...)
	}
	return names
}

// Descriptors parses every state, applying inheritance from the default
// state.
func (sh *Sheet) Descriptors() (map[string]Descriptor, error) {
	raw, ok := sh.States[DefaultState]
	if !ok {
		return nil, fmt.Errorf("sprites: sheet %q has no %q state", sh.Name, DefaultState)
	}
	def, err := ParseDescriptor(raw)
	if err != nil {
		return nil, fmt.Errorf("state %q: %w", DefaultState, err)
	}
	out := map[string]Descriptor{DefaultState: def}
	for name, raw := range sh.States {
		if name == DefaultState {
			continue
		}
		d, err := ParseDescriptor(raw)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", name, err)
		}
		out[name] = def.Merge(d)
	}
	return out, nil
}

// Validate checks the whole sheet against assets and reports every problem
// found, joined.
func (sh *Sheet) Validate(assets *Assets) error {
	var errs []error
	bounds, err := sh.Bounds()
	if err != nil {
		errs = append(errs, err)
	}
	caps, err := sh.Caps()
	if err != nil {
		errs = append(errs, err)
	}
	if spec, ok, err := sh.TransitionSpec(); err != nil {
		errs = append(errs, err)
	} else if ok {
		if _, err := NewTransition(CanonicalStyle{}, CanonicalStyle{}, spec.Duration, spec.Easing, spec.Keys); err != nil {
			errs = append(errs, err)
		}
	}
	if _, ok := sh.States[DefaultState]; !ok {
		errs = append(errs, fmt.Errorf("sprites: no %q state", DefaultState))
		return errors.Join(errs...)
	}

	b := NewBuilder(assets, nil)
	ctx := ResolveContext{Bounds: bounds.Size(), Caps: caps, Assets: b.Assets()}
	def, _ := ParseDescriptor(sh.States[DefaultState])
	for _, name := range sh.StateNames() {
		d, err := ParseDescriptor(sh.States[name])
		if err != nil {
			errs = append(errs, fmt.Errorf("state %q: %w", name, err))
			continue
		}
		if name != DefaultState {
			d = def.Merge(d)
		}
		style, err := Resolve(d, ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("state %q: %w", name, err))
			continue
		}
		if err := checkAssets(b.Assets(), style); err != nil {
			errs = append(errs, fmt.Errorf("state %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// checkAssets reports the first name in style missing from assets.
func checkAssets(a *Assets, style CanonicalStyle) error {
	if style.Image != "" {
		if _, err := a.Image(style.Image); err != nil {
			return err
		}
	}
	if style.Anim != "" {
		if _, ok := a.Animations().Lookup(style.Anim); !ok {
			return &AssetResolutionError{Kind: AssetAnimation, Ref: style.Anim}
		}
	}
	if style.Text != "" {
		if _, err := a.Font(style.Font); err != nil {
			return err
		}
	}
	return nil
}

// Build creates the sprite the sheet declares. opts are applied after the
// sheet's own settings.
func (sh *Sheet) Build(assets *Assets, opts ...Option) (*StatedSprite, error) {
	bounds, err := sh.Bounds()
	if err != nil {
		return nil, err
	}
	caps, err := sh.Caps()
	if err != nil {
		return nil, err
	}
	descs, err := sh.Descriptors()
	if err != nil {
		return nil, err
	}
	base := []Option{WithCapabilities(caps), WithAssets(assets)}
	spec, ok, err := sh.TransitionSpec()
	if err != nil {
		return nil, err
	}
	if ok {
		base = append(base, func(s *StatedSprite) { s.transition = &spec })
	}

	s, err := NewStatedSprite(sh.Name, bounds, descs[DefaultState], append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("state %q: %w", DefaultState, err)
	}
	for _, name := range sh.StateNames() {
		if name == DefaultState {
			continue
		}
		if err := s.SetState(name, descs[name]); err != nil {
			return nil, fmt.Errorf("state %q: %w", name, err)
		}
	}
	return s, nil
}
