package sprites

import (
	"encoding/json"
	"fmt"
	"image"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// AtlasRegion locates one packed image inside an atlas page.
type AtlasRegion struct {
	Page    int
	Packed  image.Rectangle // rect on the page, as stored (sideways if Rotated)
	Trim    Vec2            // where the packed pixels sit inside the untrimmed frame
	Source  Vec2            // untrimmed frame size
	Rotated bool            // stored 90° clockwise
}

// Size returns the upright size of the packed pixels.
func (r AtlasRegion) Size() Vec2 {
	w, h := r.Packed.Dx(), r.Packed.Dy()
	if r.Rotated {
		w, h = h, w
	}
	return Vec2{float64(w), float64(h)}
}

// Atlas is a set of named regions over one or more page images, as written
// by TexturePacker in its JSON hash or multi-page array format.
type Atlas struct {
	Pages []*ebiten.Image

	regions map[string]AtlasRegion
	images  map[string]*ebiten.Image
}

// Region returns the named region.
func (a *Atlas) Region(name string) (AtlasRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Names returns every region name in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.regions))
	for n := range a.regions {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Image returns the region as a standalone upright image. Unrotated regions
// share their page's pixels; rotated ones are copied once.
func (a *Atlas) Image(name string) (*ebiten.Image, error) {
	if img, ok := a.images[name]; ok {
		return img, nil
	}
	r, ok := a.regions[name]
	if !ok {
		return nil, &AssetResolutionError{Kind: AssetImage, Ref: name}
	}
	if r.Page >= len(a.Pages) || a.Pages[r.Page] == nil {
		return nil, &AssetResolutionError{Kind: AssetImage, Ref: name,
			Err: fmt.Errorf("atlas page %d not loaded", r.Page)}
	}

	img := a.Pages[r.Page].SubImage(r.Packed).(*ebiten.Image)
	if r.Rotated {
		size := r.Size()
		upright := ebiten.NewImage(int(size.X), int(size.Y))
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(-float64(r.Packed.Min.X), -float64(r.Packed.Min.Y))
		op.GeoM.Rotate(-math.Pi / 2)
		op.GeoM.Translate(0, size.Y)
		upright.DrawImage(img, &op)
		img = upright
	}
	if a.images == nil {
		a.images = make(map[string]*ebiten.Image)
	}
	a.images[name] = img
	return img, nil
}

type packedFrame struct {
	Frame struct {
		X, Y, W, H int
	} `json:"frame"`
	Rotated bool `json:"rotated"`
	Trim    struct {
		X, Y int
	} `json:"spriteSourceSize"`
	Source struct {
		W, H int
	} `json:"sourceSize"`
}

type atlasFile struct {
	Frames   map[string]packedFrame `json:"frames"`
	Textures []struct {
		Frames map[string]packedFrame `json:"frames"`
	} `json:"textures"`
}

// LoadAtlas parses TexturePacker JSON and pairs it with the page images,
// indexed as the JSON numbers its pages. The hash format has one page.
func LoadAtlas(data []byte, pages []*ebiten.Image) (*Atlas, error) {
	var f atlasFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sprites: parse atlas: %w", err)
	}
	var pageFrames []map[string]packedFrame
	switch {
	case f.Textures != nil:
		for _, t := range f.Textures {
			pageFrames = append(pageFrames, t.Frames)
		}
	case f.Frames != nil:
		pageFrames = append(pageFrames, f.Frames)
	default:
		return nil, fmt.Errorf(`sprites: parse atlas: neither "frames" nor "textures" present`)
	}

	a := &Atlas{Pages: pages, regions: make(map[string]AtlasRegion)}
	for page, frames := range pageFrames {
		for name, pf := range frames {
			fr := pf.Frame
			a.regions[name] = AtlasRegion{
				Page:    page,
				Packed:  image.Rect(fr.X, fr.Y, fr.X+fr.W, fr.Y+fr.H),
				Trim:    Vec2{float64(pf.Trim.X), float64(pf.Trim.Y)},
				Source:  Vec2{float64(pf.Source.W), float64(pf.Source.H)},
				Rotated: pf.Rotated,
			}
		}
	}
	return a, nil
}

// NewAtlasAnimation builds an animation from the regions named <prefix><N>,
// optionally with a file extension (walk_0.png, walk_1.png, ...), ordered by
// N. Trim offsets are added to the frame offsets so trimmed frames stay
// aligned.
func NewAtlasAnimation(atlas *Atlas, prefix string, opts AnimOptions) (*Animation, error) {
	type numbered struct {
		name string
		n    int
	}
	var found []numbered
	for name := range atlas.regions {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		if dot := strings.LastIndexByte(rest, '.'); dot >= 0 {
			rest = rest[:dot]
		}
		if n, err := strconv.Atoi(rest); err == nil && n >= 0 {
			found = append(found, numbered{name, n})
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("sprites: no atlas regions match %q: %w", prefix, errNoFrames)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	images := make([]*ebiten.Image, len(found))
	offsets := make([]Vec2, len(found))
	for i, e := range found {
		img, err := atlas.Image(e.name)
		if err != nil {
			return nil, err
		}
		images[i] = img
		offsets[i] = atlas.regions[e.name].Trim
		if i < len(opts.Offsets) {
			offsets[i].X += opts.Offsets[i].X
			offsets[i].Y += opts.Offsets[i].Y
		}
	}
	opts.Offsets = offsets
	return NewAnimation(images, opts)
}
