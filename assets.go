package sprites

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Assets is the catalog styles refer to by name: images, font faces and the
// shared animation table. Styles only hold names, so a catalog can be swapped
// or filled in after sprites are declared.
type Assets struct {
	images      map[string]*ebiten.Image
	fonts       map[string]text.Face
	anims       *AnimationTable
	defaultFace text.Face
}

// NewAssets returns an empty catalog whose default font is the 7x13 basic
// bitmap face.
func NewAssets() *Assets {
	return &Assets{
		images:      make(map[string]*ebiten.Image),
		fonts:       make(map[string]text.Face),
		anims:       NewAnimationTable(),
		defaultFace: text.NewGoXFace(basicfont.Face7x13),
	}
}

// AddImage registers img under name, replacing any previous image.
func (a *Assets) AddImage(name string, img *ebiten.Image) {
	a.images[name] = img
}

// LoadImage decodes a PNG, JPEG or GIF file from fsys and registers it.
func (a *Assets) LoadImage(fsys fs.FS, path, name string) error {
	img, err := decodeFile(fsys, path)
	if err != nil {
		return err
	}
	a.images[name] = ebiten.NewImageFromImage(img)
	return nil
}

// AddAtlas registers every region of atlas as an image named after the
// region.
func (a *Assets) AddAtlas(atlas *Atlas) error {
	for _, name := range atlas.Names() {
		img, err := atlas.Image(name)
		if err != nil {
			return err
		}
		a.images[name] = img
	}
	return nil
}

// Image returns the image registered under name.
func (a *Assets) Image(name string) (*ebiten.Image, error) {
	img, ok := a.images[name]
	if !ok || img == nil {
		return nil, &AssetResolutionError{Kind: AssetImage, Ref: name}
	}
	return img, nil
}

// AddFont registers face under name.
func (a *Assets) AddFont(name string, face text.Face) {
	a.fonts[name] = face
}

// LoadFont parses TrueType or OpenType data and registers a face of the given
// size under name.
func (a *Assets) LoadFont(name string, ttf []byte, size float64) error {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return fmt.Errorf("sprites: failed to parse font %q: %w", name, err)
	}
	a.fonts[name] = &text.GoTextFace{Source: source, Size: size}
	return nil
}

// Font returns the face registered under name. The empty name is the default
// face.
func (a *Assets) Font(name string) (text.Face, error) {
	if name == "" {
		return a.defaultFace, nil
	}
	f, ok := a.fonts[name]
	if !ok || f == nil {
		return nil, &AssetResolutionError{Kind: AssetFont, Ref: name}
	}
	return f, nil
}

// SetDefaultFont replaces the face used when a style names no font.
func (a *Assets) SetDefaultFont(face text.Face) {
	if face != nil {
		a.defaultFace = face
	}
}

// AddAnimation registers anim in the animation table.
func (a *Assets) AddAnimation(name string, anim *Animation) AnimID {
	return a.anims.Add(name, anim)
}

// Animations returns the shared animation table.
func (a *Assets) Animations() *AnimationTable { return a.anims }

// SourceSize implements SourceSizer.
func (a *Assets) SourceSize(kind AssetKind, ref string) (Vec2, bool) {
	switch kind {
	case AssetImage:
		if img, ok := a.images[ref]; ok && img != nil {
			b := img.Bounds()
			return Vec2{float64(b.Dx()), float64(b.Dy())}, true
		}
	case AssetAnimation:
		if id, ok := a.anims.Lookup(ref); ok {
			return a.anims.Get(id).FrameSize(), true
		}
	}
	return Vec2{}, false
}
