package sprites

import (
	"fmt"
	"image"
	_ "image/gif" // register decoders for LoadDirAnimation
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
)

// SheetOptions configures NewSheetAnimation.
type SheetOptions struct {
	AnimOptions

	// Start is the first cell to read, in cell coordinates.
	Start image.Point
	// Count limits the number of frames; 0 reads to the end of the sheet.
	Count int
}

// NewSheetAnimation slices a sprite sheet into cellW×cellH frames read in
// row-major order, starting at opts.Start. Partial cells at the right and
// bottom edges are ignored.
func NewSheetAnimation(sheet *ebiten.Image, cellW, cellH int, opts SheetOptions) (*Animation, error) {
	if sheet == nil {
		return nil, fmt.Errorf("sprites: sheet image is nil")
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("sprites: invalid cell size %dx%d", cellW, cellH)
	}
	b := sheet.Bounds()
	cols, rows := b.Dx()/cellW, b.Dy()/cellH
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("sprites: sheet %dx%d is smaller than one %dx%d cell", b.Dx(), b.Dy(), cellW, cellH)
	}
	if opts.Start.X < 0 || opts.Start.Y < 0 || opts.Start.X >= cols || opts.Start.Y >= rows {
		return nil, fmt.Errorf("sprites: start cell %v outside %dx%d grid", opts.Start, cols, rows)
	}

	var frames []*ebiten.Image
	for i := opts.Start.Y*cols + opts.Start.X; i < cols*rows; i++ {
		if opts.Count > 0 && len(frames) == opts.Count {
			break
		}
		x := b.Min.X + (i%cols)*cellW
		y := b.Min.Y + (i/cols)*cellH
		frames = append(frames, sheet.SubImage(image.Rect(x, y, x+cellW, y+cellH)).(*ebiten.Image))
	}
	return NewAnimation(frames, opts.AnimOptions)
}

// DirOptions configures LoadDirAnimation.
type DirOptions struct {
	AnimOptions

	// Prefix restricts the files to those named <Prefix><N>.<ext>. Empty
	// accepts any prefix.
	Prefix string
}

var frameFileRe = regexp.MustCompile(`^(.*?)(\d+)\.(?i:png|jpe?g|gif)$`)

type frameFile struct {
	name string
	num  int
}

// LoadDirAnimation reads the frames of an animation from the image files in
// dir, ordered by the number at the end of each file name, so walk_2.png
// comes before walk_10.png. Files that do not end in a number are skipped.
// Two files with the same number are an error.
func LoadDirAnimation(fsys fs.FS, dir string, opts DirOptions) (*Animation, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("sprites: read animation dir: %w", err)
	}

	var files []frameFile
	seen := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := frameFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if opts.Prefix != "" && m[1] != opts.Prefix {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if prev, dup := seen[n]; dup {
			return nil, fmt.Errorf("sprites: frames %q and %q share number %d", prev, e.Name(), n)
		}
		seen[n] = e.Name()
		files = append(files, frameFile{name: e.Name(), num: n})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("sprites: no numbered frames in %q: %w", dir, errNoFrames)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].num < files[j].num })

	images := make([]*ebiten.Image, len(files))
	for i, f := range files {
		img, err := decodeFile(fsys, path.Join(dir, f.name))
		if err != nil {
			return nil, err
		}
		images[i] = ebiten.NewImageFromImage(img)
	}
	return NewAnimation(images, opts.AnimOptions)
}

func decodeFile(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("sprites: open frame: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sprites: decode %s: %w", name, err)
	}
	return img, nil
}
