package sprites

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
)

// pngBytes encodes a w×h image whose first pixel's red channel is tag.
func pngBytes(t *testing.T, w, h int, tag uint8) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: tag, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// --- NewSheetAnimation ---

func TestSheetAnimationSlices(t *testing.T) {
	sheet := ebiten.NewImage(64, 32) // 4x2 grid of 16x16
	a, err := NewSheetAnimation(sheet, 16, 16, SheetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 8 {
		t.Fatalf("Len = %d, want 8", a.Len())
	}
	want := []image.Rectangle{
		image.Rect(0, 0, 16, 16),
		image.Rect(16, 0, 32, 16),
		image.Rect(48, 0, 64, 16),
		image.Rect(0, 16, 16, 32),
	}
	for i, idx := range []int{0, 1, 3, 4} {
		if got := a.Frame(idx).Image.Bounds(); got != want[i] {
			t.Errorf("frame %d bounds = %v, want %v", idx, got, want[i])
		}
	}
}

func TestSheetAnimationStartCount(t *testing.T) {
	sheet := ebiten.NewImage(64, 32)
	a, err := NewSheetAnimation(sheet, 16, 16, SheetOptions{Start: image.Pt(2, 0), Count: 3})
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 3 {
		t.Fatalf("Len = %d, want 3", a.Len())
	}
	if got := a.Frame(2).Image.Bounds(); got != image.Rect(0, 16, 16, 32) {
		t.Errorf("last frame bounds = %v", got)
	}
}

func TestSheetAnimationIgnoresPartialCells(t *testing.T) {
	sheet := ebiten.NewImage(40, 20)
	a, err := NewSheetAnimation(sheet, 16, 16, SheetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, want 2", a.Len())
	}
}

func TestSheetAnimationErrors(t *testing.T) {
	sheet := ebiten.NewImage(32, 32)
	tests := []struct {
		name string
		img  *ebiten.Image
		w, h int
		opts SheetOptions
	}{
		{"nil sheet", nil, 16, 16, SheetOptions{}},
		{"zero cell", sheet, 0, 16, SheetOptions{}},
		{"cell too big", sheet, 64, 16, SheetOptions{}},
		{"start outside", sheet, 16, 16, SheetOptions{Start: image.Pt(2, 0)}},
	}
	for _, tt := range tests {
		if _, err := NewSheetAnimation(tt.img, tt.w, tt.h, tt.opts); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestSheetAnimationOptions(t *testing.T) {
	sheet := ebiten.NewImage(32, 16)
	a, err := NewSheetAnimation(sheet, 16, 16, SheetOptions{AnimOptions: AnimOptions{FPS: 5, Once: true}})
	if err != nil {
		t.Fatal(err)
	}
	if a.FPS() != 5 || a.Loop() {
		t.Errorf("fps=%v loop=%v", a.FPS(), a.Loop())
	}
}

// --- LoadDirAnimation ---

func TestLoadDirAnimationNumericOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"walk/walk_10.png": {Data: pngBytes(t, 4, 4, 10)},
		"walk/walk_2.png":  {Data: pngBytes(t, 4, 4, 2)},
		"walk/walk_1.png":  {Data: pngBytes(t, 4, 4, 1)},
		"walk/readme.txt":  {Data: []byte("not a frame")},
		"walk/cover.png":   {Data: pngBytes(t, 4, 4, 0)},
	}
	a, err := LoadDirAnimation(fsys, "walk", DirOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 3 {
		t.Fatalf("Len = %d, want 3", a.Len())
	}
	if a.FrameSize() != (Vec2{4, 4}) {
		t.Errorf("FrameSize = %v", a.FrameSize())
	}
}

func TestLoadDirAnimationPrefix(t *testing.T) {
	fsys := fstest.MapFS{
		"anims/walk_1.png": {Data: pngBytes(t, 2, 2, 1)},
		"anims/walk_2.png": {Data: pngBytes(t, 2, 2, 2)},
		"anims/run_1.png":  {Data: pngBytes(t, 2, 2, 3)},
	}
	a, err := LoadDirAnimation(fsys, "anims", DirOptions{Prefix: "walk_"})
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, want 2", a.Len())
	}
}

func TestLoadDirAnimationDuplicateNumber(t *testing.T) {
	fsys := fstest.MapFS{
		"d/a1.png":  {Data: pngBytes(t, 2, 2, 1)},
		"d/a01.png": {Data: pngBytes(t, 2, 2, 1)},
	}
	if _, err := LoadDirAnimation(fsys, "d", DirOptions{}); err == nil {
		t.Error("duplicate frame numbers should fail")
	}
}

func TestLoadDirAnimationNoFrames(t *testing.T) {
	fsys := fstest.MapFS{"d/readme.txt": {Data: []byte("x")}}
	_, err := LoadDirAnimation(fsys, "d", DirOptions{})
	if !errors.Is(err, errNoFrames) {
		t.Errorf("err = %v, want errNoFrames", err)
	}
	if _, err := LoadDirAnimation(fsys, "missing", DirOptions{}); err == nil {
		t.Error("missing directory should fail")
	}
}

func TestLoadDirAnimationBadImage(t *testing.T) {
	fsys := fstest.MapFS{"d/f1.png": {Data: []byte("garbage")}}
	if _, err := LoadDirAnimation(fsys, "d", DirOptions{}); err == nil {
		t.Error("undecodable frame should fail")
	}
}
