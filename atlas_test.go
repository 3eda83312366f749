package sprites

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// singlePageJSON is a hash-format atlas for a 1024×1024 page.
const singlePageJSON = `{"frames": {
	"hero.png":    {"frame": {"x": 0, "y": 0, "w": 64, "h": 64}, "sourceSize": {"w": 64, "h": 64}},
	"enemy.png":   {"frame": {"x": 64, "y": 0, "w": 32, "h": 48}, "sourceSize": {"w": 32, "h": 48}},
	"trimmed.png": {"frame": {"x": 100, "y": 50, "w": 60, "h": 58}, "trimmed": true,
	                "spriteSourceSize": {"x": 2, "y": 3, "w": 60, "h": 58}, "sourceSize": {"w": 64, "h": 64}},
	"walk_10.png": {"frame": {"x": 0, "y": 100, "w": 16, "h": 16}, "trimmed": true,
	                "spriteSourceSize": {"x": 4, "y": 1, "w": 16, "h": 16}, "sourceSize": {"w": 24, "h": 24}},
	"walk_2.png":  {"frame": {"x": 16, "y": 100, "w": 16, "h": 16}, "sourceSize": {"w": 16, "h": 16}},
	"walk_x.png":  {"frame": {"x": 32, "y": 100, "w": 16, "h": 16}, "sourceSize": {"w": 16, "h": 16}},
	"rotated.png": {"frame": {"x": 200, "y": 0, "w": 48, "h": 32}, "rotated": true, "sourceSize": {"w": 32, "h": 48}}
}, "meta": {"size": {"w": 1024, "h": 1024}}}`

const multiPageJSON = `{"textures": [
	{"image": "p0.png", "frames": {"a.png": {"frame": {"x": 0, "y": 0, "w": 64, "h": 64}}}},
	{"image": "p1.png", "frames": {"b.png": {"frame": {"x": 10, "y": 20, "w": 50, "h": 50}}}}
]}`

func loadSinglePage(t *testing.T) *Atlas {
	t.Helper()
	a, err := LoadAtlas([]byte(singlePageJSON), []*ebiten.Image{ebiten.NewImage(1024, 1024)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	return a
}

func TestLoadAtlasRegions(t *testing.T) {
	a := loadSinglePage(t)
	if n := len(a.Names()); n != 7 {
		t.Fatalf("%d regions, want 7", n)
	}

	tests := []struct {
		name   string
		packed image.Rectangle
		size   Vec2
		trim   Vec2
		source Vec2
	}{
		{"hero.png", image.Rect(0, 0, 64, 64), Vec2{64, 64}, Vec2{}, Vec2{64, 64}},
		{"enemy.png", image.Rect(64, 0, 96, 48), Vec2{32, 48}, Vec2{}, Vec2{32, 48}},
		{"trimmed.png", image.Rect(100, 50, 160, 108), Vec2{60, 58}, Vec2{2, 3}, Vec2{64, 64}},
		{"rotated.png", image.Rect(200, 0, 248, 32), Vec2{32, 48}, Vec2{}, Vec2{32, 48}},
	}
	for _, tt := range tests {
		r, ok := a.Region(tt.name)
		if !ok {
			t.Errorf("%s missing", tt.name)
			continue
		}
		if r.Packed != tt.packed || r.Size() != tt.size || r.Trim != tt.trim || r.Source != tt.source {
			t.Errorf("%s = %+v (size %v)", tt.name, r, r.Size())
		}
		if r.Page != 0 {
			t.Errorf("%s page = %d", tt.name, r.Page)
		}
	}
	if _, ok := a.Region("ghost.png"); ok {
		t.Error("unknown region found")
	}
}

func TestAtlasNamesSorted(t *testing.T) {
	names := loadSinglePage(t).Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names not sorted: %v", names)
		}
	}
}

func TestAtlasImage(t *testing.T) {
	a := loadSinglePage(t)

	img, err := a.Image("enemy.png")
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b != image.Rect(64, 0, 96, 48) {
		t.Errorf("enemy bounds = %v", b)
	}
	if again, _ := a.Image("enemy.png"); again != img {
		t.Error("second Image call should hit the cache")
	}

	rot, err := a.Image("rotated.png")
	if err != nil {
		t.Fatal(err)
	}
	if b := rot.Bounds(); b.Dx() != 32 || b.Dy() != 48 {
		t.Errorf("rotated image is %dx%d, want upright 32x48", b.Dx(), b.Dy())
	}

	var ae *AssetResolutionError
	if _, err := a.Image("ghost.png"); !errors.As(err, &ae) || ae.Ref != "ghost.png" {
		t.Errorf("Image(ghost.png) err = %v", err)
	}
}

func TestLoadAtlasMultiPage(t *testing.T) {
	a, err := LoadAtlas([]byte(multiPageJSON), []*ebiten.Image{ebiten.NewImage(512, 512)})
	if err != nil {
		t.Fatal(err)
	}
	r, _ := a.Region("b.png")
	if r.Page != 1 || r.Packed.Min != image.Pt(10, 20) {
		t.Errorf("b.png = %+v", r)
	}
	if _, err := a.Image("a.png"); err != nil {
		t.Errorf("page 0 region: %v", err)
	}
	// Only one page image was supplied.
	if _, err := a.Image("b.png"); err == nil || !strings.Contains(err.Error(), "page 1") {
		t.Errorf("region on a missing page: err = %v", err)
	}
}

func TestLoadAtlasErrors(t *testing.T) {
	if _, err := LoadAtlas([]byte(`{invalid`), nil); err == nil {
		t.Error("invalid JSON should fail")
	}
	_, err := LoadAtlas([]byte(`{"meta": {}}`), nil)
	if err == nil || !strings.Contains(err.Error(), "neither") {
		t.Errorf("err = %v, want a missing frames error", err)
	}
}

func TestNewAtlasAnimation(t *testing.T) {
	a := loadSinglePage(t)

	anim, err := NewAtlasAnimation(a, "walk_", AnimOptions{FPS: 10, Offsets: []Vec2{{1, 1}}})
	if err != nil {
		t.Fatal(err)
	}
	// walk_x.png has no number.
	if anim.Len() != 2 {
		t.Fatalf("Len = %d, want 2", anim.Len())
	}
	if x := anim.Frame(0).Image.Bounds().Min.X; x != 16 {
		t.Errorf("frame 0 at x=%d, want walk_2", x)
	}
	if x := anim.Frame(1).Image.Bounds().Min.X; x != 0 {
		t.Errorf("frame 1 at x=%d, want walk_10", x)
	}
	if got := anim.Frame(0).Offset; got != (Vec2{1, 1}) {
		t.Errorf("frame 0 offset = %v, want the option offset", got)
	}
	if got := anim.Frame(1).Offset; got != (Vec2{4, 1}) {
		t.Errorf("frame 1 offset = %v, want the trim offset", got)
	}

	if _, err := NewAtlasAnimation(a, "run_", AnimOptions{}); !errors.Is(err, errNoFrames) {
		t.Errorf("no match err = %v", err)
	}
}

func BenchmarkLoadAtlas(b *testing.B) {
	data := []byte(singlePageJSON)
	pages := []*ebiten.Image{ebiten.NewImage(1024, 1024)}
	for b.Loop() {
		_, _ = LoadAtlas(data, pages)
	}
}
