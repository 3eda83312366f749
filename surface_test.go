package sprites

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestEbitenSurfaceDraws(t *testing.T) {
	dst := ebiten.NewImage(64, 64)
	s := NewEbitenSurface(dst)
	if s.Target != dst {
		t.Fatal("Target not set")
	}
	face, _ := NewAssets().Font("")

	s.DrawFilledRect(Rect{0, 0, 32, 16}, White, Corners(4, 4))
	s.DrawFilledRect(Rect{0, 0, 0, 16}, White, NoRadii)
	s.DrawStrokedRect(Rect{0, 0, 32, 16}, White, 3, Radius(6))
	s.DrawStrokedRect(Rect{0, 0, 4, 4}, White, 10, NoRadii)
	s.DrawImage(ebiten.NewImage(4, 4), Rect{2, 2, 8, 8})
	s.DrawText("hi", face, White, true, Vec2{32, 32}, 1, true)
	s.DrawText("hi", face, White, false, Vec2{10.4, 10.6}, 0.5, false)
	s.DrawText("", face, White, true, Vec2{}, 1, true)
	s.DrawText("hi", face, White, true, Vec2{}, 0, true)
}

func TestConvertForFastBlit(t *testing.T) {
	src := ebiten.NewImage(16, 16)
	sub := src.SubImage(src.Bounds().Inset(4)).(*ebiten.Image)

	for _, c := range []Converter{ImageConverter{}, NewEbitenSurface(ebiten.NewImage(1, 1))} {
		for _, alpha := range []bool{true, false} {
			out := c.ConvertForFastBlit(sub, alpha)
			if out == sub {
				t.Error("conversion should copy")
			}
			if b := out.Bounds(); b.Min.X != 0 || b.Min.Y != 0 || b.Dx() != 8 || b.Dy() != 8 {
				t.Errorf("converted bounds = %v, want 8x8 at the origin", b)
			}
		}
	}
}
