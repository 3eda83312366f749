package sprites

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// arcSegments is the number of segments used to approximate each rounded
// corner.
const arcSegments = 8

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Solid shapes are drawn as triangles sampling this image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// roundedRectOutline returns the clockwise outline of r with the given corner
// radii, starting at the top-left corner. Every corner contributes exactly
// arcSegments+1 points, square corners included, so two outlines of the same
// rectangle family can be stitched into a ring.
func roundedRectOutline(r Rect, radii Radii) []Vec2 {
	c := radii.clamped(r.Width, r.Height)
	tl, tr, bl, br := c[0], c[1], c[2], c[3]

	pts := make([]Vec2, 0, 4*(arcSegments+1))
	// Corner centres and the start angle of each quarter arc, walking
	// clockwise in screen space (Y down).
	corners := [4]struct {
		cx, cy, rad, start float64
	}{
		{r.X + tl, r.Y + tl, tl, math.Pi},
		{r.X + r.Width - tr, r.Y + tr, tr, 1.5 * math.Pi},
		{r.X + r.Width - br, r.Y + r.Height - br, br, 0},
		{r.X + bl, r.Y + r.Height - bl, bl, 0.5 * math.Pi},
	}
	for _, k := range corners {
		for i := 0; i <= arcSegments; i++ {
			a := k.start + 0.5*math.Pi*float64(i)/arcSegments
			pts = append(pts, Vec2{k.cx + k.rad*math.Cos(a), k.cy + k.rad*math.Sin(a)})
		}
	}
	return pts
}

// premultiplied returns the vertex color scale for a straight-alpha color.
func premultiplied(c Color) (r, g, b, a float32) {
	a = float32(c.A) / 255
	return float32(c.R) / 255 * a, float32(c.G) / 255 * a, float32(c.B) / 255 * a, a
}

// buildPolygonFan generates vertices and indices for a fan-triangulated
// convex polygon filled with c. N vertices, 3*(N-2) indices.
func buildPolygonFan(points []Vec2, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}
	cr, cg, cb, ca := premultiplied(c)

	verts := make([]ebiten.Vertex, n)
	for i, p := range points {
		verts[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	inds := make([]uint16, 0, (n-2)*3)
	for i := 1; i < n-1; i++ {
		inds = append(inds, 0, uint16(i), uint16(i+1))
	}
	return verts, inds
}

// buildRing stitches two outlines with the same point count into a closed
// strip of quads, two triangles per edge.
func buildRing(outer, inner []Vec2, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(outer)
	if n < 3 || len(inner) != n {
		return nil, nil
	}
	cr, cg, cb, ca := premultiplied(c)

	verts := make([]ebiten.Vertex, 0, 2*n)
	for i := 0; i < n; i++ {
		for _, p := range [2]Vec2{outer[i], inner[i]} {
			verts = append(verts, ebiten.Vertex{
				DstX: float32(p.X), DstY: float32(p.Y),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
	}
	inds := make([]uint16, 0, 6*n)
	for i := 0; i < n; i++ {
		o0, i0 := uint16(2*i), uint16(2*i+1)
		j := (i + 1) % n
		o1, i1 := uint16(2*j), uint16(2*j+1)
		inds = append(inds, o0, o1, i0, i0, o1, i1)
	}
	return verts, inds
}

// insetRadii shrinks each rounded corner by w, keeping square corners square.
func insetRadii(r Radii, w float64) Radii {
	for i, v := range r {
		if v > 0 {
			r[i] = math.Max(v-w, 0)
		}
	}
	return r
}
