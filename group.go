package sprites

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Group updates and draws a flat list of stated sprites. Every sprite sees
// the same pointer snapshot each frame and sprites draw in the order they
// were added.
type Group struct {
	// ScreenshotDir is the directory Screenshot writes PNG files to.
	ScreenshotDir string

	// Poll reads the pointer when no injected input is queued. It defaults
	// to PollPointer. When nil, the last snapshot is dispatched again.
	Poll func() PointerState

	members []*StatedSprite
	sink    EventSink
	script  *Script
	pointer PointerState

	injectQueue     []PointerState
	screenshotQueue []string
}

// NewGroup creates a group holding members.
func NewGroup(members ...*StatedSprite) *Group {
	g := &Group{ScreenshotDir: "screenshots", Poll: PollPointer}
	g.Add(members...)
	return g
}

// Add appends sprites to the group. Sprites already present are skipped.
func (g *Group) Add(members ...*StatedSprite) {
	for _, s := range members {
		if s == nil || slices.Contains(g.members, s) {
			continue
		}
		if g.sink != nil {
			s.SetSink(g.sink)
		}
		g.members = append(g.members, s)
	}
}

// Remove takes s out of the group and reports whether it was a member.
func (g *Group) Remove(s *StatedSprite) bool {
	i := slices.Index(g.members, s)
	if i < 0 {
		return false
	}
	g.members = slices.Delete(g.members, i, i+1)
	if g.sink != nil {
		s.SetSink(nil)
	}
	return true
}

// Len returns the number of sprites.
func (g *Group) Len() int { return len(g.members) }

// Sprites returns the members in draw order.
func (g *Group) Sprites() []*StatedSprite { return slices.Clone(g.members) }

// Find returns the first member with the given name, or nil.
func (g *Group) Find(name string) *StatedSprite {
	for _, s := range g.members {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SetSink connects every current and future member to sink.
func (g *Group) SetSink(sink EventSink) {
	g.sink = sink
	for _, s := range g.members {
		s.SetSink(sink)
	}
}

// Pointer returns the snapshot dispatched by the last Update.
func (g *Group) Pointer() PointerState { return g.pointer }

// Update advances the attached script, dispatches one pointer snapshot to
// every member and ticks them by dt seconds. Injected snapshots take the
// place of real input, one per call.
func (g *Group) Update(dt float64) {
	if g.script != nil {
		g.script.step(g)
	}

	switch {
	case len(g.injectQueue) > 0:
		g.pointer = g.injectQueue[0]
		g.injectQueue = slices.Delete(g.injectQueue, 0, 1)
	case g.Poll != nil:
		g.pointer = g.Poll()
	}

	for _, s := range g.members {
		s.HandlePointer(g.pointer)
	}
	for _, s := range g.members {
		s.Tick(dt)
	}
}

// CheckCollisions tests every pair of members once, firing EventCollide on
// both sprites of each overlapping pair. It returns the number of pairs.
func (g *Group) CheckCollisions() int {
	n := 0
	for i, a := range g.members {
		for _, b := range g.members[i+1:] {
			if a.CheckCollision(&b.Sprite) {
				n++
			}
		}
	}
	return n
}

// Draw draws every member onto screen, then captures any screenshots queued
// since the last Draw.
func (g *Group) Draw(screen *ebiten.Image) {
	dst := NewEbitenSurface(screen)
	for _, s := range g.members {
		s.Draw(dst)
	}
	g.flushScreenshots(screen)
}

// --- injected input ---

// InjectPointer queues a pointer snapshot for a future Update.
func (g *Group) InjectPointer(p PointerState) {
	g.injectQueue = append(g.injectQueue, p)
}

// InjectMove queues the pointer moving to (x, y) with no button held.
func (g *Group) InjectMove(x, y float64) {
	g.InjectPointer(PointerState{X: x, Y: y})
}

// InjectClick queues a left press followed by a release at (x, y). It
// consumes two updates.
func (g *Group) InjectClick(x, y float64) {
	g.InjectPointer(PointerState{X: x, Y: y, Down: true, Button: ebiten.MouseButtonLeft})
	g.InjectPointer(PointerState{X: x, Y: y, Button: ebiten.MouseButtonLeft})
}

// Pending returns the number of injected snapshots not yet dispatched.
func (g *Group) Pending() int { return len(g.injectQueue) }

// --- screenshots ---

// Screenshot queues a labeled capture of the next drawn frame. Files are
// named <ScreenshotDir>/<timestamp>_<label>.png.
func (g *Group) Screenshot(label string) {
	g.screenshotQueue = append(g.screenshotQueue, label)
}

func (g *Group) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	defer func() { g.screenshotQueue = g.screenshotQueue[:0] }()

	if err := os.MkdirAll(g.ScreenshotDir, 0o755); err != nil {
		logger.Error("screenshot failed", "dir", g.ScreenshotDir, "err", err)
		return
	}
	img := readNRGBA(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range g.screenshotQueue {
		path := filepath.Join(g.ScreenshotDir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			logger.Error("screenshot failed", "path", path, "err", err)
		}
	}
}

// readNRGBA copies the pixels of img, converting from premultiplied alpha.
func readNRGBA(img *ebiten.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	px := make([]byte, 4*w*h)
	img.ReadPixels(px)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(px); i += 4 {
		r, gr, bl, a := px[i], px[i+1], px[i+2], px[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			gr = uint8(min(int(gr)*255/int(a), 255))
			bl = uint8(min(int(bl)*255/int(a), 255))
		}
		out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = r, gr, bl, a
	}
	return out
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sprites: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("sprites: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing everything
// else with '_'. An empty label becomes "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
