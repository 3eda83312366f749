package sprites

import (
	"errors"
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func frames(n int) []*ebiten.Image {
	out := make([]*ebiten.Image, n)
	for i := range out {
		out[i] = ebiten.NewImage(8, 8)
	}
	return out
}

func newTestAnim(t *testing.T, n int, opts AnimOptions) (*AnimationTable, AnimID, *Animation) {
	t.Helper()
	a, err := NewAnimation(frames(n), opts)
	if err != nil {
		t.Fatalf("NewAnimation: %v", err)
	}
	table := NewAnimationTable()
	return table, table.Add("spin", a), a
}

// --- Animation ---

func TestNewAnimationErrors(t *testing.T) {
	if _, err := NewAnimation(nil, AnimOptions{}); !errors.Is(err, errNoFrames) {
		t.Errorf("no frames: err = %v", err)
	}
	if _, err := NewAnimation([]*ebiten.Image{ebiten.NewImage(1, 1), nil}, AnimOptions{}); err == nil {
		t.Error("nil frame should fail")
	}
}

func TestNewAnimationDefaults(t *testing.T) {
	a, err := NewAnimation(frames(2), AnimOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if a.FPS() != DefaultFPS || a.Speed() != 1 || !a.Loop() {
		t.Errorf("fps=%v speed=%v loop=%v", a.FPS(), a.Speed(), a.Loop())
	}
	if a.Len() != 2 || a.FrameSize() != (Vec2{8, 8}) {
		t.Errorf("Len=%d FrameSize=%v", a.Len(), a.FrameSize())
	}
}

func TestNewAnimationOffsets(t *testing.T) {
	a, err := NewAnimation(frames(3), AnimOptions{
		Offset:  Vec2{1, 1},
		Offsets: []Vec2{{2, 0}, {0, 3}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []Vec2{{3, 1}, {1, 4}, {1, 1}}
	for i, w := range want {
		if got := a.Frame(i).Offset; got != w {
			t.Errorf("frame %d offset = %v, want %v", i, got, w)
		}
	}
}

func TestNewAnimationFlipCopies(t *testing.T) {
	src := frames(1)
	a, err := NewAnimation(src, AnimOptions{FlipX: true})
	if err != nil {
		t.Fatal(err)
	}
	if a.Frame(0).Image == src[0] {
		t.Error("flipped frame should be a copy")
	}
	if a.FrameSize() != (Vec2{8, 8}) {
		t.Errorf("FrameSize = %v", a.FrameSize())
	}
}

func TestAnimationOnFrameRange(t *testing.T) {
	_, _, a := newTestAnim(t, 2, AnimOptions{})
	if err := a.OnFrame(2, func(FrameEvent) {}); err == nil {
		t.Error("OnFrame(2) on a 2-frame animation should fail")
	}
	if err := a.OnFrame(-1, func(FrameEvent) {}); err == nil {
		t.Error("OnFrame(-1) should fail")
	}
}

func TestAnimationSetSpeedClamps(t *testing.T) {
	_, _, a := newTestAnim(t, 2, AnimOptions{})
	a.SetSpeed(-3)
	if a.Speed() != 0 {
		t.Errorf("Speed = %v, want 0", a.Speed())
	}
}

// --- AnimationTable ---

func TestAnimationTable(t *testing.T) {
	table := NewAnimationTable()
	a1, _ := NewAnimation(frames(1), AnimOptions{})
	a2, _ := NewAnimation(frames(2), AnimOptions{})

	id1 := table.Add("walk", a1)
	id2 := table.Add("idle", a2)
	if id1 == id2 {
		t.Fatal("distinct names share an id")
	}
	if table.Get(id1) != a1 || a1.Name() != "walk" {
		t.Error("Get(id1) mismatch")
	}
	if id, ok := table.Lookup("idle"); !ok || id != id2 {
		t.Errorf("Lookup(idle) = %v, %v", id, ok)
	}
	if _, ok := table.Lookup("run"); ok {
		t.Error("Lookup(run) should fail")
	}
	if table.Get(NoAnim) != nil || table.Get(99) != nil {
		t.Error("Get out of range should be nil")
	}
	if got := table.Names(); !slices.Equal(got, []string{"idle", "walk"}) {
		t.Errorf("Names = %v", got)
	}

	a3, _ := NewAnimation(frames(3), AnimOptions{})
	if id := table.Add("walk", a3); id != id1 {
		t.Errorf("replacing kept id %v, got %v", id1, id)
	}
	if table.Len() != 2 || table.Get(id1) != a3 {
		t.Error("replace did not swap the definition in place")
	}
}

func TestAnimationTableNil(t *testing.T) {
	var table *AnimationTable
	if table.Get(0) != nil {
		t.Error("nil table Get should be nil")
	}
	if _, ok := table.Lookup("x"); ok {
		t.Error("nil table Lookup should fail")
	}
}

// --- AnimationController ---

func TestControllerLoopVisits(t *testing.T) {
	table, id, _ := newTestAnim(t, 4, AnimOptions{FPS: 10})
	c := NewAnimationController(table, id)

	var visits []int
	c.OnVisit = func(f int) { visits = append(visits, f) }

	if c.State() != Stopped {
		t.Fatalf("new controller state = %v", c.State())
	}
	c.Play()
	for range 4 {
		if !c.Advance(0.1) {
			t.Fatal("Advance(0.1) should move one frame")
		}
	}
	if want := []int{0, 1, 2, 3, 0}; !slices.Equal(visits, want) {
		t.Errorf("visits = %v, want %v", visits, want)
	}
	if c.State() != Playing {
		t.Errorf("state = %v, want playing", c.State())
	}
}

func TestControllerLoopVisitsFullSecond(t *testing.T) {
	table, id, _ := newTestAnim(t, 4, AnimOptions{FPS: 10})
	c := NewAnimationController(table, id)

	var visits []int
	c.OnVisit = func(f int) { visits = append(visits, f) }
	c.Play()
	for range 10 {
		c.Advance(0.1)
	}
	if want := []int{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2}; !slices.Equal(visits, want) {
		t.Errorf("visits = %v, want %v", visits, want)
	}
	if c.Frame() != 2 {
		t.Errorf("Frame = %d after 1s, want 2", c.Frame())
	}
}

func TestControllerLongStall(t *testing.T) {
	table, id, _ := newTestAnim(t, 4, AnimOptions{FPS: 10})
	c := NewAnimationController(table, id)

	n := 0
	c.OnVisit = func(int) { n++ }
	c.Play()
	n = 0

	if !c.Advance(1e9) {
		t.Fatal("a long stall should still move the animation")
	}
	if n != 4 {
		t.Errorf("visits during stall = %d, want one loop of 4", n)
	}
	if c.elapsed < 0 || c.elapsed >= 0.1 {
		t.Errorf("elapsed = %v after stall, want less than one frame", c.elapsed)
	}
}

func TestControllerCallbacksOncePerVisit(t *testing.T) {
	table, id, a := newTestAnim(t, 3, AnimOptions{FPS: 10})
	var calls []FrameEvent
	if err := a.OnFrame(1, func(e FrameEvent) { calls = append(calls, e) }); err != nil {
		t.Fatal(err)
	}
	var order []string
	a.OnFrame(2, func(FrameEvent) { order = append(order, "first") })
	a.OnFrame(2, func(FrameEvent) { order = append(order, "second") })

	c := NewAnimationController(table, id)
	c.Play()
	c.Advance(0.05) // not enough for a frame
	if len(calls) != 0 {
		t.Fatal("callback ran before its frame")
	}
	c.Advance(0.05)
	c.Advance(0.1)
	if len(calls) != 1 || calls[0].Frame != 1 || calls[0].Anim != "spin" {
		t.Errorf("calls = %+v, want one visit of frame 1", calls)
	}
	if !slices.Equal(order, []string{"first", "second"}) {
		t.Errorf("callback order = %v", order)
	}
}

func TestControllerSeekSkipsCallbacks(t *testing.T) {
	table, id, a := newTestAnim(t, 4, AnimOptions{FPS: 10})
	called := 0
	for i := range 4 {
		a.OnFrame(i, func(FrameEvent) { called++ })
	}
	c := NewAnimationController(table, id)
	c.Play()
	called = 0

	c.Seek(2)
	if c.Frame() != 2 || called != 0 {
		t.Errorf("Seek(2): frame=%d callbacks=%d", c.Frame(), called)
	}
	c.Seek(10)
	if c.Frame() != 3 {
		t.Errorf("Seek(10) frame = %d, want 3", c.Frame())
	}
	c.Seek(-1)
	if c.Frame() != 0 {
		t.Errorf("Seek(-1) frame = %d, want 0", c.Frame())
	}
}

func TestControllerNonLoopingStops(t *testing.T) {
	table, id, a := newTestAnim(t, 3, AnimOptions{FPS: 10, Once: true})
	ended := 0
	a.OnEnd(func() { ended++ })

	c := NewAnimationController(table, id)
	c.Play()
	c.Advance(0.1)
	c.Advance(0.1)
	if c.Frame() != 2 || ended != 0 {
		t.Fatalf("frame=%d ended=%d before the end", c.Frame(), ended)
	}
	c.Advance(0.1)
	if c.State() != Stopped || c.Frame() != 2 {
		t.Errorf("state=%v frame=%d, want stopped on the last frame", c.State(), c.Frame())
	}
	if ended != 1 {
		t.Errorf("end callbacks ran %d times, want 1", ended)
	}
	if c.Advance(1) {
		t.Error("stopped controller should not advance")
	}
}

func TestControllerPauseResume(t *testing.T) {
	table, id, _ := newTestAnim(t, 4, AnimOptions{FPS: 10})
	c := NewAnimationController(table, id)
	c.Play()
	c.Advance(0.1)
	c.Pause()
	if c.State() != Paused {
		t.Fatalf("state = %v, want paused", c.State())
	}
	if c.Advance(1) || c.Frame() != 1 {
		t.Errorf("paused controller moved to frame %d", c.Frame())
	}
	c.Play()
	if c.State() != Playing || c.Frame() != 1 {
		t.Errorf("resume: state=%v frame=%d", c.State(), c.Frame())
	}
	c.Stop()
	if c.State() != Stopped || c.Frame() != 0 {
		t.Errorf("stop: state=%v frame=%d", c.State(), c.Frame())
	}
}

func TestControllerSpeed(t *testing.T) {
	table, id, a := newTestAnim(t, 4, AnimOptions{FPS: 10})
	c := NewAnimationController(table, id)
	c.SetSpeed(2)
	c.Play()
	c.Advance(0.05)
	if c.Frame() != 1 {
		t.Errorf("speed 2: frame = %d, want 1", c.Frame())
	}

	c.SetSpeed(-1)
	if c.Speed() != 0 {
		t.Errorf("Speed = %v, want 0", c.Speed())
	}
	if c.Advance(1) {
		t.Error("zero speed should not advance")
	}

	c.SetSpeed(1)
	a.SetSpeed(0)
	if c.Advance(1) {
		t.Error("animation speed 0 should freeze every controller")
	}
}

func TestControllerMultipleFramesPerAdvance(t *testing.T) {
	table, id, _ := newTestAnim(t, 4, AnimOptions{FPS: 10})
	c := NewAnimationController(table, id)
	var visits []int
	c.OnVisit = func(f int) { visits = append(visits, f) }
	c.Play()
	c.Advance(0.25)
	if want := []int{0, 1, 2}; !slices.Equal(visits, want) {
		t.Errorf("visits = %v, want %v", visits, want)
	}
}

func TestControllerCurrentFrame(t *testing.T) {
	table, id, a := newTestAnim(t, 2, AnimOptions{Offsets: []Vec2{{1, 2}}})
	c := NewAnimationController(table, id)
	f, ok := c.CurrentFrame()
	if !ok || f.Image != a.Frame(0).Image || f.Offset != (Vec2{1, 2}) {
		t.Errorf("CurrentFrame = %+v, %v", f, ok)
	}

	missing := NewAnimationController(table, 5)
	if _, ok := missing.CurrentFrame(); ok {
		t.Error("unknown id should have no frame")
	}
	missing.Play()
	if missing.State() != Stopped {
		t.Error("Play with an unknown id should stay stopped")
	}
}

func TestPlayStateString(t *testing.T) {
	for s, want := range map[PlayState]string{Stopped: "stopped", Playing: "playing", Paused: "paused", 9: "unknown"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
