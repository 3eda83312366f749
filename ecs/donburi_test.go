package ecs

import (
	"testing"

	"github.com/phanxgames/sprites"

	"github.com/yohamta/donburi"
)

func newButton(t *testing.T) *sprites.StatedSprite {
	t.Helper()
	s, err := sprites.NewStatedSprite("button",
		sprites.Rect{X: 10, Y: 10, Width: 100, Height: 40},
		sprites.Descriptor{BG: sprites.Some(sprites.Color{R: 10, G: 10, B: 10, A: 255})},
		sprites.WithTransition(0.5, sprites.Linear),
	)
	if err != nil {
		t.Fatalf("NewStatedSprite: %v", err)
	}
	if err := s.SetState("pressed", sprites.Descriptor{BG: sprites.Some(sprites.Color{R: 200, A: 255})}); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	return s
}

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world, 0) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestAttach_Lookup(t *testing.T) {
	world := donburi.NewWorld()
	s := newButton(t)
	e := Attach(world, s)

	got, ok := Lookup(world, e)
	if !ok || got != s {
		t.Fatalf("Lookup = %v, %v; want the attached sprite", got, ok)
	}
}

func TestAttach_PublishesPointerEvents(t *testing.T) {
	world := donburi.NewWorld()
	s := newButton(t)
	e := Attach(world, s)

	var received []SpriteEvent
	EventType.Subscribe(world, func(w donburi.World, ev SpriteEvent) {
		received = append(received, ev)
	})

	PointerSystem(world, sprites.PointerState{X: 20, Y: 20})
	PointerSystem(world, sprites.PointerState{X: 20, Y: 20, Down: true})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	EventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Kind != sprites.EventHover || !received[0].Hover {
		t.Errorf("event 0: %+v", received[0].Event)
	}
	if received[1].Kind != sprites.EventClick {
		t.Errorf("event 1 kind = %v, want click", received[1].Kind)
	}
	for i, ev := range received {
		if ev.Entity != e {
			t.Errorf("event %d entity = %v, want %v", i, ev.Entity, e)
		}
	}
}

func TestTickSystem_CommitsTransition(t *testing.T) {
	world := donburi.NewWorld()
	s := newButton(t)
	Attach(world, s)

	var entered []string
	EventType.Subscribe(world, func(w donburi.World, ev SpriteEvent) {
		if ev.Kind == sprites.EventStateEnter {
			entered = append(entered, ev.State)
		}
	})

	if err := s.SelectState("pressed"); err != nil {
		t.Fatalf("SelectState: %v", err)
	}
	TickSystem(world, 0.25)
	if s.State() != sprites.DefaultState {
		t.Errorf("State() mid-transition = %q, want %q", s.State(), sprites.DefaultState)
	}
	TickSystem(world, 0.25)
	EventType.ProcessEvents(world)

	if s.State() != "pressed" {
		t.Errorf("State() = %q, want pressed", s.State())
	}
	if len(entered) != 1 || entered[0] != "pressed" {
		t.Errorf("entered = %v, want [pressed]", entered)
	}
}

func TestDetach(t *testing.T) {
	world := donburi.NewWorld()
	s := newButton(t)
	e := Attach(world, s)

	var count int
	EventType.Subscribe(world, func(w donburi.World, ev SpriteEvent) { count++ })

	Detach(world, e)
	if _, ok := Lookup(world, e); ok {
		t.Error("Lookup after Detach should fail")
	}

	s.HandlePointer(sprites.PointerState{X: 20, Y: 20})
	EventType.ProcessEvents(world)
	if count != 0 {
		t.Errorf("detached sprite published %d events", count)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world, 7)

	var count1, count2 int
	EventType.Subscribe(world, func(w donburi.World, ev SpriteEvent) { count1++ })
	EventType.Subscribe(world, func(w donburi.World, ev SpriteEvent) { count2++ })

	sink.Emit(sprites.Event{Kind: sprites.EventCollide})
	EventType.ProcessEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("count1=%d count2=%d, want 1 and 1", count1, count2)
	}
}
