package ecs

import (
	"github.com/phanxgames/sprites"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// SpriteData is the component value of a sprite entity.
type SpriteData struct {
	Sprite *sprites.StatedSprite
}

// SpriteComponent marks entities that carry a sprite.
var SpriteComponent = donburi.NewComponentType[SpriteData]()

// SpriteEvent is a sprite event tagged with the entity it came from.
type SpriteEvent struct {
	Entity donburi.Entity
	sprites.Event
}

// EventType is the Donburi event type for sprite events. Subscribe to it in
// your systems; events are queued until ProcessEvents.
var EventType = events.NewEventType[SpriteEvent]()

var spriteQuery = donburi.NewQuery(filter.Contains(SpriteComponent))

type donburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates an EventSink publishing to EventType on behalf of
// entity.
func NewDonburiSink(world donburi.World, entity donburi.Entity) sprites.EventSink {
	return &donburiSink{world: world, entity: entity}
}

func (s *donburiSink) Emit(ev sprites.Event) {
	EventType.Publish(s.world, SpriteEvent{Entity: s.entity, Event: ev})
}

// Attach creates an entity for s and connects the sprite's events to the
// world.
func Attach(world donburi.World, s *sprites.StatedSprite) donburi.Entity {
	e := world.Create(SpriteComponent)
	SpriteComponent.SetValue(world.Entry(e), SpriteData{Sprite: s})
	s.SetSink(NewDonburiSink(world, e))
	return e
}

// Detach disconnects the sprite's events and removes its entity.
func Detach(world donburi.World, e donburi.Entity) {
	if !world.Valid(e) {
		return
	}
	entry := world.Entry(e)
	if entry.HasComponent(SpriteComponent) {
		if s := SpriteComponent.Get(entry).Sprite; s != nil {
			s.SetSink(nil)
		}
	}
	world.Remove(e)
}

// Lookup returns the sprite of entity e.
func Lookup(world donburi.World, e donburi.Entity) (*sprites.StatedSprite, bool) {
	if !world.Valid(e) {
		return nil, false
	}
	entry := world.Entry(e)
	if !entry.HasComponent(SpriteComponent) {
		return nil, false
	}
	s := SpriteComponent.Get(entry).Sprite
	return s, s != nil
}

// TickSystem ticks every sprite in the world by dt seconds.
func TickSystem(world donburi.World, dt float64) {
	spriteQuery.Each(world, func(entry *donburi.Entry) {
		if s := SpriteComponent.Get(entry).Sprite; s != nil {
			s.Tick(dt)
		}
	})
}

// PointerSystem feeds p to every sprite in the world.
func PointerSystem(world donburi.World, p sprites.PointerState) {
	spriteQuery.Each(world, func(entry *donburi.Entry) {
		if s := SpriteComponent.Get(entry).Sprite; s != nil {
			s.HandlePointer(p)
		}
	})
}

// DrawSystem draws every sprite in the world onto dst.
func DrawSystem(world donburi.World, dst sprites.Surface) {
	spriteQuery.Each(world, func(entry *donburi.Entry) {
		if s := SpriteComponent.Get(entry).Sprite; s != nil {
			s.Draw(dst)
		}
	})
}
