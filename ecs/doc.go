// Package ecs stores sprites in a [Donburi] world.
//
// [Attach] creates an entity holding a [sprites.StatedSprite] and routes the
// sprite's events into the world as [SpriteEvent] values. [TickSystem] and
// [DrawSystem] drive every attached sprite.
//
// Usage:
//
//	world := donburi.NewWorld()
//	e := ecs.Attach(world, button)
//	ecs.EventType.Subscribe(world, func(w donburi.World, ev ecs.SpriteEvent) {
//		if ev.Kind == sprites.EventClick {
//			// ...
//		}
//	})
//
//	// each frame
//	ecs.TickSystem(world, dt)
//	ecs.EventType.ProcessEvents(world)
//	ecs.DrawSystem(world, sprites.NewEbitenSurface(screen))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
