// Package sprites is a stated sprite presentation engine for [Ebitengine].
//
// A sprite's look is written as a style: a partial set of named visual
// attributes (background, border, corner radii, image or animation, text,
// foreground region). Styles are grouped into named states, and a
// [StatedSprite] moves between them either by snapping or by interpolating
// over time with an easing curve. Every tick, the displayed style is composed
// into a [ComposedVisual], a list of draw operations replayed onto a
// [Surface].
//
// # Quick start
//
//	assets := sprites.NewAssets()
//	button, err := sprites.NewStatedSprite("play",
//		sprites.Rect{X: 20, Y: 20, Width: 160, Height: 48},
//		sprites.Descriptor{
//			BG:           sprites.Some(sprites.Color{R: 40, G: 40, B: 40, A: 255}),
//			BorderRadius: sprites.Some(sprites.Radius(8)),
//			Text:         sprites.Some("Play"),
//		},
//		sprites.WithAssets(assets),
//		sprites.WithTransition(0.2, sprites.Linear),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	button.SetState("hover", sprites.Descriptor{
//		BG: sprites.Some(sprites.Color{R: 80, G: 80, B: 80, A: 255}),
//	})
//	button.On(sprites.EventHover, func(e sprites.Event) {
//		if e.Hover {
//			button.SelectState("hover")
//		} else {
//			button.SelectState(sprites.DefaultState)
//		}
//	})
//
// Then, from the game loop:
//
//	func (g *Game) Update() error {
//		g.button.HandlePointer(sprites.PollPointer())
//		g.button.Tick(1.0 / 60)
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) { g.button.DrawTo(screen) }
//
// # Styles
//
// A [Descriptor] holds one optional field per attribute. [Resolve] checks it
// against the sprite's size and [Capabilities] and fills defaults, producing
// a comparable [CanonicalStyle]. Descriptors can also be parsed from dynamic
// maps with [ParseDescriptor], which is what TOML sheets use ([LoadSheet]).
//
// # Transitions
//
// [Sample] blends two canonical styles at a normalized time. Colors, sizes,
// rectangles, points and corner radii interpolate; names, text and flags
// switch at the halfway point. Twenty-five easing curves are built in
// ([EasingNames]); any gween curve can be adapted with [FromTween].
//
// # Animations
//
// An [Animation] is a shared, read-only list of frames stored in an
// [AnimationTable]. Each sprite plays it through its own
// [AnimationController]. Animations are built from images
// ([NewAnimation]), a grid sheet ([NewSheetAnimation]), numbered files
// ([LoadDirAnimation]) or a TexturePacker atlas ([NewAtlasAnimation]).
//
// # Groups
//
// A [Group] updates, hit-tests and draws a list of stated sprites from one
// pointer snapshot per frame. Input can be injected instead of polled, and a
// [Script] loaded from JSON can click, move, select states and queue
// screenshots one step per frame.
//
// # ECS
//
// The sprites/ecs package stores sprites as [Donburi] components and
// forwards their events to the world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package sprites
