// Package scrollfx orchestrates scroll-synchronized animation for
// [Ebitengine] pages.
//
// Every animated element is a [Target]. Its visual properties (opacity,
// offset, translate, scale, blur, rotation) are written by exactly one
// controller, and each controller computes them from the scroll position
// reported by a single [Observer].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop around a [Stage]:
//
//	host := scrollfx.NewEbitenHost(1280, 800, 2400)
//	stage := scrollfx.NewStage(host)
//	card := scrollfx.NewTarget("card", scrollfx.Rect{X: 40, Y: 900, Width: 300, Height: 160})
//	stage.Root().AddChild(card)
//
//	sec := stage.Mount("events")
//	if _, err := sec.Reveal(scrollfx.RevealConfig{
//		Target:   card,
//		Start:    "top 80%",
//		Timeline: scrollfx.FadeUp(16),
//	}); err != nil {
//		log.Fatal(err)
//	}
//	if err := scrollfx.Run(stage, scrollfx.RunConfig{Title: "Page", Width: 1280, Height: 800}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, implement [ebiten.Game] yourself and call
// [Stage.Update] and [Stage.Draw] directly.
//
// # Controllers
//
// Four controllers cover the page: [Reveal] (play once or scrub), [Stagger]
// (ordered group reveal), [PinnedScrub] (pinned header with a scrubbed
// heading and subtitle) and [Counter] (spring-driven integer). A [Section]
// owns the controllers it mounts and releases all of them on
// [Section.Unmount]: no callback fires and no property is written after
// that.
//
// # Reduced motion
//
// The [MotionPreference] is read once when each controller is created. When
// reduced motion is requested, or when the host cannot report scroll
// positions at all, controllers write their final state immediately and
// never subscribe.
//
// Tweens come from [gween] and springs from [harmonica].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [harmonica]: https://github.com/charmbracelet/harmonica
package scrollfx
