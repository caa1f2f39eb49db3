package scrollfx

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS prints FPS, TPS and the scroll position in the top-left corner.
	ShowFPS bool
	// Resizable lets the user resize the window; the host follows.
	Resizable bool
	// UpdateFunc, if set, is called every tick after the stage has updated.
	UpdateFunc func() error
}

// game adapts a Stage to ebiten.Game.
type game struct {
	stage *Stage
	cfg   RunConfig
}

func (g *game) Update() error {
	g.stage.Update()
	if g.cfg.UpdateFunc != nil {
		return g.cfg.UpdateFunc()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.stage.Draw(screen)
	if g.cfg.ShowFPS {
		var y float64
		if g.stage.host != nil {
			y = g.stage.host.ScrollY()
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  TPS: %.0f  scroll: %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), y), 4, 4)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if l, ok := g.stage.host.(interface{ Layout(int, int) (int, int) }); ok {
		return l.Layout(outsideWidth, outsideHeight)
	}
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and runs the stage until the window is closed or
// UpdateFunc returns an error.
func Run(stage *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		w, h := 1280.0, 800.0
		if stage.host != nil {
			w, h = stage.host.ViewportSize()
		}
		cfg.Width, cfg.Height = int(w), int(h)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(&game{stage: stage, cfg: cfg})
}
