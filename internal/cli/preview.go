package cli

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sprites"
)

const previewMargin = 40

func (c *CLI) previewCommand() *cobra.Command {
	var assetDir, scriptPath, shotDir string

	cmd := &cobra.Command{
		Use:   "preview <sheet.toml>",
		Short: "Open a window showing the sheet's sprite",
		Long: `Open a window showing the sheet's sprite. Hovering and pressing select the
"hover" and "pressed" states when the sheet declares them; space cycles
through every state.

With --script, a JSON script of moves, clicks, state selections and
screenshots drives the sprite, and the window closes once it finishes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assets, err := c.loadAssets(assetDir)
			if err != nil {
				return err
			}
			sh, err := sprites.LoadSheetFile(os.DirFS(filepath.Dir(args[0])), filepath.Base(args[0]))
			if err != nil {
				return err
			}
			s, err := sh.Build(assets)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			g := newPreviewGame(c, s)
			g.group.ScreenshotDir = shotDir
			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return err
				}
				sc, err := sprites.LoadScript(data)
				if err != nil {
					return fmt.Errorf("%s: %w", scriptPath, err)
				}
				g.script = sc
				g.group.SetScript(sc)
				g.group.Poll = nil
			}
			w, h := g.Layout(0, 0)
			ebiten.SetWindowSize(w, h)
			ebiten.SetWindowTitle("spritesheet: " + sh.Name)
			return ebiten.RunGame(g)
		},
	}
	cmd.Flags().StringVarP(&assetDir, "assets", "a", "", "directory of images, fonts and animation folders")
	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON script to run against the sprite")
	cmd.Flags().StringVar(&shotDir, "shots", "screenshots", "directory for script screenshots")
	return cmd
}

type previewGame struct {
	cli    *CLI
	sprite *sprites.StatedSprite
	group  *sprites.Group
	script *sprites.Script
	states []string
	next   int
}

func newPreviewGame(c *CLI, s *sprites.StatedSprite) *previewGame {
	s.SetPosition(previewMargin, previewMargin)
	g := &previewGame{cli: c, sprite: s, group: sprites.NewGroup(s), states: s.States()}

	has := func(name string) bool {
		_, ok := s.StateDescriptor(name)
		return ok
	}
	rest := func() string {
		if s.Hovered() && has("hover") {
			return "hover"
		}
		return sprites.DefaultState
	}
	if has("hover") {
		s.On(sprites.EventHover, func(sprites.Event) { g.selectState(rest()) })
	}
	if has("pressed") {
		s.On(sprites.EventClick, func(sprites.Event) { g.selectState("pressed") })
		s.On(sprites.EventRelease, func(sprites.Event) { g.selectState(rest()) })
	}
	s.On(sprites.EventStateEnter, func(e sprites.Event) {
		c.Logger.Debug("state entered", "state", e.State, "from", e.From)
	})
	return g
}

func (g *previewGame) selectState(name string) {
	if err := g.sprite.SelectState(name); err != nil {
		g.cli.Logger.Error("select state", "state", name, "err", err)
	}
}

func (g *previewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && len(g.states) > 0 {
		g.next = (g.next + 1) % len(g.states)
		g.selectState(g.states[g.next])
	}
	// Checked before updating so the frame of a final screenshot is drawn.
	if g.script != nil && g.script.Done() {
		if err := g.script.Err(); err != nil {
			return err
		}
		return ebiten.Termination
	}
	g.group.Update(1 / float64(ebiten.TPS()))
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 24, G: 24, B: 28, A: 255})
	g.group.Draw(screen)
}

func (g *previewGame) Layout(_, _ int) (int, int) {
	b := g.sprite.Bounds()
	return int(b.Width) + 2*previewMargin, int(b.Height) + 2*previewMargin
}
