// Package window presents the density raster in a desktop window, one
// filled rectangle per raster cell.
package window

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-life-term/ui"
)

// CellWidth and CellHeight are the pixel size of one raster cell. The 1:2
// ratio matches a terminal character cell.
const (
	CellWidth  = 6
	CellHeight = CellWidth * 2
)

const wheelZoom = 1.1

var specialKeys = map[ebiten.Key]ui.Key{
	ebiten.KeyEnter:      ui.KeyEnter,
	ebiten.KeyBackspace:  ui.KeyBackspace,
	ebiten.KeyEscape:     ui.KeyEscape,
	ebiten.KeyArrowLeft:  ui.KeyLeft,
	ebiten.KeyArrowRight: ui.KeyRight,
	ebiten.KeyArrowUp:    ui.KeyUp,
	ebiten.KeyArrowDown:  ui.KeyDown,
}

// Game implements ebiten.Game on top of a frame driver.
type Game struct {
	driver     *ui.Driver
	controller *ui.Controller

	chars          []rune
	prevMX, prevMY int
	last           time.Time
}

// New wraps a driver.
func New(d *ui.Driver) *Game {
	return &Game{driver: d, controller: ui.NewController(d)}
}

// Run opens the window and blocks until it is closed or the user quits.
func Run(d *ui.Driver) error {
	s := d.Settings
	w, h := s.Width*CellWidth, s.Height*CellHeight
	if w == 0 || h == 0 {
		w, h = 960, 720
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Particle Life")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(New(d))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// Update applies input and advances one frame.
func (g *Game) Update() error {
	start := time.Now()
	g.handleInput()
	g.driver.Stats.Input = float64(time.Since(start)) / float64(time.Millisecond)
	if g.controller.Quit() {
		log.Printf("window: quit")
		return ebiten.Termination
	}

	if !g.last.IsZero() {
		g.driver.Stats.Frame = float64(time.Since(g.last)) / float64(time.Millisecond)
	}
	g.last = time.Now()
	return g.driver.Frame()
}

// Draw paints the latest raster and the status line.
func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	raster := g.driver.Raster()
	if raster != nil {
		chars := len([]rune(g.driver.Settings.DensityChars))
		mono := g.driver.Settings.ColorMode == 0
		for y := 0; y < raster.Height; y++ {
			for x := 0; x < raster.Width; x++ {
				typ, count := raster.Dominant(x, y)
				if count == 0 {
					continue
				}
				col := ui.TypeColor(typ, raster.Types)
				if mono {
					col.R, col.G, col.B = 255, 255, 255
				}
				level := float64(count) / float64(chars)
				col = ui.Shade(col, 0.3+0.7*level)
				vector.DrawFilledRect(screen,
					float32(x*CellWidth), float32(y*CellHeight),
					CellWidth, CellHeight, col, false)
			}
		}
	}
	g.driver.Stats.Render = float64(time.Since(start)) / float64(time.Millisecond)

	if g.driver.Settings.ShowInfo {
		ebitenutil.DebugPrint(screen, g.info())
	}
}

func (g *Game) info() string {
	cfg := g.driver.Sim.Config()
	s := g.driver.Settings
	text := fmt.Sprintf("FPS %.0f  TPS %.0f\nn %d  m %d\nrmax %.4f  dt %.4f\nsteps/frame %d  zoom %.3f\nposition %s  matrix %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), cfg.N, cfg.M, cfg.RMax, cfg.DT,
		s.StepsPerFrame, s.Zoom, g.driver.Sim.PositionMode(), g.driver.Sim.MatrixMode())
	if cmd, arg := g.controller.Pending(); cmd != 0 {
		text += fmt.Sprintf("\n> %c %s_", cmd, arg)
	} else if status := g.controller.Status(); status != "" {
		text += "\n! " + status
	}
	return text
}

// Layout maps the window onto raster cells; the raster follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.driver.Settings
	w, h := outsideWidth/CellWidth, outsideHeight/CellHeight
	if w != s.Width || h != s.Height {
		fit := s.Zoom == 0
		s.Width, s.Height = w, h
		if fit {
			s.FitZoom()
		}
	}
	return outsideWidth, outsideHeight
}

// handleInput processes keyboard and mouse input
func (g *Game) handleInput() {
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		g.controller.HandleKey(ui.Rune(r))
	}
	for key, mapped := range specialKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.controller.HandleKey(ui.KeyEvent{Key: mapped})
		}
	}

	s := g.driver.Settings

	// Zoom
	_, wheelY := ebiten.Wheel()
	if wheelY > 0 {
		s.Zoom *= wheelZoom
	} else if wheelY < 0 {
		s.Zoom /= wheelZoom
	}

	// Pan (drag)
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && s.Height > 0 {
		// one domain unit spans Zoom*Height*CharRatio/2 cell widths
		unit := s.Zoom * float32(s.Height*CellHeight) / 2
		s.ShiftX += float32(mx-g.prevMX) / unit
		s.ShiftY += float32(my-g.prevMY) / unit
	}
	g.prevMX, g.prevMY = mx, my
}
