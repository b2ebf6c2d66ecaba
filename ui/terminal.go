package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/particle-life-term/config"
	"github.com/olivierh59500/particle-life-term/sim"
)

const (
	infoWidth   = 32
	debugHeight = 8
	idleFrame   = 30 * time.Millisecond
)

// Terminal is the interactive full-screen frontend.
type Terminal struct {
	screen     tcell.Screen
	controller *Controller
	open       bool
}

// NewTerminal wraps a screen; nil opens the real terminal. The viewport
// always follows the screen size.
func NewTerminal(screen tcell.Screen) (*Terminal, error) {
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("terminal: %w", err)
		}
	}
	return &Terminal{screen: screen}, nil
}

// Open initializes the screen and sizes the viewport to it, fitting the
// zoom when none is set. Frames rendered before Run then already use the
// real screen geometry.
func (t *Terminal) Open(d *Driver) error {
	if t.open {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	t.screen.HideCursor()
	t.open = true
	t.resize(d)
	return nil
}

// Close releases the screen.
func (t *Terminal) Close() {
	if t.open {
		t.screen.Fini()
		t.open = false
	}
}

// Run owns the screen until the user quits.
func (t *Terminal) Run(d *Driver) error {
	if err := t.Open(d); err != nil {
		return err
	}
	defer t.Close()

	t.controller = NewController(d)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for !t.controller.Quit() {
		frameStart := time.Now()
		if err := d.Frame(); err != nil {
			return err
		}

		start := time.Now()
		t.Draw(d)
		t.screen.Show()
		d.Stats.Render = ms(time.Since(start))

		start = time.Now()
		if d.Settings.Paused {
			// nothing moves; wait for input instead of spinning
			select {
			case ev := <-events:
				t.handle(d, ev)
			case <-time.After(idleFrame):
			}
		}
	drain:
		for {
			select {
			case ev := <-events:
				t.handle(d, ev)
			default:
				break drain
			}
		}
		d.Stats.Input = ms(time.Since(start))
		d.Stats.Frame = ms(time.Since(frameStart))
	}
	log.Printf("terminal: quit")
	return nil
}

func (t *Terminal) resize(d *Driver) {
	w, h := t.screen.Size()
	d.Settings.Width, d.Settings.Height = w, h
	if d.Settings.Zoom == 0 {
		d.Settings.FitZoom()
	}
}

func (t *Terminal) handle(d *Driver, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.resize(d)
		t.screen.Sync()
	case *tcell.EventKey:
		if key, ok := translateKey(ev); ok {
			t.controller.HandleKey(key)
		}
	}
}

func translateKey(ev *tcell.EventKey) (KeyEvent, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return Rune(ev.Rune()), true
	case tcell.KeyEnter:
		return KeyEvent{Key: KeyEnter}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent{Key: KeyBackspace}, true
	case tcell.KeyEscape:
		return KeyEvent{Key: KeyEscape}, true
	case tcell.KeyLeft:
		return KeyEvent{Key: KeyLeft}, true
	case tcell.KeyRight:
		return KeyEvent{Key: KeyRight}, true
	case tcell.KeyUp:
		return KeyEvent{Key: KeyUp}, true
	case tcell.KeyDown:
		return KeyEvent{Key: KeyDown}, true
	case tcell.KeyCtrlC:
		return KeyEvent{Key: KeyInterrupt}, true
	}
	return KeyEvent{}, false
}

// Draw paints the raster and the overlays onto the screen buffer.
func (t *Terminal) Draw(d *Driver) {
	raster := d.Raster()
	if raster == nil {
		return
	}
	settings := d.Settings
	for y := 0; y < raster.Height; y++ {
		for x := 0; x < raster.Width; x++ {
			typ, count := raster.Dominant(x, y)
			style := tcell.StyleDefault
			if count > 0 && settings.ColorMode == 1 {
				style = style.Foreground(tcell.PaletteColor(PaletteIndex(typ)))
			}
			t.screen.SetContent(x, y, settings.Glyph(count), nil, style)
		}
	}

	if settings.ShowInfo {
		t.drawInfo(d)
	}
	if settings.ShowDebug {
		t.drawDebug(d, raster.Height-debugHeight)
	}
	if t.controller != nil {
		if cmd, arg := t.controller.Pending(); cmd != 0 {
			cursor := ' '
			if time.Now().Unix()%2 == 1 {
				cursor = '_'
			}
			text := fmt.Sprintf("%c %s%c", cmd, arg, cursor)
			t.print(raster.Width-1-(3+maxArgLen), raster.Height-1, text, tcell.StyleDefault)
		} else if status := t.controller.Status(); status != "" {
			t.print(0, raster.Height-1, status, tcell.StyleDefault.Reverse(true))
		}
	}
}

func (t *Terminal) print(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (t *Terminal) box(x, y, w, h int, title string) {
	style := tcell.StyleDefault
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			r := ' '
			switch {
			case (i == 0 || i == w-1) && (j == 0 || j == h-1):
				r = tcell.RuneULCorner
				switch {
				case i == w-1 && j == 0:
					r = tcell.RuneURCorner
				case i == 0 && j == h-1:
					r = tcell.RuneLLCorner
				case i == w-1 && j == h-1:
					r = tcell.RuneLRCorner
				}
			case i == 0 || i == w-1:
				r = tcell.RuneVLine
			case j == 0 || j == h-1:
				r = tcell.RuneHLine
			}
			t.screen.SetContent(x+i, y+j, r, nil, style)
		}
	}
	t.print(x+(w-len(title))/2, y, title, style)
}

func (t *Terminal) drawInfo(d *Driver) {
	cfg := d.Sim.Config()
	settings := d.Settings
	var cmd rune
	if t.controller != nil {
		cmd, _ = t.controller.Pending()
	}
	lines := []struct {
		key  rune
		text string
	}{
		{0, fmt.Sprintf("%-16s %3s %7.0f", "FPS", "", d.Stats.FPS())},
		{'n', fmt.Sprintf("%-16s %3s %7d", "num. particles", "[n]", cfg.N)},
		{'p', fmt.Sprintf("%-16s %3s %5d/%d", "position mode", "[p]", int(d.Sim.PositionMode()), sim.NumPositionModes)},
		{'m', fmt.Sprintf("%-16s %3s %7d", "num. colors", "[m]", cfg.M)},
		{'a', fmt.Sprintf("%-16s %3s %5d/%d", "attraction mode", "[a]", int(d.Sim.MatrixMode()), sim.NumMatrixModes)},
		{'t', fmt.Sprintf("%-16s %3s %7.4f", "dt (seconds)", "[t]", cfg.DT)},
		{'k', fmt.Sprintf("%-16s %3s %7d", "steps per frame", "[k]", settings.StepsPerFrame)},
		{'r', fmt.Sprintf("%-16s %3s %7.4f", "rmax", "[r]", cfg.RMax)},
		{'z', fmt.Sprintf("%-16s %3s %7.3f", "zoom", "[z]", settings.Zoom)},
		{'x', fmt.Sprintf("%-16s %3s %7s", "chars", "[x]", settings.DensityChars)},
		{'c', fmt.Sprintf("%-16s %3s %5d/%d", "color mode", "[c]", settings.ColorMode, config.NumColorModes)},
	}

	t.box(0, 0, infoWidth, len(lines)+2, " INFO [i] ")
	for i, line := range lines {
		style := tcell.StyleDefault
		if line.key != 0 && line.key == cmd {
			style = style.Reverse(true)
		}
		t.print(2, i+1, line.text, style)
	}
}

func (t *Terminal) drawDebug(d *Driver, y int) {
	if y < 0 {
		y = 0
	}
	st := d.Stats
	t.box(0, y, infoWidth, debugHeight, " DEBUG [I] ")
	rows := []struct {
		name string
		v    float64
	}{
		{"frame", st.Frame},
		{"input handling", st.Input},
		{"update", st.Step},
		{"rasterize", st.Raster},
		{"render", st.Render},
	}
	for i, row := range rows {
		t.print(2, y+1+i, fmt.Sprintf("%-16s     %7.2f", row.name, row.v), tcell.StyleDefault)
	}
}
