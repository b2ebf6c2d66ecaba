package ui

import (
	"fmt"
	"log"
	"strconv"

	"github.com/olivierh59500/particle-life-term/config"
	"github.com/olivierh59500/particle-life-term/sim"
)

// Key identifies a non-character key.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyInterrupt
)

// KeyEvent is a frontend-independent key press.
type KeyEvent struct {
	Key  Key
	Rune rune // valid when Key == KeyRune
}

// Rune builds a character key event.
func Rune(r rune) KeyEvent { return KeyEvent{Key: KeyRune, Rune: r} }

// maxArgLen bounds a pending command argument.
const maxArgLen = 10

// Controller turns key presses into simulation and view changes.
//
// Single keys act immediately. Command keys (t r z k x n m p a c) open a
// pending command: p, a and c take one digit and apply it at once; the others
// collect an argument applied on Enter. Pressing a command key twice runs its
// shortcut (reseed positions, refill matrix, reset zoom) and closes it.
type Controller struct {
	driver  *Driver
	pending rune
	arg     []rune
	status  string
	quit    bool
}

// NewController binds a controller to a driver.
func NewController(d *Driver) *Controller {
	return &Controller{driver: d}
}

// Quit reports whether the user asked to leave.
func (c *Controller) Quit() bool { return c.quit }

// Pending returns the open command (0 if none) and its argument so far.
func (c *Controller) Pending() (rune, string) { return c.pending, string(c.arg) }

// Status returns the outcome of the last rejected command, if any.
func (c *Controller) Status() string { return c.status }

func (c *Controller) closeCommand() {
	c.pending = 0
	c.arg = c.arg[:0]
}

func (c *Controller) appendArg(r rune) {
	if len(c.arg) < maxArgLen {
		c.arg = append(c.arg, r)
	}
}

// HandleKey applies one key press.
func (c *Controller) HandleKey(ev KeyEvent) {
	switch ev.Key {
	case KeyInterrupt:
		c.quit = true
		return
	case KeyEnter:
		if c.pending != 0 {
			c.execute()
			c.closeCommand()
		}
		return
	case KeyBackspace:
		if len(c.arg) > 0 {
			c.arg = c.arg[:len(c.arg)-1]
		}
		return
	case KeyEscape:
		c.closeCommand()
		return
	}

	// the glyph command swallows every printable character
	if c.pending == 'x' {
		if ev.Key == KeyRune && ev.Rune >= ' ' && ev.Rune <= '~' {
			c.appendArg(ev.Rune)
		}
		return
	}

	settings := c.driver.Settings
	switch ev.Key {
	case KeyLeft:
		settings.Pan(1, 0)
		return
	case KeyRight:
		settings.Pan(-1, 0)
		return
	case KeyUp:
		settings.Pan(0, 1)
		return
	case KeyDown:
		settings.Pan(0, -1)
		return
	}

	r := ev.Rune
	switch r {
	case 'q':
		c.quit = true
	case ' ':
		settings.Paused = !settings.Paused
	case 'Z':
		settings.FitZoom()
	case '+', '=':
		settings.ZoomIn()
	case '-':
		settings.ZoomOut()
	case 'i':
		settings.ShowInfo = !settings.ShowInfo
	case 'I':
		settings.ShowDebug = !settings.ShowDebug
	case 'd':
		settings.Trail = !settings.Trail
	case 't', 'r', 'z', 'k', 'x', 'n', 'm', 'p', 'a', 'c':
		if c.pending == r {
			c.doubleTap(r)
			c.closeCommand()
		} else {
			c.closeCommand()
			c.pending = r
		}
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '.':
		c.digit(r)
	}
}

func (c *Controller) doubleTap(r rune) {
	s := c.driver.Sim
	switch r {
	case 'p':
		c.report(s.InitPositions(s.PositionMode()))
	case 'a':
		c.report(s.RandomizeMatrix(s.MatrixMode()))
	case 'z':
		c.driver.Settings.ResetZoom()
	}
}

func (c *Controller) digit(r rune) {
	s := c.driver.Sim
	switch c.pending {
	case 0:
	case 'p', 'a', 'c':
		if r == '.' {
			return
		}
		v := int(r - '0')
		switch c.pending {
		case 'p':
			if mode := sim.PositionMode(v); mode.Valid() {
				c.report(s.InitPositions(mode))
				c.closeCommand()
			}
		case 'a':
			if mode := sim.MatrixMode(v); mode.Valid() {
				c.report(s.RandomizeMatrix(mode))
				c.closeCommand()
			}
		case 'c':
			if v >= 0 && v <= config.NumColorModes {
				c.driver.Settings.ColorMode = v
				c.closeCommand()
			}
		}
	case 'k', 'n', 'm':
		if r != '.' {
			c.appendArg(r)
		}
	default:
		c.appendArg(r)
	}
}

// execute applies an argument-taking command. Unparsable or rejected
// arguments leave everything unchanged.
func (c *Controller) execute() {
	if len(c.arg) == 0 {
		return
	}
	arg := string(c.arg)
	s := c.driver.Sim
	settings := c.driver.Settings

	switch c.pending {
	case 't':
		c.applyFloat(arg, s.SetDeltaTime)
	case 'r':
		c.applyFloat(arg, s.SetRadius)
	case 'z':
		c.applyFloat(arg, func(z float32) error {
			if !(z > 0) {
				return fmt.Errorf("zoom must be positive: %v", z)
			}
			settings.Zoom = z
			return nil
		})
	case 'k':
		c.applyInt(arg, func(k int) error {
			settings.StepsPerFrame = k
			return nil
		})
	case 'n':
		c.applyInt(arg, func(n int) error { return s.Resize(n, s.Config().M) })
	case 'm':
		c.applyInt(arg, func(m int) error { return s.Resize(s.Config().N, m) })
	case 'x':
		settings.DensityChars = arg
		c.report(nil)
	}
}

func (c *Controller) applyFloat(arg string, apply func(float32) error) {
	v, err := strconv.ParseFloat(arg, 32)
	if err != nil {
		c.report(fmt.Errorf("command %c: %w", c.pending, err))
		return
	}
	c.report(apply(float32(v)))
}

func (c *Controller) applyInt(arg string, apply func(int) error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		c.report(fmt.Errorf("command %c: %w", c.pending, err))
		return
	}
	c.report(apply(v))
}

func (c *Controller) report(err error) {
	if err != nil {
		c.status = err.Error()
		log.Printf("command rejected: %v", err)
		return
	}
	c.status = ""
}
