package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Text prints every frame to a writer, optionally redrawing in place by
// moving the cursor back up over the previous frame.
type Text struct {
	out     io.Writer
	inPlace bool
	once    bool
	drawn   bool

	renderer *lipgloss.Renderer
	styles   []lipgloss.Style
}

// NewText creates a stdout-style frontend. Colours are always emitted as
// 256-colour escapes, whether or not out is a terminal.
func NewText(out io.Writer, inPlace, once bool) *Text {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(termenv.ANSI256)
	return &Text{out: out, inPlace: inPlace, once: once, renderer: r}
}

func (t *Text) style(typ int) lipgloss.Style {
	for len(t.styles) <= typ {
		idx := len(t.styles)
		t.styles = append(t.styles, t.renderer.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(PaletteIndex(idx)))))
	}
	return t.styles[typ]
}

// Run prints frames until a write fails, or once when configured so.
func (t *Text) Run(d *Driver) error {
	for {
		if err := d.Frame(); err != nil {
			return err
		}
		if err := t.Render(d); err != nil {
			return err
		}
		if t.once {
			return nil
		}
	}
}

// Render writes the current raster.
func (t *Text) Render(d *Driver) error {
	raster := d.Raster()
	if raster == nil {
		return nil
	}
	settings := d.Settings

	w := bufio.NewWriter(t.out)
	if t.inPlace && t.drawn {
		fmt.Fprintf(w, "\033[%dA", raster.Height)
	}
	t.drawn = true

	var run strings.Builder
	runType := -1
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runType < 0 || settings.ColorMode == 0 {
			w.WriteString(run.String())
		} else {
			w.WriteString(t.style(runType).Render(run.String()))
		}
		run.Reset()
	}

	for y := 0; y < raster.Height; y++ {
		for x := 0; x < raster.Width; x++ {
			typ, count := raster.Dominant(x, y)
			if count == 0 {
				typ = -1
			}
			if typ != runType {
				flush()
				runType = typ
			}
			run.WriteRune(settings.Glyph(count))
		}
		flush()
		runType = -1
		w.WriteByte('\n')
	}
	return w.Flush()
}
