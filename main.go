package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/olivierh59500/particle-life-term/config"
	"github.com/olivierh59500/particle-life-term/sim"
	"github.com/olivierh59500/particle-life-term/ui"
	"github.com/olivierh59500/particle-life-term/window"
)

func main() {
	conf, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if logFile := setupLogging(conf.Run.Debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(conf); err != nil {
		log.Printf("fatal: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(conf *config.Config) (err error) {
	// the terminal frontend restores the screen itself; report panics after that
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("particle-life crashed: %v", r)
		}
	}()

	pos, mat, err := conf.Modes()
	if err != nil {
		return err
	}
	seed := conf.Simulation.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("start: n=%d m=%d rmax=%v dt=%v seed=%d position=%s matrix=%s frontend=%s",
		conf.Simulation.N, conf.Simulation.M, conf.Simulation.Radius, conf.Simulation.DT,
		seed, pos, mat, conf.Run.Frontend)

	s, err := sim.New(conf.Sim(), rand.New(rand.NewSource(seed)), pos, mat)
	if err != nil {
		return err
	}

	settings := ui.NewSettings(conf)
	d := ui.NewDriver(s, settings)
	if conf.Run.Frontend == config.FrontendTerminal {
		term, err := ui.NewTerminal(nil)
		if err != nil {
			return err
		}
		if err := term.Open(d); err != nil {
			return err
		}
		if err := d.Warmup(conf.Run.SkipFrames); err != nil {
			term.Close()
			return err
		}
		return term.Run(d)
	}

	if settings.Zoom == 0 {
		settings.FitZoom()
	}
	if err := d.Warmup(conf.Run.SkipFrames); err != nil {
		return err
	}

	switch conf.Run.Frontend {
	case config.FrontendText:
		return ui.NewText(os.Stdout, false, conf.Run.Once).Run(d)
	case config.FrontendInPlace:
		return ui.NewText(os.Stdout, true, conf.Run.Once).Run(d)
	case config.FrontendWindow:
		return window.Run(d)
	}
	return fmt.Errorf("unknown frontend %q", conf.Run.Frontend)
}
