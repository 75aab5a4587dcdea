package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/lixenwraith/duke-roguelike/audio"
	"github.com/lixenwraith/duke-roguelike/config"
	"github.com/lixenwraith/duke-roguelike/core"
	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/game"
	"github.com/lixenwraith/duke-roguelike/logger"
	"github.com/lixenwraith/duke-roguelike/terminal"
)

var (
	configFlag = flag.String("config", "", "Path to a YAML config file")
	seedFlag   = flag.Uint64("seed", 0, "Seed for goblin placement; 0 picks a random seed")
	muteFlag   = flag.Bool("mute", false, "Disable audio cues")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "duke-roguelike: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logFile, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdin and stdout must be a terminal")
	}

	screen, err := terminal.OpenScreen()
	if err != nil {
		return err
	}
	// Crash handler restores the terminal before printing the stack
	core.SetCrashReset(screen.Fini)
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if !terminal.Fits(screen, cfg.Console.Width, cfg.Console.Height) {
		logger.Log.WithField("width", cfg.Console.Width).
			WithField("height", cfg.Console.Height).
			Warn("terminal smaller than the map; edges will be clipped")
	}

	var opts []game.Option
	if *seedFlag != 0 {
		opts = append(opts, game.WithSeed(*seedFlag))
	}
	g := game.New(cfg, opts...)
	if err := g.Bootstrap(); err != nil {
		return err
	}
	defer func() {
		g.Stop()
		logger.Log.WithFields(g.Status().Snapshot()).Info("session ended")
	}()

	if cfg.Audio.Enabled && !*muteFlag {
		if stop := startAudio(g); stop != nil {
			defer stop()
		}
	}

	keyboard := terminal.NewKeyboard()
	core.Go(func() { keyboard.Poll(screen) })

	return loop(g, screen, keyboard)
}

// loop ticks the game at the configured frame rate until the player quits
// After game over the map keeps rendering so the final state stays visible
func loop(g *game.Game, screen tcell.Screen, keyboard *terminal.Keyboard) error {
	cfg := g.Config()
	renderer := terminal.NewRenderer(screen, cfg.Console.Width, cfg.Console.Height)

	draw := func() error {
		return renderer.Draw(g.World(), terminal.NewHUD(g.Status(), g.World(), g.Player()))
	}
	if err := draw(); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Console.FPS))
	defer ticker.Stop()

	over := false
	for {
		select {
		case <-keyboard.Quit():
			logger.Log.Info("quit")
			return nil

		case <-ticker.C:
			keys := keyboard.Frame()
			if !over {
				err := g.Tick(keys)
				if errors.Is(err, engine.ErrGameOver) {
					over = true
					logger.Log.WithField("ticks", g.Scheduler().Ticks()).Info("game over")
				}
			}
			if err := draw(); err != nil {
				logger.Log.WithError(err).Warn("render failed")
			}
		}
	}
}

// startAudio wires cue playback to the bus; returns nil when no device is available
func startAudio(g *game.Game) func() {
	spk := audio.NewSpeaker()
	if err := spk.Initialize(); err != nil {
		logger.Log.WithError(err).Warn("audio unavailable, continuing without sound")
		return nil
	}

	cues := audio.NewCuePlayer(spk, spk.Rate())
	if err := cues.Attach(g.Bus()); err != nil {
		logger.Log.WithError(err).Warn("audio cues not attached")
		spk.Cleanup()
		return nil
	}
	return spk.Cleanup
}

// setupLogging routes log output to the configured file, or discards it
// The terminal belongs to the renderer, so logs never go to stdout or stderr
func setupLogging(cfg config.LogConfig) (*os.File, error) {
	if cfg.File == "" {
		logger.Init(logger.Options{Level: cfg.Level, Format: cfg.Format, Output: io.Discard})
		return nil, nil
	}

	f, err := logger.OpenFile(cfg.File)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", cfg.File)
	}
	logger.Init(logger.Options{Level: cfg.Level, Format: cfg.Format, Output: f})
	return f, nil
}
