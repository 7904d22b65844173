package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-looper/config"
	"go-looper/debug"
	"go-looper/looper"
	"go-looper/midi"
	"go-looper/theme"
	"go-looper/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (default ~/.config/go-looper/config.json)")
	debugLog := flag.Bool("debug", false, "write a debug log to ~/.config/go-looper/debug.log")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	if cfg.Debug || *debugLog {
		if err := debug.Enable(""); err != nil {
			return err
		}
		defer debug.Disable()
	}

	palette, err := theme.LoadOrDefault(cfg.Palette)
	if err != nil {
		debug.Error("theme", err)
	}
	th := theme.New(palette)

	clock := looper.NewClock()

	// Open the performance device; closed on every exit path below
	dev, err := midi.Open(cfg.InputPort, cfg.OutputPort, clock.Now)
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.Close(); err != nil {
			debug.Error("device", err)
		}
	}()

	engine := looper.NewEngine(dev.In, dev.Out, clock, looper.Options{
		TickRate:   cfg.TickRate,
		ReadBatch:  cfg.ReadBatch,
		Repeat:     cfg.RepeatLoop,
		Kit:        cfg.DrumKit,
		Drums:      cfg.DrumsEnabled,
		Instrument: uint8(cfg.Instrument),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- engine.Run(ctx) }()

	fmt.Println("go-looper")
	fmt.Printf("in: %s  out: %s\n", dev.In.Name(), dev.Out.Name())

	m := tui.NewModel(engine, engine.UpdateChan, th, tui.Ports{In: dev.In.Name(), Out: dev.Out.Name()})
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, uiErr := p.Run()

	cancel()
	if err := <-done; err != nil {
		debug.Error("engine", err)
	}
	if n := dev.In.Dropped(); n > 0 {
		debug.Log("input", "%d events dropped on a full buffer", n)
	}

	// remember the sound for next time
	s := engine.Status()
	cfg.Instrument = int(s.Instrument)
	cfg.DrumsEnabled = s.Drums
	if err := saveConfig(cfg, *configPath); err != nil {
		debug.Error("config", err)
	}

	return uiErr
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func saveConfig(cfg *config.Config, path string) error {
	if path == "" {
		return cfg.Save()
	}
	return cfg.SaveTo(path)
}
