package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/olivier-w/tapburst/internal/config"
	"github.com/olivier-w/tapburst/internal/reaction"
	"github.com/olivier-w/tapburst/internal/sound"
	"github.com/olivier-w/tapburst/internal/ui"
)

func main() {
	stderr := log.NewWithOptions(os.Stderr, log.Options{Prefix: "tapburst"})

	settings, err := loadSettings(os.Args[1:])
	if err != nil {
		stderr.Fatal("loading settings", "err", err)
	}

	logger, closeLog, err := newLogger(config.GetEnv(config.EnvLog, ""), config.GetEnv(config.EnvLevel, "info"))
	if err != nil {
		stderr.Fatal("opening log", "err", err)
	}
	defer closeLog()

	clock := reaction.NewManualClock(time.Now())
	manager, err := reaction.NewManager(settings.Tuning(),
		reaction.WithClock(clock),
		reaction.WithLogger(logger.WithPrefix("reactions")),
	)
	if err != nil {
		stderr.Fatal("creating reactions", "err", err)
	}

	snd, err := sound.New(sound.Options{
		Enabled:   settings.Sound.Enabled,
		Volume:    settings.Sound.Volume,
		PopFile:   settings.Sound.PopFile,
		BurstFile: settings.Sound.BurstFile,
	}, logger.WithPrefix("sound"))
	if err != nil {
		stderr.Fatal("loading sounds", "err", err)
	}
	defer snd.Close()

	source := settings.Path
	if source == "" {
		source = "defaults"
	}
	logger.Info("starting", "settings", source, "reactions", len(settings.Emojis), "max_active", settings.Animation.MaxActive)

	model := ui.New(settings, manager, clock, snd, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("stopped", "total", manager.TotalSpawned())
}

// loadSettings reads the settings file named on the command line, or
// searches the usual locations when none is given.
func loadSettings(args []string) (config.Settings, error) {
	if len(args) > 0 {
		return config.Load(args[0])
	}
	return config.Find()
}

// newLogger returns the session logger. The TUI owns the terminal, so logs
// go to path, or nowhere when path is empty.
func newLogger(path, level string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.EnvLevel, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.StampMilli,
		Level:           lvl,
	})
	return logger, func() { f.Close() }, nil
}
