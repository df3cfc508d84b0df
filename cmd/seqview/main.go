package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"seqview/internal/config"
	"seqview/internal/logging"
	"seqview/internal/tui"
	"seqview/internal/version"
)

func main() {
	flags, err := config.ParseFlags("seqview", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	// --- EARLY EXIT ---
	if flags.Version {
		fmt.Println(version.String())
		os.Exit(0)
	}

	cleanup, err := logging.Setup(flags.LogFile)
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()
	if !logging.SetLevel(flags.LogLevel) {
		logging.Warnf("unknown log level %q, keeping %s", flags.LogLevel, logging.GetLevel())
	}
	logging.Infof("seqview %s started", version.Version)

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "Usage: seqview [--debug debug.log] [--config board.json | <file.csv|file.json|file.fasta>]")
		os.Exit(1)
	}

	m, err := tui.New(cfg)
	if err != nil {
		log.Fatalf("failed to build board: %v", err)
	}
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Printf("Tea program error: %v", err)
		fmt.Println("Error:", err)
	}
}

// loadConfig reads --config, or builds a session around a single data file.
func loadConfig(f config.Flags) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	switch {
	case f.ConfigPath != "":
		cfg, err = config.Load(f.ConfigPath)
	case len(f.Args) > 0:
		cfg, err = config.FromFile(f.Args[0])
	default:
		return config.Config{}, errors.New("no configuration or data file given")
	}
	if err != nil {
		return config.Config{}, err
	}
	cfg.ApplyFlags(f)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
