package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"opsboard/internal/app"
	"opsboard/internal/credential"
	"opsboard/internal/model"
	"opsboard/internal/prefs"
	"opsboard/internal/remote"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "opsboard:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Remote.BaseURL == "" {
		// First run: write a starter file so the user has something
		// to fill in instead of composing YAML from scratch.
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			if err := model.SaveConfig(configPath, cfg); err != nil {
				return err
			}
			return fmt.Errorf("wrote starter config to %s; set remote.base_url and remote.board_id", configPath)
		}
		return fmt.Errorf("remote.base_url is not set in %s", configPath)
	}
	if cfg.Remote.BoardID == "" {
		return fmt.Errorf("remote.board_id is not set in %s", configPath)
	}

	token, err := credential.APIToken()
	if err != nil {
		return fmt.Errorf("loading API token: %w", err)
	}

	dbPath := prefsPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating prefs directory: %w", err)
	}
	store, err := prefs.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening prefs store: %w", err)
	}
	defer store.Close()

	svc := remote.NewAdapter(
		cfg.Remote.BaseURL,
		token,
		cfg.Remote.BoardID,
		time.Duration(cfg.Remote.TimeoutSec)*time.Second,
	)

	// The terminal belongs to the TUI; stdlib log goes to a file when
	// debugging, nowhere otherwise.
	if os.Getenv("OPSBOARD_DEBUG") != "" {
		f, err := tea.LogToFile(filepath.Join(os.TempDir(), "opsboard.log"), "opsboard")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(app.New(svc, store, cfg), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// prefsPath returns the location of the local preferences database.
func prefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "opsboard.db")
	}
	return filepath.Join(home, ".config", "opsboard", "opsboard.db")
}
