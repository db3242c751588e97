package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Theme is a base16 palette. Only the slots the UI actually draws with are
// named; the rest are kept so a standard base16 scheme file round-trips.
type Theme struct {
	Scheme string `yaml:"scheme"`
	Author string `yaml:"author"`
	Base00 string `yaml:"base00"` // background
	Base01 string `yaml:"base01"`
	Base02 string `yaml:"base02"`
	Base03 string `yaml:"base03"` // muted text
	Base04 string `yaml:"base04"`
	Base05 string `yaml:"base05"` // default foreground
	Base06 string `yaml:"base06"`
	Base07 string `yaml:"base07"`
	Base08 string `yaml:"base08"` // red
	Base09 string `yaml:"base09"` // peach
	Base0A string `yaml:"base0A"` // yellow
	Base0B string `yaml:"base0B"` // green
	Base0C string `yaml:"base0C"` // teal
	Base0D string `yaml:"base0D"` // blue
	Base0E string `yaml:"base0E"` // mauve
	Base0F string `yaml:"base0F"`
}

// DefaultTheme is Catppuccin Macchiato.
func DefaultTheme() Theme {
	return Theme{
		Scheme: "Catppuccin Macchiato",
		Author: "https://github.com/catppuccin/catppuccin",
		Base00: "#24273a",
		Base01: "#1e2030",
		Base02: "#363a4f",
		Base03: "#494d64",
		Base04: "#5b6078",
		Base05: "#cad3f5",
		Base06: "#f4dbd6",
		Base07: "#b7bdf8",
		Base08: "#ed8796",
		Base09: "#f5a97f",
		Base0A: "#eed49f",
		Base0B: "#a6da95",
		Base0C: "#8bd5ca",
		Base0D: "#8aadf4",
		Base0E: "#c6a0f6",
		Base0F: "#f0c6c6",
	}
}

// LoadTheme reads a base16 scheme from YAML. A missing file returns the
// default theme without error; a malformed file is an error so the user
// finds out their scheme did not take.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return theme, nil
		}
		return theme, fmt.Errorf("read theme file: %w", err)
	}

	if err := yaml.Unmarshal(raw, &theme); err != nil {
		return DefaultTheme(), fmt.Errorf("parse theme yaml: %w", err)
	}
	return theme, nil
}

// DefaultThemePath returns ~/.config/pomo/theme.yaml
func DefaultThemePath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(cfg, "pomo", "theme.yaml"), nil
}
