package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// settings are the options for evaluating and printing expressions. They
// come from the config file, with flags taking precedence when given.
type settings struct {
	Format   string `toml:"format"`
	Prec     int    `toml:"prec"`
	Echo     bool   `toml:"echo"`
	RPN      bool   `toml:"rpn"`
	RightPow bool   `toml:"right_pow"`
	ParenSub bool   `toml:"paren_sub"`
	Color    string `toml:"color"`
	Jobs     int    `toml:"jobs"`
}

func defaultSettings() settings {
	return settings{Format: "%g", Color: "auto"}
}

// defaultConfigPath returns the config file used when --config is not given,
// or the empty string if there is no user config directory.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rpncalc", "config.toml")
}

// loadSettings reads the config file and applies any flags set on cmd. A
// missing default config file is not an error.
func loadSettings(cmd *cobra.Command) (settings, error) {
	s := defaultSettings()
	fl := cmd.Flags()
	path, _ := fl.GetString("config")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path != "" {
		err := s.readFile(path)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return s, err
		}
	}

	var err error
	set := func(name string, get func() error) {
		if err == nil && fl.Lookup(name) != nil && fl.Changed(name) {
			err = get()
		}
	}
	set("fmt", func() (err error) { s.Format, err = fl.GetString("fmt"); return })
	set("prec", func() (err error) { s.Prec, err = fl.GetInt("prec"); return })
	set("echo", func() (err error) { s.Echo, err = fl.GetBool("echo"); return })
	set("rpn", func() (err error) { s.RPN, err = fl.GetBool("rpn"); return })
	set("right-pow", func() (err error) { s.RightPow, err = fl.GetBool("right-pow"); return })
	set("paren-sub", func() (err error) { s.ParenSub, err = fl.GetBool("paren-sub"); return })
	set("color", func() (err error) { s.Color, err = fl.GetString("color"); return })
	set("jobs", func() (err error) { s.Jobs, err = fl.GetInt("jobs"); return })
	if err != nil {
		return s, fmt.Errorf("failed to get flags: %w", err)
	}
	return s, s.validate()
}

func (s *settings) readFile(path string) error {
	meta, err := toml.DecodeFile(path, s)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("%s: unknown key %s", path, keys[0])
	}
	return nil
}

func (s *settings) validate() error {
	switch s.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, on, or off)", s.Color)
	}
	if !strings.Contains(s.Format, "%") {
		return fmt.Errorf("result format %q has no verb", s.Format)
	}
	if s.Jobs < 0 {
		return fmt.Errorf("jobs (%d) must not be negative", s.Jobs)
	}
	return nil
}
