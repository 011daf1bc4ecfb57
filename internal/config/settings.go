package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the host options read from a YAML file. Scene state is never stored here.
type Settings struct {
	TickRate        int         `yaml:"tick_rate"`          // Simulation steps per second
	MaxStepsPerTick int         `yaml:"max_steps_per_tick"` // Cap on catch-up steps after a stall
	Layout          string      `yaml:"layout"`             // Built-in layout to start with
	World           WorldConfig `yaml:"world"`
	SSH             SSHConfig   `yaml:"ssh"`
	LogLevel        string      `yaml:"log_level"`
}

// WorldConfig sets the world rectangle shown to viewers.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SSHConfig configures the SSH server binary.
type SSHConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// Settings validation errors.
var (
	ErrInvalidTickRate = errors.New("tick_rate must be positive")
	ErrInvalidMaxSteps = errors.New("max_steps_per_tick must be positive")
	ErrInvalidWorld    = errors.New("world size must be positive")
)

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		TickRate:        60,
		MaxStepsPerTick: 5,
		Layout:          "default",
		World:           WorldConfig{Width: 800, Height: 600},
		SSH: SSHConfig{
			Host:    "::",
			Port:    "2222",
			HostKey: "/app/keys/host_key",
		},
		LogLevel: "info",
	}
}

// Load reads settings from path over the defaults. An empty path returns the defaults.
// Unknown keys are rejected.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("decode settings %s: %w", path, err)
	}
	return s, nil
}

// Validate checks the settings. validLayout reports whether a layout name exists.
func (s Settings) Validate(validLayout func(string) bool) error {
	if s.TickRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTickRate, s.TickRate)
	}
	if s.MaxStepsPerTick <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxSteps, s.MaxStepsPerTick)
	}
	if !(s.World.Width > 0) || !(s.World.Height > 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidWorld, s.World.Width, s.World.Height)
	}
	if validLayout != nil && !validLayout(s.Layout) {
		return fmt.Errorf("unknown layout %q", s.Layout)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables.
func (s *Settings) ApplyEnv() {
	s.Layout = GetEnv("NEWTON_LAYOUT", s.Layout)
	s.LogLevel = GetEnv("NEWTON_LOG_LEVEL", s.LogLevel)
	s.SSH.Host = GetEnv("SSH_HOST", s.SSH.Host)
	s.SSH.Port = GetEnv("SSH_PORT", s.SSH.Port)
	s.SSH.HostKey = GetEnv("SSH_HOST_KEY", s.SSH.HostKey)
}
