package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/duke-roguelike/parameter"
)

// Config is the game configuration file
type Config struct {
	Console ConsoleConfig `yaml:"console"`
	Player  PlayerConfig  `yaml:"player"`
	Goblins GoblinConfig  `yaml:"goblins"`
	Waves   WaveConfig    `yaml:"waves"`
	Audio   AudioConfig   `yaml:"audio"`
	Log     LogConfig     `yaml:"log"`
}

// ConsoleConfig sizes the map; the outermost ring of cells is border
type ConsoleConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type PlayerConfig struct {
	Health       int `yaml:"health"`
	AttackDamage int `yaml:"attack_damage"`
}

type GoblinConfig struct {
	Count        int `yaml:"count"`
	MinHealth    int `yaml:"min_health"`
	MaxHealth    int `yaml:"max_health"` // Exclusive
	ViewRange    int `yaml:"view_range"`
	AttackDamage int `yaml:"attack_damage"`
}

type WaveConfig struct {
	Respawn bool `yaml:"respawn"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"` // Empty discards log output
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Console: ConsoleConfig{
			Width:  parameter.ConsoleWidth,
			Height: parameter.ConsoleHeight,
			FPS:    parameter.MaxFPS,
		},
		Player: PlayerConfig{
			Health:       parameter.PlayerHealth,
			AttackDamage: parameter.PlayerAttackDamage,
		},
		Goblins: GoblinConfig{
			Count:        parameter.GoblinCount,
			MinHealth:    parameter.GoblinMinHealth,
			MaxHealth:    parameter.GoblinMaxHealth,
			ViewRange:    parameter.GoblinViewRange,
			AttackDamage: parameter.GoblinAttackDamage,
		},
		Waves: WaveConfig{Respawn: true},
		Audio: AudioConfig{Enabled: true},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads, defaults and validates a YAML config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return Parse(data, path)
}

// Parse decodes YAML over the defaults; keys absent from data keep their default
// source names the origin in errors
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config YAML from %s", source)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, errors.Wrapf(err, "invalid config in %s", source)
	}
	return cfg, nil
}

// applyDefaults restores fields explicitly set to a zero value that has no meaning
func applyDefaults(c *Config) {
	if c.Console.FPS == 0 {
		c.Console.FPS = parameter.MaxFPS
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func validate(c *Config) error {
	if c.Console.Width < 3 || c.Console.Height < 3 {
		return errors.Errorf("console must be at least 3x3, got %dx%d", c.Console.Width, c.Console.Height)
	}
	if c.Console.FPS < 0 {
		return errors.Errorf("console fps cannot be negative, got %d", c.Console.FPS)
	}
	if c.Player.Health <= 0 {
		return errors.Errorf("player health must be positive, got %d", c.Player.Health)
	}
	if c.Player.AttackDamage < 0 || c.Goblins.AttackDamage < 0 {
		return errors.New("attack damage cannot be negative")
	}
	if c.Goblins.Count < 0 {
		return errors.Errorf("goblin count cannot be negative, got %d", c.Goblins.Count)
	}
	if c.Goblins.MinHealth <= 0 {
		return errors.Errorf("goblin min_health must be positive, got %d", c.Goblins.MinHealth)
	}
	if c.Goblins.MinHealth >= c.Goblins.MaxHealth {
		return errors.Errorf("goblin min_health %d must be below max_health %d", c.Goblins.MinHealth, c.Goblins.MaxHealth)
	}
	if c.Goblins.ViewRange < 0 {
		return errors.Errorf("goblin view_range cannot be negative, got %d", c.Goblins.ViewRange)
	}
	return nil
}
