package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"yaw/level"
)

// EnvPrefix is prepended to every environment override, e.g. YAW_RENDER_FOV.
const EnvPrefix = "YAW"

type Screen struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type Game struct {
	Map string `mapstructure:"map"`
	// TPS caps the number of simulation ticks (and redraws) per second
	TPS int `mapstructure:"tps"`
}

type Render struct {
	FOV     float64 `mapstructure:"fov"`
	DOF     int     `mapstructure:"dof"`
	Workers int     `mapstructure:"workers"`
	Ceiling string  `mapstructure:"ceiling"`
	Floor   string  `mapstructure:"floor"`
}

type Player struct {
	Speed    float64 `mapstructure:"speed"`
	TurnRate float64 `mapstructure:"turn_rate"`
	Health   int     `mapstructure:"health"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Screen Screen `mapstructure:"screen"`
	Game   Game   `mapstructure:"game"`
	Render Render `mapstructure:"render"`
	Player Player `mapstructure:"player"`
	Log    Log    `mapstructure:"log"`

	ceiling color.RGBA
	floor   color.RGBA
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("screen.width", 640)
	v.SetDefault("screen.height", 480)
	v.SetDefault("screen.title", "YAW")

	v.SetDefault("game.map", "map/map.yaw")
	v.SetDefault("game.tps", 30)

	v.SetDefault("render.fov", 60.0)
	v.SetDefault("render.dof", 24)
	v.SetDefault("render.workers", 1)
	v.SetDefault("render.ceiling", "#ffffff")
	v.SetDefault("render.floor", "#ffffff")

	v.SetDefault("player.speed", 2.0)
	v.SetDefault("player.turn_rate", 0.1)
	v.SetDefault("player.health", 255)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"map":       "game.map",
	"workers":   "render.workers",
	"log-level": "log.level",
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("map", "", "map file to play")
	fs.Int("workers", 1, "goroutines used to cast rays")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
}

// Load reads the configuration. An empty path searches the working directory
// for a "yaw" config file of any type viper understands; a missing file is
// not an error and leaves the defaults (plus environment overrides) in place.
// Flags registered with RegisterFlags override everything when set; fs may
// be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("yaw")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("invalid screen size: %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 360 {
		return fmt.Errorf("invalid fov: %v", c.Render.FOV)
	}
	if c.Render.DOF <= 0 {
		return fmt.Errorf("invalid dof: %d", c.Render.DOF)
	}
	if c.Render.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", c.Render.Workers)
	}
	if c.Game.TPS <= 0 {
		return fmt.Errorf("invalid tps: %d", c.Game.TPS)
	}
	if c.Game.Map == "" {
		return errors.New("map path is required")
	}
	if c.Player.Health < 0 || c.Player.Health > 255 {
		return fmt.Errorf("invalid player health: %d", c.Player.Health)
	}

	var err error
	if c.ceiling, err = level.ParseHexColor(c.Render.Ceiling); err != nil {
		return fmt.Errorf("render.ceiling: %w", err)
	}
	if c.floor, err = level.ParseHexColor(c.Render.Floor); err != nil {
		return fmt.Errorf("render.floor: %w", err)
	}

	return nil
}

// CeilingColor returns the parsed render.ceiling color.
func (c *Config) CeilingColor() color.RGBA { return c.ceiling }

// FloorColor returns the parsed render.floor color.
func (c *Config) FloorColor() color.RGBA { return c.floor }
