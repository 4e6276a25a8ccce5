package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. MELITE_LOG_LEVEL
const EnvPrefix = "MELITE"

// Config is the resolved application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
	Telnet   TelnetConfig   `mapstructure:"telnet"`
	Chart    ChartConfig    `mapstructure:"chart"`
	UI       UIConfig       `mapstructure:"ui"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type GameConfig struct {
	Seed               uint32 `mapstructure:"seed"`
	NativeRand         bool   `mapstructure:"native_rand"`
	PoliticallyCorrect bool   `mapstructure:"politically_correct"`
	Commander          string `mapstructure:"commander"`
}

type TelnetConfig struct {
	Address     string        `mapstructure:"address"`
	MaxSessions int           `mapstructure:"max_sessions"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// ChartConfig sizes the rendered chart. Radius is in tenths of a light year.
type ChartConfig struct {
	Radius uint `mapstructure:"radius"`
	Width  int  `mapstructure:"width"`
	Height int  `mapstructure:"height"`
}

// UIConfig styles the terminal UI
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"log-file":            "log.file",
	"log-level":           "log.level",
	"db":                  "database.path",
	"seed":                "game.seed",
	"native-rand":         "game.native_rand",
	"politically-correct": "game.politically_correct",
	"commander":           "game.commander",
	"listen":              "telnet.address",
	"max-sessions":        "telnet.max_sessions",
	"idle-timeout":        "telnet.idle_timeout",
	"chart-radius":        "chart.radius",
	"chart-width":         "chart.width",
	"chart-height":        "chart.height",
	"theme":               "ui.theme",
}

func setDefaults() {
	viper.SetDefault("log.file", "melite.log")
	viper.SetDefault("log.level", "info")

	viper.SetDefault("database.path", "melite.db")

	viper.SetDefault("game.seed", 12345)
	viper.SetDefault("game.native_rand", true)
	viper.SetDefault("game.politically_correct", false)
	viper.SetDefault("game.commander", "Jameson")

	viper.SetDefault("telnet.address", "127.0.0.1:2323")
	viper.SetDefault("telnet.max_sessions", 16)
	viper.SetDefault("telnet.idle_timeout", "15m")

	viper.SetDefault("chart.radius", 200)
	viper.SetDefault("chart.width", 640)
	viper.SetDefault("chart.height", 480)

	viper.SetDefault("ui.theme", "telix")
}

// Flags returns the command-line flags understood by Load. Unset flags do not
// override the config file or environment.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("melite", pflag.ContinueOnError)
	fs.String("config-dir", ".", "directory containing melite.yaml")
	fs.String("log-file", "", "log file path")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("db", "", "save game database path")
	fs.Uint32("seed", 0, "random seed")
	fs.Bool("native-rand", false, "use the native random generator")
	fs.Bool("politically-correct", false, "use politically correct commodity names")
	fs.String("commander", "", "commander name used for saves")
	fs.String("listen", "", "telnet listen address")
	fs.Int("max-sessions", 0, "maximum concurrent telnet sessions")
	fs.Duration("idle-timeout", 0, "disconnect idle telnet sessions after this long")
	fs.Uint("chart-radius", 0, "chart radius in tenths of a light year")
	fs.Int("chart-width", 0, "chart width in pixels")
	fs.Int("chart-height", 0, "chart height in pixels")
	fs.String("theme", "", "terminal UI theme (telix, mono)")
	return fs
}

// Load sets defaults, reads melite.yaml from configDir if present, applies
// MELITE_ environment overrides and binds flags. flags may be nil.
func Load(configDir string, flags *pflag.FlagSet) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	viper.SetConfigName("melite")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Get decodes the loaded settings
func Get() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	return c, nil
}
