package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Library  LibraryConfig `mapstructure:"library"`
	Doctor   DoctorConfig  `mapstructure:"doctor"`
	LogLevel string        `mapstructure:"log_level"`
}

type LibraryConfig struct {
	// TapesDir holds full tape rips; TracksDir holds individual tracks.
	// Empty values resolve to <home>/music/screw-tapes and <home>/music/screw
	// at load time.
	TapesDir  string `mapstructure:"tapes_dir"`
	TracksDir string `mapstructure:"tracks_dir"`
}

type DoctorConfig struct {
	ProbeWAV bool `mapstructure:"probe_wav"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Library: LibraryConfig{
			TapesDir:  "",
			TracksDir: "",
		},
		Doctor: DoctorConfig{
			ProbeWAV: false,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("library-tapes-dir", defaults.Library.TapesDir, "Tape folder (default <home>/music/screw-tapes)")
	fs.String("library-tracks-dir", defaults.Library.TracksDir, "Track folder (default <home>/music/screw)")
	fs.Bool("doctor-probe-wav", defaults.Doctor.ProbeWAV, "Doctor also validates WAV headers")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("AUDIOTIDY")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("audiotidy")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := resolveFolders(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// resolveFolders fills empty folder settings with the conventional
// home-relative locations.
func resolveFolders(cfg *Config) error {
	if cfg.Library.TapesDir != "" && cfg.Library.TracksDir != "" {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	if cfg.Library.TapesDir == "" {
		cfg.Library.TapesDir = filepath.Join(home, "music", "screw-tapes")
	}
	if cfg.Library.TracksDir == "" {
		cfg.Library.TracksDir = filepath.Join(home, "music", "screw")
	}

	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("library.tapes_dir", c.Library.TapesDir)
	v.SetDefault("library.tracks_dir", c.Library.TracksDir)
	v.SetDefault("doctor.probe_wav", c.Doctor.ProbeWAV)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds each flag to its dotted key directly. Registering viper
// aliases instead would shadow config-file values with the unset flags'
// defaults, because the alias makes the flag name the canonical key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"library.tapes_dir":  "library-tapes-dir",
		"library.tracks_dir": "library-tracks-dir",
		"doctor.probe_wav":   "doctor-probe-wav",
		"log_level":          "log-level",
	}

	for key, name := range bindings {
		flag := fs.Lookup(name)
		if flag == nil {
			return fmt.Errorf("flag %q not registered", name)
		}

		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}

	return nil
}

// ParseLogLevel maps the configured level string onto a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}
