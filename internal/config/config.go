package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete camshell configuration
type Config struct {
	Shell   ShellConfig   `mapstructure:"shell"`
	Session SessionConfig `mapstructure:"session"`
	Capture CaptureConfig `mapstructure:"capture"`
	Logging LoggingConfig `mapstructure:"logging"`
	Paths   PathsConfig   `mapstructure:"paths"`
}

// ShellConfig controls how the gphoto2 shell subprocess is spawned
type ShellConfig struct {
	// Binary is the gphoto2 executable to spawn (default: "gphoto2")
	Binary string `mapstructure:"binary"`
	// Port is the camera port passed as --port (e.g. "usb:001,007").
	// Empty means gphoto2 picks the first detected camera.
	Port string `mapstructure:"port"`
	// ExtraArgs are additional arguments appended to the shell invocation
	ExtraArgs []string `mapstructure:"extra_args"`
	// ID is the prompt prefix token the shell prints before its path
	// (default: "gphoto2"). Readiness detection keys off this token.
	ID string `mapstructure:"id"`
	// Simulate substitutes a scripted transport for the real subprocess.
	// The value is a path to a YAML script of command -> response pairs.
	Simulate string `mapstructure:"simulate"`
}

// SessionConfig controls session polling behavior
type SessionConfig struct {
	// PollIntervalMs is how often the session polls shell output (default: 250)
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
	// ConnectTimeoutSec is how long to wait for the first idle prompt after
	// spawning the shell (default: 20)
	ConnectTimeoutSec int `mapstructure:"connect_timeout_sec"`
	// CommandTimeoutSec is how long CLI callers wait for the session to
	// drain back to idle after issuing an operation (default: 60)
	CommandTimeoutSec int `mapstructure:"command_timeout_sec"`
}

// CaptureConfig controls capture handling
type CaptureConfig struct {
	// Dir is the working directory captures are downloaded into
	// (default: current directory)
	Dir string `mapstructure:"dir"`
	// PreviewFilename is the fixed filename the shell writes previews to.
	// Any other returned filename is classified as a final image.
	PreviewFilename string `mapstructure:"preview_filename"`
	// Watch enables the fsnotify watcher over the capture directory
	Watch bool `mapstructure:"watch"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	// Level is the log level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Dir is where camshell.log is written; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// PathsConfig controls camshell state locations
type PathsConfig struct {
	// StateDir holds per-port lock files (default: ~/.local/state/camshell)
	StateDir string `mapstructure:"state_dir"`
}

// SetDefaults registers default values for all configuration keys with viper.
// Call this before reading the config file so defaults apply even when the
// file is absent.
func SetDefaults() {
	viper.SetDefault("shell.binary", "gphoto2")
	viper.SetDefault("shell.port", "")
	viper.SetDefault("shell.extra_args", []string{})
	viper.SetDefault("shell.id", "gphoto2")
	viper.SetDefault("shell.simulate", "")

	viper.SetDefault("session.poll_interval_ms", 250)
	viper.SetDefault("session.connect_timeout_sec", 20)
	viper.SetDefault("session.command_timeout_sec", 60)

	viper.SetDefault("capture.dir", ".")
	viper.SetDefault("capture.preview_filename", "capture_preview.jpg")
	viper.SetDefault("capture.watch", true)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.dir", "")

	viper.SetDefault("paths.state_dir", DefaultStateDir())
}

// Load unmarshals the current viper state into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PollInterval returns the poll interval as a time.Duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Session.PollIntervalMs) * time.Millisecond
}

// ConnectTimeout returns the connect timeout as a time.Duration.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.Session.ConnectTimeoutSec) * time.Second
}

// CommandTimeout returns the command timeout as a time.Duration.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.Session.CommandTimeoutSec) * time.Second
}

// SetupEnv configures viper to read CAMSHELL_* environment variables,
// mapping nested keys to underscore-separated segments
// (e.g. CAMSHELL_SHELL_PORT for shell.port).
func SetupEnv() {
	viper.SetEnvPrefix("CAMSHELL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// ConfigDir returns the directory where the camshell config file lives.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "camshell")
}

// DefaultStateDir returns the default directory for camshell state
// (port locks and similar).
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "camshell")
	}
	return filepath.Join(home, ".local", "state", "camshell")
}
