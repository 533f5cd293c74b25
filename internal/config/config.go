package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-clock/internal/logger"

	// Embedded zone database so timezone validation works without system tzdata.
	_ "time/tzdata"
)

// Config holds the settings shared by the daemon and the CLI commands.
type Config struct {
	// Timezone is the IANA zone the clock shows and alarms are matched in.
	Timezone string `yaml:"timezone"`
	// StateFile is where pending alarms are persisted.
	StateFile string `yaml:"state_file"`
	// Storage selects the persistence backend: "json" or "sqlite".
	Storage string `yaml:"storage"`
	// SoundFile is the audio file played when an alarm fires.
	SoundFile string `yaml:"sound_file"`
	// Player is an optional external player command, e.g. "mpv --loop=inf".
	Player string `yaml:"player"`
	// PollInterval is how often the daemon compares the time against alarms.
	PollInterval time.Duration `yaml:"poll_interval"`
	// ServerAddress is the gRPC control address. Empty disables the gRPC listener.
	ServerAddress string `yaml:"server_addr"`
	// HTTPAddress is the HTTP API address. Empty disables the HTTP listener.
	HTTPAddress string `yaml:"http_addr"`
	// CORSOrigins lists origins allowed to call the HTTP API from a browser.
	CORSOrigins []string `yaml:"cors_origins"`
	// Timeout is the duration for RPC calls made by the CLI.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the minimum level for log output.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "alarm-clock-settings.yaml"

	// DefaultEnvFilename is the optional dotenv file with overrides.
	DefaultEnvFilename = ".env"

	// DefaultStateFilename is the default filename for the alarm list.
	DefaultStateFilename = "alarms.json"

	// DefaultSoundFilename is the default alarm sound.
	DefaultSoundFilename = "alarm.wav"

	// DefaultTimezone is the zone used when none is configured.
	DefaultTimezone = "America/Bogota"

	// DefaultServerAddress is the default gRPC control address.
	DefaultServerAddress = "127.0.0.1:50061"

	// DefaultPollInterval is the default interval between poll ticks.
	DefaultPollInterval = time.Second

	// DefaultTimeout is the default duration for RPC calls.
	DefaultTimeout = 5 * time.Second

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600

	// StorageJSON keeps alarms in a JSON array file.
	StorageJSON = "json"
	// StorageSQLite keeps alarms in an SQLite database file.
	StorageSQLite = "sqlite"
)

// Environment variables that override file settings.
const (
	EnvTimezone      = "ALARM_CLOCK_TIMEZONE"
	EnvStateFile     = "ALARM_CLOCK_STATE_FILE"
	EnvStorage       = "ALARM_CLOCK_STORAGE"
	EnvSoundFile     = "ALARM_CLOCK_SOUND_FILE"
	EnvPlayer        = "ALARM_CLOCK_PLAYER"
	EnvServerAddress = "ALARM_CLOCK_SERVER_ADDR"
	EnvHTTPAddress   = "ALARM_CLOCK_HTTP_ADDR"
	EnvLogLevel      = "ALARM_CLOCK_LOG_LEVEL"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownStorage is returned for unsupported storage backends.
	errUnknownStorage = errors.New("unknown storage backend")
	// errUnknownLogLevel is returned for unsupported log level names.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns settings with every field at its default value.
func Default() *Config {
	return &Config{
		Timezone:      DefaultTimezone,
		StateFile:     DefaultStateFilename,
		Storage:       StorageJSON,
		SoundFile:     DefaultSoundFilename,
		PollInterval:  DefaultPollInterval,
		ServerAddress: DefaultServerAddress,
		Timeout:       DefaultTimeout,
		LogLevel:      "info",
	}
}

// Load reads configuration from the provided path, applies dotenv and
// environment overrides and validates the result.
// A missing settings file is not an error: defaults are used instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Keep defaults.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	env, err := readEnv(filepath.Join(filepath.Dir(path), DefaultEnvFilename))
	if err != nil {
		return nil, err
	}

	applyEnv(cfg, env)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for empty fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.Timezone == "" {
		settings.Timezone = DefaultTimezone
	}

	if _, err := time.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	if settings.StateFile == "" {
		settings.StateFile = DefaultStateFilename
	}

	if settings.SoundFile == "" {
		settings.SoundFile = DefaultSoundFilename
	}

	settings.Storage = strings.ToLower(strings.TrimSpace(settings.Storage))
	switch settings.Storage {
	case "":
		settings.Storage = StorageJSON
	case StorageJSON, StorageSQLite:
	default:
		return fmt.Errorf("%w: %q", errUnknownStorage, settings.Storage)
	}

	if settings.PollInterval <= 0 {
		settings.PollInterval = DefaultPollInterval
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.LogLevel != "" {
		if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
			return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
		}
	}

	for _, address := range []string{settings.ServerAddress, settings.HTTPAddress} {
		if address == "" {
			continue
		}

		if _, err := net.ResolveTCPAddr("tcp", address); err != nil {
			return fmt.Errorf("invalid listen address %q: %w", address, err)
		}
	}

	return nil
}

// readEnv merges the dotenv file (if any) with the process environment.
// Process variables win over the file.
func readEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)

	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		env = make(map[string]string)
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	for _, key := range []string{
		EnvTimezone, EnvStateFile, EnvStorage, EnvSoundFile,
		EnvPlayer, EnvServerAddress, EnvHTTPAddress, EnvLogLevel,
	} {
		if value, ok := os.LookupEnv(key); ok {
			env[key] = value
		}
	}

	return env, nil
}

// applyEnv copies known override variables into cfg.
func applyEnv(cfg *Config, env map[string]string) {
	overrides := map[string]*string{
		EnvTimezone:      &cfg.Timezone,
		EnvStateFile:     &cfg.StateFile,
		EnvStorage:       &cfg.Storage,
		EnvSoundFile:     &cfg.SoundFile,
		EnvPlayer:        &cfg.Player,
		EnvServerAddress: &cfg.ServerAddress,
		EnvHTTPAddress:   &cfg.HTTPAddress,
		EnvLogLevel:      &cfg.LogLevel,
	}

	for key, field := range overrides {
		if value, ok := env[key]; ok {
			*field = value
		}
	}
}
