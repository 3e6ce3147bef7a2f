// Package config resolves dmf settings from defaults, the config file, a .env
// file, DMF_* environment variables and bound command flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "DMF"
	appDirName = "dear-my-friend"
	configName = "config"
	configType = "toml"

	KeyConfigFile             = "config"
	KeyDataDir                = "data_dir"
	KeyStorageBackend         = "storage.backend"
	KeyStoragePath            = "storage.path"
	KeyCountdownDuration      = "countdown.duration"
	KeyCountdownTick          = "countdown.tick"
	KeyTutorialStepDuration   = "tutorial.step_duration"
	KeyTutorialOverlayDelay   = "tutorial.overlay_delay"
	KeyTutorialReturnDelay    = "tutorial.return_delay"
	KeyTutorialMentorDemo     = "tutorial.mentor_demo_delay"
	KeyLocale                 = "locale"
	KeyLogLevel               = "log.level"
	KeyLogFile                = "log.file"
	defaultStorageFileName    = "store.toml"
	defaultSQLiteFileName     = "store.db"
	defaultLogFileName        = "dmf.log"
	defaultCountdownDuration  = 10 * time.Second
	defaultCountdownTick      = 100 * time.Millisecond
	defaultStepDuration       = time.Second
	defaultOverlayDelay       = 500 * time.Millisecond
	defaultReturnDelay        = time.Second
	defaultMentorDemoDelay    = 500 * time.Millisecond
	defaultLogLevel           = "info"
	defaultStorageBackendName = BackendTOML
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Backend string

const (
	BackendTOML   Backend = "toml"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

func ParseBackend(raw string) (Backend, error) {
	switch backend := Backend(strings.ToLower(strings.TrimSpace(raw))); backend {
	case BackendTOML, BackendSQLite, BackendMemory:
		return backend, nil
	default:
		return "", fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, raw)
	}
}

type Config struct {
	DataDir   string
	Storage   StorageConfig
	Countdown CountdownConfig
	Tutorial  TutorialConfig
	Locale    domain.Locale
	Log       LogConfig
	// ConfigFile is the file that was read, empty when none existed.
	ConfigFile string
}

type StorageConfig struct {
	Backend Backend
	Path    string
}

type CountdownConfig struct {
	Duration time.Duration
	Tick     time.Duration
}

type TutorialConfig struct {
	StepDuration    time.Duration
	OverlayDelay    time.Duration
	ReturnDelay     time.Duration
	MentorDemoDelay time.Duration
}

type LogConfig struct {
	Level string
	File  string
}

// New returns a viper instance with every default registered and DMF_*
// environment variables bound. Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyStorageBackend, string(defaultStorageBackendName))
	v.SetDefault(KeyCountdownDuration, defaultCountdownDuration)
	v.SetDefault(KeyCountdownTick, defaultCountdownTick)
	v.SetDefault(KeyTutorialStepDuration, defaultStepDuration)
	v.SetDefault(KeyTutorialOverlayDelay, defaultOverlayDelay)
	v.SetDefault(KeyTutorialReturnDelay, defaultReturnDelay)
	v.SetDefault(KeyTutorialMentorDemo, defaultMentorDemoDelay)
	v.SetDefault(KeyLocale, string(domain.LocaleZhTW))
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	return v
}

// LoadDotEnv exports the variables of a .env file that are not already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads the config file and resolves the final settings.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = New()
	}

	dataDir, err := resolveDataDir(v.GetString(KeyDataDir))
	if err != nil {
		return Config{}, err
	}

	configFile, err := readConfigFile(v, dataDir)
	if err != nil {
		return Config{}, err
	}
	// The config file may relocate the data directory.
	if fromFile := v.GetString(KeyDataDir); fromFile != "" {
		if dataDir, err = resolveDataDir(fromFile); err != nil {
			return Config{}, err
		}
	}

	backend, err := ParseBackend(v.GetString(KeyStorageBackend))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DataDir: dataDir,
		Storage: StorageConfig{
			Backend: backend,
			Path:    v.GetString(KeyStoragePath),
		},
		Countdown: CountdownConfig{
			Duration: v.GetDuration(KeyCountdownDuration),
			Tick:     v.GetDuration(KeyCountdownTick),
		},
		Tutorial: TutorialConfig{
			StepDuration:    v.GetDuration(KeyTutorialStepDuration),
			OverlayDelay:    v.GetDuration(KeyTutorialOverlayDelay),
			ReturnDelay:     v.GetDuration(KeyTutorialReturnDelay),
			MentorDemoDelay: v.GetDuration(KeyTutorialMentorDemo),
		},
		Locale: domain.ParseLocale(v.GetString(KeyLocale)),
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
			File:  v.GetString(KeyLogFile),
		},
		ConfigFile: configFile,
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath(dataDir, backend)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(dataDir, defaultLogFileName)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	durations := map[string]time.Duration{
		KeyCountdownDuration:    c.Countdown.Duration,
		KeyCountdownTick:        c.Countdown.Tick,
		KeyTutorialStepDuration: c.Tutorial.StepDuration,
		KeyTutorialOverlayDelay: c.Tutorial.OverlayDelay,
		KeyTutorialReturnDelay:  c.Tutorial.ReturnDelay,
		KeyTutorialMentorDemo:   c.Tutorial.MentorDemoDelay,
	}
	for key, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, key, d)
		}
	}
	if c.Countdown.Tick > c.Countdown.Duration {
		return fmt.Errorf("%w: %s exceeds %s", ErrInvalidConfig, KeyCountdownTick, KeyCountdownDuration)
	}
	if c.Storage.Backend != BackendMemory && c.Storage.Path == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, KeyStoragePath)
	}
	return nil
}

func readConfigFile(v *viper.Viper, dataDir string) (string, error) {
	if explicit := v.GetString(KeyConfigFile); explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("read config file: %w", err)
		}
		return v.ConfigFileUsed(), nil
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

func resolveDataDir(raw string) (string, error) {
	if raw == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve config directory: %w", err)
		}
		return filepath.Join(base, appDirName), nil
	}
	if strings.HasPrefix(raw, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		raw = filepath.Join(home, strings.TrimPrefix(raw, "~"))
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("resolve data directory: %w", err)
	}
	return abs, nil
}

func defaultStoragePath(dataDir string, backend Backend) string {
	switch backend {
	case BackendSQLite:
		return filepath.Join(dataDir, defaultSQLiteFileName)
	case BackendMemory:
		return ""
	default:
		return filepath.Join(dataDir, defaultStorageFileName)
	}
}
