package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const AppName = "dailytodo"

const (
	RepositorySQLite   = "sqlite"
	RepositoryInMemory = "inmemory"
)

type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Repository RepositoryConfig `mapstructure:"repository"`
}

type DatabaseConfig struct {
	Path        string        `mapstructure:"path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
	SlowQuery   time.Duration `mapstructure:"slow_query"`
}

type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"`
}

type RepositoryConfig struct {
	Type string `mapstructure:"type"` // "sqlite" или "inmemory"
}

// Load собирает конфигурацию: флаги > переменные TODO_* > config.yml > значения по умолчанию.
// Файл .env в текущем каталоге подхватывается, если он есть.
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	flags.String("config", "", "path to config.yml")
	flags.String("db", "", "path to the SQLite database file")
	flags.Bool("dev", false, "development logging")
	flags.String("log-file", "", "log file, '-' means stderr")
	flags.String("repository", "", "storage type: sqlite or inmemory")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("cannot read .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("database.path", filepath.Join(DefaultDataDir(), "tasks.db"))
	v.SetDefault("database.busy_timeout", 5*time.Second)
	v.SetDefault("database.slow_query", 100*time.Millisecond)
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.file", filepath.Join(DefaultDataDir(), "todo.log"))
	v.SetDefault("repository.type", RepositorySQLite)

	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"database.path":       "db",
		"logging.development": "dev",
		"logging.file":        "log-file",
		"repository.type":     "repository",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	if err := readConfigFile(v, flags); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}

	if cfg.Logging.File == "-" {
		cfg.Logging.File = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	path, _ := flags.GetString("config")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("cannot open %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath(DefaultConfigDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("cannot parse config.yml: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case RepositorySQLite:
		if c.Database.Path == "" {
			return errors.New("database path is empty")
		}
	case RepositoryInMemory:
	default:
		return fmt.Errorf("unknown repository type %q", c.Repository.Type)
	}
	return nil
}

// DefaultDataDir использует XDG_DATA_HOME, иначе ~/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DefaultConfigDir использует XDG_CONFIG_HOME, иначе ~/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}
