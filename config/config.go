package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvironmentTest = "test"
	EnvTestDBPath   = "TEST_DB_PATH"
)

type Config struct {
	Environment string   `mapstructure:"environment"`
	Log         Logger   `mapstructure:"logger"`
	DB          Database `mapstructure:"database"`
	API         API      `mapstructure:"api"`
	Cache       Cache    `mapstructure:"cache"`
	Job         Job      `mapstructure:"job"`
	Client      Client   `mapstructure:"client"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Path        string        `mapstructure:"path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
	LogLevel    string        `mapstructure:"log_level"`
}

type API struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORS            CORS          `mapstructure:"cors"`
	RateLimit       RateLimit     `mapstructure:"rate_limit"`
}

type CORS struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type RateLimit struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// Job controls the simulated long running job used by the progress channel
// and the `job sample` command.
type Job struct {
	Steps        int           `mapstructure:"steps"`
	StepInterval time.Duration `mapstructure:"step_interval"`
}

type Client struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func (c *Config) IsTest() bool {
	return c.Environment == EnvironmentTest
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("database.path", "data/database.sqlite")
	v.SetDefault("database.busy_timeout", 5*time.Second)
	v.SetDefault("database.log_level", "Warn")
	v.SetDefault("api.port", 8000)
	v.SetDefault("api.shutdown_timeout", 10*time.Second)
	v.SetDefault("api.cors.allow_origins", []string{
		"file://",
		"null",
		"http://localhost:8000",
		"http://127.0.0.1:8000",
		"*",
	})
	v.SetDefault("api.rate_limit.rate", 10)
	v.SetDefault("api.rate_limit.burst", 30)
	v.SetDefault("cache.default_expiration", 30*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
	v.SetDefault("job.steps", 5)
	v.SetDefault("job.step_interval", time.Second)
	v.SetDefault("client.base_url", "http://127.0.0.1:8000")
	v.SetDefault("client.timeout", 10*time.Second)
}

// Load reads config.yaml from the given directories (the working directory
// when none are given) and applies environment overrides on top of it.
func Load(paths ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// TEST_DB_PATH wins over the config file and DATABASE_PATH so test runs
	// never touch the real file.
	if p := os.Getenv(EnvTestDBPath); p != "" {
		cfg.DB.Path = p
	}

	return &cfg, nil
}
