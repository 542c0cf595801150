package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config is the process configuration. Every key can be set in config.yaml or in
// the environment, with dots replaced by underscores (db.host => DB_HOST).
type Config struct {
	HTTP HTTPConfig `mapstructure:"http"`
	DB   DBConfig   `mapstructure:"db"`
	AMQP AMQPConfig `mapstructure:"amqp"`
	Jobs JobsConfig `mapstructure:"jobs"`
	Log  LogConfig  `mapstructure:"log"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SslMode  string `mapstructure:"sslmode"`
}

// AMQPConfig selects the change-event publisher. An empty URL logs events instead
// of publishing them.
type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type JobsConfig struct {
	ReconcileSchedule string        `mapstructure:"reconcile_schedule"`
	ReconcileTimeout  time.Duration `mapstructure:"reconcile_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "backoffice")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "backoffice.events")
	v.SetDefault("jobs.reconcile_schedule", "*/30 * * * * *")
	v.SetDefault("jobs.reconcile_timeout", 20*time.Second)
	v.SetDefault("log.level", "info")
}

// LoadConfig reads .env (if present) into the environment, then resolves the
// configuration from defaults, the optional config file and the environment.
// An empty configFile looks for config.yaml in the working directory.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	_ = godotenv.Load(".env")

	SetDefaults(v)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid key at once.
func (c Config) Validate() error {
	var problems []error

	if _, err := strconv.ParseUint(c.HTTP.Port, 10, 16); err != nil {
		problems = append(problems, fmt.Errorf("http.port: %q is not a port", c.HTTP.Port))
	}
	if c.DB.Host == "" {
		problems = append(problems, errors.New("db.host is required"))
	}
	if _, err := strconv.ParseUint(c.DB.Port, 10, 16); err != nil {
		problems = append(problems, fmt.Errorf("db.port: %q is not a port", c.DB.Port))
	}
	if c.DB.User == "" {
		problems = append(problems, errors.New("db.user is required"))
	}
	if c.DB.Name == "" {
		problems = append(problems, errors.New("db.name is required"))
	}
	if c.AMQP.URL != "" && c.AMQP.Exchange == "" {
		problems = append(problems, errors.New("amqp.exchange is required when amqp.url is set"))
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Jobs.ReconcileSchedule); err != nil {
		problems = append(problems, fmt.Errorf("jobs.reconcile_schedule: %w", err))
	}
	if c.Jobs.ReconcileTimeout <= 0 {
		problems = append(problems, errors.New("jobs.reconcile_timeout must be positive"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		problems = append(problems, err)
	}

	return errors.Join(problems...)
}

// DSN is the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

// SlogLevel parses the configured level: debug, info, warn or error.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
