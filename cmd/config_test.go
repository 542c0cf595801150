package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"backoffice/cmd"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() cmd.Config {
	return cmd.Config{
		HTTP: cmd.HTTPConfig{Port: "8080"},
		DB:   cmd.DBConfig{Host: "db", Port: "5432", User: "app", Name: "backoffice", SslMode: "disable"},
		AMQP: cmd.AMQPConfig{Exchange: "backoffice.events"},
		Jobs: cmd.JobsConfig{ReconcileSchedule: "*/30 * * * * *", ReconcileTimeout: time.Second},
		Log:  cmd.LogConfig{Level: "info"},
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := cmd.LoadConfig(viper.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "*/30 * * * * *", cfg.Jobs.ReconcileSchedule)
	assert.Equal(t, 20*time.Second, cfg.Jobs.ReconcileTimeout)
	assert.Empty(t, cfg.AMQP.URL)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	file := filepath.Join(dir, "backoffice.yaml")
	require.NoError(t, os.WriteFile(file, []byte("db:\n  host: file-host\n  name: file-db\nlog:\n  level: debug\n"), 0o600))
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("JOBS_RECONCILE_TIMEOUT", "45s")

	cfg, err := cmd.LoadConfig(viper.New(), file)

	require.NoError(t, err)
	assert.Equal(t, "env-host", cfg.DB.Host)
	assert.Equal(t, "file-db", cfg.DB.Name)
	assert.Equal(t, 45*time.Second, cfg.Jobs.ReconcileTimeout)
	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := cmd.LoadConfig(viper.New(), "nope.yaml")

	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*cmd.Config)
	}{
		{name: "http port", mutate: func(c *cmd.Config) { c.HTTP.Port = "http" }},
		{name: "db host", mutate: func(c *cmd.Config) { c.DB.Host = "" }},
		{name: "db port", mutate: func(c *cmd.Config) { c.DB.Port = "70000" }},
		{name: "exchange", mutate: func(c *cmd.Config) { c.AMQP.URL = "amqp://localhost"; c.AMQP.Exchange = "" }},
		{name: "schedule", mutate: func(c *cmd.Config) { c.Jobs.ReconcileSchedule = "* * *" }},
		{name: "timeout", mutate: func(c *cmd.Config) { c.Jobs.ReconcileTimeout = 0 }},
		{name: "log level", mutate: func(c *cmd.Config) { c.Log.Level = "chatty" }},
	}

	require.NoError(t, validConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	dsn := validConfig().DB.DSN()

	assert.Equal(t, "host=db port=5432 user=app password= dbname=backoffice sslmode=disable", dsn)
}
