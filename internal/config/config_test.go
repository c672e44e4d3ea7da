package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		App:      AppConfig{Environment: "development"},
		Logger:   LoggerConfig{Level: "info"},
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Path: "/some/path/caterdir.db"},
		Auth:     AuthConfig{TokenDuration: time.Hour},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validTestConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", false}, // requires a bootstrap password
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_ProductionRequiresBootstrapPassword(t *testing.T) {
	cfg := validTestConfig()
	cfg.App.Environment = "production"

	assert.Error(t, cfg.Validate())

	cfg.Auth.BootstrapPassword = "swordfish"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		cfg := validTestConfig()
		cfg.Logger.Level = level
		assert.NoError(t, cfg.Validate(), "level %q", level)
	}

	cfg := validTestConfig()
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, AppConfig{Environment: "development"}.IsDevelopment())
	assert.False(t, AppConfig{Environment: "production"}.IsDevelopment())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/caterdir/data.db", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "caterdir", "data.db"), got)

	got, err = expandPath("", "/default/path.db")
	require.NoError(t, err)
	assert.Equal(t, "/default/path.db", got)

	got, err = expandPath("/absolute/path.db", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path.db", got)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("*"))
	assert.Equal(t,
		[]string{"http://a.example", "http://b.example"},
		splitOrigins(" http://a.example , http://b.example ,"))
	assert.Empty(t, splitOrigins(" , "))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nTEST_CATERDIR_KEY=value1\nTEST_CATERDIR_QUOTED=\"quoted\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("TEST_CATERDIR_KEY", "")
	t.Setenv("TEST_CATERDIR_QUOTED", "")
	os.Unsetenv("TEST_CATERDIR_KEY")
	os.Unsetenv("TEST_CATERDIR_QUOTED")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "value1", os.Getenv("TEST_CATERDIR_KEY"))
	assert.Equal(t, "quoted", os.Getenv("TEST_CATERDIR_QUOTED"))
}

func TestLoadEnvFile_EnvTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CATERDIR_PRI=file\n"), 0o600))

	t.Setenv("TEST_CATERDIR_PRI", "env")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "env", os.Getenv("TEST_CATERDIR_PRI"))
}
