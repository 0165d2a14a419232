package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Rest.PORT)
	assert.Equal(t, []string{"*"}, cfg.Rest.CORSAllowedOrigins)
	assert.Equal(t, StorageMemory, cfg.Database.Driver)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.False(t, cfg.FluentBit.Enabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 20, cfg.Pagination.DefaultSize)
	assert.Equal(t, 100, cfg.Pagination.MaxSize)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "STORAGE_DRIVER=postgres\n" +
		"DATABASE_URL=postgres://app:secret@db:5432/urban?sslmode=disable\n" +
		"CORS_ALLOWED_ORIGINS=https://a.example, https://b.example,\n" +
		"MAX_PAGE_SIZE=50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv never overrides variables that are already set.
	t.Setenv("PORT", "9090")
	t.Cleanup(func() {
		for _, key := range []string{"STORAGE_DRIVER", "DATABASE_URL", "CORS_ALLOWED_ORIGINS", "MAX_PAGE_SIZE"} {
			os.Unsetenv(key)
		}
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Rest.PORT)
	assert.Equal(t, StoragePostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://app:secret@db:5432/urban?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Rest.CORSAllowedOrigins)
	assert.Equal(t, 50, cfg.Pagination.MaxSize)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres without url", env: map[string]string{"STORAGE_DRIVER": "postgres", "DATABASE_URL": ""}},
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "mongo"}},
		{name: "rabbit without url", env: map[string]string{"STORAGE_DRIVER": "memory", "RABBITMQ_ENABLED": "true", "RABBITMQ_URL": ""}},
		{name: "default above max", env: map[string]string{"STORAGE_DRIVER": "memory", "DEFAULT_PAGE_SIZE": "30", "MAX_PAGE_SIZE": "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestFluentBitDisabledWithoutHost(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("FLUENTBIT_ENABLED", "true")
	t.Setenv("FLUENTBIT_HOST", "")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)
	assert.False(t, cfg.FluentBit.Enabled)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "yes-please")
	t.Setenv("X_LIST", " , ")

	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.True(t, getEnvAsBool("X_BOOL", true))
	assert.Equal(t, []string{"d"}, getEnvAsList("X_LIST", []string{"d"}))
}
