package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENV", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StorageDriver)
	assert.Equal(t, 5*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, uint64(2), cfg.MailRetries)
	assert.Equal(t, 2*time.Second, cfg.MailBackoff)
	assert.Equal(t, "development-secret", cfg.JWTSecret)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORAGE_DRIVER=memory\nPORT=9090\n"), 0o600))

	// godotenv does not override variables that are already present.
	os.Unsetenv("STORAGE_DRIVER")
	os.Unsetenv("PORT")
	t.Cleanup(func() {
		os.Unsetenv("STORAGE_DRIVER")
		os.Unsetenv("PORT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{StorageDriver: DriverMemory, JWTSecret: "s", BcryptCost: 10}, false},
		{"unknown driver", Config{StorageDriver: "postgres", JWTSecret: "s", BcryptCost: 10}, true},
		{"production needs secret", Config{Env: "production", StorageDriver: DriverMongo, BcryptCost: 10}, true},
		{"bcrypt too low", Config{StorageDriver: DriverMongo, JWTSecret: "s", BcryptCost: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetAllowedOrigins(t *testing.T) {
	cfg := Config{CORSAllowedOrigins: "http://a.test, http://b.test"}
	assert.Equal(t, "http://a.test,http://b.test", cfg.GetAllowedOrigins())
}
