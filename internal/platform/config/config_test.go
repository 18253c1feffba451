package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "animal-adoption", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DefaultPerPage, cfg.Listing.PerPage)
	assert.Equal(t, DefaultCacheTTL, cfg.Redis.TTL)
	assert.Equal(t, DefaultTokenTTL, cfg.Auth.TokenTTL)
	assert.Empty(t, cfg.DB.DSN)
	assert.Empty(t, cfg.Auth.Secret)

	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_SERVER_READ_TIMEOUT", "7s")
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("APP_LISTING_PER_PAGE", "24")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 7*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 24, cfg.Listing.PerPage)
}

func TestLoad_LegacyEnvWins(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("PORT", "3001")
	t.Setenv("DB_DSN", "postgres://u:p@localhost/adoption")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "postgres://u:p@localhost/adoption", cfg.DB.DSN)
	assert.Equal(t, "s3cret", cfg.Auth.Secret)
	assert.Equal(t, "demo", cfg.Cloudinary.CloudName)
}

func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load("nonexistent")
	require.NoError(t, err)
	assert.Equal(t, "animal-adoption", cfg.App.Name)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Log.Level = "loud"
	cfg.Server.Port = 0

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level debe ser uno de [debug info warn error]")
	assert.Contains(t, err.Error(), "server.port es obligatorio")
}

func TestValidate_CloudinaryNeedsCredentials(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Cloudinary.CloudName = "demo"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cloudinary.apikey es obligatorio si se define cloudname")
}

func TestValidate_ListingMaxBelowPerPage(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Listing.PerPage = 24
	cfg.Listing.MaxPerPage = 12

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing.maxperpage debe ser >= perpage")
}

func TestConfigKey(t *testing.T) {
	assert.Equal(t, "server.port", configKey("Config.Server.Port"))
	assert.Equal(t, "port", configKey("Port"))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.read_timeout", envKey("APP_SERVER_READ_TIMEOUT"))
	assert.Equal(t, "log.file_path", envKey("APP_LOG_FILE_PATH"))
	assert.Equal(t, "db.dsn", envKey("APP_DB_DSN"))
}
