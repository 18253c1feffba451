// Package config carga la configuracion del servicio con koanf.
//
// Precedencia (de mayor a menor):
//  1. Variables legacy sin prefijo (PORT, DB_DSN, JWT_SECRET_KEY, CLOUDINARY_*, REDIS_URL)
//  2. Variables APP_<SECCION>_<CLAVE> (p.ej. APP_SERVER_PORT, APP_LOG_FILE_PATH)
//  3. configs/<profile>.yaml
//  4. configs/base.yaml
//  5. defaults()
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultServerPort = 8080
	DefaultPerPage    = 12
	DefaultCacheTTL   = 5 * time.Minute
	DefaultTokenTTL   = 24 * time.Hour
)

type Config struct {
	App        AppConfig        `koanf:"app"        validate:"required"`
	Server     ServerConfig     `koanf:"server"     validate:"required"`
	Log        LogConfig        `koanf:"log"        validate:"required"`
	DB         DBConfig         `koanf:"db"`
	Auth       AuthConfig       `koanf:"auth"`
	Redis      RedisConfig      `koanf:"redis"`
	Cloudinary CloudinaryConfig `koanf:"cloudinary"`
	Listing    ListingConfig    `koanf:"listing"    validate:"required"`
}

type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxUploadBytes  int64         `koanf:"max_upload_bytes" validate:"required,min=1024"`
}

type LogConfig struct {
	Level          string `koanf:"level"            validate:"required,oneof=debug info warn error"`
	Format         string `koanf:"format"           validate:"required,oneof=json text"`
	FilePath       string `koanf:"file_path"`
	FileMaxSizeMB  int    `koanf:"file_max_size"    validate:"omitempty,min=1,max=1024"`
	FileMaxBackups int    `koanf:"file_max_backups" validate:"omitempty,min=0,max=100"`
	FileMaxAgeDays int    `koanf:"file_max_age"     validate:"omitempty,min=0,max=365"`
	FileCompress   bool   `koanf:"file_compress"`
}

// DBConfig: DSN vacio = repos in-memory.
type DBConfig struct {
	DSN     string `koanf:"dsn"`
	Migrate bool   `koanf:"migrate"`
}

// AuthConfig: Secret vacio = modo dev (X-Debug-User-ID / X-Debug-User-Role).
type AuthConfig struct {
	Secret   string        `koanf:"secret"`
	Issuer   string        `koanf:"issuer"    validate:"required_with=Secret"`
	TokenTTL time.Duration `koanf:"token_ttl" validate:"required,min=1m"`
}

// RedisConfig: Addr vacio = sin cache.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"  validate:"min=0,max=15"`
	TTL      time.Duration `koanf:"ttl" validate:"required,min=1s"`
}

// CloudinaryConfig: sin CloudName = almacenamiento de imagenes en memoria.
type CloudinaryConfig struct {
	CloudName string `koanf:"cloud_name"`
	APIKey    string `koanf:"api_key"    validate:"required_with=CloudName"`
	APISecret string `koanf:"api_secret" validate:"required_with=CloudName"`
	Folder    string `koanf:"folder"`
}

type ListingConfig struct {
	PerPage    int `koanf:"per_page"     validate:"required,min=1,max=100"`
	MaxPerPage int `koanf:"max_per_page" validate:"required,gtefield=PerPage"`
}

// Addr devuelve ":<port>" para http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

func defaults() map[string]any {
	return map[string]any{
		"app.name":        "animal-adoption",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.read_timeout":     "5s",
		"server.write_timeout":    "10s",
		"server.shutdown_timeout": "10s",
		"server.max_upload_bytes": 10 << 20,

		"log.level":            "info",
		"log.format":           "text",
		"log.file_path":        "",
		"log.file_max_size":    100,
		"log.file_max_backups": 3,
		"log.file_max_age":     28,
		"log.file_compress":    true,

		"db.dsn":     "",
		"db.migrate": true,

		"auth.secret":    "",
		"auth.issuer":    "animal-adoption",
		"auth.token_ttl": DefaultTokenTTL.String(),

		"redis.addr":     "",
		"redis.password": "",
		"redis.db":       0,
		"redis.ttl":      DefaultCacheTTL.String(),

		"cloudinary.cloud_name": "",
		"cloudinary.api_key":    "",
		"cloudinary.api_secret": "",
		"cloudinary.folder":     "animals",

		"listing.per_page":     DefaultPerPage,
		"listing.max_per_page": 48,
	}
}

// legacyEnv son variables sin prefijo que ya usa el despliegue.
var legacyEnv = map[string]string{
	"PORT":                  "server.port",
	"DB_DSN":                "db.dsn",
	"JWT_SECRET_KEY":        "auth.secret",
	"REDIS_URL":             "redis.addr",
	"CLOUDINARY_CLOUD_NAME": "cloudinary.cloud_name",
	"CLOUDINARY_API_KEY":    "cloudinary.api_key",
	"CLOUDINARY_API_SECRET": "cloudinary.api_secret",
	"LOG_LEVEL":             "log.level",
	"LOG_FORMAT":            "log.format",
}

func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := loadFileIfExists(k, "configs/base.yaml"); err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		if err := loadFileIfExists(k, fmt.Sprintf("configs/%s.yaml", profile)); err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	if err := k.Load(env.Provider("APP_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	legacy := map[string]any{}
	for name, key := range legacyEnv {
		if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
			legacy[key] = strings.TrimSpace(v)
		}
	}
	if len(legacy) > 0 {
		if err := k.Load(confmap.Provider(legacy, "."), nil); err != nil {
			return nil, fmt.Errorf("loading legacy env vars: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey: APP_SERVER_READ_TIMEOUT -> server.read_timeout (solo el primer "_" separa seccion).
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "APP_"))
	return strings.Replace(s, "_", ".", 1)
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return k.Load(file.Provider(path), yaml.Parser())
}
