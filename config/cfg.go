package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/jekabolt/edupath/internal/api/http"
	"github.com/jekabolt/edupath/internal/apisrv/auth"
	"github.com/jekabolt/edupath/internal/bucket"
	"github.com/jekabolt/edupath/internal/feed"
	"github.com/jekabolt/edupath/internal/gallery"
	"github.com/jekabolt/edupath/internal/realtime"
	"github.com/jekabolt/edupath/internal/store"
	"github.com/jekabolt/edupath/log"
	"github.com/spf13/viper"
)

// LocaleConfig selects the language used when nothing else decides it.
type LocaleConfig struct {
	Default string `mapstructure:"default"`
}

// Config represents the global configuration for the service.
type Config struct {
	DB       store.Config    `mapstructure:"db"`
	Logger   log.Config      `mapstructure:"logger"`
	HTTP     httpapi.Config  `mapstructure:"http"`
	Auth     auth.Config     `mapstructure:"auth"`
	Bucket   bucket.Config   `mapstructure:"bucket"`
	Locale   LocaleConfig    `mapstructure:"locale"`
	Feed     feed.Config     `mapstructure:"feed"`
	Realtime realtime.Config `mapstructure:"realtime"`
	Gallery  gallery.Config  `mapstructure:"gallery"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Nested config keys use double underscore, e.g., DB__DSN for db.dsn,
// the flat names bound in bindEnvVars work as well.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.AutomaticEnv()
	// e.g., db.dsn -> DB__DSN, auth.jwt_secret -> AUTH__JWT_SECRET
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	setDefaults(v)
	bindEnvVars(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			// If config file doesn't exist, continue with env vars only
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/edupath")
		v.AddConfigPath("/etc/edupath")
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// HTTP_ALLOWED_ORIGINS arrives as one comma separated string
	if len(config.HTTP.AllowedOrigins) == 1 && strings.Contains(config.HTTP.AllowedOrigins[0], ",") {
		config.HTTP.AllowedOrigins = strings.Split(config.HTTP.AllowedOrigins[0], ",")
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", store.DriverSQLite)
	v.SetDefault("db.dsn", "file:edupath.db?_pragma=foreign_keys(1)")
	v.SetDefault("db.automigrate", true)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("http.port", "8080")
	v.SetDefault("auth.jwt_ttl", "24h")
	v.SetDefault("locale.default", "ar")
	v.SetDefault("feed.fetch_timeout", "10s")
	v.SetDefault("feed.display_order", "newest_first")
	v.SetDefault("feed.week_start", "sunday")
	v.SetDefault("realtime.buffer_size", 16)
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (DB__DSN) and flat keys (DB_DSN)
func bindEnvVars(v *viper.Viper) {
	// DB
	v.BindEnv("db.driver", "DB_DRIVER")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("db.automigrate", "DB_AUTOMIGRATE")
	v.BindEnv("db.max_open_connections", "DB_MAX_OPEN_CONNECTIONS")
	v.BindEnv("db.max_idle_connections", "DB_MAX_IDLE_CONNECTIONS")
	v.BindEnv("db.tls_ca_path", "DB_TLS_CA_PATH")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")
	v.BindEnv("logger.format", "LOG_FORMAT")

	// HTTP
	v.BindEnv("http.port", "HTTP_PORT")
	v.BindEnv("http.address", "HTTP_ADDRESS")
	v.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	v.BindEnv("http.trust_proxy", "HTTP_TRUST_PROXY")
	v.BindEnv("http.max_upload_bytes", "HTTP_MAX_UPLOAD_BYTES")

	// Auth
	v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	v.BindEnv("auth.jwt_ttl", "AUTH_JWT_TTL")
	v.BindEnv("auth.password_hasher_salt_size", "AUTH_PASSWORD_HASHER_SALT_SIZE")
	v.BindEnv("auth.password_hasher_iterations", "AUTH_PASSWORD_HASHER_ITERATIONS")
	v.BindEnv("auth.cookie_secure", "AUTH_COOKIE_SECURE")

	// Bucket
	v.BindEnv("bucket.s3_access_key", "BUCKET_S3_ACCESS_KEY")
	v.BindEnv("bucket.s3_secret_access_key", "BUCKET_S3_SECRET_ACCESS_KEY")
	v.BindEnv("bucket.s3_endpoint", "BUCKET_S3_ENDPOINT")
	v.BindEnv("bucket.s3_bucket_name", "BUCKET_S3_BUCKET_NAME")
	v.BindEnv("bucket.s3_bucket_location", "BUCKET_S3_BUCKET_LOCATION")
	v.BindEnv("bucket.base_folder", "BUCKET_BASE_FOLDER")
	v.BindEnv("bucket.subdomain_endpoint", "BUCKET_SUBDOMAIN_ENDPOINT")

	// Locale
	v.BindEnv("locale.default", "LOCALE_DEFAULT")

	// Feed
	v.BindEnv("feed.fetch_timeout", "FEED_FETCH_TIMEOUT")
	v.BindEnv("feed.debounce", "FEED_DEBOUNCE")
	v.BindEnv("feed.display_order", "FEED_DISPLAY_ORDER")
	v.BindEnv("feed.week_start", "FEED_WEEK_START")

	// Gallery
	v.BindEnv("gallery.hero_fallback_url", "GALLERY_HERO_FALLBACK_URL")
}
