package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where Load looks when no -config flag is given.
const DefaultConfigPath = "config.yaml"

const (
	defaultPort      = 2323
	defaultDBHost    = "127.0.0.1"
	defaultDBPort    = 3306
	defaultDBUser    = "root"
	defaultDBName    = "terravita"
	defaultDBCharset = "utf8mb4"
	defaultDBLoc     = "Local"
	defaultLockTTL   = 10 // minutes
)

// Load reads the YAML config file, applies TV_* environment overrides and
// fills defaults. A missing file is not an error; env/defaults then apply.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if path == "" {
		path = DefaultConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env/defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setString(&cfg.Env, "TV_ENV")
	setInt(&cfg.Port, "TV_PORT")
	setString(&cfg.Database.DSN, "TV_DATABASE_DSN")
	setString(&cfg.Database.Host, "TV_DB_HOST")
	setInt(&cfg.Database.Port, "TV_DB_PORT")
	setString(&cfg.Database.User, "TV_DB_USER")
	setString(&cfg.Database.Password, "TV_DB_PASSWORD")
	setString(&cfg.Database.Name, "TV_DB_NAME")
	setString(&cfg.RedisURL, "TV_REDIS_URL")
	setString(&cfg.JWTSecret, "TV_JWT_SECRET")
	setInt(&cfg.LockTTLMinutes, "TV_LOCK_TTL_MINUTES")
	setBool(&cfg.StrictConcurrency, "TV_STRICT_CONCURRENCY")
	setString(&cfg.Clerk.SecretKey, "TV_CLERK_SECRET_KEY")
	setString(&cfg.S3.Bucket, "TV_S3_BUCKET")
	setString(&cfg.S3.Region, "TV_S3_REGION")
	setString(&cfg.S3.AccessKeyID, "TV_S3_ACCESS_KEY_ID")
	setString(&cfg.S3.SecretAccessKey, "TV_S3_SECRET_ACCESS_KEY")
	setString(&cfg.S3.Endpoint, "TV_S3_ENDPOINT")
	setString(&cfg.S3.CustomDomain, "TV_S3_CUSTOM_DOMAIN")

	if v := strings.TrimSpace(os.Getenv("TV_ALLOWED_ORIGINS")); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = "production"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://127.0.0.1:6379/0"
	}
	if cfg.LockTTLMinutes <= 0 {
		cfg.LockTTLMinutes = defaultLockTTL
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
