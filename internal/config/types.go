package config

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment-variable fallbacks for container deployments.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	JWTSecret      string         `yaml:"jwt_secret"`
	AllowedOrigins []string       `yaml:"allowed_origins"`

	// Editorial behavior.
	LockTTLMinutes    int  `yaml:"lock_ttl_minutes"`
	StrictConcurrency bool `yaml:"strict_concurrency"`

	Clerk ClerkConfig `yaml:"clerk"`
	S3    S3Config    `yaml:"s3"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
	Loc      string `yaml:"loc"`
}

// ClerkConfig configures the outbound identity-provider sync. An empty
// secret key disables the sync entirely.
type ClerkConfig struct {
	SecretKey string `yaml:"secret_key"`
}

// S3Config configures the media upload bucket. Endpoint is optional and
// supports S3-compatible providers.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
	CustomDomain    string `yaml:"custom_domain"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env == "development" }

// Enabled reports whether the Clerk sync is configured.
func (c ClerkConfig) Enabled() bool { return c.SecretKey != "" }

// Enabled reports whether media uploads are configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}
