package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	App        AppConfig        `env:",prefix=APP_"`
	Server     ServerConfig     `env:",prefix=SERVER_"`
	Database   DatabaseConfig   `env:",prefix=DB_"`
	Mongo      MongoConfig      `env:",prefix=MONGO_"`
	Redis      RedisConfig      `env:",prefix=REDIS_"`
	JWT        JWTConfig        `env:",prefix=JWT_"`
	Cloudinary CloudinaryConfig `env:",prefix=CLOUDINARY_"`
	SMTP       SMTPConfig       `env:",prefix=SMTP_"`
}

type AppConfig struct {
	Environment    string   `env:"ENV,default=development"`
	LogLevel       string   `env:"LOG_LEVEL,default=info"`
	StoreDriver    string   `env:"STORE_DRIVER,default=postgres"`
	AdminEmails    []string `env:"ADMIN_EMAILS"`
	AdminEmail     string   `env:"ADMIN_EMAIL"`
	AdminPassword  string   `env:"ADMIN_PASSWORD"`
	UploadDir      string   `env:"UPLOAD_DIR,default=./uploads"`
	MaxUploadSize  int64    `env:"MAX_UPLOAD_SIZE,default=5242880"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
}

type ServerConfig struct {
	Host         string `env:"HOST,default=0.0.0.0"`
	Port         string `env:"PORT,default=8080"`
	ReadTimeout  int    `env:"READ_TIMEOUT,default=30"`  // seconds
	WriteTimeout int    `env:"WRITE_TIMEOUT,default=30"` // seconds
}

type DatabaseConfig struct {
	URL          string `env:"URL"`
	Host         string `env:"HOST,default=localhost"`
	Port         string `env:"PORT,default=5432"`
	User         string `env:"USER,default=postgres"`
	Password     string `env:"PASSWORD,default=postgres"`
	Name         string `env:"NAME,default=retail_hub"`
	SSLMode      string `env:"SSLMODE,default=disable"`
	MaxConns     int32  `env:"MAX_CONNS,default=25"`
	MinConns     int32  `env:"MIN_CONNS,default=5"`
	MigrationDir string `env:"MIGRATION_DIR,default=database/migration"`
}

type MongoConfig struct {
	URI      string `env:"URI,default=mongodb://localhost:27017"`
	Database string `env:"DATABASE,default=retail-hub"`
}

type RedisConfig struct {
	URL      string `env:"URL"`
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	CacheTTL int    `env:"CACHE_TTL,default=300"` // seconds
}

type JWTConfig struct {
	Secret string `env:"SECRET,default=secret"`
	Expiry string `env:"EXPIRY,default=24h"`
}

type CloudinaryConfig struct {
	URL       string `env:"URL"`
	CloudName string `env:"CLOUD_NAME"`
	APIKey    string `env:"API_KEY"`
	APISecret string `env:"API_SECRET"`
	Folder    string `env:"FOLDER,default=products"`
}

type SMTPConfig struct {
	Host   string   `env:"HOST"`
	Port   int      `env:"PORT,default=587"`
	User   string   `env:"USER"`
	Pass   string   `env:"PASS"`
	From   string   `env:"FROM"`
	Notify []string `env:"NOTIFY"`
}

// Load reads an optional .env file and then decodes the process environment.
func Load(ctx context.Context) (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom decodes configuration from the given lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.App.StoreDriver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.App.StoreDriver)
	}

	if c.App.IsProduction() && (c.JWT.Secret == "" || c.JWT.Secret == "secret") {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

// IsAdminEmail reports whether email is on the configured admin allow-list.
func (c *AppConfig) IsAdminEmail(email string) bool {
	for _, e := range c.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// DSN returns DATABASE_URL when set, otherwise a URL built from the parts.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func (c *CloudinaryConfig) Enabled() bool {
	return c.URL != "" || (c.CloudName != "" && c.APIKey != "" && c.APISecret != "")
}

func (c *SMTPConfig) Enabled() bool {
	return c.Host != "" && c.User != "" && c.Pass != "" && len(c.Notify) > 0
}
