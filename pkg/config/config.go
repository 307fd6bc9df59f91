package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	CORS          CORSConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFORGE_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFORGE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFORGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFORGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFORGE_DB_DSN"`
	Driver string `envconfig:"STOREFORGE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOREFORGE_DB_HOST"`
	LegacyPort     int    `envconfig:"STOREFORGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOREFORGE_DB_USER"`
	LegacyPassword string `envconfig:"STOREFORGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOREFORGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOREFORGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFORGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFORGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFORGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFORGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a DSN from the discrete host/user variables when one was
// not provided directly.
func (d *DBConfig) ensureDSN() error {
	if strings.TrimSpace(d.DSN) != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either STOREFORGE_DB_DSN or host/user/name variables are required")
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.LegacyUser, d.LegacyPassword),
		Host:   fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:   d.LegacyName,
	}
	q := u.Query()
	q.Set("sslmode", d.LegacySSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFORGE_REDIS_URL"`
	Address      string        `envconfig:"STOREFORGE_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFORGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFORGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFORGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFORGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFORGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFORGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFORGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"STOREFORGE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"STOREFORGE_JWT_ISSUER" default:"storeforge"`
	ExpirationMinutes      int    `envconfig:"STOREFORGE_JWT_EXPIRATION_MINUTES" default:"15"`
	RefreshTokenTTLMinutes int    `envconfig:"STOREFORGE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOREFORGE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOREFORGE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOREFORGE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOREFORGE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOREFORGE_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFORGE_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"STOREFORGE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"STOREFORGE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"STOREFORGE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"STOREFORGE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"STOREFORGE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"STOREFORGE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOREFORGE_AUTO_MIGRATE" default:"false"`
}
