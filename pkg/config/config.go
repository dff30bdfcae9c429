package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	MagicLink    MagicLinkConfig
	Admin        AdminConfig
	Mail         MailConfig
	Delivery     DeliveryConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"LAVKA_APP_ENV" required:"true"`
	Port         string `envconfig:"LAVKA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LAVKA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LAVKA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LAVKA_DB_DSN"`
	Driver string `envconfig:"LAVKA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LAVKA_DB_HOST"`
	LegacyPort     int    `envconfig:"LAVKA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LAVKA_DB_USER"`
	LegacyPassword string `envconfig:"LAVKA_DB_PASSWORD"`
	LegacyName     string `envconfig:"LAVKA_DB_NAME"`
	LegacySSLMode  string `envconfig:"LAVKA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LAVKA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LAVKA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LAVKA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LAVKA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LAVKA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LAVKA_REDIS_ADDR"`
	Password     string        `envconfig:"LAVKA_REDIS_PASSWORD"`
	DB           int           `envconfig:"LAVKA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LAVKA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LAVKA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LAVKA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LAVKA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LAVKA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret              string `envconfig:"LAVKA_JWT_SECRET" required:"true"`
	Issuer              string `envconfig:"LAVKA_JWT_ISSUER" required:"true"`
	ExpirationMinutes   int    `envconfig:"LAVKA_JWT_EXPIRATION_MINUTES" default:"15"`
	RefreshTokenTTLDays int    `envconfig:"LAVKA_REFRESH_TOKEN_TTL_DAYS" default:"30"`
}

// RefreshTokenTTL returns the refresh token TTL configured in days.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLDays <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLDays) * 24 * time.Hour
}

type MagicLinkConfig struct {
	TokenTTL        time.Duration `envconfig:"LAVKA_MAGIC_TOKEN_TTL" default:"15m"`
	RateLimitWindow time.Duration `envconfig:"LAVKA_MAGIC_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitCount  int           `envconfig:"LAVKA_MAGIC_RATE_LIMIT_COUNT" default:"1"`
	FrontendBaseURL string        `envconfig:"LAVKA_FRONTEND_BASE_URL" default:"http://localhost"`
}

type AdminConfig struct {
	APIKey string `envconfig:"LAVKA_ADMIN_API_KEY"`
}

type MailConfig struct {
	Mode         string `envconfig:"LAVKA_MAIL_MODE" default:"console"`
	SMTPHost     string `envconfig:"LAVKA_SMTP_HOST"`
	SMTPPort     int    `envconfig:"LAVKA_SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"LAVKA_SMTP_USER"`
	SMTPPassword string `envconfig:"LAVKA_SMTP_PASSWORD"`
	From         string `envconfig:"LAVKA_MAIL_FROM" default:"no-reply@lavka.example"`
}

type DeliveryConfig struct {
	CourierFeeRub string `envconfig:"LAVKA_DELIVERY_COURIER_FEE_RUB" default:"0"`
	PickupFeeRub  string `envconfig:"LAVKA_DELIVERY_PICKUP_FEE_RUB" default:"0"`
}

type FeatureFlagsConfig struct {
	UseSQLite          bool `envconfig:"LAVKA_USE_SQLITE" default:"false"`
	AutoMigrate        bool `envconfig:"LAVKA_AUTO_MIGRATE" default:"false"`
	EnableDevEndpoints bool `envconfig:"LAVKA_ENABLE_DEV_ENDPOINTS" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
