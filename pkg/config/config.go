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
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Mailer       MailerConfig
	Cron         CronConfig
	Rollover     RolloverConfig
	Pace         PaceConfig
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
	Env          string `envconfig:"PROMOPACE_APP_ENV" required:"true"`
	Port         string `envconfig:"PROMOPACE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PROMOPACE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PROMOPACE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"PROMOPACE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"PROMOPACE_DB_DSN"`
	Driver string `envconfig:"PROMOPACE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PROMOPACE_DB_HOST"`
	LegacyPort     int    `envconfig:"PROMOPACE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PROMOPACE_DB_USER"`
	LegacyPassword string `envconfig:"PROMOPACE_DB_PASSWORD"`
	LegacyName     string `envconfig:"PROMOPACE_DB_NAME"`
	LegacySSLMode  string `envconfig:"PROMOPACE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PROMOPACE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PROMOPACE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PROMOPACE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROMOPACE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PROMOPACE_REDIS_URL"`
	Address      string        `envconfig:"PROMOPACE_REDIS_ADDR"`
	Password     string        `envconfig:"PROMOPACE_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROMOPACE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROMOPACE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROMOPACE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROMOPACE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROMOPACE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PROMOPACE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PROMOPACE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PROMOPACE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PROMOPACE_JWT_EXPIRATION_MINUTES" default:"720"`
}

// TokenTTL returns the actor token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type MailerConfig struct {
	BaseURL     string        `envconfig:"PROMOPACE_MAILER_BASE_URL" default:"https://api.sendwire.io"`
	APIKey      string        `envconfig:"PROMOPACE_MAILER_API_KEY"`
	FromAddress string        `envconfig:"PROMOPACE_MAILER_FROM" default:"promos@promopace.io"`
	FromName    string        `envconfig:"PROMOPACE_MAILER_FROM_NAME" default:"PromoPace"`
	Timeout     time.Duration `envconfig:"PROMOPACE_MAILER_TIMEOUT" default:"10s"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"PROMOPACE_CRON_INTERVAL" default:"168h"`
}

type RolloverConfig struct {
	ConfirmPhrase string `envconfig:"PROMOPACE_ROLLOVER_CONFIRM_PHRASE" default:"ARCHIVE AND RESET"`
}

type PaceConfig struct {
	FallbackElapsedPct int `envconfig:"PROMOPACE_PACE_FALLBACK_ELAPSED_PCT" default:"50"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PROMOPACE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PROMOPACE_AUTO_MIGRATE" default:"false"`
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
