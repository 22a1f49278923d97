package config

// EnvPrefix is the envconfig prefix shared by every PromoPace binary.
const EnvPrefix = "PROMOPACE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "PROMOPACE_APP_ENV"
	EnvPort      = "PROMOPACE_APP_PORT"
	EnvDBDSN     = "PROMOPACE_DB_DSN"
	EnvDBHost    = "PROMOPACE_DB_HOST"
	EnvDBUser    = "PROMOPACE_DB_USER"
	EnvDBName    = "PROMOPACE_DB_NAME"
	EnvRedisURL  = "PROMOPACE_REDIS_URL"
	EnvJWTSecret = "PROMOPACE_JWT_SECRET"
	EnvJWTIssuer = "PROMOPACE_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
