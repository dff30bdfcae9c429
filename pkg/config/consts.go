package config

// EnvPrefix is empty because every field names its variable explicitly.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "LAVKA_APP_ENV"
	EnvPort     = "LAVKA_APP_PORT"
	EnvDBDSN    = "LAVKA_DB_DSN"
	EnvDBHost   = "LAVKA_DB_HOST"
	EnvDBUser   = "LAVKA_DB_USER"
	EnvDBName   = "LAVKA_DB_NAME"
	EnvRedisURL = "LAVKA_REDIS_URL"

	EnvJWTSecret = "LAVKA_JWT_SECRET"
	EnvJWTIssuer = "LAVKA_JWT_ISSUER"
	EnvAdminKey  = "LAVKA_ADMIN_API_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
