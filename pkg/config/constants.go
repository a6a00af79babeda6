package config

const (
	EnvPrefix = "WINDOWQUOTE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "WINDOWQUOTE_APP_ENV"
	EnvPort      = "WINDOWQUOTE_APP_PORT"
	EnvLogFormat = "WINDOWQUOTE_LOG_FORMAT"

	EnvDBDSN  = "WINDOWQUOTE_DB_DSN"
	EnvDBHost = "WINDOWQUOTE_DB_HOST"
	EnvDBUser = "WINDOWQUOTE_DB_USER"
	EnvDBName = "WINDOWQUOTE_DB_NAME"

	EnvRedisURL = "WINDOWQUOTE_REDIS_URL"

	EnvJWTSecret              = "WINDOWQUOTE_JWT_SECRET"
	EnvJWTIssuer              = "WINDOWQUOTE_JWT_ISSUER"
	EnvJWTExpMins             = "WINDOWQUOTE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "WINDOWQUOTE_REFRESH_TOKEN_TTL_MINUTES"
	EnvUseSQLite              = "WINDOWQUOTE_USE_SQLITE"
	EnvWizardSessionTTL       = "WINDOWQUOTE_WIZARD_SESSION_TTL"
	EnvCatalogCacheTTL        = "WINDOWQUOTE_CATALOG_CACHE_TTL"
	EnvAuthLoginUsernameLimit = "WINDOWQUOTE_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT"
)
