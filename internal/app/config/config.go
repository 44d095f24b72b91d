package config

import (
	"mindhaven-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:       utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:       utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:     utils.GetEnvString("MONGODB_DB_NAME", "mindhaven"),
			Username:   utils.GetEnvString("MONGODB_USERNAME", ""),
			Password:   utils.GetEnvString("MONGODB_PASSWORD", ""),
			ReplicaSet: utils.GetEnvString("MONGODB_REPLICA_SET", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			Database: utils.GetEnvInt("REDIS_DATABASE", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILE_NAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILE_NAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":5000"),
			Version:                    utils.GetEnvString("APP_VERSION", ""),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			AuthMaxRequestsPerMinute:   utils.GetEnvInt("APP_AUTH_MAX_REQUESTS_PER_MINUTE", 30),
			AuthBlockTimeInMinutes:     utils.GetEnvInt("APP_AUTH_BLOCK_TIME_IN_MINUTES", 5),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", ""),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXPIRY_HOURS", 168),
		},
		Auth: AppAuth{
			BcryptCost:           utils.GetEnvInt("AUTH_BCRYPT_COST", 10),
			LoginMaxAttempts:     utils.GetEnvInt("LOGIN_MAX_ATTEMPTS", 10),
			LoginWindowInSeconds: utils.GetEnvInt("LOGIN_WINDOW_SECONDS", 900),
			WelcomeEmailSender:   utils.GetEnvString("WELCOME_EMAIL_SENDER", "no-reply@mindhaven.local"),
			WelcomeEmailEnabled:  utils.GetEnvBool("WELCOME_EMAIL_ENABLED", true),
		},
		MongoDB: AppMongoDB{
			UseTransaction: utils.GetEnvBool("MONGODB_USE_TRANSACTION", false),
			SyncIndexes:    utils.GetEnvBool("MONGODB_SYNC_INDEXES", true),
		},
		Minio: AppMinio{
			BucketVerificationDocuments: utils.GetEnvString("MINIO_BUCKET_VERIFICATION_DOCUMENTS", "verification-documents"),
			MaxDocumentSizeInMB:         int64(utils.GetEnvInt("MINIO_MAX_DOCUMENT_SIZE_MB", 5)),
		},
		RabbitMQ: AppRabbitMQ{
			MailerQueue: utils.GetEnvString("RABBITMQ_MAILER_QUEUE", "mailer"),
		},
	}
}
