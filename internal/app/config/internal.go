package config

type InternalConfig struct {
	App      App
	JWT      AppJWT
	Auth     AppAuth
	MongoDB  AppMongoDB
	Minio    AppMinio
	RabbitMQ AppRabbitMQ
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestBodyLimitInMegabyte int
	// AuthMaxRequestsPerMinute bounds signup and login calls per client IP.
	AuthMaxRequestsPerMinute int
	AuthBlockTimeInMinutes   int
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppAuth struct {
	BcryptCost           int
	LoginMaxAttempts     int
	LoginWindowInSeconds int
	WelcomeEmailSender   string
	WelcomeEmailEnabled  bool
}

type AppMongoDB struct {
	UseTransaction bool
	SyncIndexes    bool
}

type AppMinio struct {
	BucketVerificationDocuments string
	MaxDocumentSizeInMB         int64
}

type AppRabbitMQ struct {
	MailerQueue string
}
