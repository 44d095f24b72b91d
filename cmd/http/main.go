package main

import (
	"context"
	"mindhaven-service/internal/app/config"
	"mindhaven-service/internal/app/delivery/http/controllers"
	"mindhaven-service/internal/app/delivery/http/middlewares"
	"mindhaven-service/internal/app/delivery/http/routers"
	"mindhaven-service/internal/app/drivers/database"
	"mindhaven-service/internal/app/drivers/logger"
	"mindhaven-service/internal/app/drivers/messaging"
	"mindhaven-service/internal/app/drivers/storage"
	"mindhaven-service/internal/app/services/core/auth"
	"mindhaven-service/internal/app/services/core/doctors"
	"mindhaven-service/internal/app/services/core/users"
	"mindhaven-service/internal/app/services/shared/hasher"
	"mindhaven-service/internal/app/services/shared/jwtmanager"
	"mindhaven-service/internal/app/services/shared/mailer"
	"mindhaven-service/internal/app/services/shared/metrics"
	"mindhaven-service/internal/app/services/shared/ratelimiter"
	"mindhaven-service/internal/app/services/shared/redis"
	sharedStorage "mindhaven-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	startedAt := time.Now()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	mongoClient := database.NewMongoDB(driverConfig, log)
	redisClient := database.NewRedisClient(driverConfig, log)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig, log)
	minioClient := storage.NewMinio(driverConfig, log)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		MongoDB:        mongoClient.Database(driverConfig.MongoDB.DbName),
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap, startedAt)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server is listening", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to close connections", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, startedAt time.Time) error {
	ctx := context.Background()
	internalConfig := bootstrap.InternalConfig

	// Metrics
	serviceMetrics := metrics.NewMetrics()

	// Shared services
	tokenService, err := jwtmanager.NewJWTManager(internalConfig, bootstrap.Logger)
	if err != nil {
		return err
	}
	passwordHasher := hasher.NewBcryptHasher(internalConfig.Auth.BcryptCost)
	transactor := database.NewMongoTransactor(bootstrap.MongoClient)

	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)
	loginThrottle := ratelimiter.NewLoginThrottle(resourceLimiter, internalConfig)

	mailerService, err := mailer.NewMailerService(bootstrap.RabbitMQ, internalConfig.RabbitMQ.MailerQueue, bootstrap.Logger)
	if err != nil {
		return err
	}

	err = storage.EnsureBucket(ctx, bootstrap.Minio, internalConfig.Minio.BucketVerificationDocuments)
	if err != nil {
		return err
	}
	documentStorage := sharedStorage.NewMinioStorage(bootstrap.Minio, bootstrap.Logger)

	// Repositories
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB)
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB)

	if internalConfig.MongoDB.SyncIndexes {
		err = userRepository.EnsureIndexes(ctx)
		if err != nil {
			return err
		}
		err = doctorRepository.EnsureIndexes(ctx)
		if err != nil {
			return err
		}
		bootstrap.Logger.Info("MongoDB indexes are in sync")
	}

	// Usecases
	authUsecase := auth.NewAuthUsecase(
		userRepository,
		doctorRepository,
		passwordHasher,
		tokenService,
		transactor,
		loginThrottle,
		mailerService,
		serviceMetrics,
		internalConfig,
		bootstrap.Logger,
	)
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, documentStorage, internalConfig, bootstrap.Logger)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, internalConfig, tokenService, userRepository, serviceMetrics)

	// Controllers
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase)
	doctorController := controllers.NewDoctorController(bootstrap.Logger, doctorUsecase, internalConfig)
	healthController := controllers.NewHealthController(bootstrap.Logger, bootstrap.MongoClient, startedAt)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		serviceMetrics,
		authController,
		doctorController,
		healthController,
	)
	return nil
}
