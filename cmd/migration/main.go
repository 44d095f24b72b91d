package main

import (
	"context"
	"flag"
	"mindhaven-service/internal/app/config"
	"mindhaven-service/internal/app/drivers/database"
	"mindhaven-service/internal/app/drivers/logger"
	"mindhaven-service/internal/app/services/core/doctors"
	"mindhaven-service/internal/app/services/core/users"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	repairDoctorProfiles := flag.Bool("repair-doctor-profiles", false, "create placeholder profiles for doctor accounts that have none")
	skipIndexes := flag.Bool("skip-indexes", false, "do not synchronise collection indexes")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(driverConfig, internalConfig)

	mongoClient := database.NewMongoDB(driverConfig, zap.NewNop())
	defer func() {
		err := mongoClient.Disconnect(context.Background())
		if err != nil {
			log.WithError(err).Warn("Failed to disconnect from MongoDB")
		}
	}()
	db := mongoClient.Database(driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	userRepository := users.NewUserMongoRepository(db)
	doctorRepository := doctors.NewDoctorMongoRepository(db)

	if !*skipIndexes {
		err := userRepository.EnsureIndexes(ctx)
		if err != nil {
			log.WithError(err).Fatal("Failed to sync users indexes")
		}
		err = doctorRepository.EnsureIndexes(ctx)
		if err != nil {
			log.WithError(err).Fatal("Failed to sync doctors indexes")
		}
		log.Info("Indexes are in sync")
	}

	if !*repairDoctorProfiles {
		return 0
	}

	result, err := doctors.RepairMissingProfiles(ctx, userRepository, doctorRepository, time.Now)
	if err != nil {
		log.WithError(err).Fatal("Failed to look up doctors without profile")
	}

	for _, userID := range result.Repaired {
		log.WithField("user_id", userID.Hex()).Info("Created placeholder doctor profile")
	}
	for _, failure := range result.Failed {
		log.WithFields(logrus.Fields{
			"user_id": failure.UserID.Hex(),
		}).WithError(failure.Err).Error("Failed to create placeholder doctor profile")
	}

	log.WithFields(logrus.Fields{
		"repaired": len(result.Repaired),
		"failed":   len(result.Failed),
	}).Info("Doctor profile repair finished")

	if len(result.Failed) > 0 {
		return 1
	}
	return 0
}
