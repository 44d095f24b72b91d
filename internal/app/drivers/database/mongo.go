package database

import (
	"context"
	"fmt"
	"mindhaven-service/internal/app/config"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const mongoConnectTimeout = 10 * time.Second

func buildMongoURI(mongoConfig config.MongoDB) string {
	credentials := ""
	if mongoConfig.Username != "" {
		credentials = fmt.Sprintf("%s:%s@", url.QueryEscape(mongoConfig.Username), url.QueryEscape(mongoConfig.Password))
	}
	uri := fmt.Sprintf("mongodb://%s%s:%s/", credentials, mongoConfig.Host, mongoConfig.Port)
	if mongoConfig.ReplicaSet != "" {
		uri += "?replicaSet=" + url.QueryEscape(mongoConfig.ReplicaSet)
	}
	return uri
}

func NewMongoDB(driverConfig *config.DriverConfig, log *zap.Logger) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	dbOptions := options.Client().ApplyURI(buildMongoURI(driverConfig.MongoDB))
	client, err := mongo.Connect(ctx, dbOptions)
	if err != nil {
		log.Fatal("Failed to connect to mongo database", zap.Error(err))
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal("Failed to ping or test the connection to mongo database", zap.Error(err))
	}
	log.Info("Successfully connected to mongo database",
		zap.String("host", driverConfig.MongoDB.Host),
		zap.String("database", driverConfig.MongoDB.DbName),
	)
	return client
}
