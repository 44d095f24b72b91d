package messaging

import (
	"mindhaven-service/internal/app/config"
	"strconv"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func NewRabbitMQ(driverConfig *config.DriverConfig, log *zap.Logger) *amqp091.Connection {
	port, err := strconv.Atoi(driverConfig.RabbitMQ.Port)
	if err != nil {
		log.Fatal("Invalid rabbitMQ port", zap.String("port", driverConfig.RabbitMQ.Port), zap.Error(err))
	}

	uri := amqp091.URI{
		Scheme:   "amqp",
		Host:     driverConfig.RabbitMQ.Host,
		Port:     port,
		Username: driverConfig.RabbitMQ.Username,
		Password: driverConfig.RabbitMQ.Password,
		Vhost:    "/",
	}

	conn, err := amqp091.Dial(uri.String())
	if err != nil {
		log.Fatal("Failed to connect to rabbitMQ", zap.Error(err))
	}
	log.Info("Successfully connected to rabbitMQ", zap.String("host", driverConfig.RabbitMQ.Host), zap.Int("port", port))
	return conn
}
