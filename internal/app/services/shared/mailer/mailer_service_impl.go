package mailer

import (
	"context"
	"mindhaven-service/internal/app/contracts"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/dto/requests"
	"mindhaven-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// publisher is the subset of *amqp091.Channel the mailer needs.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type mailerService struct {
	channel publisher
	queue   string
	log     *zap.Logger
}

// NewMailerService opens a channel on conn and declares the durable mailer queue.
// Delivery of the mail itself is left to whichever worker consumes the queue.
func NewMailerService(conn *amqp091.Connection, queue string, log *zap.Logger) (contracts.MailerService, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return newMailerService(channel, queue, log), nil
}

func newMailerService(channel publisher, queue string, log *zap.Logger) *mailerService {
	return &mailerService{
		channel: channel,
		queue:   queue,
		log:     log,
	}
}

func (s *mailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(request)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Headers: amqp091.Table{
			"message_type":     "JSON",
			"requeue_strategy": "DROP",
		},
	}

	err = s.channel.PublishWithContext(ctx, "", s.queue, false, false, message)
	if err != nil {
		s.log.Error("mailerService.SendEmail error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, s.queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublish(err, s.queue)
	}

	s.log.Info("mailerService.SendEmail succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, s.queue),
		zap.Strings("to", request.To),
	)
	return nil
}
