package database

import (
	"context"
	"mindhaven-service/internal/app/contracts"

	"go.mongodb.org/mongo-driver/mongo"
)

type mongoTransactor struct {
	client *mongo.Client
}

func NewMongoTransactor(client *mongo.Client) contracts.Transactor {
	return &mongoTransactor{client: client}
}

// WithTransaction runs fn in a multi-document transaction. The context passed
// to fn carries the session, so repositories called with it join the transaction.
func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessionCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessionCtx)
	})
	return err
}
