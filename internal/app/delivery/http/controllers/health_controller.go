package controllers

import (
	"context"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/dto/responses"
	"mindhaven-service/internal/pkg/exceptions"
	"mindhaven-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthController struct {
	Log       *zap.Logger
	Database  Pinger
	StartedAt time.Time
	now       func() time.Time
}

func NewHealthController(logger *zap.Logger, database Pinger, startedAt time.Time) *HealthController {
	return &HealthController{
		Log:       logger,
		Database:  database,
		StartedAt: startedAt,
		now:       time.Now,
	}
}

func (ctrl *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	now := ctrl.now()
	utils.WriteJSON(w, constvars.StatusOK, responses.Health{
		Success:   true,
		Status:    constvars.ResponseHealthy,
		Uptime:    now.Sub(ctrl.StartedAt).Seconds(),
		Timestamp: now.UTC(),
	})
}

func (ctrl *HealthController) TestDatabase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := ctrl.Database.Ping(ctx, readpref.Primary())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMongoDBPing(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseDatabaseConnectionActive, nil)
}
