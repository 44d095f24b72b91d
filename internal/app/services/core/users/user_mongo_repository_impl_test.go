package users

import (
	"context"
	"errors"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/pkg/exceptions"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func userDocument(id primitive.ObjectID, withPassword bool) bson.D {
	doc := bson.D{
		{Key: "_id", Value: id},
		{Key: "email", Value: "jane@example.com"},
		{Key: "name", Value: "Jane"},
		{Key: "userType", Value: "doctor"},
		{Key: "isActive", Value: true},
	}
	if withPassword {
		doc = append(doc, bson.E{Key: "password", Value: "$2a$10$digest"})
	}
	return doc
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected CustomError, got %v", err)
	assert.Equal(t, status, customErr.StatusCode)
}

func TestUserMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("CreateUser Returns Hex ID", func(mt *mtest.T) {
		repo := &UserMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &models.CredentialUser{
			PublicUser:   models.PublicUser{ID: primitive.NewObjectID(), Email: "jane@example.com", UserType: models.RolePatient},
			PasswordHash: "$2a$10$digest",
		}
		id, err := repo.CreateUser(ctx, user)

		require.NoError(mt, err)
		assert.Equal(mt, user.ID.Hex(), id)
	})

	mt.Run("CreateUser Duplicate Email", func(mt *mtest.T) {
		repo := &UserMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: email_unique",
		}))

		_, err := repo.CreateUser(ctx, &models.CredentialUser{PublicUser: models.PublicUser{Email: "jane@example.com"}})

		requireStatus(mt.T, err, http.StatusConflict)
	})

	mt.Run("FindPublicByID Found", func(mt *mtest.T) {
		repo := &UserMongoRepository{Collection: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "mindhaven.users", mtest.FirstBatch, userDocument(id, false)))

		user, err := repo.FindPublicByID(ctx, id.Hex())

		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, models.RoleDoctor, user.UserType)
	})

	mt.Run("FindPublicByID Malformed ID", func(mt *mtest.T) {
		repo := &UserMongoRepository{Collection: mt.Coll}

		user, err := repo.FindPublicByID(ctx, "not-an-object-id")

		assert.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("FindPublicByEmail Not Found", func(mt *mtest.T) {
		repo := &UserMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mindhaven.users", mtest.FirstBatch))

		user, err := repo.FindPublicByEmail(ctx, "nobody@example.com")

		assert.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("FindPublicByEmail Store Failure", func(mt *mtest.T) {
		repo := &UserMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad value"}))

		_, err := repo.FindPublicByEmail(ctx, "jane@example.com")

		requireStatus(mt.T, err, http.StatusInternalServerError)
	})

	mt.Run("FindCredentialsByEmail Carries Digest", func(mt *mtest.T) {
		repo := &UserMongoRepository{Collection: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "mindhaven.users", mtest.FirstBatch, userDocument(id, true)))

		user, err := repo.FindCredentialsByEmail(ctx, "jane@example.com")

		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, "$2a$10$digest", user.PasswordHash)
		assert.Equal(mt, "jane@example.com", user.Email)
	})

	mt.Run("FindDoctorsWithoutProfile", func(mt *mtest.T) {
		repo := &UserMongoRepository{Collection: mt.Coll}
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mindhaven.users", mtest.FirstBatch,
			userDocument(first, false),
			userDocument(second, false),
		))

		users, err := repo.FindDoctorsWithoutProfile(ctx)

		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, first, users[0].ID)
		assert.Equal(mt, second, users[1].ID)
	})

	mt.Run("SetActive Unknown User", func(mt *mtest.T) {
		repo := &UserMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := repo.SetActive(ctx, primitive.NewObjectID().Hex(), false)

		requireStatus(mt.T, err, http.StatusNotFound)
	})

	mt.Run("SetActive Succeeds", func(mt *mtest.T) {
		repo := &UserMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})

		err := repo.SetActive(ctx, primitive.NewObjectID().Hex(), false)

		assert.NoError(mt, err)
	})

	mt.Run("EnsureIndexes", func(mt *mtest.T) {
		repo := &UserMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.EnsureIndexes(ctx))
	})
}
