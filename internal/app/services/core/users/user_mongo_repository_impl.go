package users

import (
	"context"
	"errors"
	"mindhaven-service/internal/app/contracts"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// publicProjection keeps the password digest out of every identity read
// except FindCredentialsByEmail.
var publicProjection = bson.M{"password": 0}

type UserMongoRepository struct {
	Collection *mongo.Collection
}

func NewUserMongoRepository(db *mongo.Database) contracts.UserRepository {
	return &UserMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionUsers),
	}
}

func (r *UserMongoRepository) CreateUser(ctx context.Context, user *models.CredentialUser) (string, error) {
	result, err := r.Collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrEmailAlreadyExist(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err, constvars.MongoCollectionUsers)
	}

	userID := result.InsertedID.(primitive.ObjectID)
	user.ID = userID
	return userID.Hex(), nil
}

// FindPublicByID returns nil, nil when the id is malformed or unknown.
func (r *UserMongoRepository) FindPublicByID(ctx context.Context, userID string) (*models.PublicUser, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}
	return r.findOnePublic(ctx, bson.M{"_id": objectID})
}

func (r *UserMongoRepository) FindPublicByEmail(ctx context.Context, email string) (*models.PublicUser, error) {
	return r.findOnePublic(ctx, bson.M{"email": email})
}

func (r *UserMongoRepository) FindCredentialsByEmail(ctx context.Context, email string) (*models.CredentialUser, error) {
	var user models.CredentialUser
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err, constvars.MongoCollectionUsers)
	}
	return &user, nil
}

// FindDoctorsWithoutProfile lists doctor identities with no companion
// profile document, left behind by a non-transactional signup that failed
// half-way.
func (r *UserMongoRepository) FindDoctorsWithoutProfile(ctx context.Context) ([]models.PublicUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userType": models.RoleDoctor}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         constvars.MongoCollectionDoctors,
			"localField":   "_id",
			"foreignField": "userId",
			"as":           "profile",
		}}},
		{{Key: "$match", Value: bson.M{"profile": bson.M{"$size": 0}}}},
		{{Key: "$project", Value: bson.M{"password": 0, "profile": 0}}},
	}

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBAggregate(err, constvars.MongoCollectionUsers)
	}
	defer cursor.Close(ctx)

	users := make([]models.PublicUser, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, exceptions.ErrMongoDBDecodeDocument(err, constvars.MongoCollectionUsers)
	}
	return users, nil
}

func (r *UserMongoRepository) SetActive(ctx context.Context, userID string, active bool) error {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return exceptions.ErrUserNotExist(err)
	}

	update := bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err, constvars.MongoCollectionUsers)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrUserNotExist(nil)
	}
	return nil
}

func (r *UserMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{
			Keys:    bson.D{{Key: "userType", Value: 1}},
			Options: options.Index().SetName("userType"),
		},
	}

	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return exceptions.ErrMongoDBCreateIndexes(err, constvars.MongoCollectionUsers)
	}
	return nil
}

func (r *UserMongoRepository) findOnePublic(ctx context.Context, filter bson.M) (*models.PublicUser, error) {
	var user models.PublicUser
	err := r.Collection.FindOne(ctx, filter, options.FindOne().SetProjection(publicProjection)).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err, constvars.MongoCollectionUsers)
	}
	return &user, nil
}
