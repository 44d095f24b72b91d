package doctors

import (
	"context"
	"errors"
	"mindhaven-service/internal/app/contracts"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/exceptions"
	"mindhaven-service/internal/pkg/utils"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Database) contracts.DoctorRepository {
	return &DoctorMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionDoctors),
	}
}

func (r *DoctorMongoRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	result, err := r.Collection.InsertOne(ctx, doctor)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrLicenseNumberAlreadyExist(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err, constvars.MongoCollectionDoctors)
	}

	doctorID := result.InsertedID.(primitive.ObjectID)
	doctor.ID = doctorID
	return doctorID.Hex(), nil
}

func (r *DoctorMongoRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.Collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err, constvars.MongoCollectionDoctors)
	}
	return &doctor, nil
}

// FindDetailByID returns nil, nil for a malformed or unknown id.
func (r *DoctorMongoRepository) FindDetailByID(ctx context.Context, doctorID string) (*models.DoctorDetail, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, nil
	}
	return r.findOneDetail(ctx, bson.M{"_id": objectID})
}

func (r *DoctorMongoRepository) FindDetailByUserID(ctx context.Context, userID primitive.ObjectID) (*models.DoctorDetail, error) {
	return r.findOneDetail(ctx, bson.M{"userId": userID})
}

// FindDetails returns one page of doctors ordered by rating then review
// count, both descending, with their owners joined in.
func (r *DoctorMongoRepository) FindDetails(ctx context.Context, filter models.DoctorFilter, page, limit int) ([]models.DoctorDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildDoctorQuery(filter)}},
		{{Key: "$sort", Value: bson.D{{Key: "rating", Value: -1}, {Key: "totalReviews", Value: -1}}}},
		{{Key: "$skip", Value: utils.PaginationSkip(page, limit)}},
		{{Key: "$limit", Value: int64(limit)}},
	}
	pipeline = append(pipeline, ownerLookupStages()...)

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBAggregate(err, constvars.MongoCollectionDoctors)
	}
	defer cursor.Close(ctx)

	doctors := make([]models.DoctorDetail, 0, limit)
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, exceptions.ErrMongoDBDecodeDocument(err, constvars.MongoCollectionDoctors)
	}
	return doctors, nil
}

func (r *DoctorMongoRepository) CountDoctors(ctx context.Context, filter models.DoctorFilter) (int64, error) {
	total, err := r.Collection.CountDocuments(ctx, buildDoctorQuery(filter))
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocument(err, constvars.MongoCollectionDoctors)
	}
	return total, nil
}

// UpdateProfile sets only the non-nil fields of patch and returns the
// updated document. A missing profile yields nil, nil.
func (r *DoctorMongoRepository) UpdateProfile(ctx context.Context, userID primitive.ObjectID, patch *models.DoctorPatch) (*models.Doctor, error) {
	fields, err := patchToSet(patch)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	fields["updatedAt"] = time.Now()

	doctor, err := r.findOneAndUpdate(ctx, userID, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrLicenseNumberAlreadyExist(err)
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err, constvars.MongoCollectionDoctors)
	}
	return doctor, nil
}

func (r *DoctorMongoRepository) PushVerificationDocument(ctx context.Context, userID primitive.ObjectID, objectName string) (*models.Doctor, error) {
	update := bson.M{
		"$push": bson.M{"verificationDocuments": objectName},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	doctor, err := r.findOneAndUpdate(ctx, userID, update)
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err, constvars.MongoCollectionDoctors)
	}
	return doctor, nil
}

func (r *DoctorMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("userId_unique"),
		},
		{
			Keys:    bson.D{{Key: "licenseNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("licenseNumber_unique"),
		},
		{
			Keys:    bson.D{{Key: "specialization", Value: 1}},
			Options: options.Index().SetName("specialization"),
		},
		{
			Keys:    bson.D{{Key: "rating", Value: -1}, {Key: "totalReviews", Value: -1}},
			Options: options.Index().SetName("rating_totalReviews"),
		},
		{
			Keys:    bson.D{{Key: "isVerified", Value: 1}},
			Options: options.Index().SetName("isVerified"),
		},
	}

	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return exceptions.ErrMongoDBCreateIndexes(err, constvars.MongoCollectionDoctors)
	}
	return nil
}

func (r *DoctorMongoRepository) findOneDetail(ctx context.Context, match bson.M) (*models.DoctorDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$limit", Value: int64(1)}},
	}
	pipeline = append(pipeline, ownerLookupStages()...)

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBAggregate(err, constvars.MongoCollectionDoctors)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, exceptions.ErrMongoDBAggregate(err, constvars.MongoCollectionDoctors)
		}
		return nil, nil
	}

	var detail models.DoctorDetail
	if err := cursor.Decode(&detail); err != nil {
		return nil, exceptions.ErrMongoDBDecodeDocument(err, constvars.MongoCollectionDoctors)
	}
	return &detail, nil
}

// findOneAndUpdate returns the raw driver error so callers can classify it.
func (r *DoctorMongoRepository) findOneAndUpdate(ctx context.Context, userID primitive.ObjectID, update bson.M) (*models.Doctor, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doctor models.Doctor
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

// ownerLookupStages joins the owning identity, restricted to its public
// contact fields.
func ownerLookupStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from": constvars.MongoCollectionUsers,
			"let":  bson.M{"ownerId": "$userId"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$ownerId"}}}},
				bson.M{"$project": bson.M{"name": 1, "email": 1, "phone": 1, "profileImage": 1}},
			},
			"as": "owner",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$owner", "preserveNullAndEmptyArrays": true}}},
	}
}

func buildDoctorQuery(filter models.DoctorFilter) bson.M {
	query := bson.M{}
	if filter.Specialization != "" {
		query["specialization"] = bson.M{"$regex": regexp.QuoteMeta(filter.Specialization), "$options": "i"}
	}
	if filter.MinRating != nil {
		query["rating"] = bson.M{"$gte": *filter.MinRating}
	}
	if filter.VerifiedOnly {
		query["isVerified"] = true
	}
	return query
}

func patchToSet(patch *models.DoctorPatch) (bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
