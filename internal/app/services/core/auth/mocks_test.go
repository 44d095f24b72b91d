package auth

import (
	"context"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.CredentialUser) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) FindPublicByID(ctx context.Context, userID string) (*models.PublicUser, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.PublicUser)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindPublicByEmail(ctx context.Context, email string) (*models.PublicUser, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.PublicUser)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindCredentialsByEmail(ctx context.Context, email string) (*models.CredentialUser, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.CredentialUser)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindDoctorsWithoutProfile(ctx context.Context) ([]models.PublicUser, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.PublicUser)
	return users, args.Error(1)
}

func (m *MockUserRepository) SetActive(ctx context.Context, userID string, active bool) error {
	args := m.Called(ctx, userID, active)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	args := m.Called(ctx, doctor)
	return args.String(0), args.Error(1)
}

func (m *MockDoctorRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error) {
	args := m.Called(ctx, userID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *MockDoctorRepository) FindDetailByID(ctx context.Context, doctorID string) (*models.DoctorDetail, error) {
	args := m.Called(ctx, doctorID)
	detail, _ := args.Get(0).(*models.DoctorDetail)
	return detail, args.Error(1)
}

func (m *MockDoctorRepository) FindDetailByUserID(ctx context.Context, userID primitive.ObjectID) (*models.DoctorDetail, error) {
	args := m.Called(ctx, userID)
	detail, _ := args.Get(0).(*models.DoctorDetail)
	return detail, args.Error(1)
}

func (m *MockDoctorRepository) FindDetails(ctx context.Context, filter models.DoctorFilter, page, limit int) ([]models.DoctorDetail, error) {
	args := m.Called(ctx, filter, page, limit)
	details, _ := args.Get(0).([]models.DoctorDetail)
	return details, args.Error(1)
}

func (m *MockDoctorRepository) CountDoctors(ctx context.Context, filter models.DoctorFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDoctorRepository) UpdateProfile(ctx context.Context, userID primitive.ObjectID, patch *models.DoctorPatch) (*models.Doctor, error) {
	args := m.Called(ctx, userID, patch)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *MockDoctorRepository) PushVerificationDocument(ctx context.Context, userID primitive.ObjectID, objectName string) (*models.Doctor, error) {
	args := m.Called(ctx, userID, objectName)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *MockDoctorRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) CreateToken(ctx context.Context, claims *models.SessionClaims) (string, error) {
	args := m.Called(ctx, claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) VerifyToken(ctx context.Context, token string) *models.SessionClaims {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*models.SessionClaims)
	return claims
}

type MockLoginLimiter struct {
	mock.Mock
}

func (m *MockLoginLimiter) Allow(ctx context.Context, email string) (bool, int, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Int(1), args.Error(2)
}

type MockMailerService struct {
	mock.Mock
}

func (m *MockMailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

// fakeTransactor runs fn inline and records that a transaction was requested.
type fakeTransactor struct {
	calls int
	err   error
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}
