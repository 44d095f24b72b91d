package utils

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/dto/requests"
	"mindhaven-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name          string
		page, limit   int
		expectedPage  int
		expectedLimit int
	}{
		{"Defaults When Absent", 0, 0, 1, 10},
		{"Negative Values Fall Back", -3, -1, 1, 10},
		{"Limit Is Capped", 2, 500, 2, 100},
		{"Values Kept", 3, 25, 3, 25},
		{"Huge Page Is Clamped", math.MaxInt, 10, math.MaxInt/10 + 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePagination(tt.page, tt.limit)
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}

func TestPaginationSkip(t *testing.T) {
	assert.Equal(t, int64(0), PaginationSkip(1, 10))
	assert.Equal(t, int64(40), PaginationSkip(5, 10))

	page, limit := NormalizePagination(math.MaxInt, 7)
	assert.GreaterOrEqual(t, PaginationSkip(page, limit), int64(0))
}

func TestBuildPagination(t *testing.T) {
	assert.Equal(t, 3, BuildPagination(1, 10, 21).Pages)
	assert.Equal(t, 2, BuildPagination(1, 10, 20).Pages)
	assert.Equal(t, 0, BuildPagination(1, 10, 0).Pages)
}

func TestBuildListDoctorsRequest(t *testing.T) {
	t.Run("Parses Filters", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/doctors?specialization=%20Therapy%20&minRating=4&isVerified=true&page=2&limit=20", nil)

		request, err := BuildListDoctorsRequest(r)

		require.NoError(t, err)
		assert.Equal(t, "Therapy", request.Specialization)
		require.NotNil(t, request.MinRating)
		assert.Equal(t, 4.0, *request.MinRating)
		assert.True(t, request.VerifiedOnly)
		assert.Equal(t, 2, request.Page)
		assert.Equal(t, 20, request.Limit)
	})

	t.Run("Absent Filters", func(t *testing.T) {
		request, err := BuildListDoctorsRequest(httptest.NewRequest(http.MethodGet, "/doctors", nil))

		require.NoError(t, err)
		assert.Empty(t, request.Specialization)
		assert.Nil(t, request.MinRating)
		assert.False(t, request.VerifiedOnly)
		assert.Equal(t, 1, request.Page)
		assert.Equal(t, 10, request.Limit)
	})

	t.Run("Huge Page Keeps A Valid Skip", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/doctors?page=9223372036854775807&limit=10", nil)

		request, err := BuildListDoctorsRequest(r)

		require.NoError(t, err)
		assert.Equal(t, 10, request.Limit)
		assert.Equal(t, math.MaxInt/10+1, request.Page)
		assert.Equal(t, int64(math.MaxInt/10)*10, PaginationSkip(request.Page, request.Limit))
	})

	for _, query := range []string{"minRating=high", "page=1.5", "limit=ten"} {
		t.Run("Rejects "+query, func(t *testing.T) {
			_, err := BuildListDoctorsRequest(httptest.NewRequest(http.MethodGet, "/doctors?"+query, nil))

			var customErr *exceptions.CustomError
			require.ErrorAs(t, err, &customErr)
			assert.Equal(t, http.StatusBadRequest, customErr.StatusCode)
		})
	}
}

func TestSanitization(t *testing.T) {
	t.Run("Signup", func(t *testing.T) {
		request := &requests.Signup{
			Email:    "  Jane.Doe@Example.COM ",
			Name:     " Jane ",
			UserType: " Doctor",
			Gender:   "Female ",
		}

		SanitizeSignupRequest(request)

		assert.Equal(t, "jane.doe@example.com", request.Email)
		assert.Equal(t, "Jane", request.Name)
		assert.Equal(t, "doctor", request.UserType)
		assert.Equal(t, "female", request.Gender)
	})

	t.Run("Doctor Profile Patch", func(t *testing.T) {
		bio := "  Listens well  "
		qualification := []string{" MD ", "PhD"}
		slots := []models.AvailabilitySlot{{Day: " Monday ", StartTime: "09:00 ", EndTime: " 17:00"}}
		request := &requests.UpdateDoctorProfile{Bio: &bio, Qualification: &qualification, AvailableSlots: &slots}

		SanitizeUpdateDoctorProfileRequest(request)

		assert.Equal(t, "Listens well", *request.Bio)
		assert.Equal(t, []string{"MD", "PhD"}, *request.Qualification)
		assert.Equal(t, models.AvailabilitySlot{Day: "Monday", StartTime: "09:00", EndTime: "17:00"}, (*request.AvailableSlots)[0])
		assert.Nil(t, request.Specialization)
	})
}

func TestValidateStruct(t *testing.T) {
	t.Run("Password Byte Length", func(t *testing.T) {
		base := requests.Signup{Email: "a@b.co", Name: "Ann", UserType: "patient"}

		ascii := base
		ascii.Password = strings.Repeat("a", 72)
		assert.NoError(t, ValidateStruct(&ascii))

		ascii.Password = strings.Repeat("a", 73)
		err := ValidateStruct(&ascii)
		require.Error(t, err)
		assert.Equal(t, "password must be at most 72 bytes", exceptions.FormatAllValidationErrors(err))

		// 37 runes, 74 bytes
		multiByte := base
		multiByte.Password = strings.Repeat("é", 37)
		assert.Error(t, ValidateStruct(&multiByte))
	})

	t.Run("Signup Violations Are Joined", func(t *testing.T) {
		err := ValidateStruct(&requests.Signup{
			Email:    "not-an-email",
			Password: "123",
			Name:     "Ann",
			UserType: "patient",
		})

		require.Error(t, err)
		assert.Equal(t, "email must be a valid email, password must be at least 6 characters", exceptions.FormatAllValidationErrors(err))
	})

	t.Run("Flexible Date", func(t *testing.T) {
		base := requests.Signup{Email: "a@b.co", Password: "secret1", Name: "Ann", UserType: "patient"}

		withDate := base
		withDate.DateOfBirth = "1990-04-12"
		assert.NoError(t, ValidateStruct(&withDate))

		withTimestamp := base
		withTimestamp.DateOfBirth = "1990-04-12T00:00:00Z"
		assert.NoError(t, ValidateStruct(&withTimestamp))

		withGarbage := base
		withGarbage.DateOfBirth = "12/04/1990"
		assert.Error(t, ValidateStruct(&withGarbage))
	})

	t.Run("Availability Slots", func(t *testing.T) {
		valid := []models.AvailabilitySlot{{Day: "Friday", StartTime: "08:30", EndTime: "12:00"}}
		assert.NoError(t, ValidateStruct(&requests.UpdateDoctorProfile{AvailableSlots: &valid}))

		badDay := []models.AvailabilitySlot{{Day: "Someday"}}
		assert.Error(t, ValidateStruct(&requests.UpdateDoctorProfile{AvailableSlots: &badDay}))

		badTime := []models.AvailabilitySlot{{Day: "Friday", StartTime: "25:00"}}
		assert.Error(t, ValidateStruct(&requests.UpdateDoctorProfile{AvailableSlots: &badTime}))
	})

	t.Run("Empty Patch Is Valid", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&requests.UpdateDoctorProfile{}))
	})
}

func TestParseFlexibleDate(t *testing.T) {
	parsed, err := ParseFlexibleDate("2001-02-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseFlexibleDate("yesterday")
	assert.Error(t, err)
}

func TestGenerators(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateRequestID(), constvars.REQUEST_ID_PREFIX))
	assert.Equal(t, "TEMP-1700000000123-6650a1b2c3d4e5f601234567",
		GenerateTemporaryLicenseNumber(time.UnixMilli(1_700_000_000_123), "6650a1b2c3d4e5f601234567"))

	name := GenerateObjectName("/verification-documents/", "Scan.PDF")
	assert.True(t, strings.HasPrefix(name, "verification-documents/"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotEqual(t, name, GenerateObjectName("verification-documents", "Scan.PDF"))
}

func TestGetRequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestBuildErrorResponse(t *testing.T) {
	decode := func(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
		t.Helper()
		body := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		return body
	}

	t.Run("Custom Error", func(t *testing.T) {
		rr := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rr, exceptions.ErrEmailAlreadyExist(nil))

		assert.Equal(t, http.StatusConflict, rr.Code)
		body := decode(t, rr)
		assert.Equal(t, false, body["success"])
		assert.NotContains(t, body, "error")
	})

	t.Run("Retry After Header", func(t *testing.T) {
		rr := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rr, exceptions.ErrTooManyLoginAttempts(nil, 30))

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "30", rr.Header().Get(constvars.HeaderRetryAfter))
	})

	t.Run("Unclassified Error Exposes Detail Outside Production", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		rr := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rr, fmt.Errorf("wrapped: %w", errors.New("disk full")))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		body := decode(t, rr)
		assert.Equal(t, constvars.ErrClientSomethingWrongWithApplication, body["message"])
		assert.Equal(t, "disk full", body["error"])
	})

	t.Run("Unclassified Error Hides Detail In Production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		rr := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rr, errors.New("disk full"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, decode(t, rr), "error")
	})
}

func TestBuildSuccessResponse(t *testing.T) {
	rr := httptest.NewRecorder()

	BuildSuccessResponse(rr, http.StatusCreated, "done", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, constvars.MIMEApplicationJSON, rr.Header().Get(constvars.HeaderContentType))
	assert.JSONEq(t, `{"success":true,"message":"done","data":{"id":"1"}}`, rr.Body.String())
}
