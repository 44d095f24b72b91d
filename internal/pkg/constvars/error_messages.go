package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"email":         "must be a valid email",
	"min":           "must be at least %s",
	"max":           "must be at most %s",
	"len":           "must be %s characters long",
	"oneof":         "must be one of [%s]",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"lt":            "must be less than %s",
	"lte":           "must be less than or equal to %s",
	"numeric":       "must be a number",
	"flexible_date": "must be a date in YYYY-MM-DD or RFC3339 format",
	"clock_time":    "must be a time in HH:MM format",
	"week_day":      "must be a day of the week",
	"max_bytes":     "must be at most %s bytes",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,

	"max_bytes": true,
}

// Error messages for clients
const (
	ErrClientSomethingWrongWithApplication = "Internal server error"
	ErrClientCannotProcessRequest          = "Cannot process your request, please check your input"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again later"
	ErrClientTooManyRequests               = "Too many requests, please try again later"
	ErrClientTooManyLoginAttempts          = "Too many login attempts, please try again later"
	ErrClientServiceUnavailable            = "Database connection failed"

	ErrClientSignupMissingFields       = "Please provide all required fields: email, password, name, userType"
	ErrClientSignupInvalidUserType     = `User type must be either "patient" or "doctor"`
	ErrClientEmailAlreadyExists        = "User with this email already exists"
	ErrClientLicenseAlreadyExists      = "Doctor with this license number already exists"
	ErrClientLoginMissingFields        = "Please provide email and password"
	ErrClientInvalidEmailOrPassword    = "Invalid email or password"
	ErrClientAccountDeactivatedAtLogin = "Your account has been deactivated. Please contact support."

	ErrClientNotAuthorizedNoToken  = "Not authorized to access this route. No token provided."
	ErrClientNotAuthorized         = "Not authorized to access this route"
	ErrClientInvalidOrExpiredToken = "Invalid or expired token"
	ErrClientUserNotFound          = "User not found"
	ErrClientAccountDeactivated    = "Your account has been deactivated"
	ErrClientOnlyDoctors           = "Access denied. Only doctors can access this route."
	ErrClientOnlyPatients          = "Access denied. Only patients can access this route."

	ErrClientDoctorNotFound        = "Doctor not found"
	ErrClientDoctorProfileNotFound = "Doctor profile not found"
	ErrClientInvalidDocument       = "Document must be a PDF, JPEG or PNG file within the size limit"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON body"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm   = "cannot parse multipart form"
	ErrDevInvalidFormat              = "invalid format of %s"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevPanicRecovered             = "panic recovered"
	ErrDevRateLimited                = "rate limit exceeded"
	ErrDevMissingRequiredFields      = "missing required fields"
	ErrDevInvalidUserType            = "invalid user type"
	ErrDevEmailAlreadyExists         = "email already exists"
	ErrDevLicenseAlreadyExists       = "license number already exists"
	ErrDevInvalidCredentials         = "invalid credentials"
	ErrDevAccountDeactivated         = "account is deactivated"
	ErrDevFailedToHashPassword       = "failed to hash password"
	ErrDevAuthTokenMissing           = "auth token missing"
	ErrDevAuthTokenInvalidOrExpired  = "auth token invalid or expired"
	ErrDevAuthGenerateToken          = "failed to generate auth token"
	ErrDevAuthIdentityLookupFailed   = "failed to load identity for token"
	ErrDevUserNotExists              = "user does not exist"
	ErrDevIdentityMissingFromContext = "identity missing from request context"
	ErrDevRoleMismatch               = "role mismatch, expected %s"
	ErrDevDoctorNotExists            = "doctor does not exist"
	ErrDevDocumentValidationFailed   = "document validation failed"

	ErrDevMongoFindDocument   = "failed to find document in %s"
	ErrDevMongoCountDocument  = "failed to count documents in %s"
	ErrDevMongoInsertDocument = "failed to insert document into %s"
	ErrDevMongoUpdateDocument = "failed to update document in %s"
	ErrDevMongoDecodeDocument = "failed to decode document from %s"
	ErrDevMongoAggregate      = "failed to aggregate %s"
	ErrDevMongoCreateIndexes  = "failed to create indexes on %s"
	ErrDevMongoTransaction    = "mongo transaction failed"
	ErrDevMongoPing           = "failed to ping mongo"
	ErrDevRedisIncrement      = "failed to increment redis key"
	ErrDevMinioCreateObject   = "failed to create object in bucket %s"
	ErrDevRabbitMQPublish     = "failed to publish message to queue %s"
)
