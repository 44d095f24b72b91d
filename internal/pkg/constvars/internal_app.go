package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_IDENTITY_KEY             ContextKey = "identity"
)

const (
	REQUEST_ID_PREFIX = "MNDHVN_SVC_"
)

const (
	MongoCollectionUsers   = "users"
	MongoCollectionDoctors = "doctors"
)

const (
	DoctorPlaceholderSpecialization = "General"
	DoctorPlaceholderQualification  = "To be updated"
	DoctorTemporaryLicenseFormat    = "TEMP-%d-%s"
)

const (
	PaginationDefaultPage  = 1
	PaginationDefaultLimit = 10
	PaginationMaxLimit     = 100
)

const (
	LoginLimiterGroupName = "LOGIN_ATTEMPT"
)

const (
	QueueWelcomeEmailSubject = "Welcome to Mind Haven"
)

const (
	DocumentFormField = "document"
)
