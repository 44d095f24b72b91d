package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingErrorKey          = "error"
	LoggingUserIDKey         = "user_id"
	LoggingDoctorIDKey       = "doctor_id"
	LoggingEmailKey          = "email"
	LoggingRoleKey           = "role"
	LoggingCountKey          = "count"
	LoggingCollectionKey     = "collection"
	LoggingBucketKey         = "bucket"
	LoggingQueueKey          = "queue"
	LoggingDurationKey       = "duration"
	LoggingOperationKey      = "operation"
	LoggingSuccessKey        = "success"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingResponseLengthKey = "response_length"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRouteKey          = "route"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
)
