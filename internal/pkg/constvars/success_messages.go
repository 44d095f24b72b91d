package constvars

const (
	ResponseSuccess                      = "Success"
	ResponseUnknown                      = "unknown"
	ResponseSignupSucceeded              = "User registered successfully"
	ResponseLoginSucceeded               = "Login successful"
	ResponseAccountDeactivated           = "Account deactivated successfully"
	ResponseDoctorProfileUpdated         = "Doctor profile updated successfully"
	ResponseVerificationDocumentUploaded = "Verification document uploaded successfully"
	ResponseHealthy                      = "healthy"
	ResponseDatabaseConnectionActive     = "Database connection is active"
)
