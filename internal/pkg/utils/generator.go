package utils

import (
	"fmt"
	"mindhaven-service/internal/pkg/constvars"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

// GenerateTemporaryLicenseNumber keeps the millisecond base and appends the
// owner's id, so two placeholders created in the same millisecond differ.
func GenerateTemporaryLicenseNumber(now time.Time, ownerID string) string {
	return fmt.Sprintf(constvars.DoctorTemporaryLicenseFormat, now.UnixMilli(), ownerID)
}

// GenerateObjectName builds a collision-free object key under prefix that
// keeps the original file extension.
func GenerateObjectName(prefix, originalFileName string) string {
	extension := strings.ToLower(path.Ext(originalFileName))
	return fmt.Sprintf("%s/%s%s", strings.Trim(prefix, "/"), uuid.New().String(), extension)
}
