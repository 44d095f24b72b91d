package utils

import (
	"mindhaven-service/internal/pkg/dto/requests"
	"mindhaven-service/internal/pkg/exceptions"
	"net/http"
	"strconv"
	"strings"
)

// BuildListDoctorsRequest reads the directory filters from the query string.
// Absent numbers fall back to defaults; malformed numbers are rejected.
func BuildListDoctorsRequest(r *http.Request) (*requests.ListDoctors, error) {
	query := r.URL.Query()
	request := &requests.ListDoctors{
		Specialization: strings.TrimSpace(query.Get("specialization")),
		VerifiedOnly:   query.Get("isVerified") == "true",
	}

	if raw := strings.TrimSpace(query.Get("minRating")); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, exceptions.ErrInvalidFormat(err, "minRating")
		}
		request.MinRating = &minRating
	}

	page, err := parseOptionalInt(query.Get("page"))
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "page")
	}
	limit, err := parseOptionalInt(query.Get("limit"))
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "limit")
	}
	request.Page, request.Limit = NormalizePagination(page, limit)

	return request, nil
}

func parseOptionalInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
