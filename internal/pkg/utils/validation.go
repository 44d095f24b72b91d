package utils

import (
	"mindhaven-service/internal/app/models"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate        *validator.Validate
	clockTimeRegexp = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	validate.RegisterValidation("flexible_date", validateFlexibleDate)
	validate.RegisterValidation("clock_time", validateClockTime)
	validate.RegisterValidation("week_day", validateWeekDay)
	validate.RegisterValidation("max_bytes", validateMaxBytes)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateFlexibleDate(fl validator.FieldLevel) bool {
	_, err := ParseFlexibleDate(fl.Field().String())
	return err == nil
}

// validateMaxBytes bounds the encoded length; max counts runes.
func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func validateClockTime(fl validator.FieldLevel) bool {
	return clockTimeRegexp.MatchString(fl.Field().String())
}

func validateWeekDay(fl validator.FieldLevel) bool {
	day := fl.Field().String()
	for _, weekday := range models.Weekdays {
		if day == weekday {
			return true
		}
	}
	return false
}
