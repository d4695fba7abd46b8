package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// monthYearRegex matches billing periods in the exact form YYYY-MM,
	// the same textual form stored in payments.month_year.
	monthYearRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// ValidateMonthYear validates a billing period identifier (e.g. 2025-03).
func ValidateMonthYear(fl validator.FieldLevel) bool {
	return monthYearRegex.MatchString(fl.Field().String())
}
