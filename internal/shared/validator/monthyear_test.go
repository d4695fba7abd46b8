package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMonthYear(t *testing.T) {
	valid := []string{"2026-01", "2026-08", "1999-12", "2030-09"}
	for _, value := range valid {
		assert.True(t, monthYearRegex.MatchString(value), value)
	}

	invalid := []string{"2026-13", "2026-00", "08-2026", "2026/08", "2026-8", "202608", ""}
	for _, value := range invalid {
		assert.False(t, monthYearRegex.MatchString(value), value)
	}
}
