package validator

import (
	"errors"
	"fmt"

	sharedError "github.com/dojolanza/cuotas/go-api-server/internal/shared/error"
	"github.com/go-playground/validator/v10"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	// Sólo el primer error de validación (más amigable para el usuario)
	fieldErr := validationErrors[0]
	message := getErrorMessage(fieldErr)

	resp := sharedError.ValidationFailed
	resp.Message = message
	return &resp, true
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo '%s' es obligatorio.", fe.Field())
	case "email":
		return "El formato del correo electrónico no es válido."
	case "min":
		return fmt.Sprintf("Debe tener al menos %s caracteres.", fe.Param())
	case "max":
		return fmt.Sprintf("Debe tener como máximo %s caracteres.", fe.Param())
	case "gt":
		return fmt.Sprintf("El campo '%s' debe ser mayor que %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("El campo '%s' debe ser uno de: %s.", fe.Field(), fe.Param())
	case "monthyear":
		return "El período debe tener el formato YYYY-MM."
	case "datetime":
		return fmt.Sprintf("El campo '%s' debe tener el formato de fecha %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("El campo '%s' no es válido.", fe.Field())
	}
}
