package auth

import (
	"net/http"

	sharedError "github.com/dojolanza/cuotas/go-api-server/internal/shared/error"
)

const (
	invalidCredentials = "INVALID_CREDENTIALS" // errInfo
	userNotFound       = "USER_NOT_FOUND"      // errInfo
)

var (
	ErrInvalidCredentials = sharedError.NewDomainError(invalidCredentials)
	ErrUserNotFound       = sharedError.NewDomainError(userNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidCredentials, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-001",
		Message: "Usuario o contraseña incorrectos.",
	})

	sharedError.RegisterDomainErrorResponse(userNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "AUTH-002",
		Message: "Usuario no encontrado.",
	})
}
