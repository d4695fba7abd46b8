package member

import (
	"net/http"

	sharedError "github.com/dojolanza/cuotas/go-api-server/internal/shared/error"
)

const (
	memberNotFound = "MEMBER_NOT_FOUND" // errInfo
)

var (
	ErrMemberNotFound = sharedError.NewDomainError(memberNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "Miembro no encontrado.",
	})
}
