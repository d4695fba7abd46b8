package payment

import (
	"net/http"

	sharedError "github.com/dojolanza/cuotas/go-api-server/internal/shared/error"
)

const (
	paymentNotFound = "PAYMENT_NOT_FOUND" // errInfo
)

var (
	ErrPaymentNotFound = sharedError.NewDomainError(paymentNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(paymentNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "PAYMENT-001",
		Message: "Pago no encontrado.",
	})
}
