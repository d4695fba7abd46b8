package payment

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/alert"
	sharedError "github.com/dojolanza/cuotas/go-api-server/internal/shared/error"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService *PaymentService
	resolver       *alert.Resolver
}

func NewPaymentHandler(paymentService *PaymentService, resolver *alert.Resolver) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		resolver:       resolver,
	}
}

func (h *PaymentHandler) List(c *gin.Context) {
	var query ListPaymentsQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	responses, err := h.paymentService.List(c.Request.Context(), &query)
	if err != nil {
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, responses)
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var request CreatePaymentRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.paymentService.Create(c.Request.Context(), &request)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Overdue lists the active members with no payment for the current period.
func (h *PaymentHandler) Overdue(c *gin.Context) {
	period := alert.CurrentPeriod(time.Now())

	members, err := h.resolver.FindOverdue(c.Request.Context(), period)
	if err != nil {
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	response := OverdueResponse{
		Period:       period,
		TotalOverdue: len(members),
		Members:      make([]OverdueMemberResponse, 0, len(members)),
	}
	for i := range members {
		m := &members[i]
		response.Members = append(response.Members, OverdueMemberResponse{
			ID:            m.ID,
			FirstName:     m.FirstName,
			LastName:      m.LastName,
			Email:         m.Email,
			Belt:          m.Belt,
			JoinDate:      m.JoinDate.Format(dateLayout),
			OverduePeriod: period,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Receipt streams the payment receipt as a PDF download.
func (h *PaymentHandler) Receipt(c *gin.Context) {
	id, ok := handler.ParseIDParam(c)
	if !ok {
		return
	}

	document, filename, err := h.paymentService.Receipt(c.Request.Context(), id)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", document)
}
