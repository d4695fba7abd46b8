package payment

import (
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
)

const dateLayout = "2006-01-02"

type CreatePaymentRequest struct {
	MemberID      uint32  `json:"memberId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	MonthYear     string  `json:"monthYear" binding:"required,monthyear"`
	PaymentMethod string  `json:"paymentMethod" binding:"omitempty,oneof=efectivo transferencia tarjeta"`
	PaymentDate   string  `json:"paymentDate" binding:"omitempty,datetime=2006-01-02"`
	Notes         string  `json:"notes" binding:"omitempty,max=2000"`
}

type ListPaymentsQuery struct {
	MemberID  uint32 `form:"memberId"`
	MonthYear string `form:"monthYear" binding:"omitempty,monthyear"`
}

type PaymentResponse struct {
	ID            uint32  `json:"id"`
	MemberID      uint32  `json:"memberId"`
	MemberName    string  `json:"memberName,omitempty"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"paymentDate"`
	MonthYear     string  `json:"monthYear"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         string  `json:"notes,omitempty"`
	ReceiptNumber string  `json:"receiptNumber"`
}

// OverdueMemberResponse is a member annotated with the billing period it is
// overdue for.
type OverdueMemberResponse struct {
	ID            uint32 `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email,omitempty"`
	Belt          string `json:"belt"`
	JoinDate      string `json:"joinDate"`
	OverduePeriod string `json:"overduePeriod"`
}

type OverdueResponse struct {
	Period       string                  `json:"period"`
	TotalOverdue int                     `json:"totalOverdue"`
	Members      []OverdueMemberResponse `json:"members"`
}

func toPaymentResponse(p *model.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:            p.ID,
		MemberID:      p.MemberID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate.Format(dateLayout),
		MonthYear:     p.MonthYear,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		ReceiptNumber: p.ReceiptNumber,
	}
	if p.Member != nil {
		resp.MemberName = p.Member.FullName()
	}
	return resp
}
