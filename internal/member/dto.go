package member

import (
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/model"
)

const dateLayout = "2006-01-02"

type CreateMemberRequest struct {
	FirstName   string  `json:"firstName" binding:"required,min=1,max=100"`
	LastName    string  `json:"lastName" binding:"required,min=1,max=100"`
	Email       string  `json:"email" binding:"omitempty,email,max=255"`
	Phone       string  `json:"phone" binding:"omitempty,max=50"`
	DateOfBirth string  `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	JoinDate    string  `json:"joinDate" binding:"omitempty,datetime=2006-01-02"`
	Belt        string  `json:"belt" binding:"omitempty,oneof=blanco amarillo naranja verde azul marron negro"`
	IsActive    *bool   `json:"isActive"`
	Notes       string  `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateMemberRequest uses pointers so only fields present in the payload
// are touched; absent sensitive fields keep their stored ciphertext.
type UpdateMemberRequest struct {
	FirstName   *string `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName    *string `json:"lastName" binding:"omitempty,min=1,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	DateOfBirth *string `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	JoinDate    *string `json:"joinDate" binding:"omitempty,datetime=2006-01-02"`
	Belt        *string `json:"belt" binding:"omitempty,oneof=blanco amarillo naranja verde azul marron negro"`
	IsActive    *bool   `json:"isActive"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
}

type ListMembersQuery struct {
	Search string `form:"search"`
	Belt   string `form:"belt" binding:"omitempty,oneof=blanco amarillo naranja verde azul marron negro"`
	Active *bool  `form:"active"`
}

type MemberResponse struct {
	ID          uint32 `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	JoinDate    string `json:"joinDate"`
	Belt        string `json:"belt"`
	IsActive    bool   `json:"isActive"`
	Notes       string `json:"notes,omitempty"`
}

// MemberPaymentResponse is the payment summary embedded in a member detail.
type MemberPaymentResponse struct {
	ID            uint32  `json:"id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"paymentDate"`
	MonthYear     string  `json:"monthYear"`
	PaymentMethod string  `json:"paymentMethod"`
	ReceiptNumber string  `json:"receiptNumber"`
}

type MemberDetailResponse struct {
	MemberResponse
	Payments []MemberPaymentResponse `json:"payments"`
}

func toMemberResponse(m *model.Member) MemberResponse {
	resp := MemberResponse{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Phone:     m.Phone,
		JoinDate:  m.JoinDate.Format(dateLayout),
		Belt:      m.Belt,
		IsActive:  m.IsActive,
		Notes:     m.Notes,
	}
	if m.DateOfBirth != nil {
		resp.DateOfBirth = m.DateOfBirth.Format(dateLayout)
	}
	return resp
}

func toMemberDetailResponse(m *model.Member) *MemberDetailResponse {
	detail := &MemberDetailResponse{
		MemberResponse: toMemberResponse(m),
		Payments:       make([]MemberPaymentResponse, 0, len(m.Payments)),
	}
	for _, p := range m.Payments {
		detail.Payments = append(detail.Payments, MemberPaymentResponse{
			ID:            p.ID,
			Amount:        p.Amount,
			PaymentDate:   p.PaymentDate.Format(dateLayout),
			MonthYear:     p.MonthYear,
			PaymentMethod: p.PaymentMethod,
			ReceiptNumber: p.ReceiptNumber,
		})
	}
	return detail
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
