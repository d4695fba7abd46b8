package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/member"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"github.com/dojolanza/cuotas/go-api-server/internal/receipt"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/database"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService struct {
	db                *gorm.DB
	paymentRepository *PaymentRepository
	memberRepository  *member.MemberRepository
	renderer          receipt.Renderer
}

func NewPaymentService(db *gorm.DB, paymentRepository *PaymentRepository, memberRepository *member.MemberRepository, renderer receipt.Renderer) *PaymentService {
	return &PaymentService{
		db:                db,
		paymentRepository: paymentRepository,
		memberRepository:  memberRepository,
		renderer:          renderer,
	}
}

func (s *PaymentService) List(ctx context.Context, query *ListPaymentsQuery) ([]PaymentResponse, error) {
	filter := ListFilter{MemberID: query.MemberID, MonthYear: query.MonthYear}
	payments, err := s.paymentRepository.FindAll(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, toPaymentResponse(&payments[i]))
	}
	return responses, nil
}

// Create records a payment. The receipt number is generated server-side;
// uniqueness is the only guarantee. Payments are immutable once created.
func (s *PaymentService) Create(ctx context.Context, request *CreatePaymentRequest) (*PaymentResponse, error) {
	log := logger.FromContext(ctx)

	payment := &model.Payment{
		MemberID:      request.MemberID,
		Amount:        request.Amount,
		MonthYear:     request.MonthYear,
		PaymentMethod: model.MethodEfectivo,
		Notes:         request.Notes,
		PaymentDate:   time.Now().UTC(),
		ReceiptNumber: newReceiptNumber(),
	}
	if request.PaymentMethod != "" {
		payment.PaymentMethod = request.PaymentMethod
	}
	if request.PaymentDate != "" {
		paymentDate, err := time.Parse(dateLayout, request.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("parse payment date: %w", err)
		}
		payment.PaymentDate = paymentDate
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.memberRepository.FindByID(ctx, tx, request.MemberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("member id=%d: %w", request.MemberID, member.ErrMemberNotFound)
			}
			return fmt.Errorf("check member: %w", err)
		}
		return s.paymentRepository.Create(ctx, tx, payment)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Pago registrado",
		"payment_id", payment.ID,
		"member_id", payment.MemberID,
		"month_year", payment.MonthYear,
		"receipt", payment.ReceiptNumber,
	)

	created, err := s.paymentRepository.FindByID(ctx, s.db, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("reload payment: %w", err)
	}

	response := toPaymentResponse(created)
	return &response, nil
}

// Receipt renders the PDF receipt for a payment. Returns the document and a
// suggested filename.
func (s *PaymentService) Receipt(ctx context.Context, id uint32) ([]byte, string, error) {
	payment, err := s.paymentRepository.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("payment id=%d: %w", id, ErrPaymentNotFound)
		}
		return nil, "", fmt.Errorf("get payment: %w", err)
	}
	if payment.Member == nil {
		return nil, "", fmt.Errorf("payment id=%d: %w", id, member.ErrMemberNotFound)
	}

	document, err := s.renderer.Render(payment, payment.Member)
	if err != nil {
		return nil, "", fmt.Errorf("render receipt: %w", err)
	}

	filename := fmt.Sprintf("recibo-%s.pdf", payment.ReceiptNumber)
	return document, filename, nil
}

func newReceiptNumber() string {
	return "REC-" + uuid.NewString()
}
