package payment

import (
	"context"

	"github.com/dojolanza/cuotas/go-api-server/internal/member"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"gorm.io/gorm"
)

// PaymentRepository persists payments. Reads preload the owning member and
// route it through the member repository, so associated members come back
// decrypted like any other member read.
type PaymentRepository struct {
	memberRepository *member.MemberRepository
}

func NewPaymentRepository(memberRepository *member.MemberRepository) *PaymentRepository {
	return &PaymentRepository{memberRepository: memberRepository}
}

type ListFilter struct {
	MemberID  uint32
	MonthYear string
}

func (r *PaymentRepository) Create(ctx context.Context, db *gorm.DB, payment *model.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepository) FindByID(ctx context.Context, db *gorm.DB, id uint32) (*model.Payment, error) {
	var payment model.Payment
	err := db.WithContext(ctx).
		Preload("Member").
		Where("id = ?", id).
		First(&payment).Error
	if err != nil {
		return nil, err
	}

	if payment.Member != nil {
		r.memberRepository.DecryptMember(ctx, payment.Member)
	}
	return &payment, nil
}

func (r *PaymentRepository) FindAll(ctx context.Context, db *gorm.DB, filter ListFilter) ([]model.Payment, error) {
	query := db.WithContext(ctx).Model(&model.Payment{}).Preload("Member")
	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.MonthYear != "" {
		query = query.Where("month_year = ?", filter.MonthYear)
	}

	var payments []model.Payment
	if err := query.Order("payment_date DESC").Find(&payments).Error; err != nil {
		return nil, err
	}

	for i := range payments {
		if payments[i].Member != nil {
			r.memberRepository.DecryptMember(ctx, payments[i].Member)
		}
	}
	return payments, nil
}
