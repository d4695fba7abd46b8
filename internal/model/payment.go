package model

import (
	"time"
)

// Payment methods accepted at the front desk.
const (
	MethodEfectivo      = "efectivo"
	MethodTransferencia = "transferencia"
	MethodTarjeta       = "tarjeta"
)

// PaymentMethods lists every valid payment method.
var PaymentMethods = []string{MethodEfectivo, MethodTransferencia, MethodTarjeta}

// Payment records one monthly dues payment. Rows are immutable once created;
// a member is considered covered for a period when at least one row exists
// with a matching member_id and month_year.
type Payment struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	MemberID uint32  `gorm:"column:member_id;not null;index"`
	Member   *Member `gorm:"foreignKey:MemberID"`

	Amount        float64   `gorm:"column:amount;type:numeric(10,2);not null"`
	PaymentDate   time.Time `gorm:"column:payment_date;type:date;not null"`
	MonthYear     string    `gorm:"column:month_year;type:varchar(7);not null;index"` // YYYY-MM
	PaymentMethod string    `gorm:"column:payment_method;type:varchar(20);not null;default:efectivo"`
	Notes         string    `gorm:"column:notes;type:text"`
	ReceiptNumber string    `gorm:"column:receipt_number;type:varchar(50);not null;uniqueIndex:idx_payment_receipt"`

	BaseEntity
}

// TableName specifies the table name for Payment
func (*Payment) TableName() string {
	return "payments"
}
