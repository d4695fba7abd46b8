package model

import (
	"time"
)

// Belt ranks in progression order. Stored as plain strings so the column
// stays readable in SQL; request payloads are validated with oneof.
const (
	BeltBlanco   = "blanco"
	BeltAmarillo = "amarillo"
	BeltNaranja  = "naranja"
	BeltVerde    = "verde"
	BeltAzul     = "azul"
	BeltMarron   = "marron"
	BeltNegro    = "negro"
)

// Belts lists every valid belt rank.
var Belts = []string{BeltBlanco, BeltAmarillo, BeltNaranja, BeltVerde, BeltAzul, BeltMarron, BeltNegro}

// Member represents a dojo member.
//
// FirstName, LastName, Phone and Notes hold AES-GCM ciphertext at rest and
// plaintext in memory; the member repository converts between the two on
// every read and write. Email is intentionally plaintext. The columns are
// TEXT because ciphertext is considerably longer than the values it hides.
type Member struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	FirstName string `gorm:"column:first_name;type:text;not null"` // encrypted at rest
	LastName  string `gorm:"column:last_name;type:text;not null"`  // encrypted at rest
	Email     string `gorm:"column:email;type:varchar(255)"`
	Phone     string `gorm:"column:phone;type:text"` // encrypted at rest
	Notes     string `gorm:"column:notes;type:text"` // encrypted at rest

	DateOfBirth *time.Time `gorm:"column:date_of_birth;type:date"`
	JoinDate    time.Time  `gorm:"column:join_date;type:date;not null"`
	Belt        string     `gorm:"column:belt;type:varchar(20);not null;default:blanco"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`

	Payments []Payment `gorm:"foreignKey:MemberID"`

	BaseEntity
}

// TableName specifies the table name for Member
func (*Member) TableName() string {
	return "members"
}

// FullName returns the member's display name. Only meaningful after the
// repository has decrypted the entity.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
