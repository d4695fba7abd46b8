package member

import (
	"context"
	"fmt"

	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/crypto"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/logger"
	"gorm.io/gorm"
)

// Columns subject to field-level encryption. This is the single
// authoritative set: email is deliberately excluded and stored plaintext.
const (
	colFirstName = "first_name"
	colLastName  = "last_name"
	colPhone     = "phone"
	colNotes     = "notes"
)

func isSensitiveColumn(column string) bool {
	switch column {
	case colFirstName, colLastName, colPhone, colNotes:
		return true
	}
	return false
}

// MemberRepository persists members while guarding the encryption
// invariant: sensitive fields are ciphertext at rest, plaintext in memory.
// Every write encrypts before it commits and every read decrypts before it
// returns, so callers never see ciphertext and storage never sees plaintext.
type MemberRepository struct {
	codec crypto.Codec
}

func NewMemberRepository(codec crypto.Codec) *MemberRepository {
	return &MemberRepository{codec: codec}
}

// ListFilter narrows FindAll. Name search is not here: it must run after
// decryption and therefore lives in the service.
type ListFilter struct {
	Belt   string
	Active *bool
}

// Create inserts a member, encrypting sensitive fields before the write.
// The caller's entity keeps its plaintext values; only the stored row holds
// ciphertext.
func (r *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	stored := *member
	if err := r.encryptFields(&stored); err != nil {
		return err
	}

	if err := db.WithContext(ctx).Create(&stored).Error; err != nil {
		return err
	}

	member.ID = stored.ID
	member.CreatedAt = stored.CreatedAt
	member.UpdatedAt = stored.UpdatedAt
	return nil
}

// Update applies a partial update by column name. Sensitive columns present
// in the map are re-encrypted; columns not in the map keep their stored
// ciphertext untouched. Returns the number of affected rows.
func (r *MemberRepository) Update(ctx context.Context, db *gorm.DB, id uint32, updates map[string]interface{}) (int64, error) {
	encrypted := make(map[string]interface{}, len(updates))
	for column, value := range updates {
		text, ok := value.(string)
		if ok && isSensitiveColumn(column) {
			ciphertext, err := r.codec.Encrypt(text)
			if err != nil {
				return 0, fmt.Errorf("encrypt %s: %w", column, err)
			}
			encrypted[column] = ciphertext
			continue
		}
		encrypted[column] = value
	}

	result := db.WithContext(ctx).Model(&model.Member{}).Where("id = ?", id).Updates(encrypted)
	return result.RowsAffected, result.Error
}

// FindByID returns one member with payments preloaded, sensitive fields
// decrypted.
func (r *MemberRepository) FindByID(ctx context.Context, db *gorm.DB, id uint32) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date DESC")
		}).
		Where("id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}

	r.DecryptMember(ctx, &member)
	return &member, nil
}

// FindAll returns members matching the filter, sensitive fields decrypted.
// No ordering on encrypted columns: ciphertext order is meaningless.
func (r *MemberRepository) FindAll(ctx context.Context, db *gorm.DB, filter ListFilter) ([]model.Member, error) {
	query := db.WithContext(ctx).Model(&model.Member{})
	if filter.Belt != "" {
		query = query.Where("belt = ?", filter.Belt)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var members []model.Member
	if err := query.Order("id").Find(&members).Error; err != nil {
		return nil, err
	}

	for i := range members {
		r.DecryptMember(ctx, &members[i])
	}
	return members, nil
}

// FindOverdue returns the active members with no payment row for the given
// billing period. A single left join avoids one payment lookup per member.
func (r *MemberRepository) FindOverdue(ctx context.Context, db *gorm.DB, period string) ([]model.Member, error) {
	var members []model.Member
	err := db.WithContext(ctx).
		Model(&model.Member{}).
		Select("members.*").
		Joins("LEFT JOIN payments ON payments.member_id = members.id AND payments.month_year = ?", period).
		Where("members.is_active = ? AND payments.id IS NULL", true).
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	for i := range members {
		r.DecryptMember(ctx, &members[i])
	}
	return members, nil
}

// Delete removes a member by id (hard delete). Returns affected rows.
func (r *MemberRepository) Delete(ctx context.Context, db *gorm.DB, id uint32) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&model.Member{})
	return result.RowsAffected, result.Error
}

// DecryptMember replaces each present sensitive field with its plaintext.
// A value that fails to decrypt is kept as stored and logged: legacy
// plaintext and corrupt ciphertext look identical here, so downstream
// validation decides whether the value is usable.
func (r *MemberRepository) DecryptMember(ctx context.Context, member *model.Member) {
	member.FirstName = r.decryptField(ctx, colFirstName, member.FirstName)
	member.LastName = r.decryptField(ctx, colLastName, member.LastName)
	member.Phone = r.decryptField(ctx, colPhone, member.Phone)
	member.Notes = r.decryptField(ctx, colNotes, member.Notes)
}

func (r *MemberRepository) decryptField(ctx context.Context, column, value string) string {
	if value == "" {
		return value
	}

	plaintext, err := r.codec.Decrypt(value)
	if err != nil {
		logger.FromContext(ctx).Warn("No se pudo descifrar el campo, se conserva el valor almacenado",
			"column", column,
			"error", err,
		)
		return value
	}
	return plaintext
}

func (r *MemberRepository) encryptFields(member *model.Member) error {
	var err error
	if member.FirstName, err = r.codec.Encrypt(member.FirstName); err != nil {
		return fmt.Errorf("encrypt %s: %w", colFirstName, err)
	}
	if member.LastName, err = r.codec.Encrypt(member.LastName); err != nil {
		return fmt.Errorf("encrypt %s: %w", colLastName, err)
	}
	if member.Phone, err = r.codec.Encrypt(member.Phone); err != nil {
		return fmt.Errorf("encrypt %s: %w", colPhone, err)
	}
	if member.Notes, err = r.codec.Encrypt(member.Notes); err != nil {
		return fmt.Errorf("encrypt %s: %w", colNotes, err)
	}
	return nil
}
