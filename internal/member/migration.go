package member

import (
	"context"
	"fmt"

	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/logger"
	"gorm.io/gorm"
)

// EncryptLegacyRows encrypts pre-existing plaintext member rows in place.
// Whether a value still needs encryption is decided by attempting to
// decrypt it: a value that decrypts cleanly under the current key is
// already ciphertext and is left byte-identical. Re-running the migration
// is therefore a no-op. Returns the number of rows changed.
func (r *MemberRepository) EncryptLegacyRows(ctx context.Context, db *gorm.DB) (int, error) {
	log := logger.FromContext(ctx)

	var members []model.Member
	if err := db.WithContext(ctx).Order("id").Find(&members).Error; err != nil {
		return 0, fmt.Errorf("load members: %w", err)
	}

	migrated := 0
	for i := range members {
		m := &members[i]
		updates := make(map[string]interface{})

		fields := map[string]string{
			colFirstName: m.FirstName,
			colLastName:  m.LastName,
			colPhone:     m.Phone,
			colNotes:     m.Notes,
		}
		for column, value := range fields {
			if value == "" {
				continue
			}
			if _, err := r.codec.Decrypt(value); err == nil {
				// already ciphertext under the current key
				continue
			}
			ciphertext, err := r.codec.Encrypt(value)
			if err != nil {
				return migrated, fmt.Errorf("encrypt %s for member %d: %w", column, m.ID, err)
			}
			updates[column] = ciphertext
		}

		if len(updates) == 0 {
			log.Debug("Miembro ya cifrado, omitido", "member_id", m.ID)
			continue
		}

		err := db.WithContext(ctx).Model(&model.Member{}).Where("id = ?", m.ID).Updates(updates).Error
		if err != nil {
			return migrated, fmt.Errorf("update member %d: %w", m.ID, err)
		}
		migrated++
		log.Info("Miembro cifrado", "member_id", m.ID, "columns", len(updates))
	}

	return migrated, nil
}
