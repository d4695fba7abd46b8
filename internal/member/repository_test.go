package member_test

import (
	"context"
	"testing"
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/member"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/crypto"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-encryption-key-must-be-32-characters-or-more"

func setupRepository(t *testing.T) (*member.MemberRepository, *crypto.AESCodec, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	codec := crypto.NewAESCodec(testSecret)
	return member.NewMemberRepository(codec), codec, db
}

func newTestMember(firstName, lastName, email string) *model.Member {
	return &model.Member{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     "555-123-4567",
		Notes:     "Contacto de emergencia: 555-987-6543",
		JoinDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Belt:      model.BeltBlanco,
		IsActive:  true,
	}
}

// rawColumn reads a stored column value without going through the repository
func rawColumn(t *testing.T, db *gorm.DB, id uint32, column string) string {
	t.Helper()

	var value string
	err := db.Raw("SELECT "+column+" FROM members WHERE id = ?", id).Scan(&value).Error
	require.NoError(t, err)
	return value
}

func TestMemberRepository_Create_EncryptsAtRest(t *testing.T) {
	// Given
	repo, codec, db := setupRepository(t)
	ctx := context.Background()

	m := newTestMember("Juan", "Pérez", "juan@example.com")

	// When
	require.NoError(t, repo.Create(ctx, db, m))

	// Then: Caller's entity still holds plaintext
	assert.Equal(t, "Juan", m.FirstName)
	assert.Equal(t, "Pérez", m.LastName)

	// Then: Stored values are ciphertext that decrypts back to the original
	storedFirst := rawColumn(t, db, m.ID, "first_name")
	assert.NotEqual(t, "Juan", storedFirst)

	recovered, err := codec.Decrypt(storedFirst)
	require.NoError(t, err)
	assert.Equal(t, "Juan", recovered)

	// Then: Email is stored in plaintext
	assert.Equal(t, "juan@example.com", rawColumn(t, db, m.ID, "email"))
}

func TestMemberRepository_FindByID_ReturnsPlaintext(t *testing.T) {
	// Given
	repo, _, db := setupRepository(t)
	ctx := context.Background()

	m := newTestMember("María", "López", "maria@example.com")
	require.NoError(t, repo.Create(ctx, db, m))

	// When
	found, err := repo.FindByID(ctx, db, m.ID)

	// Then: Read path is transparent, plaintext comes back
	require.NoError(t, err)
	assert.Equal(t, "María", found.FirstName)
	assert.Equal(t, "López", found.LastName)
	assert.Equal(t, "555-123-4567", found.Phone)
	assert.Equal(t, "Contacto de emergencia: 555-987-6543", found.Notes)
}

func TestMemberRepository_Update_ReencryptsOnlyTouchedFields(t *testing.T) {
	// Given
	repo, _, db := setupRepository(t)
	ctx := context.Background()

	m := newTestMember("Juan", "Pérez", "juan@example.com")
	require.NoError(t, repo.Create(ctx, db, m))

	lastNameBefore := rawColumn(t, db, m.ID, "last_name")

	// When: Update only the first name
	affected, err := repo.Update(ctx, db, m.ID, map[string]interface{}{
		"first_name": "Carlos",
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	// Then: The touched column changed and still decrypts
	found, err := repo.FindByID(ctx, db, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carlos", found.FirstName)

	// Then: The untouched ciphertext is byte-identical
	assert.Equal(t, lastNameBefore, rawColumn(t, db, m.ID, "last_name"))
}

func TestMemberRepository_Update_NonSensitiveColumnStaysPlain(t *testing.T) {
	// Given
	repo, _, db := setupRepository(t)
	ctx := context.Background()

	m := newTestMember("Juan", "Pérez", "juan@example.com")
	require.NoError(t, repo.Create(ctx, db, m))

	// When
	_, err := repo.Update(ctx, db, m.ID, map[string]interface{}{
		"belt": model.BeltVerde,
	})
	require.NoError(t, err)

	// Then
	assert.Equal(t, model.BeltVerde, rawColumn(t, db, m.ID, "belt"))
}

func TestMemberRepository_DecryptFailure_KeepsStoredValue(t *testing.T) {
	// Given: A row written before encryption was enabled
	repo, _, db := setupRepository(t)
	ctx := context.Background()

	legacy := &model.Member{
		FirstName: "plaintext-name",
		LastName:  "plaintext-last",
		JoinDate:  time.Now().UTC(),
		Belt:      model.BeltBlanco,
		IsActive:  true,
	}
	require.NoError(t, db.Create(legacy).Error)

	// When
	found, err := repo.FindByID(ctx, db, legacy.ID)

	// Then: The read succeeds and the stored value passes through untouched
	require.NoError(t, err)
	assert.Equal(t, "plaintext-name", found.FirstName)
	assert.Equal(t, "plaintext-last", found.LastName)
}

func TestMemberRepository_FindAll_Filters(t *testing.T) {
	// Given
	repo, _, db := setupRepository(t)
	ctx := context.Background()

	active := newTestMember("Ana", "Ramírez", "ana@example.com")
	active.Belt = model.BeltVerde
	require.NoError(t, repo.Create(ctx, db, active))

	inactive := newTestMember("Luis", "Torres", "luis@example.com")
	inactive.IsActive = false
	require.NoError(t, repo.Create(ctx, db, inactive))

	// When: Filter by active
	isActive := true
	got, err := repo.FindAll(ctx, db, member.ListFilter{Active: &isActive})

	// Then
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].FirstName)

	// When: Filter by belt
	got, err = repo.FindAll(ctx, db, member.ListFilter{Belt: model.BeltVerde})

	// Then
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].FirstName)
}

func TestMemberRepository_FindOverdue(t *testing.T) {
	// Given: One paid member, one unpaid member and one inactive member
	repo, _, db := setupRepository(t)
	ctx := context.Background()

	paid := newTestMember("Pagado", "Uno", "pagado@example.com")
	require.NoError(t, repo.Create(ctx, db, paid))

	unpaid := newTestMember("Atrasado", "Dos", "atrasado@example.com")
	require.NoError(t, repo.Create(ctx, db, unpaid))

	inactive := newTestMember("Inactivo", "Tres", "inactivo@example.com")
	inactive.IsActive = false
	require.NoError(t, repo.Create(ctx, db, inactive))

	period := "2026-08"
	require.NoError(t, db.Create(&model.Payment{
		MemberID:      paid.ID,
		Amount:        500,
		PaymentDate:   time.Now().UTC(),
		MonthYear:     period,
		PaymentMethod: model.MethodEfectivo,
		ReceiptNumber: "REC-test-overdue",
	}).Error)

	// When
	overdue, err := repo.FindOverdue(ctx, db, period)

	// Then: Exactly the active member without a payment for the period
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, unpaid.ID, overdue[0].ID)
	assert.Equal(t, "Atrasado", overdue[0].FirstName)
}

func TestMemberRepository_Delete(t *testing.T) {
	// Given
	repo, _, db := setupRepository(t)
	ctx := context.Background()

	m := newTestMember("Borrar", "Me", "borrar@example.com")
	require.NoError(t, repo.Create(ctx, db, m))

	// When
	affected, err := repo.Delete(ctx, db, m.ID)

	// Then
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	_, err = repo.FindByID(ctx, db, m.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
