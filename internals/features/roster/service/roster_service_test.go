package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"belajarku_backend/internals/features/roster/model"
	"belajarku_backend/internals/features/roster/repository"
)

func newTestService() *Service {
	return NewService(repository.NewInMemUserRepository())
}

func TestCreateNormalizesAndHashes(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateInput{
		Role:     model.RoleTeacher,
		FullName: "  Ani Baharudin  ",
		Email:    " Ani@B.com ",
		Password: "secret1",
		Profile:  map[string]string{"phone": "0812"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ani@b.com", u.Email)
	assert.Equal(t, "Ani Baharudin", u.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")))
	assert.Equal(t, "secret1", u.PasswordPlain)
	require.NotNil(t, u.PasswordSetAt)
	assert.Nil(t, u.PasswordChangedAt)
	assert.False(t, u.PasswordIsChanged())
	assert.True(t, u.IsActive)
}

func TestCreateHonorsCancelledContext(t *testing.T) {
	svc := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Create(ctx, CreateInput{
		Role: model.RoleStudent, FullName: "Budi Santoso", Email: "budi@b.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Role: model.RoleStudent, FullName: "Budi Santoso", Email: "budi@b.com", Password: "secret1"})
	require.NoError(t, err)

	// case-insensitive: EMAIL yang sama dengan kapitalisasi beda tetap duplikat
	_, err = svc.Create(ctx, CreateInput{Role: model.RoleStudent, FullName: "Budi Lain", Email: "BUDI@B.COM", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAdminResetClearsChangedFlag(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateInput{Role: model.RoleStudent, FullName: "Citra Dewi", Email: "citra@b.com", Password: "secret1"})
	require.NoError(t, err)

	// user mengganti password sendiri → terhitung "diganti"
	require.NoError(t, svc.ChangeOwnPassword(ctx, u.ID, "secret1", "userpw99"))
	got, err := svc.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.PasswordIsChanged())

	// admin menyetel ulang → flag kembali false, password baru yang berlaku
	_, err = svc.Update(ctx, u.ID, UpdateInput{Password: "newpass2"})
	require.NoError(t, err)

	got, err = svc.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.PasswordIsChanged())
	assert.Nil(t, got.PasswordChangedAt)
	assert.Equal(t, "newpass2", got.PasswordPlain)

	_, err = svc.Authenticate(ctx, "citra@b.com", "newpass2")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "citra@b.com", "userpw99")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangeOwnPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateInput{Role: model.RoleTeacher, FullName: "Dedi Firmansyah", Email: "dedi@b.com", Password: "secret1"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangeOwnPassword(ctx, u.ID, "salah", "barubanget"), ErrWrongPassword)
	assert.Error(t, svc.ChangeOwnPassword(ctx, u.ID, "secret1", "abc")) // terlalu pendek

	require.NoError(t, svc.ChangeOwnPassword(ctx, u.ID, "secret1", "barubanget"))
	got, err := svc.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.PasswordIsChanged())
	assert.Equal(t, "barubanget", got.PasswordPlain)
}

func TestDeleteIsRoleScoped(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateInput{Role: model.RoleTeacher, FullName: "Eka Putri", Email: "eka@b.com", Password: "secret1"})
	require.NoError(t, err)

	// endpoint students tidak boleh menghapus guru
	assert.ErrorIs(t, svc.Delete(ctx, u.ID, model.RoleStudent), ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, u.ID, model.RoleTeacher))
	assert.ErrorIs(t, svc.Delete(ctx, u.ID, model.RoleTeacher), ErrNotFound)
}

func TestStatusSourceReportsPerUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	src := StatusSource{Svc: svc}

	a, err := svc.Create(ctx, CreateInput{Role: model.RoleStudent, FullName: "Fajar Nugroho", Email: "fajar@b.com", Password: "secret1"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateInput{Role: model.RoleStudent, FullName: "Gita Lestari", Email: "gita@b.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.ChangeOwnPassword(ctx, b.ID, "secret1", "gantiku7"))

	statuses, err := src.CheckStatus(ctx, []string{a.ID.String(), b.ID.String(), "bukan-uuid"})
	require.NoError(t, err)
	require.Len(t, statuses, 2) // id yang tidak dikenal tidak punya entry

	assert.False(t, statuses[a.ID.String()].Changed)
	assert.True(t, statuses[b.ID.String()].Changed)
	assert.NotNil(t, statuses[b.ID.String()].LastChange)

	live, err := src.FetchLive(ctx, b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "gantiku7", live.Password)
	require.NotNil(t, live.UpdatedAt)

	_, err = src.FetchLive(ctx, "bukan-uuid")
	assert.Error(t, err)
}
