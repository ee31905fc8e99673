package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ventas-api/pkg/jwt"
)

const secret = "test-secret"

func newUseCase(t *testing.T, status string) *auth.AuthUseCase {
	t.Helper()
	store := memory.New()
	hash, err := auth.HashPassword("correcta123")
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: "u-1", Email: "ana@tienda.com", PasswordHash: hash, Name: "Ana",
		Role: entity.RoleStaff, Status: status, CreatedAt: now, UpdatedAt: now,
	}))
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "test"})
}

func TestLogin_OK(t *testing.T) {
	uc := newUseCase(t, entity.UserStatusActive)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ANA@tienda.com", Password: "correcta123"})
	require.NoError(t, err)
	assert.Equal(t, 1800, out.ExpiresIn)
	assert.Equal(t, "u-1", out.User.ID)

	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, entity.RoleStaff, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUseCase(t, entity.UserStatusActive)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@tienda.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.com", Password: "correcta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc := newUseCase(t, entity.UserStatusInactive)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@tienda.com", Password: "correcta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMe(t *testing.T) {
	uc := newUseCase(t, entity.UserStatusActive)
	me, err := uc.Me(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)

	_, err = uc.Me(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCheckSession(t *testing.T) {
	ctx := context.Background()

	uc := newUseCase(t, entity.UserStatusActive)
	assert.NoError(t, uc.CheckSession(ctx, "u-1", entity.RoleStaff))
	assert.ErrorIs(t, uc.CheckSession(ctx, "u-1", entity.RoleAdmin), domain.ErrUnauthorized, "rol distinto al del token")
	assert.ErrorIs(t, uc.CheckSession(ctx, "u-404", entity.RoleStaff), domain.ErrUnauthorized)

	inactive := newUseCase(t, entity.UserStatusInactive)
	assert.ErrorIs(t, inactive.CheckSession(ctx, "u-1", entity.RoleStaff), domain.ErrUnauthorized)
}
