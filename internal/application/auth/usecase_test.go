package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockledger-api/internal/application/auth"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockledger-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "stockledger"}), store
}

func TestRegister_NormalizaEmailYRolPorDefecto(t *testing.T) {
	uc, store := newAuth()

	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "  Ana@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, entity.RoleStaff, u.Role)
	assert.Equal(t, "ana@example.com", u.Name, "sin nombre se usa el email")

	stored, err := store.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash, "el password se guarda hasheado")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ANA@example.com", Password: "otra-clave"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, "User already exists", domain.Message(err))
}

func TestLogin_TokenConRol(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@example.com", Password: "secret123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, entity.RoleAdmin, res.User.Role)

	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", domain.Message(err), "mismo mensaje para usuario inexistente")
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, store := newAuth()
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID:           "u-inactive",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleStaff,
		Status:       "disabled",
	}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
