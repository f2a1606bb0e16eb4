package service

import (
	"context"
	"testing"
	"time"

	"inventario/internal/apierror"
	"inventario/internal/config"
	"inventario/internal/dto"
	"inventario/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-with-enough-length!!"

func newAuthFixture(t *testing.T) (*authService, *stubUsuarioRepo) {
	t.Helper()
	repo := newStubUsuarioRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("correcta"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &model.Usuario{
		Email: "ana@example.com", PasswordHash: string(hash), IsAdmin: true,
	}))
	cfg := &config.Config{JWTSecret: testSecret, JWTExpirationHours: 8}
	return NewAuthService(repo, cfg).(*authService), repo
}

func TestLogin_EmiteTokenConClaims(t *testing.T) {
	svc, _ := newAuthFixture(t)
	issued := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return issued }

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "  ANA@example.com ", Password: "correcta"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.True(t, resp.User.IsAdmin)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims["id"])
	assert.Equal(t, true, claims["is_admin"])
	assert.Equal(t, float64(issued.Add(8*time.Hour).Unix()), claims["exp"])
}

func TestLogin_FallosIndistinguibles(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, errPassword := svc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	_, errEmail := svc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "correcta"})

	require.Error(t, errPassword)
	require.Error(t, errEmail)
	assert.ErrorIs(t, errPassword, apierror.ErrCredencialesInvalidas)
	assert.Equal(t, errPassword.Error(), errEmail.Error())
}

func TestCrearUsuario_EmailDuplicado(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	created, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{Email: "Luis@Example.com", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "luis@example.com", created.Email)
	assert.False(t, created.IsAdmin)

	stored := repo.usuarios[mustParse(t, created.ID)]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto", stored.PasswordHash)

	_, err = svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{Email: "luis@example.com", Password: "otro123"})
	assert.ErrorIs(t, err, apierror.ErrDuplicado)

	users, err := svc.ListarUsuarios(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
