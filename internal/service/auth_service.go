package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"inventario/internal/apierror"
	"inventario/internal/config"
	"inventario/internal/dto"
	"inventario/internal/model"
	"inventario/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioListItem, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioListItem, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg, now: time.Now}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// burnCompare runs a bcrypt comparison for unknown emails so both failure
// paths take comparable time.
func burnCompare(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		burnCompare(req.Password)
		return nil, apierror.ErrCredencialesInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.ErrCredencialesInvalidas
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID.String()).Msg("login ok")

	return &dto.LoginResponse{
		Token: token,
		User:  dto.UsuarioResponse{ID: user.ID.String(), Email: user.Email, IsAdmin: user.IsAdmin},
	}, nil
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioListItem, error) {
	email := normalizeEmail(req.Email)
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el email %s ya está registrado", apierror.ErrDuplicado, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{Email: email, PasswordHash: string(hash), IsAdmin: req.IsAdmin}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, translateDBError(err, "el email ya está registrado")
	}
	log.Info().Str("user_id", user.ID.String()).Bool("is_admin", user.IsAdmin).Msg("usuario creado")
	return toUsuarioListItem(user), nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioListItem, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioListItem, len(users))
	for i := range users {
		resp[i] = *toUsuarioListItem(&users[i])
	}
	return resp, nil
}

func (s *authService) generateToken(user *model.Usuario) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":       user.ID.String(),
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTLifetime()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func toUsuarioListItem(u *model.Usuario) *dto.UsuarioListItem {
	return &dto.UsuarioListItem{ID: u.ID.String(), Email: u.Email, IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
