package service

import (
	"context"
	"time"

	"github.com/MatyCastillo/cashdesk-webapp/internal/config"
	"github.com/MatyCastillo/cashdesk-webapp/internal/dto"
	"github.com/MatyCastillo/cashdesk-webapp/internal/model"
	"github.com/MatyCastillo/cashdesk-webapp/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

// Login verifies the credentials against the stored bcrypt hash. Both an
// unknown username and a wrong password return ErrCredencialesInvalidas —
// the response never reveals which one failed. On success last_login is
// updated before the token is issued.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        toUsuarioResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	expiration := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"rol":      user.Rol,
		"sucursal": user.Sucursal,
		"exp":      time.Now().Add(expiration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// toUsuarioResponse strips the password hash from every API-facing shape.
func toUsuarioResponse(user *model.User) dto.UsuarioResponse {
	resp := dto.UsuarioResponse{
		ID:       user.ID,
		Username: user.Username,
		Nombre:   user.Nombre,
		Apellido: user.Apellido,
		Sucursal: user.Sucursal,
		Rol:      user.Rol,
	}
	if user.LastLogin != nil {
		t := user.LastLogin.UTC().Format(time.RFC3339)
		resp.LastLogin = &t
	}
	return resp
}
