package service

import (
	"context"
	"errors"

	"github.com/MatyCastillo/cashdesk-webapp/internal/dto"
	"github.com/MatyCastillo/cashdesk-webapp/internal/infra"
	"github.com/MatyCastillo/cashdesk-webapp/internal/model"
	"github.com/MatyCastillo/cashdesk-webapp/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	// CheckUsername reports whether the username is still free.
	CheckUsername(ctx context.Context, username string) (bool, error)
	Listar(ctx context.Context) ([]dto.UsuarioResponse, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), infra.BcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Sucursal:     req.Sucursal,
		PasswordHash: string(hash),
		Rol:          req.Rol,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if infra.IsDuplicateKey(err) {
			return nil, ErrConflicto
		}
		return nil, err
	}
	resp := toUsuarioResponse(user)
	return &resp, nil
}

func (s *userService) CheckUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	return false, err
}

func (s *userService) Listar(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = toUsuarioResponse(&users[i])
	}
	return resp, nil
}
