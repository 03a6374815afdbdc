package repository

import (
	"context"
	"time"

	"github.com/MatyCastillo/cashdesk-webapp/internal/infra"
	"github.com/MatyCastillo/cashdesk-webapp/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id uint, t time.Time) error
	List(ctx context.Context) ([]model.User, error)
}

type userRepo struct {
	db  *gorm.DB
	run *infra.Runner
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db, run: infra.NewRunner(db)}
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// FindByUsername is case-sensitive; unknown usernames surface
// gorm.ErrRecordNotFound to the service layer.
func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, id uint, t time.Time) error {
	_, err := r.run.Exec(ctx, infra.Write(
		"UPDATE users SET last_login = ? WHERE id = ?", t, id))
	return err
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}
