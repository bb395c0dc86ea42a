package repo

import (
	"context"

	"GophAuth/internal/model"

	"gorm.io/gorm"
)

// UserRepository контракт доступа к пользователям.
type UserRepository interface {
	// CreateUser создаёт пользователя вместе с указанными ролями в одной транзакции.
	CreateUser(ctx context.Context, user *model.User, roles ...string) (*model.User, error)
	// GetUserByLogin возвращает gorm.ErrRecordNotFound, если пользователя нет.
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
	// GetUserByID возвращает gorm.ErrRecordNotFound, если пользователя нет.
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User, roles ...string) (*model.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Create(user).Error; err != nil {
			return err
		}
		for _, name := range roles {
			if err := tx.Create(&model.Role{UserID: user.ID, Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
