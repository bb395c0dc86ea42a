package repo

import (
	"context"

	"GophAuth/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoleRepository — роли пользователей.
type RoleRepository interface {
	// AddRole выдаёт роль; повторная выдача ничего не делает.
	AddRole(ctx context.Context, userID int64, name string) error
	// ListRoles возвращает роли пользователя по алфавиту.
	ListRoles(ctx context.Context, userID int64) ([]string, error)
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) AddRole(ctx context.Context, userID int64, name string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Role{UserID: userID, Name: name}).Error
}

func (r *roleRepo) ListRoles(ctx context.Context, userID int64) ([]string, error) {
	roles := []string{}
	err := r.db.WithContext(ctx).Model(&model.Role{}).
		Where("user_id = ?", userID).
		Order("name").
		Pluck("name", &roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
