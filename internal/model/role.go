package model

// RoleUser выдаётся каждому новому пользователю.
const RoleUser = "user"

// Role — роль пользователя.
type Role struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	UserID int64  `gorm:"not null;uniqueIndex:idx_user_role"`
	Name   string `gorm:"not null;size:64;uniqueIndex:idx_user_role"`
}
