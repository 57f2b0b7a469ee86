package model

import "time"

// User is an API user. The password hash never leaves the identity
// subsystem and is excluded from JSON.
type User struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	Username     string    `gorm:"column:username;uniqueIndex" json:"username" validate:"required,max=50"`
	FullName     string    `gorm:"column:full_name" json:"full_name" validate:"max=100"`
	Email        string    `gorm:"column:email" json:"email" validate:"omitempty,email,max=100"`
	Role         string    `gorm:"column:role" json:"role" validate:"required,max=30"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Role is a named role, created on demand at registration time.
type Role struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Role) TableName() string {
	return "roles"
}

// UserRole records membership of a user in a role.
type UserRole struct {
	UserID uint `gorm:"column:user_id;primaryKey"`
	RoleID uint `gorm:"column:role_id;primaryKey"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
