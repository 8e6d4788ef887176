package repository

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Permission string

const (
	PermissionAdmin     Permission = "admin"
	PermissionFinance   Permission = "finance"
	PermissionWarehouse Permission = "warehouse"
)

type User struct {
	ID           int            `gorm:"primaryKey autoIncrement"`
	Email        string         `gorm:"not null;unique"`
	DisplayName  string         `gorm:"not null"`
	PasswordHash string         `gorm:"not null"`
	Permissions  pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
}

func (u *User) HasPermission(permission Permission) bool {
	for _, p := range u.Permissions {
		if p == string(permission) {
			return true
		}
	}
	return false
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserById(userId int) (*User, error) {
	var user User
	result := r.DB.First(&user, userId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(email string) (*User, error) {
	var user User
	result := r.DB.First(&user, "email = ?", email)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) SaveUser(user *User) (*User, error) {
	result := r.DB.Save(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}
