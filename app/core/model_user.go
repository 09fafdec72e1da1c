package core

import "github.com/jinzhu/gorm"

const PasswordMessage = "password needs to be at least 8 characters long and needs at least one lowercase, uppercase and special character as well as one digit"
const PasswordMinLength = 8

type UserType uint

const (
	UserTypeSysadmin UserType = 0
	UserTypeOperator UserType = 1
)

// 0 - sysadmin; 1 - warehouse operator
type User struct {
	Model
	Username       string   `json:"username,omitempty" gorm:"type:VARCHAR(100);unique_index"`
	UserType       UserType `json:"user_type,omitempty"` // 0 - sysadmin; 1 - operator
	Email          string   `json:"email,omitempty"`
	Token          string   `json:"token,omitempty" gorm:"-"`
	Password       string   `json:"-"`
	PasswordX      string   `json:"password,omitempty" gorm:"-"`
	PasswordRepeat string   `json:"password_repeat,omitempty" gorm:"-"`
	IsActive       bool     `json:"is_active"`
	IsSysadmin     bool     `json:"is_sysadmin,omitempty"`
	RegisteredAt   NullTime `json:"registered_at,omitempty"`

	CreatedBy uint `json:"created_by"`

	Errors map[string]string `json:"-" gorm:"-"`
}

type Users []User

func (User) TableName() string {
	return "system_accounts"
}

func (user *User) AfterFind(tx *gorm.DB) (err error) {
	if !user.RegisteredAt.Valid {
		user.RegisteredAt.Time = user.CreatedAt
		user.RegisteredAt.Valid = true
	}
	return
}
