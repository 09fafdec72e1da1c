package core

import (
	"errors"
	"log"
	"time"

	"github.com/jinzhu/gorm"
)

// Save save user account
func (user *User) Save(ormDB *gorm.DB) (bool, error) {
	if user.PasswordX != "" {
		if user.PasswordX != user.PasswordRepeat {
			return false, errors.New("password and repetition of password are not the same")
		}
		err := ValidatePassword(user.PasswordX)
		if err != nil {
			return false, errors.New(PasswordMessage)
		}
		user.Password = GetMD5Hash(user.PasswordX)
	}
	if user.ID == 0 {
		user.IsActive = true
		user.RegisteredAt.Time = time.Now()
		user.RegisteredAt.Valid = true
		ormDB.Set("gorm:save_associations", false).Create(user)
	} else {
		userDB := User{}
		ormDB.First(&userDB, user.ID)
		if user.Password == "" {
			user.Password = userDB.Password
		}
		ormDB.Set("gorm:save_associations", false).Save(user)
	}

	return true, nil
}

// Validate validate user account
func (user *User) Validate(ormDB *gorm.DB) bool {
	user.Errors = make(map[string]string)

	if user.Username == "" {
		user.Errors["username"] = "username empty"
	}

	if user.PasswordX != user.PasswordRepeat {
		user.Errors["password_repetition"] = "password and repetition of password are not the same"
	}

	if user.PasswordX != "" {
		err := ValidatePassword(user.PasswordX)
		if err != nil {
			log.Println(err)
			user.Errors["password"] = err.Error()
		}
	}

	if user.Email != "" {
		err := ValidateFormat(user.Email)
		if err != nil {
			user.Errors["email"] = err.Error()
		}
	}

	existingUser := User{}
	ormDB.Where("username = ? AND id <> ?", user.Username, user.ID).First(&existingUser)
	if existingUser.ID > 0 {
		user.Errors["username"] = "username already exists"
	}

	return len(user.Errors) == 0
}
