package core

import (
	"errors"
	"regexp"
	"unicode"
)

var (
	ErrBadFormat = errors.New("invalid email format")

	emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
)

func ValidateFormat(email string) error {
	if !emailRegexp.MatchString(email) {
		return ErrBadFormat
	}
	return nil
}

func ValidatePassword(password string) error {
	length := len(password) >= PasswordMinLength
	special := false
	upper := false
	lower := false
	digit := false

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			special = true
		}
	}

	if !length || !special || !upper || !lower || !digit {
		return errors.New(PasswordMessage)
	}
	return nil
}
