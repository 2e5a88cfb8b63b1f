package helper

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	reLetter = regexp.MustCompile(`[A-Za-z]`)
	reNumber = regexp.MustCompile(`[0-9]`)
)

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}

// ValidateNewPassword: minimal 8 karakter, ada huruf dan angka.
func ValidateNewPassword(password string) error {
	if len(strings.TrimSpace(password)) < 8 {
		return errors.New("password minimal 8 karakter")
	}
	if !reLetter.MatchString(password) || !reNumber.MatchString(password) {
		return errors.New("password harus mengandung huruf dan angka")
	}
	return nil
}
