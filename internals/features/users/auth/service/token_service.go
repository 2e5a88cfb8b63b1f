// internals/features/users/auth/service/token_service.go
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"estudify_backend/internals/constants"
	userModel "estudify_backend/internals/features/users/user/model"
	helperAuth "estudify_backend/internals/helpers/auth"
)

// AccessClaims: payload access token (HS256).
type AccessClaims struct {
	UserID   uint   `json:"id"`
	Role     string `json:"role"`
	UserName string `json:"user_name"`
	IsStaff  bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

func (c AccessClaims) Identity() (helperAuth.Identity, error) {
	role, err := constants.ParseRole(c.Role)
	if err != nil {
		return helperAuth.Anonymous, err
	}
	if c.UserID == 0 {
		return helperAuth.Anonymous, fmt.Errorf("no user id")
	}
	return helperAuth.Identity{
		UserID:   c.UserID,
		UserName: c.UserName,
		Role:     role,
		IsStaff:  c.IsStaff,
	}, nil
}

func IssueAccessToken(user *userModel.UserModel, secret string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	exp := now.UTC().Add(ttl)
	claims := AccessClaims{
		UserID:   user.ID,
		Role:     string(user.Role),
		UserName: user.UserName,
		IsStaff:  user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now.UTC()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken memverifikasi signature + exp (klaim wajib).
func ParseAccessToken(raw, secret string) (*AccessClaims, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
	}
	claims := &AccessClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("token invalid")
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("token has no exp")
	}
	return claims, nil
}
