package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estudify_backend/internals/configs"
	"estudify_backend/internals/constants"
	"estudify_backend/internals/features/users/auth/dto"
	authRepo "estudify_backend/internals/features/users/auth/repository"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
	"estudify_backend/internals/helpers/testdb"
)

func withSecret(t *testing.T) {
	t.Helper()
	prevSecret, prevTTL := configs.JWTSecret, configs.JWTAccessTTL
	configs.JWTSecret = "test-secret"
	configs.JWTAccessTTL = time.Hour
	t.Cleanup(func() {
		configs.JWTSecret, configs.JWTAccessTTL = prevSecret, prevTTL
	})
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	withSecret(t)
	db := testdb.Open(t)
	teacher := testdb.User(t, db, "prof", constants.RoleTeacher)

	res, err := Login(db, dto.LoginRequest{Identifier: " PROF ", Password: testdb.Password})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, constants.DashboardTeacher, res.Dashboard)

	claims, err := ParseAccessToken(res.AccessToken, configs.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, claims.UserID)
	assert.Equal(t, "teacher", claims.Role)
	assert.Equal(t, "prof", claims.UserName)
	assert.False(t, claims.IsStaff)
	assert.NotEmpty(t, claims.ID)

	ident, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, helperAuth.Identity{UserID: teacher.ID, UserName: "prof", Role: constants.RoleTeacher}, ident)
}

func TestLoginByEmail(t *testing.T) {
	withSecret(t)
	db := testdb.Open(t)
	testdb.User(t, db, "ana", constants.RoleStudent)

	res, err := Login(db, dto.LoginRequest{Identifier: "ana@school.test", Password: testdb.Password})
	require.NoError(t, err)
	assert.Equal(t, constants.DashboardStudent, res.Dashboard)
}

func TestLoginFailures(t *testing.T) {
	withSecret(t)
	db := testdb.Open(t)
	u := testdb.User(t, db, "ana", constants.RoleStudent)

	_, err := Login(db, dto.LoginRequest{Identifier: "ana", Password: "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, helper.StatusOf(err))

	_, err = Login(db, dto.LoginRequest{Identifier: "nobody", Password: "x"})
	assert.Equal(t, fiber.StatusUnauthorized, helper.StatusOf(err))

	require.NoError(t, db.Model(u).Update("is_active", false).Error)
	_, err = Login(db, dto.LoginRequest{Identifier: "ana", Password: testdb.Password})
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))
}

func TestParseAccessTokenRejectsExpiredAndForeign(t *testing.T) {
	withSecret(t)
	db := testdb.Open(t)
	u := testdb.User(t, db, "ana", constants.RoleStudent)

	old, _, err := IssueAccessToken(u, "test-secret", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = ParseAccessToken(old, "test-secret")
	assert.Error(t, err)

	other, _, err := IssueAccessToken(u, "other-secret", time.Hour, time.Now())
	require.NoError(t, err)
	_, err = ParseAccessToken(other, "test-secret")
	assert.Error(t, err)
}

func TestLogoutBlacklistsTokenIdempotently(t *testing.T) {
	withSecret(t)
	db := testdb.Open(t)
	testdb.User(t, db, "ana", constants.RoleStudent)

	res, err := Login(db, dto.LoginRequest{Identifier: "ana", Password: testdb.Password})
	require.NoError(t, err)

	require.NoError(t, Logout(db, res.AccessToken))
	require.NoError(t, Logout(db, res.AccessToken))

	black, err := authRepo.IsTokenBlacklisted(db, res.AccessToken)
	require.NoError(t, err)
	assert.True(t, black)

	assert.Equal(t, fiber.StatusUnauthorized, helper.StatusOf(Logout(db, "")))
}

func TestChangePassword(t *testing.T) {
	withSecret(t)
	db := testdb.Open(t)
	u := testdb.User(t, db, "ana", constants.RoleStudent)
	me := testdb.As(u)

	err := ChangePassword(db, me, dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpass123"})
	assert.Equal(t, fiber.StatusUnauthorized, helper.StatusOf(err))

	err = ChangePassword(db, me, dto.ChangePasswordRequest{CurrentPassword: testdb.Password, NewPassword: "short"})
	assert.Equal(t, fiber.StatusBadRequest, helper.StatusOf(err))

	require.NoError(t, ChangePassword(db, me, dto.ChangePasswordRequest{CurrentPassword: testdb.Password, NewPassword: "newpass123"}))

	_, err = Login(db, dto.LoginRequest{Identifier: "ana", Password: "newpass123"})
	assert.NoError(t, err)
}

func TestMe(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.User(t, db, "root", constants.RoleAdmin)

	res, err := Me(db, testdb.As(admin))
	require.NoError(t, err)
	assert.Equal(t, constants.DashboardAdmin, res.Dashboard)
	assert.Equal(t, "root", res.User.UserName)

	_, err = Me(db, helperAuth.Anonymous)
	assert.Equal(t, fiber.StatusUnauthorized, helper.StatusOf(err))
}
