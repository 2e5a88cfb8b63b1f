package routes

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estudify_backend/internals/configs"
	"estudify_backend/internals/constants"
	userModel "estudify_backend/internals/features/users/user/model"
	"estudify_backend/internals/helpers/testdb"
)

func newApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	prevSecret, prevTTL := configs.JWTSecret, configs.JWTAccessTTL
	configs.JWTSecret = "route-secret"
	configs.JWTAccessTTL = time.Hour
	t.Cleanup(func() { configs.JWTSecret, configs.JWTAccessTTL = prevSecret, prevTTL })

	db := testdb.Open(t)
	app := fiber.New(fiber.Config{JSONEncoder: sonic.Marshal, JSONDecoder: sonic.Unmarshal})
	SetupRoutes(app, db)
	return app, db
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, sonic.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, body := do(t, app, fiber.MethodPost, "/api/auth/login", "",
		`{"identifier":"`+username+`","password":"`+testdb.Password+`"}`)
	require.Equal(t, fiber.StatusOK, status, body)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	token, _ := data["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	app, _ := newApp(t)

	status, body := do(t, app, fiber.MethodGet, "/health", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Connected", body["database"])
}

func TestRoleGroups(t *testing.T) {
	app, db := newApp(t)
	testdb.User(t, db, "root", constants.RoleAdmin)
	testdb.User(t, db, "prof", constants.RoleTeacher)
	testdb.User(t, db, "ana", constants.RoleStudent)

	adminTok := login(t, app, "root")
	teacherTok := login(t, app, "prof")
	studentTok := login(t, app, "ana")

	cases := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"no token", "/api/a/dashboard", "", fiber.StatusUnauthorized},
		{"admin panel as admin", "/api/a/dashboard", adminTok, fiber.StatusOK},
		{"admin panel as student", "/api/a/dashboard", studentTok, fiber.StatusForbidden},
		{"teacher panel as teacher", "/api/t/dashboard", teacherTok, fiber.StatusOK},
		{"teacher panel as admin", "/api/t/dashboard", adminTok, fiber.StatusForbidden},
		{"student panel as student", "/api/s/dashboard", studentTok, fiber.StatusOK},
		{"student panel as teacher", "/api/s/grades", teacherTok, fiber.StatusForbidden},
		{"dashboard route", "/api/dashboard", teacherTok, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, app, fiber.MethodGet, tc.path, tc.token, "")
			assert.Equal(t, tc.status, status, body)
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	app, db := newApp(t)
	testdb.User(t, db, "ana", constants.RoleStudent)
	tok := login(t, app, "ana")

	status, _ := do(t, app, fiber.MethodGet, "/api/auth/me", tok, "")
	require.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, fiber.MethodPost, "/api/auth/logout", tok, "")
	require.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, fiber.MethodGet, "/api/auth/me", tok, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRoleChangeAppliesToIssuedTokens(t *testing.T) {
	app, db := newApp(t)
	testdb.User(t, db, "root", constants.RoleAdmin)
	boss := testdb.User(t, db, "boss", constants.RoleAdmin)
	prof := testdb.User(t, db, "prof", constants.RoleTeacher)

	rootTok := login(t, app, "root")
	bossTok := login(t, app, "boss")
	profTok := login(t, app, "prof")

	course := `{"course_name":"Grade 10","course_school_year":"2024-2025"}`
	status, body := do(t, app, fiber.MethodPost, "/api/a/courses", bossTok, course)
	require.Equal(t, fiber.StatusCreated, status, body)
	status, body = do(t, app, fiber.MethodGet, "/api/t/dashboard", profTok, "")
	require.Equal(t, fiber.StatusOK, status, body)

	t.Run("demoted admin", func(t *testing.T) {
		require.NoError(t, db.Model(&userModel.UserModel{}).Where("id = ?", boss.ID).
			Updates(map[string]any{"role": constants.RoleStudent, "is_staff": false}).Error)

		status, body := do(t, app, fiber.MethodPost, "/api/a/courses", bossTok,
			`{"course_name":"Grade 11","course_school_year":"2024-2025"}`)
		assert.Equal(t, fiber.StatusForbidden, status, body)

		status, body = do(t, app, fiber.MethodGet, "/api/s/dashboard", bossTok, "")
		assert.Equal(t, fiber.StatusOK, status, body)
	})

	t.Run("teacher demoted through user admin", func(t *testing.T) {
		status, body := do(t, app, fiber.MethodPut, "/api/a/users/"+strconv.FormatUint(uint64(prof.ID), 10), rootTok,
			`{"role":"student"}`)
		require.Equal(t, fiber.StatusOK, status, body)

		status, body = do(t, app, fiber.MethodGet, "/api/t/dashboard", profTok, "")
		assert.Equal(t, fiber.StatusForbidden, status, body)
	})

	t.Run("deactivated user", func(t *testing.T) {
		require.NoError(t, db.Model(&userModel.UserModel{}).Where("id = ?", boss.ID).
			Update("is_active", false).Error)

		status, body := do(t, app, fiber.MethodGet, "/api/s/dashboard", bossTok, "")
		assert.Equal(t, fiber.StatusForbidden, status, body)
	})
}
