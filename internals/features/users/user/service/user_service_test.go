package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"estudify_backend/internals/constants"
	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	"estudify_backend/internals/features/users/user/dto"
	"estudify_backend/internals/features/users/user/model"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
	"estudify_backend/internals/helpers/testdb"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func paging() helper.Paging   { return helper.NewPaging(1, 20, 20, 100) }

func TestCreateUser(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.As(testdb.User(t, db, "root", constants.RoleAdmin))

	t.Run("admin role sets staff flag", func(t *testing.T) {
		u, err := CreateUser(db, admin, dto.CreateUserRequest{
			UserName: "Boss", Email: "boss@school.test", Role: "admin", Password: "password1",
		})
		require.NoError(t, err)
		assert.Equal(t, "boss", u.UserName)
		assert.True(t, u.IsStaff)
		assert.True(t, u.IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password1")))
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		req := dto.CreateUserRequest{UserName: "ana", Email: "ana@school.test", Role: "student", Password: "password1"}
		_, err := CreateUser(db, admin, req)
		require.NoError(t, err)

		_, err = CreateUser(db, admin, req)
		assert.Equal(t, fiber.StatusConflict, helper.StatusOf(err))

		var n int64
		db.Model(&model.UserModel{}).Where("user_name = ?", "ana").Count(&n)
		assert.EqualValues(t, 1, n)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := CreateUser(db, admin, dto.CreateUserRequest{UserName: "x1", Email: "x@y.z", Role: "janitor", Password: "password1"})
		assert.Equal(t, fiber.StatusBadRequest, helper.StatusOf(err))
	})

	t.Run("non admin forbidden, anonymous unauthorized", func(t *testing.T) {
		teacher := testdb.As(testdb.User(t, db, "prof", constants.RoleTeacher))
		_, err := CreateUser(db, teacher, dto.CreateUserRequest{UserName: "y1", Email: "y@y.z", Role: "student", Password: "password1"})
		assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))

		_, err = CreateUser(db, helperAuth.Anonymous, dto.CreateUserRequest{UserName: "y2", Email: "y@y.z", Role: "student", Password: "password1"})
		assert.Equal(t, fiber.StatusUnauthorized, helper.StatusOf(err))
	})
}

func TestUpdateUserRecomputesStaff(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.As(testdb.User(t, db, "root", constants.RoleAdmin))
	teacher := testdb.User(t, db, "prof", constants.RoleTeacher)

	u, err := UpdateUser(db, admin, teacher.ID, dto.UpdateUserRequest{Role: strPtr("admin"), FirstName: strPtr(" Marta ")})
	require.NoError(t, err)
	assert.True(t, u.IsStaff)
	assert.Equal(t, "Marta", u.FirstName)

	u, err = UpdateUser(db, admin, teacher.ID, dto.UpdateUserRequest{Role: strPtr("teacher"), Password: strPtr("newpassword")})
	require.NoError(t, err)
	assert.False(t, u.IsStaff)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("newpassword")))

	_, err = UpdateUser(db, admin, 9999, dto.UpdateUserRequest{})
	assert.Equal(t, fiber.StatusNotFound, helper.StatusOf(err))
}

func TestDeactivateUserKeepsRow(t *testing.T) {
	db := testdb.Open(t)
	rootUser := testdb.User(t, db, "root", constants.RoleAdmin)
	admin := testdb.As(rootUser)
	student := testdb.User(t, db, "ana", constants.RoleStudent)

	u, err := DeactivateUser(db, admin, student.ID)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	var reloaded model.UserModel
	require.NoError(t, db.First(&reloaded, student.ID).Error)
	assert.False(t, reloaded.IsActive)

	_, err = DeactivateUser(db, admin, rootUser.ID)
	assert.Equal(t, fiber.StatusBadRequest, helper.StatusOf(err))
}

func TestListUsersFilters(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.As(testdb.User(t, db, "root", constants.RoleAdmin))
	testdb.User(t, db, "ana", constants.RoleStudent)
	testdb.User(t, db, "luis", constants.RoleStudent)
	testdb.User(t, db, "prof", constants.RoleTeacher)

	users, total, err := ListUsers(db, admin, dto.ListUsersQuery{Role: "student"}, paging())
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	users, total, err = ListUsers(db, admin, dto.ListUsersQuery{Search: "LUI"}, paging())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "luis", users[0].UserName)

	_, _, err = ListUsers(db, admin, dto.ListUsersQuery{Active: "maybe"}, paging())
	assert.Equal(t, fiber.StatusBadRequest, helper.StatusOf(err))
}

func TestListUsersSearchTreatsWildcardsLiterally(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.As(testdb.User(t, db, "root", constants.RoleAdmin))
	testdb.User(t, db, "ana", constants.RoleStudent)
	testdb.User(t, db, "ana_b", constants.RoleStudent)

	users, total, err := ListUsers(db, admin, dto.ListUsersQuery{Search: "_"}, paging())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "ana_b", users[0].UserName)

	_, total, err = ListUsers(db, admin, dto.ListUsersQuery{Search: "%"}, paging())
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestUpdateUserRoleAwayFromTeacherUnassignsSubjects(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.As(testdb.User(t, db, "root", constants.RoleAdmin))
	prof := testdb.User(t, db, "prof", constants.RoleTeacher)
	other := testdb.User(t, db, "ms_jones", constants.RoleTeacher)
	course := testdb.Course(t, db, "Grade 10")
	math := testdb.Subject(t, db, course.CourseID, "Math", "MAT-10", &prof.ID)
	art := testdb.Subject(t, db, course.CourseID, "Art", "ART-10", &other.ID)

	_, err := UpdateUser(db, admin, prof.ID, dto.UpdateUserRequest{FirstName: strPtr("Prof")})
	require.NoError(t, err)
	var got subjectModel.SubjectModel
	require.NoError(t, db.First(&got, math.SubjectID).Error)
	require.NotNil(t, got.SubjectTeacherID)

	_, err = UpdateUser(db, admin, prof.ID, dto.UpdateUserRequest{Role: strPtr("student")})
	require.NoError(t, err)

	got = subjectModel.SubjectModel{}
	require.NoError(t, db.First(&got, math.SubjectID).Error)
	assert.Nil(t, got.SubjectTeacherID)

	got = subjectModel.SubjectModel{}
	require.NoError(t, db.First(&got, art.SubjectID).Error)
	require.NotNil(t, got.SubjectTeacherID)
	assert.Equal(t, other.ID, *got.SubjectTeacherID)
}

func TestEnsureInitialAdminIsIdempotent(t *testing.T) {
	db := testdb.Open(t)

	created, err := EnsureInitialAdmin(db, "admin", "admin@estudify.com", "admin123456")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureInitialAdmin(db, "admin", "other@estudify.com", "different")
	require.NoError(t, err)
	assert.False(t, created)

	var admins []model.UserModel
	require.NoError(t, db.Where("user_name = ?", "admin").Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@estudify.com", admins[0].Email)
	assert.True(t, admins[0].IsStaff)
	assert.Equal(t, constants.RoleAdmin, admins[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].Password), []byte("admin123456")))
}
