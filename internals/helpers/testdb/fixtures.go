package testdb

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"estudify_backend/internals/constants"
	courseModel "estudify_backend/internals/features/school/academics/courses/model"
	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	enrollmentModel "estudify_backend/internals/features/school/enrollments/model"
	userModel "estudify_backend/internals/features/users/user/model"
	helperAuth "estudify_backend/internals/helpers/auth"
)

// Password mentah semua user fixture (hash bcrypt disiapkan sekali).
const Password = "secret123"

var (
	hashOnce sync.Once
	hashed   string
)

func passwordHash(t testing.TB) string {
	hashOnce.Do(func() {
		b, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
		require.NoError(t, err)
		hashed = string(b)
	})
	return hashed
}

func User(t testing.TB, db *gorm.DB, username string, role constants.Role) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserName:  username,
		Email:     username + "@school.test",
		FirstName: username,
		Password:  passwordHash(t),
		Role:      role,
		IsActive:  true,
	}
	u.SetDefaultValues()
	require.NoError(t, db.Create(u).Error)
	return u
}

func Course(t testing.TB, db *gorm.DB, name string) *courseModel.CourseModel {
	t.Helper()
	c := &courseModel.CourseModel{
		CourseName:       name,
		CourseSchoolYear: "2024-2025",
		CourseIsActive:   true,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Subject(t testing.TB, db *gorm.DB, courseID uint, name, code string, teacherID *uint) *subjectModel.SubjectModel {
	t.Helper()
	s := &subjectModel.SubjectModel{
		SubjectName:      name,
		SubjectCode:      code,
		SubjectCredits:   1,
		SubjectIsActive:  true,
		SubjectCourseID:  courseID,
		SubjectTeacherID: teacherID,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func Enroll(t testing.TB, db *gorm.DB, studentID, courseID uint) *enrollmentModel.EnrollmentModel {
	t.Helper()
	e := &enrollmentModel.EnrollmentModel{
		EnrollmentStudentID:  studentID,
		EnrollmentCourseID:   courseID,
		EnrollmentEnrolledOn: Date(time.Now()),
		EnrollmentIsActive:   true,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func EnrollSubject(t testing.TB, db *gorm.DB, studentID, subjectID uint) *enrollmentModel.SubjectEnrollmentModel {
	t.Helper()
	e := &enrollmentModel.SubjectEnrollmentModel{
		SubjectEnrollmentStudentID: studentID,
		SubjectEnrollmentSubjectID: subjectID,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

// Identity untuk user fixture.
func As(u *userModel.UserModel) helperAuth.Identity {
	return helperAuth.Identity{
		UserID:   u.ID,
		UserName: u.UserName,
		Role:     u.Role,
		IsStaff:  u.IsStaff,
	}
}

// Date: tengah malam UTC.
func Date(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
