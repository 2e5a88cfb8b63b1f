package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estudify_backend/internals/constants"
	"estudify_backend/internals/features/school/enrollments/dto"
	"estudify_backend/internals/features/school/enrollments/model"
	helper "estudify_backend/internals/helpers"
	"estudify_backend/internals/helpers/testdb"
)

func TestEnrollCourseTwiceIsConflictAndKeepsOneRow(t *testing.T) {
	db := testdb.Open(t)
	ana := testdb.User(t, db, "ana", constants.RoleStudent)
	course := testdb.Course(t, db, "Grade 10")

	e, err := EnrollCourse(db, testdb.As(ana), course.CourseID)
	require.NoError(t, err)
	assert.True(t, e.EnrollmentIsActive)

	_, err = EnrollCourse(db, testdb.As(ana), course.CourseID)
	assert.Equal(t, fiber.StatusConflict, helper.StatusOf(err))

	var n int64
	require.NoError(t, db.Model(&model.EnrollmentModel{}).
		Where("enrollment_student_id = ? AND enrollment_course_id = ?", ana.ID, course.CourseID).
		Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestEnrollCourseRequiresActiveCourseAndStudent(t *testing.T) {
	db := testdb.Open(t)
	ana := testdb.As(testdb.User(t, db, "ana", constants.RoleStudent))
	prof := testdb.As(testdb.User(t, db, "prof", constants.RoleTeacher))
	course := testdb.Course(t, db, "Grade 10")
	closed := testdb.Course(t, db, "Closed")
	require.NoError(t, db.Model(closed).Update("course_is_active", false).Error)

	_, err := EnrollCourse(db, ana, 999)
	assert.Equal(t, fiber.StatusNotFound, helper.StatusOf(err))

	_, err = EnrollCourse(db, ana, closed.CourseID)
	assert.Equal(t, fiber.StatusBadRequest, helper.StatusOf(err))

	_, err = EnrollCourse(db, prof, course.CourseID)
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))
}

func TestEnrollSubjectConflict(t *testing.T) {
	db := testdb.Open(t)
	ana := testdb.As(testdb.User(t, db, "ana", constants.RoleStudent))
	course := testdb.Course(t, db, "Grade 10")
	math := testdb.Subject(t, db, course.CourseID, "Math", "MAT", nil)

	se, err := EnrollSubject(db, ana, math.SubjectID)
	require.NoError(t, err)
	require.NotNil(t, se.Subject)
	assert.Equal(t, "MAT", se.Subject.SubjectCode)

	_, err = EnrollSubject(db, ana, math.SubjectID)
	assert.Equal(t, fiber.StatusConflict, helper.StatusOf(err))

	mine, err := MySubjects(db, ana)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Subject)
	require.NotNil(t, mine[0].Subject.Course)
	assert.Equal(t, "Grade 10", mine[0].Subject.Course.CourseName)
}

func TestAvailableCatalogExcludesEnrolled(t *testing.T) {
	db := testdb.Open(t)
	ana := testdb.User(t, db, "ana", constants.RoleStudent)
	a := testdb.Course(t, db, "Alpha")
	b := testdb.Course(t, db, "Beta")
	hidden := testdb.Course(t, db, "Hidden")
	require.NoError(t, db.Model(hidden).Update("course_is_active", false).Error)
	testdb.Enroll(t, db, ana.ID, a.CourseID)
	s1 := testdb.Subject(t, db, a.CourseID, "Math", "MAT", nil)
	s2 := testdb.Subject(t, db, b.CourseID, "Art", "ART", nil)
	testdb.EnrollSubject(t, db, ana.ID, s1.SubjectID)

	courses, err := AvailableCourses(db, testdb.As(ana))
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, b.CourseID, courses[0].CourseID)

	subjects, err := AvailableSubjects(db, testdb.As(ana))
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, s2.SubjectID, subjects[0].SubjectID)
}

func TestMyCoursesWithActiveSubjects(t *testing.T) {
	db := testdb.Open(t)
	ana := testdb.User(t, db, "ana", constants.RoleStudent)
	c := testdb.Course(t, db, "Grade 10")
	testdb.Subject(t, db, c.CourseID, "Math", "MAT", nil)
	old := testdb.Subject(t, db, c.CourseID, "Latin", "LAT", nil)
	require.NoError(t, db.Model(old).Update("subject_is_active", false).Error)
	testdb.Enroll(t, db, ana.ID, c.CourseID)

	mine, err := MyCourses(db, testdb.As(ana))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Enrollment.Course)
	assert.Equal(t, "Grade 10", mine[0].Enrollment.Course.CourseName)
	require.Len(t, mine[0].Subjects, 1)
	assert.Equal(t, "MAT", mine[0].Subjects[0].SubjectCode)

	resp := dto.FromMyCourses(mine)
	assert.Len(t, resp[0].Subjects, 1)
}

func TestStudentEnrollmentPathsAreIndependent(t *testing.T) {
	db := testdb.Open(t)
	ana := testdb.User(t, db, "ana", constants.RoleStudent)
	luis := testdb.User(t, db, "luis", constants.RoleStudent)
	eva := testdb.User(t, db, "eva", constants.RoleStudent)
	c := testdb.Course(t, db, "Grade 10")
	other := testdb.Course(t, db, "Grade 11")
	math := testdb.Subject(t, db, c.CourseID, "Math", "MAT", nil)

	testdb.Enroll(t, db, ana.ID, c.CourseID)
	testdb.EnrollSubject(t, db, luis.ID, math.SubjectID)
	e := testdb.Enroll(t, db, eva.ID, c.CourseID)
	require.NoError(t, db.Model(e).Update("enrollment_is_active", false).Error)
	testdb.Enroll(t, db, eva.ID, other.CourseID)

	for _, tc := range []struct {
		id   uint
		want bool
	}{{ana.ID, true}, {luis.ID, true}, {eva.ID, false}} {
		ok, err := IsStudentEnrolledInSubject(db, tc.id, math.SubjectID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "student %d", tc.id)
	}

	students, err := StudentsForSubjects(db, []uint{math.SubjectID}, true)
	require.NoError(t, err)
	assert.Len(t, students, 2)

	require.NoError(t, db.Model(ana).Update("is_active", false).Error)
	ok, err := IsStudentEnrolledInSubject(db, ana.ID, math.SubjectID)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := StudentsForSubjects(db, []uint{math.SubjectID}, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAdminEnrollmentManagement(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.As(testdb.User(t, db, "root", constants.RoleAdmin))
	ana := testdb.User(t, db, "ana", constants.RoleStudent)
	luis := testdb.User(t, db, "luis", constants.RoleStudent)
	c := testdb.Course(t, db, "Grade 10")
	e1 := testdb.Enroll(t, db, ana.ID, c.CourseID)
	testdb.Enroll(t, db, luis.ID, c.CourseID)

	list, total, err := ListEnrollments(db, admin, dto.ListEnrollmentsQuery{StudentID: ana.ID}, helper.NewPaging(1, 10, 10, 100))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.NotNil(t, list[0].Student)
	assert.Equal(t, "ana", list[0].Student.UserName)

	m, err := DeactivateEnrollment(db, admin, e1.EnrollmentID)
	require.NoError(t, err)
	assert.False(t, m.EnrollmentIsActive)

	_, total, err = ListEnrollments(db, admin, dto.ListEnrollmentsQuery{CourseID: c.CourseID, Active: "true"}, helper.NewPaging(1, 10, 10, 100))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	require.NoError(t, DeleteEnrollment(db, admin, e1.EnrollmentID))
	assert.Equal(t, fiber.StatusNotFound, helper.StatusOf(DeleteEnrollment(db, admin, e1.EnrollmentID)))

	_, err = DeactivateEnrollment(db, testdb.As(ana), e1.EnrollmentID)
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))
}
