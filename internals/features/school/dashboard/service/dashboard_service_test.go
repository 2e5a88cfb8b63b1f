package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estudify_backend/internals/constants"
	attendanceDTO "estudify_backend/internals/features/school/attendance/dto"
	attendanceService "estudify_backend/internals/features/school/attendance/service"
	"estudify_backend/internals/features/school/dashboard/dto"
	gradeDTO "estudify_backend/internals/features/school/grades/dto"
	gradeService "estudify_backend/internals/features/school/grades/service"
	helper "estudify_backend/internals/helpers"
	"estudify_backend/internals/helpers/testdb"
)

func score(v float64) *float64 { return &v }

func TestDashboardsAfterGradingAndAttendance(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.User(t, db, "root", constants.RoleAdmin)
	teacher := testdb.User(t, db, "mr_smith", constants.RoleTeacher)
	ana := testdb.User(t, db, "ana", constants.RoleStudent)
	luis := testdb.User(t, db, "luis", constants.RoleStudent)

	g10 := testdb.Course(t, db, "Grade 10")
	g11 := testdb.Course(t, db, "Grade 11")
	math := testdb.Subject(t, db, g10.CourseID, "Math", "MAT101", &teacher.ID)
	music := testdb.Subject(t, db, g11.CourseID, "Music", "MUS101", &teacher.ID)
	testdb.Enroll(t, db, ana.ID, g10.CourseID)
	testdb.Enroll(t, db, luis.ID, g10.CourseID)
	testdb.EnrollSubject(t, db, ana.ID, music.SubjectID)

	as := testdb.As(teacher)
	for _, g := range []struct {
		period string
		score  float64
	}{{"1", 4.0}, {"2", 2.0}} {
		_, err := gradeService.CreateGrade(db, as, gradeDTO.CreateGradeRequest{
			StudentID: ana.ID, SubjectID: math.SubjectID, Period: g.period, Score: score(g.score),
		})
		require.NoError(t, err)
	}

	now := time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)
	for i, st := range []string{"present", "present", "absent", "late"} {
		_, err := attendanceService.CreateAttendance(db, as, attendanceDTO.CreateAttendanceRequest{
			StudentID: ana.ID, SubjectID: math.SubjectID, Date: time.Date(2024, time.March, 4+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), Status: st,
		})
		require.NoError(t, err)
	}

	ad, err := AdminDashboard(db, testdb.As(admin), now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, ad.ActiveStudents)
	assert.EqualValues(t, 1, ad.ActiveTeachers)
	assert.EqualValues(t, 2, ad.ActiveCourses)
	assert.EqualValues(t, 2, ad.ActiveSubjects)
	assert.InDelta(t, 3.00, ad.GradeAverage, 1e-9)
	assert.InDelta(t, 50.0, ad.AttendanceRate, 1e-9)
	assert.Equal(t, "2024-03", ad.Month)
	assert.Len(t, ad.RecentStudents, 2)
	require.Len(t, ad.PopularCourses, 2)
	assert.Equal(t, "Grade 10", ad.PopularCourses[0].CourseName)
	assert.EqualValues(t, 2, ad.PopularCourses[0].ActiveEnrollments)
	assert.EqualValues(t, 0, ad.PopularCourses[1].ActiveEnrollments)

	_, err = AdminDashboard(db, as, now)
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))

	td, err := TeacherDashboard(db, as)
	require.NoError(t, err)
	assert.Len(t, td.Subjects, 2)
	assert.Equal(t, 2, td.TotalStudents)
	assert.EqualValues(t, 2, td.TotalGrades)
	assert.InDelta(t, 3.00, td.GradeAverage, 1e-9)
	assert.Len(t, td.RecentGrades, 2)

	stats, err := TeacherStatistics(db, as)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Math", stats[0].Subject.SubjectName)
	assert.EqualValues(t, 2, stats[0].TotalGrades)
	assert.EqualValues(t, 1, stats[0].Passed)
	assert.EqualValues(t, 1, stats[0].Failed)
	assert.InDelta(t, 50.0, stats[0].AttendanceRate, 1e-9)
	assert.Zero(t, stats[1].TotalGrades)

	students, err := TeacherStudents(db, as, dto.TeacherStudentsQuery{SubjectID: music.SubjectID})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, ana.ID, students[0].ID)

	sd, err := StudentDashboard(db, testdb.As(ana), now)
	require.NoError(t, err)
	assert.Len(t, sd.Enrollments, 1)
	assert.Len(t, sd.Grades, 2)
	assert.InDelta(t, 3.00, sd.GradeAverage, 1e-9)
	assert.Len(t, sd.UnreadNotifications, 2)
	assert.InDelta(t, 50.0, sd.AttendanceRate, 1e-9)

	empty, err := StudentDashboard(db, testdb.As(luis), now)
	require.NoError(t, err)
	assert.Zero(t, empty.GradeAverage)
	assert.Zero(t, empty.AttendanceRate)
	assert.Empty(t, empty.UnreadNotifications)
}
