package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estudify_backend/internals/constants"
	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	"estudify_backend/internals/features/school/grades/dto"
	"estudify_backend/internals/features/school/grades/model"
	notifModel "estudify_backend/internals/features/school/notifications/model"
	userModel "estudify_backend/internals/features/users/user/model"
	helper "estudify_backend/internals/helpers"
	"estudify_backend/internals/helpers/testdb"
)

type gradeFixture struct {
	db      *gorm.DB
	admin   *userModel.UserModel
	teacher *userModel.UserModel
	other   *userModel.UserModel
	ana     *userModel.UserModel
	math    *subjectModel.SubjectModel
	art     *subjectModel.SubjectModel
}

func newGradeFixture(t *testing.T) gradeFixture {
	db := testdb.Open(t)
	f := gradeFixture{
		db:      db,
		admin:   testdb.User(t, db, "root", constants.RoleAdmin),
		teacher: testdb.User(t, db, "mr_smith", constants.RoleTeacher),
		other:   testdb.User(t, db, "ms_jones", constants.RoleTeacher),
		ana:     testdb.User(t, db, "ana", constants.RoleStudent),
	}
	course := testdb.Course(t, db, "Grade 10")
	f.math = testdb.Subject(t, db, course.CourseID, "Math", "MAT101", &f.teacher.ID)
	f.art = testdb.Subject(t, db, course.CourseID, "Art", "ART101", &f.other.ID)
	testdb.Enroll(t, db, f.ana.ID, course.CourseID)
	return f
}

func score(v float64) *float64 { return &v }

func (f gradeFixture) create(t *testing.T, period model.Period, v float64) *model.GradeModel {
	t.Helper()
	g, err := CreateGrade(f.db, testdb.As(f.teacher), dto.CreateGradeRequest{
		StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Period: string(period), Score: score(v),
	})
	require.NoError(t, err)
	return g
}

func TestCreateGradeEmitsExactlyOneNotification(t *testing.T) {
	f := newGradeFixture(t)
	g := f.create(t, model.Period1, 4.0)
	assert.True(t, g.GradeNotified)

	var stored model.GradeModel
	require.NoError(t, f.db.First(&stored, "grade_id = ?", g.GradeID).Error)
	assert.True(t, stored.GradeNotified)

	var notes []notifModel.NotificationModel
	require.NoError(t, f.db.Where("notification_student_id = ?", f.ana.ID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, notifModel.TypeGrade, notes[0].NotificationType)
	assert.Equal(t, "New grade in Math", notes[0].NotificationTitle)
	assert.Equal(t, "You received a grade of 4.00 in Math - Period 1", notes[0].NotificationBody)
	assert.False(t, notes[0].NotificationIsRead)
}

func TestDuplicateGradeIsConflictAndOriginalUnchanged(t *testing.T) {
	f := newGradeFixture(t)
	orig := f.create(t, model.Period1, 4.0)

	_, err := CreateGrade(f.db, testdb.As(f.teacher), dto.CreateGradeRequest{
		StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Period: "1", Score: score(1.0),
	})
	assert.Equal(t, fiber.StatusConflict, helper.StatusOf(err))

	var rows []model.GradeModel
	require.NoError(t, f.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, orig.GradeID, rows[0].GradeID)
	assert.InDelta(t, 4.0, rows[0].GradeScore, 1e-9)

	var n int64
	require.NoError(t, f.db.Model(&notifModel.NotificationModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestCreateGradeRollsBackWhenNotificationFails(t *testing.T) {
	f := newGradeFixture(t)
	require.NoError(t, f.db.Migrator().DropTable(&notifModel.NotificationModel{}))

	_, err := CreateGrade(f.db, testdb.As(f.teacher), dto.CreateGradeRequest{
		StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Period: "1", Score: score(4.0),
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, helper.StatusOf(err))

	var n int64
	require.NoError(t, f.db.Model(&model.GradeModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateGradeValidation(t *testing.T) {
	f := newGradeFixture(t)
	teacher := testdb.As(f.teacher)
	luis := testdb.User(t, f.db, "luis", constants.RoleStudent)

	cases := []struct {
		name string
		req  dto.CreateGradeRequest
		want int
	}{
		{"bad period", dto.CreateGradeRequest{StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Period: "5", Score: score(3)}, fiber.StatusBadRequest},
		{"score too high", dto.CreateGradeRequest{StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Period: "1", Score: score(5.5)}, fiber.StatusBadRequest},
		{"three decimals", dto.CreateGradeRequest{StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Period: "1", Score: score(3.125)}, fiber.StatusBadRequest},
		{"missing score", dto.CreateGradeRequest{StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Period: "1"}, fiber.StatusBadRequest},
		{"not enrolled", dto.CreateGradeRequest{StudentID: luis.ID, SubjectID: f.math.SubjectID, Period: "1", Score: score(3)}, fiber.StatusBadRequest},
		{"teacher as student", dto.CreateGradeRequest{StudentID: f.other.ID, SubjectID: f.math.SubjectID, Period: "1", Score: score(3)}, fiber.StatusBadRequest},
		{"other teacher subject", dto.CreateGradeRequest{StudentID: f.ana.ID, SubjectID: f.art.SubjectID, Period: "1", Score: score(3)}, fiber.StatusForbidden},
		{"unknown subject", dto.CreateGradeRequest{StudentID: f.ana.ID, SubjectID: 9999, Period: "1", Score: score(3)}, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateGrade(f.db, teacher, tc.req)
			assert.Equal(t, tc.want, helper.StatusOf(err))
		})
	}

	_, err := CreateGrade(f.db, testdb.As(f.ana), dto.CreateGradeRequest{StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Period: "1", Score: score(5)})
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))

	_, err = CreateGrade(f.db, testdb.As(f.admin), dto.CreateGradeRequest{StudentID: f.ana.ID, SubjectID: 9999, Period: "1", Score: score(3)})
	assert.Equal(t, fiber.StatusBadRequest, helper.StatusOf(err))

	g, err := CreateGrade(f.db, testdb.As(f.admin), dto.CreateGradeRequest{StudentID: f.ana.ID, SubjectID: f.art.SubjectID, Period: "final", Score: score(3.25)})
	require.NoError(t, err)
	assert.Equal(t, model.PeriodFinal, g.GradePeriod)
}

func TestGradeViaSubjectEnrollment(t *testing.T) {
	f := newGradeFixture(t)
	other := testdb.Course(t, f.db, "Electives")
	music := testdb.Subject(t, f.db, other.CourseID, "Music", "MUS101", &f.teacher.ID)
	testdb.EnrollSubject(t, f.db, f.ana.ID, music.SubjectID)

	_, err := CreateGrade(f.db, testdb.As(f.teacher), dto.CreateGradeRequest{
		StudentID: f.ana.ID, SubjectID: music.SubjectID, Period: "2", Score: score(2.5),
	})
	require.NoError(t, err)
}

func TestUpdateAndDeleteRequireOwningTeacher(t *testing.T) {
	f := newGradeFixture(t)
	g := f.create(t, model.Period1, 4.0)

	_, err := UpdateGrade(f.db, testdb.As(f.other), g.GradeID, dto.UpdateGradeRequest{Score: score(1)})
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))
	_, err = UpdateGrade(f.db, testdb.As(f.other), 9999, dto.UpdateGradeRequest{Score: score(1)})
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(DeleteGrade(f.db, testdb.As(f.other), g.GradeID)))
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(DeleteGrade(f.db, testdb.As(f.teacher), 9999)))

	notes := "remedial"
	updated, err := UpdateGrade(f.db, testdb.As(f.teacher), g.GradeID, dto.UpdateGradeRequest{Score: score(2.75), Notes: &notes})
	require.NoError(t, err)
	assert.InDelta(t, 2.75, updated.GradeScore, 1e-9)
	assert.False(t, updated.Passed())
	assert.Equal(t, "remedial", updated.GradeNotes)

	var n int64
	require.NoError(t, f.db.Model(&notifModel.NotificationModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	require.NoError(t, DeleteGrade(f.db, testdb.As(f.teacher), g.GradeID))
	require.NoError(t, f.db.Model(&model.GradeModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAnaMathAverages(t *testing.T) {
	f := newGradeFixture(t)
	p1 := f.create(t, model.Period1, 4.0)
	p2 := f.create(t, model.Period2, 2.0)
	assert.True(t, p1.Passed())
	assert.False(t, p2.Passed())

	avg, err := AverageForSubject(f.db, f.math.SubjectID)
	require.NoError(t, err)
	assert.InDelta(t, 3.00, avg, 1e-9)

	groups, err := AveragesByStudent(f.db, f.ana.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Math", groups[0].Subject.SubjectName)
	assert.InDelta(t, 3.00, groups[0].Average, 1e-9)
	require.Len(t, groups[0].Grades, 2)
	assert.Equal(t, model.Period1, groups[0].Grades[0].GradePeriod)

	mine, err := MyGrades(f.db, testdb.As(f.ana))
	require.NoError(t, err)
	assert.InDelta(t, 3.00, mine.Average, 1e-9)
	assert.Equal(t, "Grade 10", mine.Subjects[0].CourseName)

	empty, err := AverageForSubject(f.db, f.art.SubjectID)
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestListTeacherGradesFilters(t *testing.T) {
	f := newGradeFixture(t)
	f.create(t, model.Period1, 4.0)
	f.create(t, model.Period2, 2.0)
	_, err := CreateGrade(f.db, testdb.As(f.other), dto.CreateGradeRequest{
		StudentID: f.ana.ID, SubjectID: f.art.SubjectID, Period: "1", Score: score(5),
	})
	require.NoError(t, err)

	p := helper.NewPaging(1, 20, 20, 200)
	list, total, err := ListTeacherGrades(f.db, testdb.As(f.teacher), dto.ListGradesQuery{}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, g := range list {
		assert.Equal(t, f.math.SubjectID, g.GradeSubjectID)
	}

	_, total, err = ListTeacherGrades(f.db, testdb.As(f.teacher), dto.ListGradesQuery{Period: "2"}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = ListTeacherGrades(f.db, testdb.As(f.teacher), dto.ListGradesQuery{Search: "AN"}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, total, err = ListTeacherGrades(f.db, testdb.As(f.teacher), dto.ListGradesQuery{Search: "zzz"}, p)
	require.NoError(t, err)
	assert.Zero(t, total)

	// wildcard LIKE dari input user dicocokkan literal
	_, total, err = ListTeacherGrades(f.db, testdb.As(f.teacher), dto.ListGradesQuery{Search: "_"}, p)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, _, err = ListTeacherGrades(f.db, testdb.As(f.teacher), dto.ListGradesQuery{Period: "9"}, p)
	assert.Equal(t, fiber.StatusBadRequest, helper.StatusOf(err))
}
