package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estudify_backend/internals/constants"
	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	"estudify_backend/internals/features/school/attendance/dto"
	"estudify_backend/internals/features/school/attendance/model"
	userModel "estudify_backend/internals/features/users/user/model"
	helper "estudify_backend/internals/helpers"
	"estudify_backend/internals/helpers/dbtime"
	"estudify_backend/internals/helpers/testdb"
)

type attendanceFixture struct {
	db      *gorm.DB
	teacher *userModel.UserModel
	other   *userModel.UserModel
	ana     *userModel.UserModel
	math    *subjectModel.SubjectModel
	art     *subjectModel.SubjectModel
}

func newAttendanceFixture(t *testing.T) attendanceFixture {
	db := testdb.Open(t)
	f := attendanceFixture{
		db:      db,
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

func (f attendanceFixture) record(t *testing.T, date string, status model.Status) *model.AttendanceModel {
	t.Helper()
	a, err := CreateAttendance(f.db, testdb.As(f.teacher), dto.CreateAttendanceRequest{
		StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Date: date, Status: string(status),
	})
	require.NoError(t, err)
	return a
}

func TestCreateAttendanceRecordsCaller(t *testing.T) {
	f := newAttendanceFixture(t)
	a := f.record(t, "2024-03-04", "")
	assert.Equal(t, model.StatusPresent, a.AttendanceStatus)
	require.NotNil(t, a.AttendanceRecordedBy)
	assert.Equal(t, f.teacher.ID, *a.AttendanceRecordedBy)

	_, err := CreateAttendance(f.db, testdb.As(f.teacher), dto.CreateAttendanceRequest{
		StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Date: "2024-03-04", Status: "absent",
	})
	assert.Equal(t, fiber.StatusConflict, helper.StatusOf(err))

	var stored model.AttendanceModel
	require.NoError(t, f.db.First(&stored, "attendance_id = ?", a.AttendanceID).Error)
	assert.Equal(t, model.StatusPresent, stored.AttendanceStatus)
}

func TestCreateAttendanceRejects(t *testing.T) {
	f := newAttendanceFixture(t)
	teacher := testdb.As(f.teacher)

	_, err := CreateAttendance(f.db, teacher, dto.CreateAttendanceRequest{StudentID: f.ana.ID, SubjectID: f.art.SubjectID, Date: "2024-03-04"})
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))
	_, err = CreateAttendance(f.db, teacher, dto.CreateAttendanceRequest{StudentID: f.ana.ID, SubjectID: 9999, Date: "2024-03-04"})
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))
	_, err = CreateAttendance(f.db, teacher, dto.CreateAttendanceRequest{StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Date: "04/03/2024"})
	assert.Equal(t, fiber.StatusBadRequest, helper.StatusOf(err))
	_, err = CreateAttendance(f.db, teacher, dto.CreateAttendanceRequest{StudentID: f.ana.ID, SubjectID: f.math.SubjectID, Date: "2024-03-04", Status: "sick"})
	assert.Equal(t, fiber.StatusBadRequest, helper.StatusOf(err))

	luis := testdb.User(t, f.db, "luis", constants.RoleStudent)
	_, err = CreateAttendance(f.db, teacher, dto.CreateAttendanceRequest{StudentID: luis.ID, SubjectID: f.math.SubjectID, Date: "2024-03-04"})
	assert.Equal(t, fiber.StatusBadRequest, helper.StatusOf(err))
}

func TestUpdateAndDeleteAttendanceOwnership(t *testing.T) {
	f := newAttendanceFixture(t)
	a := f.record(t, "2024-03-04", model.StatusAbsent)

	late := "late"
	_, err := UpdateAttendance(f.db, testdb.As(f.other), a.AttendanceID, dto.UpdateAttendanceRequest{Status: &late})
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(DeleteAttendance(f.db, testdb.As(f.other), a.AttendanceID)))
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(DeleteAttendance(f.db, testdb.As(f.teacher), 9999)))

	notes := "bus"
	updated, err := UpdateAttendance(f.db, testdb.As(f.teacher), a.AttendanceID, dto.UpdateAttendanceRequest{Status: &late, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, model.StatusLate, updated.AttendanceStatus)
	assert.Equal(t, "bus", updated.AttendanceNotes)

	require.NoError(t, DeleteAttendance(f.db, testdb.As(f.teacher), a.AttendanceID))
	var n int64
	require.NoError(t, f.db.Model(&model.AttendanceModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestMonthlyRateIsFiftyPercent(t *testing.T) {
	f := newAttendanceFixture(t)
	f.record(t, "2024-03-04", model.StatusPresent)
	f.record(t, "2024-03-05", model.StatusPresent)
	f.record(t, "2024-03-06", model.StatusAbsent)
	f.record(t, "2024-03-07", model.StatusLate)
	// bulan yang sama tahun lain tidak ikut dihitung
	f.record(t, "2023-03-07", model.StatusAbsent)

	march := dbtime.MonthOf(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	rate, err := AttendanceRate(f.db, RateFilter{SubjectIDs: []uint{f.math.SubjectID}, Month: &march})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, rate, 1e-9)

	rate, err = AttendanceRate(f.db, RateFilter{StudentID: f.ana.ID, Month: &march})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, rate, 1e-9)

	april := dbtime.MonthOf(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	rate, err = AttendanceRate(f.db, RateFilter{StudentID: f.ana.ID, Month: &april})
	require.NoError(t, err)
	assert.Zero(t, rate)

	rate, err = SubjectRate(f.db, testdb.As(f.teacher), dto.RateQuery{SubjectID: f.math.SubjectID, Month: "2024-03"})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, rate, 1e-9)

	_, err = SubjectRate(f.db, testdb.As(f.teacher), dto.RateQuery{SubjectID: f.art.SubjectID})
	assert.Equal(t, fiber.StatusForbidden, helper.StatusOf(err))

	s, err := StudentSummary(f.db, f.ana.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, s.Total)
	assert.EqualValues(t, 2, s.Present)
	assert.EqualValues(t, 2, s.Absent)
	assert.EqualValues(t, 1, s.Late)
	assert.InDelta(t, 40.0, s.Rate, 1e-9)
}

func TestListTeacherAttendanceFilters(t *testing.T) {
	f := newAttendanceFixture(t)
	f.record(t, "2024-03-04", model.StatusPresent)
	f.record(t, "2024-03-05", model.StatusAbsent)
	_, err := CreateAttendance(f.db, testdb.As(f.other), dto.CreateAttendanceRequest{
		StudentID: f.ana.ID, SubjectID: f.art.SubjectID, Date: "2024-03-04",
	})
	require.NoError(t, err)

	p := helper.NewPaging(1, 20, 20, 200)
	list, total, err := ListTeacherAttendance(f.db, testdb.As(f.teacher), dto.ListAttendanceQuery{}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "2024-03-05", dbtime.FormatDate(list[0].AttendanceDate))

	_, total, err = ListTeacherAttendance(f.db, testdb.As(f.teacher), dto.ListAttendanceQuery{Status: "absent"}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = ListTeacherAttendance(f.db, testdb.As(f.teacher), dto.ListAttendanceQuery{Date: "2024-03-04"}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	mine, err := MyAttendance(f.db, testdb.As(f.ana))
	require.NoError(t, err)
	assert.Len(t, mine.Records, 3)
	assert.EqualValues(t, 3, mine.Summary.Total)
}
