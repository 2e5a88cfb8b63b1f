package database

import (
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	courseModel "estudify_backend/internals/features/school/academics/courses/model"
	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	attendanceModel "estudify_backend/internals/features/school/attendance/model"
	enrollmentModel "estudify_backend/internals/features/school/enrollments/model"
	gradeModel "estudify_backend/internals/features/school/grades/model"
	notificationModel "estudify_backend/internals/features/school/notifications/model"
	authModel "estudify_backend/internals/features/users/auth/model"
	userModel "estudify_backend/internals/features/users/user/model"
)

// Urutan parent → child supaya FK bisa dibuat.
func models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklistModel{},
		&courseModel.CourseModel{},
		&subjectModel.SubjectModel{},
		&enrollmentModel.EnrollmentModel{},
		&enrollmentModel.SubjectEnrollmentModel{},
		&gradeModel.GradeModel{},
		&attendanceModel.AttendanceModel{},
		&notificationModel.NotificationModel{},
	}
}

// Migrate membuat/menyesuaikan seluruh tabel domain.
func Migrate(db *gorm.DB) error {
	for _, m := range models() {
		if err := db.AutoMigrate(m); err != nil {
			return errors.Wrapf(err, "auto migrate %T", m)
		}
	}
	log.Printf("[MIGRATE] %d tabel siap", len(models()))
	return nil
}
