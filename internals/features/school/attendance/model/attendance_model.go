// file: internals/features/school/attendance/model/attendance_model.go
package model

import (
	"math"
	"time"

	"gorm.io/datatypes"

	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	userModel "estudify_backend/internals/features/users/user/model"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusExcused Status = "excused"
)

var AllStatuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusExcused}

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusAbsent:
		return "Absent"
	case StatusLate:
		return "Late"
	case StatusExcused:
		return "Excused"
	default:
		return string(s)
	}
}

type AttendanceModel struct {
	AttendanceID         uint           `gorm:"column:attendance_id;primaryKey;autoIncrement"                                      json:"attendance_id"`
	AttendanceStudentID  uint           `gorm:"column:attendance_student_id;not null;uniqueIndex:uq_attendance_student_subject_date" json:"attendance_student_id"`
	AttendanceSubjectID  uint           `gorm:"column:attendance_subject_id;not null;uniqueIndex:uq_attendance_student_subject_date;index:idx_attendance_subject" json:"attendance_subject_id"`
	AttendanceDate       datatypes.Date `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_student_subject_date;index:idx_attendance_date" json:"attendance_date"`
	AttendanceStatus     Status         `gorm:"column:attendance_status;type:varchar(10);not null;default:'present'"              json:"attendance_status"`
	AttendanceNotes      string         `gorm:"column:attendance_notes;type:text"                                                  json:"attendance_notes"`
	AttendanceRecordedBy *uint          `gorm:"column:attendance_recorded_by"                                                      json:"attendance_recorded_by,omitempty"`
	AttendanceCreatedAt  time.Time      `gorm:"column:attendance_created_at;not null;autoCreateTime"                               json:"attendance_created_at"`

	Student  *userModel.UserModel       `gorm:"foreignKey:AttendanceStudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"        json:"student,omitempty"`
	Subject  *subjectModel.SubjectModel `gorm:"foreignKey:AttendanceSubjectID;references:SubjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"subject,omitempty"`
	Recorder *userModel.UserModel       `gorm:"foreignKey:AttendanceRecordedBy;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"      json:"recorder,omitempty"`
}

func (AttendanceModel) TableName() string { return "attendance" }

// Rate: present / total × 100, satu desimal; 0 kalau total 0.
func Rate(present, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(present)*1000/float64(total)) / 10
}
