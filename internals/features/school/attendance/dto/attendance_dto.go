package dto

import (
	"strings"
	"time"

	"estudify_backend/internals/features/school/attendance/model"
	"estudify_backend/internals/helpers/dbtime"
)

/* ===================== REQUEST ===================== */

type CreateAttendanceRequest struct {
	StudentID uint   `json:"attendance_student_id" form:"attendance_student_id" validate:"required,gt=0"`
	SubjectID uint   `json:"attendance_subject_id" form:"attendance_subject_id" validate:"required,gt=0"`
	Date      string `json:"attendance_date"       form:"attendance_date"       validate:"required,datetime=2006-01-02"`
	Status    string `json:"attendance_status"     form:"attendance_status"     validate:"omitempty,oneof=present absent late excused"`
	Notes     string `json:"attendance_notes"      form:"attendance_notes"      validate:"omitempty,max=5000"`
}

// Status kosong = present.
func (r *CreateAttendanceRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Status == "" {
		r.Status = string(model.StatusPresent)
	}
	r.Notes = strings.TrimSpace(r.Notes)
}

type UpdateAttendanceRequest struct {
	Status *string `json:"attendance_status" form:"attendance_status" validate:"omitempty,oneof=present absent late excused"`
	Notes  *string `json:"attendance_notes"  form:"attendance_notes"  validate:"omitempty,max=5000"`
}

func (r *UpdateAttendanceRequest) Normalize() {
	if r.Status != nil {
		s := strings.ToLower(strings.TrimSpace(*r.Status))
		r.Status = &s
	}
	if r.Notes != nil {
		n := strings.TrimSpace(*r.Notes)
		r.Notes = &n
	}
}

type ListAttendanceQuery struct {
	SubjectID uint   `query:"subject_id"`
	Status    string `query:"status"`
	Date      string `query:"date"` // YYYY-MM-DD
}

type RateQuery struct {
	SubjectID uint   `query:"subject_id"`
	Month     string `query:"month"` // YYYY-MM, kosong = semua
}

/* ===================== RESPONSE ===================== */

type AttendanceResponse struct {
	AttendanceID           uint         `json:"attendance_id"`
	AttendanceStudentID    uint         `json:"attendance_student_id"`
	AttendanceStudentName  string       `json:"attendance_student_name,omitempty"`
	AttendanceSubjectID    uint         `json:"attendance_subject_id"`
	AttendanceSubjectName  string       `json:"attendance_subject_name,omitempty"`
	AttendanceDate         string       `json:"attendance_date"`
	AttendanceStatus       model.Status `json:"attendance_status"`
	AttendanceStatusLabel  string       `json:"attendance_status_label"`
	AttendanceNotes        string       `json:"attendance_notes"`
	AttendanceRecordedBy   *uint        `json:"attendance_recorded_by,omitempty"`
	AttendanceRecorderName string       `json:"attendance_recorder_name,omitempty"`
	AttendanceCreatedAt    time.Time    `json:"attendance_created_at"`
}

func FromModel(m model.AttendanceModel) AttendanceResponse {
	out := AttendanceResponse{
		AttendanceID:          m.AttendanceID,
		AttendanceStudentID:   m.AttendanceStudentID,
		AttendanceSubjectID:   m.AttendanceSubjectID,
		AttendanceDate:        dbtime.FormatDate(m.AttendanceDate),
		AttendanceStatus:      m.AttendanceStatus,
		AttendanceStatusLabel: m.AttendanceStatus.Label(),
		AttendanceNotes:       m.AttendanceNotes,
		AttendanceRecordedBy:  m.AttendanceRecordedBy,
		AttendanceCreatedAt:   m.AttendanceCreatedAt,
	}
	if m.Student != nil {
		out.AttendanceStudentName = m.Student.FullName()
	}
	if m.Subject != nil {
		out.AttendanceSubjectName = m.Subject.SubjectName
	}
	if m.Recorder != nil {
		out.AttendanceRecorderName = m.Recorder.FullName()
	}
	return out
}

func FromModels(list []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// Summary: jumlah per status + persentase hadir.
type Summary struct {
	Total   int64   `json:"total"`
	Present int64   `json:"present"`
	Absent  int64   `json:"absent"`
	Late    int64   `json:"late"`
	Excused int64   `json:"excused"`
	Rate    float64 `json:"rate"`
}

type MyAttendanceResponse struct {
	Summary Summary              `json:"summary"`
	Records []AttendanceResponse `json:"records"`
}
