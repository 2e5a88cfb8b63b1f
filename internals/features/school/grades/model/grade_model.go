// file: internals/features/school/grades/model/grade_model.go
package model

import (
	"fmt"
	"math"
	"time"

	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	userModel "estudify_backend/internals/features/users/user/model"
)

type Period string

const (
	Period1     Period = "1"
	Period2     Period = "2"
	Period3     Period = "3"
	Period4     Period = "4"
	PeriodFinal Period = "final"
)

var AllPeriods = []Period{Period1, Period2, Period3, Period4, PeriodFinal}

// Batas nilai & ambang lulus (skala 0..5)
const (
	MinScore     = 0.0
	MaxScore     = 5.0
	PassingScore = 3.0
)

func (p Period) Valid() bool {
	for _, v := range AllPeriods {
		if p == v {
			return true
		}
	}
	return false
}

// Label untuk tampilan & notifikasi
func (p Period) Label() string {
	switch p {
	case PeriodFinal:
		return "Final"
	case Period1, Period2, Period3, Period4:
		return "Period " + string(p)
	default:
		return string(p)
	}
}

type GradeModel struct {
	GradeID        uint    `gorm:"column:grade_id;primaryKey;autoIncrement"                                        json:"grade_id"`
	GradeStudentID uint    `gorm:"column:grade_student_id;not null;uniqueIndex:uq_grades_student_subject_period"   json:"grade_student_id"`
	GradeSubjectID uint    `gorm:"column:grade_subject_id;not null;uniqueIndex:uq_grades_student_subject_period;index:idx_grades_subject" json:"grade_subject_id"`
	GradePeriod    Period  `gorm:"column:grade_period;type:varchar(10);not null;uniqueIndex:uq_grades_student_subject_period" json:"grade_period"`
	GradeScore     float64 `gorm:"column:grade_score;type:numeric(4,2);not null"                                  json:"grade_score"`
	GradeNotes     string  `gorm:"column:grade_notes;type:text"                                                    json:"grade_notes"`
	GradeNotified  bool    `gorm:"column:grade_notified;not null"                                                  json:"grade_notified"`

	GradeCreatedAt time.Time `gorm:"column:grade_created_at;not null;autoCreateTime;index:idx_grades_created" json:"grade_created_at"`
	GradeUpdatedAt time.Time `gorm:"column:grade_updated_at;not null;autoUpdateTime"                          json:"grade_updated_at"`

	Student *userModel.UserModel       `gorm:"foreignKey:GradeStudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"        json:"student,omitempty"`
	Subject *subjectModel.SubjectModel `gorm:"foreignKey:GradeSubjectID;references:SubjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"subject,omitempty"`
}

func (GradeModel) TableName() string { return "grades" }

// Passed dihitung ulang setiap dipanggil, tidak pernah disimpan.
func (m GradeModel) Passed() bool {
	return m.GradeScore >= PassingScore
}

// RoundScore: dua desimal (numeric(4,2))
func RoundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidScore: 0..5 dengan maksimal dua desimal.
func ValidScore(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("score tidak valid")
	}
	if v < MinScore || v > MaxScore {
		return fmt.Errorf("score harus di antara %.1f dan %.1f", MinScore, MaxScore)
	}
	if math.Abs(RoundScore(v)-v) > 1e-9 {
		return fmt.Errorf("score maksimal dua desimal")
	}
	return nil
}

// Average: rata-rata aritmetika dibulatkan 2 desimal; 0 untuk input kosong.
func Average(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return RoundScore(sum / float64(len(scores)))
}
