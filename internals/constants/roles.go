package constants

import (
	"fmt"
	"strings"
)

// Role adalah himpunan tertutup; jangan bandingkan string mentah di handler.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Template pesan error role
const (
	ErrOnlyTeachersCanAccess = "❌ Hanya teacher yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess   = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyStudentsCanAccess = "❌ Hanya student yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess    = "❌ Hanya admin atau teacher yang boleh mengakses fitur %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// AllRoles: urutan admin → teacher → student
var AllRoles = []Role{
	RoleAdmin,
	RoleTeacher,
	RoleStudent,
}

// ParseRole menolak nilai di luar AllRoles.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("role tidak dikenal: %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }

// Dashboard route per role
const (
	DashboardAdmin   = "admin"
	DashboardTeacher = "teacher"
	DashboardStudent = "student"
)
