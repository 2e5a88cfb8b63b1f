package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseDTO "estudify_backend/internals/features/school/academics/courses/dto"
	subjectDTO "estudify_backend/internals/features/school/academics/subjects/dto"
	"estudify_backend/internals/features/school/enrollments/dto"
	"estudify_backend/internals/features/school/enrollments/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

type StudentEnrollmentController struct {
	DB *gorm.DB
}

func NewStudentEnrollmentController(db *gorm.DB) *StudentEnrollmentController {
	return &StudentEnrollmentController{DB: db}
}

// GET /api/s/catalog/courses
func (ctl *StudentEnrollmentController) AvailableCourses(c *fiber.Ctx) error {
	list, err := service.AvailableCourses(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", courseDTO.FromModels(list), nil)
}

// POST /api/s/catalog/courses/:id/enroll
func (ctl *StudentEnrollmentController) EnrollCourse(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := service.EnrollCourse(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Berhasil mendaftar di course "+row.Course.CourseName, dto.FromModel(*row))
}

// GET /api/s/catalog/subjects
func (ctl *StudentEnrollmentController) AvailableSubjects(c *fiber.Ctx) error {
	list, err := service.AvailableSubjects(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", subjectDTO.FromModels(list), nil)
}

// POST /api/s/catalog/subjects/:id/enroll
func (ctl *StudentEnrollmentController) EnrollSubject(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := service.EnrollSubject(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Berhasil mendaftar di subject "+row.Subject.SubjectName, dto.FromSubjectEnrollment(*row))
}

// GET /api/s/courses
func (ctl *StudentEnrollmentController) MyCourses(c *fiber.Ctx) error {
	list, err := service.MyCourses(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromMyCourses(list), nil)
}

// GET /api/s/subjects
func (ctl *StudentEnrollmentController) MySubjects(c *fiber.Ctx) error {
	list, err := service.MySubjects(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromSubjectEnrollments(list), nil)
}
