// file: internals/features/users/user/service/user_service.go
package service

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"estudify_backend/internals/constants"
	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	"estudify_backend/internals/features/users/user/dto"
	"estudify_backend/internals/features/users/user/model"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

const feature = "manajemen user"

func hashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

/* =========================================================
   LIST (admin)
========================================================= */

func ListUsers(db *gorm.DB, caller helperAuth.Identity, q dto.ListUsersQuery, p helper.Paging) ([]model.UserModel, int64, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, 0, err
	}

	tx := db.Model(&model.UserModel{})
	if r := strings.TrimSpace(q.Role); r != "" {
		role, err := constants.ParseRole(r)
		if err != nil {
			return nil, 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		tx = tx.Where("role = ?", role)
	}
	switch strings.ToLower(strings.TrimSpace(q.Active)) {
	case "":
	case "true", "1":
		tx = tx.Where("is_active = ?", true)
	case "false", "0":
		tx = tx.Where("is_active = ?", false)
	default:
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "active harus true/false")
	}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		like := helper.ContainsPattern(s)
		tx = tx.Where(
			"LOWER(user_name) LIKE ? ESCAPE '\\' OR LOWER(first_name) LIKE ? ESCAPE '\\' OR LOWER(last_name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\'",
			like, like, like, like,
		)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, helper.Internal(err, "count users")
	}

	var users []model.UserModel
	if err := tx.Order("joined_at DESC").Order("id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, helper.Internal(err, "list users")
	}
	return users, total, nil
}

/* =========================================================
   CREATE (admin)
========================================================= */

func CreateUser(db *gorm.DB, caller helperAuth.Identity, req dto.CreateUserRequest) (*model.UserModel, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, err
	}
	req.Normalize()

	role, err := constants.ParseRole(req.Role)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	username := helper.NormalizeUsername(req.UserName)
	if username == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "user_name wajib diisi")
	}
	if len(req.Password) < 8 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "password minimal 8 karakter")
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, helper.Internal(err, "hash password")
	}

	user := &model.UserModel{
		UserName:  username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		Password:  hashed,
		IsActive:  req.IsActive == nil || *req.IsActive,
	}
	user.SetDefaultValues()

	err = db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.UserModel{}).Where("user_name = ?", username).Count(&n).Error; err != nil {
			return helper.Internal(err, "check user_name")
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusConflict, "Username sudah digunakan")
		}
		if err := tx.Create(user).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Username sudah digunakan")
			}
			return helper.Internal(err, "create user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[USER] %s membuat user %s (%s)", caller.UserName, user.UserName, user.Role)
	return user, nil
}

/* =========================================================
   UPDATE (admin)
========================================================= */

func UpdateUser(db *gorm.DB, caller helperAuth.Identity, id uint, req dto.UpdateUserRequest) (*model.UserModel, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, err
	}

	var user model.UserModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if helper.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
			}
			return helper.Internal(err, "load user")
		}

		if req.Email != nil {
			user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.FirstName != nil {
			user.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			user.LastName = strings.TrimSpace(*req.LastName)
		}
		if req.Role != nil {
			role, err := constants.ParseRole(*req.Role)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			wasTeacher := user.Role == constants.RoleTeacher
			user.Role = role
			user.SetDefaultValues()

			// subject hanya boleh menunjuk user ber-role teacher
			if wasTeacher && role != constants.RoleTeacher {
				res := tx.Model(&subjectModel.SubjectModel{}).
					Where("subject_teacher_id = ?", user.ID).
					Update("subject_teacher_id", nil)
				if res.Error != nil {
					return helper.Internal(res.Error, "unassign teacher subjects")
				}
				if res.RowsAffected > 0 {
					log.Printf("[USER] %s bukan teacher lagi, %d subject dilepas", user.UserName, res.RowsAffected)
				}
			}
		}
		if req.IsActive != nil {
			if !*req.IsActive && user.ID == caller.UserID {
				return fiber.NewError(fiber.StatusBadRequest, "Tidak bisa menonaktifkan akun sendiri")
			}
			user.IsActive = *req.IsActive
		}
		if req.Password != nil && *req.Password != "" {
			if len(*req.Password) < 8 {
				return fiber.NewError(fiber.StatusBadRequest, "password minimal 8 karakter")
			}
			hashed, err := hashPassword(*req.Password)
			if err != nil {
				return helper.Internal(err, "hash password")
			}
			user.Password = hashed
		}

		if err := tx.Save(&user).Error; err != nil {
			return helper.Internal(err, "update user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

/* =========================================================
   DEACTIVATE (admin): user tidak pernah dihapus
========================================================= */

func DeactivateUser(db *gorm.DB, caller helperAuth.Identity, id uint) (*model.UserModel, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, err
	}
	if id == caller.UserID {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tidak bisa menonaktifkan akun sendiri")
	}

	var user model.UserModel
	if err := db.First(&user, id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, helper.Internal(err, "load user")
	}
	if err := db.Model(&user).Update("is_active", false).Error; err != nil {
		return nil, helper.Internal(err, "deactivate user")
	}
	user.IsActive = false
	log.Printf("[USER] %s menonaktifkan user %s", caller.UserName, user.UserName)
	return &user, nil
}

/* =========================================================
   BOOTSTRAP admin awal (idempotent)
========================================================= */

// EnsureInitialAdmin membuat superuser kalau username belum ada.
// Return true kalau baris baru dibuat.
func EnsureInitialAdmin(db *gorm.DB, username, email, password string) (bool, error) {
	username = helper.NormalizeUsername(username)
	if username == "" || password == "" {
		return false, fiber.NewError(fiber.StatusBadRequest, "username & password admin wajib diisi")
	}

	var n int64
	if err := db.Model(&model.UserModel{}).Where("user_name = ?", username).Count(&n).Error; err != nil {
		return false, helper.Internal(err, "check initial admin")
	}
	if n > 0 {
		return false, nil
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return false, helper.Internal(err, "hash admin password")
	}
	admin := model.UserModel{
		UserName:  username,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		FirstName: "Admin",
		Role:      constants.RoleAdmin,
		Password:  hashed,
		IsActive:  true,
	}
	admin.SetDefaultValues()

	// Dua proses start bersamaan: yang kalah cukup no-op.
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_name"}},
		DoNothing: true,
	}).Create(&admin)
	if res.Error != nil {
		return false, helper.Internal(res.Error, "create initial admin")
	}
	return res.RowsAffected > 0, nil
}
