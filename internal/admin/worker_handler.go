package admin

import (
	"fmt"
	"strings"
	"time"

	"kumes-backend/internal/audit"
	"kumes-backend/internal/auth"
	"kumes-backend/internal/database"
	"kumes-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type CreateWorkerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type WorkerResponse struct {
	ID        uint   `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`

	AssignedSheds []AssignedShed `json:"assigned_sheds"`
}

type AssignedShed struct {
	ShedID   uint   `json:"shed_id"`
	ShedName string `json:"shed_name"`
}

type AssignWorkerRequest struct {
	ShedID uint `json:"shed_id"`
}

// ----------------------------------------
// İŞÇİ YÖNETİMİ
// ----------------------------------------

// POST /api/admin/workers
func CreateWorkerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateWorkerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		body.FullName = strings.TrimSpace(body.FullName)

		if body.FullName == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, email ve şifre zorunlu")
		}

		// Email kontrolü
		var exist models.User
		if err := database.DB.Where("email = ?", body.Email).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu email zaten kayıtlı")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

		user := models.User{
			FullName:     body.FullName,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleWorker,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşçi oluşturulamadı")
		}

		// NOT: Şifre sadece oluşturma sırasında bir kez döndürülür (güvenlik)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
			"password":  body.Password, // Sadece oluşturma sırasında (bir kez)
		})
	}
}

// GET /api/admin/workers
func ListWorkersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var workers []models.User
		if err := database.DB.
			Preload("Assignments", "is_active = ?", true).
			Preload("Assignments.Shed").
			Where("role = ?", models.RoleWorker).
			Order("created_at DESC").
			Find(&workers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşçiler listelenemedi")
		}

		res := make([]WorkerResponse, 0, len(workers))
		for _, w := range workers {
			assigned := make([]AssignedShed, 0, len(w.Assignments))
			for _, a := range w.Assignments {
				assigned = append(assigned, AssignedShed{
					ShedID:   a.ShedID,
					ShedName: a.Shed.Name,
				})
			}
			res = append(res, WorkerResponse{
				ID:            w.ID,
				FullName:      w.FullName,
				Email:         w.Email,
				Role:          string(w.Role),
				CreatedAt:     w.CreatedAt.Format("2006-01-02 15:04:05"),
				AssignedSheds: assigned,
			})
		}

		return c.JSON(res)
	}
}

// POST /api/admin/workers/:id/assignments
// İşçiyi kümese ata; pasif atama varsa yeniden aktifleştirilir
func AssignWorkerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workerID := c.Params("id")

		var worker models.User
		if err := database.DB.
			Where("id = ? AND role = ?", workerID, models.RoleWorker).
			First(&worker).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İşçi bulunamadı")
		}

		var body AssignWorkerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		var shed models.Shed
		if err := database.DB.First(&shed, "id = ?", body.ShedID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kümes bulunamadı")
		}

		adminID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		// Aynı işçi-kümes çifti için tek kayıt: varsa aktifleştir, yoksa oluştur
		var assignment models.WorkerAssignment
		err = database.DB.
			Where("worker_id = ? AND shed_id = ?", worker.ID, shed.ID).
			First(&assignment).Error
		if err == nil {
			if assignment.IsActive {
				return fiber.NewError(fiber.StatusBadRequest, "İşçi bu kümese zaten atanmış")
			}
			assignment.IsActive = true
			assignment.AssignedBy = &adminID
			assignment.AssignedAt = time.Now()
			if err := database.DB.Save(&assignment).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Atama güncellenemedi")
			}
		} else {
			assignment = models.WorkerAssignment{
				WorkerID:   worker.ID,
				ShedID:     shed.ID,
				AssignedBy: &adminID,
				AssignedAt: time.Now(),
				IsActive:   true,
			}
			if err := database.DB.Create(&assignment).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Atama oluşturulamadı")
			}
		}

		var admin models.User
		adminName := ""
		if err := database.DB.First(&admin, "id = ?", adminID).Error; err == nil {
			adminName = admin.FullName
		}

		_ = audit.WriteLog(audit.LogOptions{
			ShedID:      &shed.ID,
			UserID:      adminID,
			UserName:    adminName,
			EntityType:  "worker_assignment",
			EntityID:    assignment.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("İşçi atandı: %s -> %s", worker.FullName, shed.Name),
			Before:      nil,
			After:       assignment,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":        assignment.ID,
			"worker_id": assignment.WorkerID,
			"shed_id":   assignment.ShedID,
			"is_active": assignment.IsActive,
		})
	}
}

// DELETE /api/admin/workers/:id/assignments/:shedId
// Atamayı pasifleştir (kayıt silinmez, giriş geçmişi işçiye bağlı kalır)
func UnassignWorkerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workerID := c.Params("id")
		shedID := c.Params("shedId")

		var assignment models.WorkerAssignment
		if err := database.DB.
			Where("worker_id = ? AND shed_id = ? AND is_active = ?", workerID, shedID, true).
			First(&assignment).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aktif atama bulunamadı")
		}

		assignment.IsActive = false
		if err := database.DB.Save(&assignment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Atama kaldırılamadı")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
