package admin

import (
	"fmt"
	"strings"

	"kumes-backend/internal/audit"
	"kumes-backend/internal/auth"
	"kumes-backend/internal/database"
	"kumes-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ShedResponse struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Variant       models.ShedVariant `json:"variant"`
	Description   string             `json:"description"`
	Capacity      int                `json:"capacity"`
	NumberOfBirds int                `json:"number_of_birds"`
	IsActive      bool               `json:"is_active"`
	CreatedAt     string             `json:"created_at"`
}

type CreateShedRequest struct {
	Name          string             `json:"name"`
	Variant       models.ShedVariant `json:"variant"`
	Description   string             `json:"description"`
	Capacity      int                `json:"capacity"`
	NumberOfBirds int                `json:"number_of_birds"`
}

type UpdateShedRequest struct {
	Name          *string             `json:"name"`
	Variant       *models.ShedVariant `json:"variant"`
	Description   *string             `json:"description"`
	Capacity      *int                `json:"capacity"`
	NumberOfBirds *int                `json:"number_of_birds"`
	IsActive      *bool               `json:"is_active"`
}

func toShedResponse(s *models.Shed) ShedResponse {
	return ShedResponse{
		ID:            s.ID,
		Name:          s.Name,
		Variant:       s.Variant,
		Description:   s.Description,
		Capacity:      s.Capacity,
		NumberOfBirds: s.NumberOfBirds,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func validVariant(v models.ShedVariant) bool {
	return v == models.ShedVariantWhite || v == models.ShedVariantBrown
}

// Yardımcı: kullanıcı bilgilerini al
func getUserInfoForShed(c *fiber.Ctx) (uint, string, error) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return 0, "", err
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	return userID, user.FullName, nil
}

// ----------------------------------------
// KÜMES CRUD
// ----------------------------------------

// POST /api/admin/sheds
func CreateShedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateShedRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kümes adı boş olamaz")
		}
		if !validVariant(body.Variant) {
			return fiber.NewError(fiber.StatusBadRequest, "Variant 'W' veya 'B' olmalı")
		}
		if body.Capacity < 0 || body.NumberOfBirds < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kapasite ve tavuk sayısı negatif olamaz")
		}

		userID, userName, err := getUserInfoForShed(c)
		if err != nil {
			return err
		}

		shed := models.Shed{
			Name:          body.Name,
			Variant:       body.Variant,
			Description:   body.Description,
			Capacity:      body.Capacity,
			NumberOfBirds: body.NumberOfBirds,
			IsActive:      true,
			CreatedBy:     &userID,
		}

		if err := database.DB.Create(&shed).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kümes oluşturulamadı")
		}

		_ = audit.WriteLog(audit.LogOptions{
			ShedID:      &shed.ID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "shed",
			EntityID:    shed.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Kümes oluşturuldu: %s", shed.Name),
			Before:      nil,
			After:       shed,
		})

		return c.Status(fiber.StatusCreated).JSON(toShedResponse(&shed))
	}
}

// GET /api/admin/sheds
func ListShedsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sheds []models.Shed
		if err := database.DB.Order("name ASC").Find(&sheds).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kümesler listelenemedi")
		}

		res := make([]ShedResponse, 0, len(sheds))
		for i := range sheds {
			res = append(res, toShedResponse(&sheds[i]))
		}

		return c.JSON(res)
	}
}

// GET /api/admin/sheds/:id
func GetShedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var shed models.Shed
		if err := database.DB.First(&shed, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kümes bulunamadı")
		}

		return c.JSON(toShedResponse(&shed))
	}
}

// PUT /api/admin/sheds/:id
func UpdateShedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var shed models.Shed
		if err := database.DB.First(&shed, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kümes bulunamadı")
		}

		var body UpdateShedRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		before := shed

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Kümes adı boş olamaz")
			}
			shed.Name = name
		}
		if body.Variant != nil {
			if !validVariant(*body.Variant) {
				return fiber.NewError(fiber.StatusBadRequest, "Variant 'W' veya 'B' olmalı")
			}
			shed.Variant = *body.Variant
		}
		if body.Description != nil {
			shed.Description = *body.Description
		}
		if body.Capacity != nil {
			if *body.Capacity < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Kapasite negatif olamaz")
			}
			shed.Capacity = *body.Capacity
		}
		if body.NumberOfBirds != nil {
			if *body.NumberOfBirds < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Tavuk sayısı negatif olamaz")
			}
			shed.NumberOfBirds = *body.NumberOfBirds
		}
		if body.IsActive != nil {
			shed.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&shed).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kümes güncellenemedi")
		}

		userID, userName, err := getUserInfoForShed(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				ShedID:      &shed.ID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "shed",
				EntityID:    shed.ID,
				Action:      models.AuditActionCorrect,
				Description: fmt.Sprintf("Kümes güncellendi: %s", shed.Name),
				Before:      before,
				After:       shed,
			})
		}

		return c.JSON(toShedResponse(&shed))
	}
}

// DELETE /api/admin/sheds/:id
// Girişleri olan kümes silinemez (referans bütünlüğü); önce pasifleştirin
func DeleteShedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var shed models.Shed
		if err := database.DB.First(&shed, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kümes bulunamadı")
		}

		var entryCount int64
		database.DB.Model(&models.DailyEntry{}).
			Where("shed_id = ?", shed.ID).
			Count(&entryCount)
		if entryCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Girişleri olan kümes silinemez, pasifleştirin")
		}

		if err := database.DB.Delete(&models.Shed{}, "id = ?", shed.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kümes silinemedi")
		}

		userID, userName, err := getUserInfoForShed(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				ShedID:      &shed.ID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "shed",
				EntityID:    shed.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Kümes silindi: %s", shed.Name),
				Before:      shed,
				After:       nil,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
