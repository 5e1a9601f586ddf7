package entry

import (
	"fmt"
	"time"

	"kumes-backend/internal/audit"
	"kumes-backend/internal/database"
	"kumes-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PUT /api/admin/entries/:id/correct
// Admin düzeltmesi: mevcut değerlerin üzerine yazar, ilk düzeltmede orijinal
// değerler bir kez saklanır. Doğrulama geçemezse kayıt değişmeden kalır.
func CorrectEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var current models.DailyEntry
		if err := database.DB.
			Preload("Shed").
			Preload("Worker").
			First(&current, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Giriş bulunamadı")
		}

		var values CorrectionValues
		if err := c.BodyParser(&values); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		adminID, adminName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		updated, errs := ApplyCorrection(current, values, adminID, time.Now())
		if len(errs) > 0 {
			return validationError(c, errs)
		}

		// Düzeltme + (varsa yeni alınan) snapshot tek atomik update ile yazılır
		patch := map[string]interface{}{
			"production_crates": updated.ProductionCrates,
			"production_birds":  updated.ProductionBirds,
			"total_birds":       updated.TotalBirds,
			"non_production":    updated.NonProduction,
			"mortality":         updated.Mortality,
			"notes":             updated.Notes,
			"corrected_by":      updated.CorrectedBy,
			"corrected_at":      updated.CorrectedAt,
			"original_values":   updated.OriginalValues,
		}

		if err := database.DB.Model(&models.DailyEntry{}).
			Where("id = ?", current.ID).
			Updates(patch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Düzeltme kaydedilemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			ShedID:      &current.ShedID,
			UserID:      adminID,
			UserName:    adminName,
			EntityType:  "daily_entry",
			EntityID:    current.ID,
			Action:      models.AuditActionCorrect,
			Description: fmt.Sprintf("Giriş düzeltildi: %s - %s", current.Shed.Name, current.EntryDate.Format("2006-01-02")),
			Before:      current,
			After:       updated,
		})

		updated.Shed = current.Shed
		updated.Worker = current.Worker

		return c.JSON(toEntryResponse(&updated))
	}
}

// GET /api/admin/entries/corrected?shed_id=1&worker_id=2&start_date=&end_date=&limit=&offset=
// Düzeltilmiş girişleri listele (en son düzeltilen önce)
func ListCorrectedEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.DailyEntry{}).
			Preload("Shed").
			Preload("Worker").
			Where("corrected_by IS NOT NULL")

		if sidStr := c.Query("shed_id"); sidStr != "" {
			var sid uint
			if _, err := fmt.Sscan(sidStr, &sid); err == nil && sid > 0 {
				dbq = dbq.Where("shed_id = ?", sid)
			}
		}
		if widStr := c.Query("worker_id"); widStr != "" {
			var wid uint
			if _, err := fmt.Sscan(widStr, &wid); err == nil && wid > 0 {
				dbq = dbq.Where("worker_id = ?", wid)
			}
		}
		if startStr := c.Query("start_date"); startStr != "" {
			if d, err := time.Parse("2006-01-02", startStr); err == nil {
				dbq = dbq.Where("entry_date >= ?", d)
			}
		}
		if endStr := c.Query("end_date"); endStr != "" {
			if d, err := time.Parse("2006-01-02", endStr); err == nil {
				dbq = dbq.Where("entry_date <= ?", d)
			}
		}

		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}
		offset := c.QueryInt("offset", 0)
		if offset < 0 {
			offset = 0
		}

		var entries []models.DailyEntry
		if err := dbq.
			Order("corrected_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Düzeltilmiş girişler listelenemedi")
		}

		resp := make([]EntryResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, toEntryResponse(&entries[i]))
		}

		return c.JSON(resp)
	}
}

// DELETE /api/admin/entries/:id
// Normal akışta giriş silinmez; bu admin için acil çıkış kapısıdır ve loglanır
func DeleteEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var e models.DailyEntry
		if err := database.DB.Preload("Shed").First(&e, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Giriş bulunamadı")
		}

		adminID, adminName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(&models.DailyEntry{}, "id = ?", e.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Giriş silinemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			ShedID:      &e.ShedID,
			UserID:      adminID,
			UserName:    adminName,
			EntityType:  "daily_entry",
			EntityID:    e.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Giriş silindi: %s - %s", e.Shed.Name, e.EntryDate.Format("2006-01-02")),
			Before:      e,
			After:       nil,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
