package reports

import (
	"fmt"
	"time"

	"kumes-backend/internal/database"
	"kumes-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ShedSummaryRow struct {
	ShedID   uint               `json:"shed_id"`
	ShedName string             `json:"shed_name"`
	Variant  models.ShedVariant `json:"variant"`
	Summary
}

// GET /api/reports/production-summary?year=2025&month=12&shed_id=1&variant=W
// Kümes bazlı aylık üretim özeti; rollup daily_entries satırlarından yeniden üretilir
func ProductionSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		yearStr := c.Query("year")
		monthStr := c.Query("month")
		if yearStr == "" || monthStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "year ve month zorunlu")
		}

		var year, month int
		if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
		}
		if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month geçersiz")
		}

		loc := time.Now().Location()
		firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		lastDay := firstDay.AddDate(0, 1, -1)

		// Kümesleri al (opsiyonel variant filtresi ile)
		shedQuery := database.DB.Model(&models.Shed{})
		if variant := c.Query("variant"); variant == string(models.ShedVariantWhite) || variant == string(models.ShedVariantBrown) {
			shedQuery = shedQuery.Where("variant = ?", variant)
		}
		if sidStr := c.Query("shed_id"); sidStr != "" {
			var sid uint
			if _, err := fmt.Sscan(sidStr, &sid); err != nil || sid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "shed_id geçersiz")
			}
			shedQuery = shedQuery.Where("id = ?", sid)
		}

		var sheds []models.Shed
		if err := shedQuery.Order("name ASC").Find(&sheds).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kümesler listelenemedi")
		}

		rows := make([]ShedSummaryRow, 0, len(sheds))
		var allEntries []models.DailyEntry

		for _, shed := range sheds {
			var entries []models.DailyEntry
			if err := database.DB.
				Where("shed_id = ? AND entry_date >= ? AND entry_date <= ?", shed.ID, firstDay, lastDay).
				Order("entry_date ASC").
				Find(&entries).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Girişler sorgulanamadı")
			}

			rows = append(rows, ShedSummaryRow{
				ShedID:   shed.ID,
				ShedName: shed.Name,
				Variant:  shed.Variant,
				Summary:  Summarize(entries),
			})
			allEntries = append(allEntries, entries...)
		}

		return c.JSON(fiber.Map{
			"year":        year,
			"month":       month,
			"rows":        rows,
			"grand_total": Summarize(allEntries),
		})
	}
}
