package dashboard

import (
	"time"

	"kumes-backend/internal/database"
	"kumes-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard/stats
// Admin panosu için bu ayın toplamları + kümes/işçi sayıları
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		loc := now.Location()
		firstDay := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		lastDay := firstDay.AddDate(0, 1, -1)

		var entries []models.DailyEntry
		if err := database.DB.
			Where("entry_date >= ? AND entry_date <= ?", firstDay, lastDay).
			Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Girişler sorgulanamadı")
		}

		var totalCrates float64
		var totalBirds, totalMortality, totalNonProduction int
		for _, e := range entries {
			totalCrates += e.ProductionCrates
			totalBirds += e.ProductionBirds
			totalMortality += e.Mortality
			totalNonProduction += e.NonProduction
		}

		var shedCount int64
		database.DB.Model(&models.Shed{}).Where("is_active = ?", true).Count(&shedCount)

		var workerCount int64
		database.DB.Model(&models.User{}).Where("role = ?", models.RoleWorker).Count(&workerCount)

		return c.JSON(fiber.Map{
			"total_sheds":   shedCount,
			"total_workers": workerCount,
			"monthly_production": fiber.Map{
				"crates": totalCrates,
				"birds":  totalBirds,
			},
			"monthly_mortality":      totalMortality,
			"monthly_non_production": totalNonProduction,
			"total_entries":          len(entries),
		})
	}
}
