package dashboard

import (
	"fmt"
	"sort"
	"time"

	"kumes-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

type ProductionChartPoint struct {
	Label           string  `json:"label"` // tarih / hafta başlangıcı / ay başlangıcı
	Crates          float64 `json:"crates"`
	ProductionBirds int     `json:"production_birds"`
	Mortality       int     `json:"mortality"`
}

type ProductionChartTotals struct {
	Crates          float64 `json:"crates"`
	ProductionBirds int     `json:"production_birds"`
	Mortality       int     `json:"mortality"`
}

type ProductionChartResponse struct {
	Period      string                 `json:"period"` // daily | weekly | monthly
	From        string                 `json:"from"`
	To          string                 `json:"to"`
	Points      []ProductionChartPoint `json:"points"`
	GrandTotals ProductionChartTotals  `json:"grand_totals"`
}

// GET /api/dashboard/production-chart?period=daily&count=7&shed_id=1
func ProductionChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count geçersiz")
			}
		}

		var shedID uint
		if sidStr := c.Query("shed_id"); sidStr != "" {
			if _, err := fmt.Sscan(sidStr, &shedID); err != nil || shedID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "shed_id geçersiz")
			}
		}

		now := time.Now()
		loc := now.Location()
		// bugünün 00:00'ı
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		var start time.Time

		switch period {
		case "weekly":
			// count hafta geriye
			days := 7 * (count - 1)
			start = end.AddDate(0, 0, -days)
		case "monthly":
			// ilgili ayların başından itibaren
			end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			start = end.AddDate(0, -(count - 1), 0)
			end = start.AddDate(0, count, 0).AddDate(0, 0, -1)
		default:
			period = "daily"
			start = end.AddDate(0, 0, -(count - 1))
		}

		// aggregation sonucu satır yapısı
		type row struct {
			Bucket    time.Time `gorm:"column:bucket"`
			Crates    float64   `gorm:"column:crates"`
			Birds     int       `gorm:"column:birds"`
			Mortality int       `gorm:"column:mortality"`
		}
		var rows []row

		var trunc string
		switch period {
		case "weekly":
			trunc = "date_trunc('week', entry_date)::date"
		case "monthly":
			trunc = "date_trunc('month', entry_date)::date"
		default:
			trunc = "entry_date::date"
		}

		sql := fmt.Sprintf(`
			SELECT %s AS bucket,
				   SUM(production_crates) AS crates,
				   SUM(production_birds) AS birds,
				   SUM(mortality) AS mortality
			FROM daily_entries
			WHERE entry_date >= ? AND entry_date <= ?
		`, trunc)
		args := []interface{}{start, end}
		if shedID > 0 {
			sql += " AND shed_id = ?"
			args = append(args, shedID)
		}
		sql += " GROUP BY bucket ORDER BY bucket ASC;"

		if err := database.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Veri toplanırken hata oluştu")
		}

		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Bucket.Before(rows[j].Bucket)
		})

		points := make([]ProductionChartPoint, 0, len(rows))
		grand := ProductionChartTotals{}

		for _, r := range rows {
			points = append(points, ProductionChartPoint{
				Label:           r.Bucket.Format("2006-01-02"),
				Crates:          r.Crates,
				ProductionBirds: r.Birds,
				Mortality:       r.Mortality,
			})

			grand.Crates += r.Crates
			grand.ProductionBirds += r.Birds
			grand.Mortality += r.Mortality
		}

		resp := ProductionChartResponse{
			Period:      period,
			From:        start.Format("2006-01-02"),
			To:          end.Format("2006-01-02"),
			Points:      points,
			GrandTotals: grand,
		}

		return c.JSON(resp)
	}
}
