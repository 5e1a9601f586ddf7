package entry

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kumes-backend/internal/audit"
	"kumes-backend/internal/auth"
	"kumes-backend/internal/database"
	"kumes-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateEntryRequest struct {
	ShedID           uint    `json:"shed_id"`
	EntryDate        string  `json:"entry_date"` // "2025-12-09"
	ProductionCrates float64 `json:"production_crates"`
	Mortality        int     `json:"mortality"`
	Notes            string  `json:"notes"`
}

type EntryResponse struct {
	ID               uint                        `json:"id"`
	ShedID           uint                        `json:"shed_id"`
	ShedName         string                      `json:"shed_name"`
	WorkerID         uint                        `json:"worker_id"`
	WorkerName       string                      `json:"worker_name"`
	EntryDate        string                      `json:"entry_date"`
	ProductionCrates float64                     `json:"production_crates"`
	ProductionBirds  int                         `json:"production_birds"`
	TotalBirds       int                         `json:"total_birds"`
	NonProduction    int                         `json:"non_production"`
	Mortality        int                         `json:"mortality"`
	Notes            string                      `json:"notes"`
	CorrectedBy      *uint                       `json:"corrected_by"`
	CorrectedAt      *string                     `json:"corrected_at"`
	OriginalValues   *models.EntryOriginalValues `json:"original_values"`
	CreatedAt        string                      `json:"created_at"`
}

func toEntryResponse(e *models.DailyEntry) EntryResponse {
	resp := EntryResponse{
		ID:               e.ID,
		ShedID:           e.ShedID,
		ShedName:         e.Shed.Name,
		WorkerID:         e.WorkerID,
		WorkerName:       e.Worker.FullName,
		EntryDate:        e.EntryDate.Format("2006-01-02"),
		ProductionCrates: e.ProductionCrates,
		ProductionBirds:  e.ProductionBirds,
		TotalBirds:       e.TotalBirds,
		NonProduction:    e.NonProduction,
		Mortality:        e.Mortality,
		Notes:            e.Notes,
		CorrectedBy:      e.CorrectedBy,
		CreatedAt:        e.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if e.CorrectedAt != nil {
		formatted := e.CorrectedAt.Format("2006-01-02 15:04:05")
		resp.CorrectedAt = &formatted
	}

	if e.OriginalValues != "" {
		var orig models.EntryOriginalValues
		if err := json.Unmarshal([]byte(e.OriginalValues), &orig); err == nil {
			resp.OriginalValues = &orig
		}
	}

	return resp
}

// Yardımcı: kullanıcı bilgilerini al
func getUserInfo(c *fiber.Ctx) (uint, string, error) {
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

// Doğrulama hatalarını alan bazlı döndür, UI ilgili alanları işaretleyebilsin
func validationError(c *fiber.Ctx, errs []FieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  "Doğrulama hatası",
		"fields": errs,
	})
}

// POST /api/entries
// İşçi günlük giriş yapar: viyol + ölüm girilir, tavuk sayıları hesaplanır
func CreateEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ShedID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "shed_id zorunlu")
		}

		d, err := time.Parse("2006-01-02", body.EntryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		var shed models.Shed
		if err := database.DB.First(&shed, "id = ?", body.ShedID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Kümes bulunamadı (ID: %d)", body.ShedID))
		}
		if !shed.IsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Bu kümes pasif durumda")
		}

		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		// İşçiler sadece atandıkları kümese giriş yapabilir
		role, err := auth.CurrentUserRole(c)
		if err != nil {
			return err
		}
		if role == models.RoleWorker {
			var assignment models.WorkerAssignment
			if err := database.DB.
				Where("worker_id = ? AND shed_id = ? AND is_active = ?", userID, shed.ID, true).
				First(&assignment).Error; err != nil {
				return fiber.NewError(fiber.StatusForbidden, "Bu kümese atanmadınız")
			}
		}

		// Aynı kümes + tarih için ikinci giriş yok (unique index son sözü söyler)
		var existing models.DailyEntry
		if err := database.DB.
			Where("shed_id = ? AND entry_date = ?", shed.ID, d).
			First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu kümes için bu tarihte zaten giriş var")
		}

		// Girilen tarihten kesinlikle önceki en son kayıt (takvim sırasına göre,
		// ekleme sırasına göre değil — geçmiş tarihe geç giriş yapılabiliyor)
		var prior *models.DailyEntry
		var priorEntry models.DailyEntry
		err = database.DB.
			Where("shed_id = ? AND entry_date < ?", shed.ID, d).
			Order("entry_date DESC").
			First(&priorEntry).Error
		if err == nil {
			prior = &priorEntry
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "Önceki kayıt sorgulanamadı")
		}

		computed := Compute(body.ProductionCrates, &shed, prior)

		newEntry := models.DailyEntry{
			ShedID:           shed.ID,
			WorkerID:         userID,
			EntryDate:        d,
			ProductionCrates: body.ProductionCrates,
			ProductionBirds:  computed.ProductionBirds,
			TotalBirds:       computed.TotalBirds,
			NonProduction:    computed.NonProduction,
			Mortality:        body.Mortality,
			Notes:            body.Notes,
		}

		if errs := Validate(&newEntry); len(errs) > 0 {
			return validationError(c, errs)
		}

		if err := database.DB.Create(&newEntry).Error; err != nil {
			// Ön kontrolle yarışan eşzamanlı giriş unique index'e takılır
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Bu kümes için bu tarihte zaten giriş var")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Giriş oluşturulamadı")
		}

		_ = audit.WriteLog(audit.LogOptions{
			ShedID:      &shed.ID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "daily_entry",
			EntityID:    newEntry.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Günlük giriş: %s - %.2f viyol", shed.Name, newEntry.ProductionCrates),
			Before:      nil,
			After:       newEntry,
		})

		newEntry.Shed = shed
		newEntry.Worker = models.User{ID: userID, FullName: userName}

		return c.Status(fiber.StatusCreated).JSON(toEntryResponse(&newEntry))
	}
}

// GET /api/entries?shed_id=1&worker_id=2&start_date=2025-12-01&end_date=2025-12-31&limit=50&offset=0
func ListEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := auth.CurrentUserRole(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.DailyEntry{}).
			Preload("Shed").
			Preload("Worker")

		// İşçi sadece kendi girişlerini görür
		if role == models.RoleWorker {
			userID, err := auth.CurrentUserID(c)
			if err != nil {
				return err
			}
			dbq = dbq.Where("worker_id = ?", userID)
		} else if widStr := c.Query("worker_id"); widStr != "" {
			var wid uint
			if _, err := fmt.Sscan(widStr, &wid); err == nil && wid > 0 {
				dbq = dbq.Where("worker_id = ?", wid)
			}
		}

		if sidStr := c.Query("shed_id"); sidStr != "" {
			var sid uint
			if _, err := fmt.Sscan(sidStr, &sid); err == nil && sid > 0 {
				dbq = dbq.Where("shed_id = ?", sid)
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
			Order("entry_date DESC, created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Girişler listelenemedi")
		}

		resp := make([]EntryResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, toEntryResponse(&entries[i]))
		}

		return c.JSON(resp)
	}
}

// GET /api/entries/latest?shed_id=1
// Kümesin en son girişini döndür (takvim sırasına göre); hiç giriş yoksa null
func LatestEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sidStr := c.Query("shed_id")
		if sidStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "shed_id zorunlu")
		}
		var sid uint
		if _, err := fmt.Sscan(sidStr, &sid); err != nil || sid == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "shed_id geçersiz")
		}

		var latest models.DailyEntry
		err := database.DB.
			Preload("Shed").
			Preload("Worker").
			Where("shed_id = ?", sid).
			Order("entry_date DESC").
			First(&latest).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(nil)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Son giriş sorgulanamadı")
		}

		return c.JSON(toEntryResponse(&latest))
	}
}

// GET /api/entries/exists?shed_id=1&date=2025-12-09
func EntryExistsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sidStr := c.Query("shed_id")
		dateStr := c.Query("date")
		if sidStr == "" || dateStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "shed_id ve date zorunlu")
		}

		var sid uint
		if _, err := fmt.Sscan(sidStr, &sid); err != nil || sid == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "shed_id geçersiz")
		}

		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		var count int64
		if err := database.DB.Model(&models.DailyEntry{}).
			Where("shed_id = ? AND entry_date = ?", sid, d).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Giriş sorgulanamadı")
		}

		return c.JSON(fiber.Map{"exists": count > 0})
	}
}

// GET /api/entries/:id
func GetEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var e models.DailyEntry
		if err := database.DB.
			Preload("Shed").
			Preload("Worker").
			First(&e, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Giriş bulunamadı")
		}

		// İşçi başkasının girişini göremez
		role, err := auth.CurrentUserRole(c)
		if err != nil {
			return err
		}
		if role == models.RoleWorker {
			userID, err := auth.CurrentUserID(c)
			if err != nil {
				return err
			}
			if e.WorkerID != userID {
				return fiber.NewError(fiber.StatusForbidden, "Bu girişe erişim yetkiniz yok")
			}
		}

		return c.JSON(toEntryResponse(&e))
	}
}

// GET /api/my-sheds
// İşçi için atandığı aktif kümesler, admin için tüm aktif kümesler
func MyShedsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := auth.CurrentUserRole(c)
		if err != nil {
			return err
		}

		type shedRow struct {
			ID            uint               `json:"id"`
			Name          string             `json:"name"`
			Variant       models.ShedVariant `json:"variant"`
			Capacity      int                `json:"capacity"`
			NumberOfBirds int                `json:"number_of_birds"`
		}

		var sheds []models.Shed
		if role == models.RoleWorker {
			userID, err := auth.CurrentUserID(c)
			if err != nil {
				return err
			}
			if err := database.DB.
				Joins("JOIN worker_assignments ON worker_assignments.shed_id = sheds.id").
				Where("worker_assignments.worker_id = ? AND worker_assignments.is_active = ? AND sheds.is_active = ?", userID, true, true).
				Find(&sheds).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Kümesler listelenemedi")
			}
		} else {
			if err := database.DB.Where("is_active = ?", true).Find(&sheds).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Kümesler listelenemedi")
			}
		}

		resp := make([]shedRow, 0, len(sheds))
		for _, s := range sheds {
			resp = append(resp, shedRow{
				ID:            s.ID,
				Name:          s.Name,
				Variant:       s.Variant,
				Capacity:      s.Capacity,
				NumberOfBirds: s.NumberOfBirds,
			})
		}

		return c.JSON(resp)
	}
}
