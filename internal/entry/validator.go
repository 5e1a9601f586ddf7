package entry

import (
	"unicode/utf8"

	"kumes-backend/internal/models"
)

const (
	MaxProductionCrates = 9999.99
	MaxBirdCount        = 99999
	MaxNotesLength      = 1000
)

// FieldError: hangi alanın hangi kuralı ihlal ettiğini taşır, UI alanı işaretleyebilsin diye.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate: dolu bir günlük kaydı domain kurallarına karşı kontrol eder.
// Boş slice = geçerli. Kaydı asla değiştirmez; uniqueness kontrolü burada değil,
// veritabanındaki (shed_id, entry_date) unique index'inde yapılır.
func Validate(e *models.DailyEntry) []FieldError {
	var errs []FieldError

	if e.EntryDate.IsZero() {
		errs = append(errs, FieldError{Field: "entry_date", Message: "Geçerli bir tarih girilmeli"})
	}

	if e.ProductionCrates < 0 || e.ProductionCrates > MaxProductionCrates {
		errs = append(errs, FieldError{Field: "production_crates", Message: "Viyol sayısı 0 ile 9999.99 arasında olmalı"})
	}

	if e.ProductionBirds < 0 || e.ProductionBirds > MaxBirdCount {
		errs = append(errs, FieldError{Field: "production_birds", Message: "Üretimdeki tavuk sayısı 0 ile 99999 arasında olmalı"})
	}

	if e.TotalBirds < 0 || e.TotalBirds > MaxBirdCount {
		errs = append(errs, FieldError{Field: "total_birds", Message: "Toplam tavuk sayısı 0 ile 99999 arasında olmalı"})
	}

	if e.NonProduction < 0 {
		errs = append(errs, FieldError{Field: "non_production", Message: "Üretim dışı tavuk sayısı negatif olamaz"})
	}

	if e.Mortality < 0 {
		errs = append(errs, FieldError{Field: "mortality", Message: "Ölüm sayısı negatif olamaz"})
	}

	if utf8.RuneCountInString(e.Notes) > MaxNotesLength {
		errs = append(errs, FieldError{Field: "notes", Message: "Not 1000 karakterden uzun olamaz"})
	}

	// Korunum kuralı: üretimdeki + üretim dışı tavuk toplam sürüyü aşamaz
	if e.NonProduction+e.ProductionBirds > e.TotalBirds {
		errs = append(errs, FieldError{Field: "total_birds", Message: "Üretim + üretim dışı tavuk sayısı toplamı aşamaz"})
	}

	return errs
}
