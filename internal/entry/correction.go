package entry

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"kumes-backend/internal/models"
)

// CorrectionValues: admin düzeltme ekranından gelen ham değerler. Sayısal alanlar
// any olarak alınır; string, number veya bozuk değer gelebilir. Bozuk sayısal girdi
// hata üretmez, 0'a düşer (bkz. coerceFloat) — bilinçli bir politika, düzeltmenin
// kendisi audit log'da ham haliyle görünür.
type CorrectionValues struct {
	ProductionCrates any    `json:"production_crates"`
	ProductionBirds  any    `json:"production_birds"`
	TotalBirds       any    `json:"total_birds"`
	NonProduction    any    `json:"non_production"`
	Mortality        any    `json:"mortality"`
	Notes            string `json:"notes"`
}

// coerceFloat: gelen değeri sayıya zorlar, çeviremezse 0 döner.
func coerceFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// coerceInt: coerceFloat + en yakın tam sayıya yuvarlama.
func coerceInt(v any) int {
	return int(math.Round(coerceFloat(v)))
}

// ApplyCorrection: mevcut kayıt üzerine admin'in verdiği değerleri uygular.
//
// İlk düzeltmede OriginalValues, kaydın o anki (düzeltme öncesi) değerlerinden bir kez
// doldurulur; sonraki düzeltmeler bu snapshot'a asla dokunmaz. Aday kayıt Validate'ten
// geçemezse mevcut kayıt aynen geri döner ve hatalar raporlanır — kısmi yazma olmaz.
// Fonksiyon saftır; persistence çağıranın işidir (tek atomik update).
func ApplyCorrection(current models.DailyEntry, values CorrectionValues, adminID uint, now time.Time) (models.DailyEntry, []FieldError) {
	updated := current

	if updated.OriginalValues == "" {
		snap := models.EntryOriginalValues{
			ProductionCrates: current.ProductionCrates,
			ProductionBirds:  current.ProductionBirds,
			TotalBirds:       current.TotalBirds,
			NonProduction:    current.NonProduction,
			Mortality:        current.Mortality,
			Notes:            current.Notes,
		}
		b, _ := json.Marshal(snap)
		updated.OriginalValues = string(b)
	}

	updated.ProductionCrates = coerceFloat(values.ProductionCrates)
	updated.ProductionBirds = coerceInt(values.ProductionBirds)
	updated.TotalBirds = coerceInt(values.TotalBirds)
	updated.NonProduction = coerceInt(values.NonProduction)
	updated.Mortality = coerceInt(values.Mortality)
	updated.Notes = values.Notes

	updated.CorrectedBy = &adminID
	correctedAt := now
	updated.CorrectedAt = &correctedAt

	if errs := Validate(&updated); len(errs) > 0 {
		return current, errs
	}

	return updated, nil
}
