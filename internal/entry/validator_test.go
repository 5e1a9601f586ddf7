package entry

import (
	"strings"
	"testing"
	"time"

	"kumes-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntry() models.DailyEntry {
	return models.DailyEntry{
		EntryDate:        time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC),
		ProductionCrates: 5.10,
		ProductionBirds:  153,
		TotalBirds:       1000,
		NonProduction:    847,
		Mortality:        2,
		Notes:            "normal gün",
	}
}

func fieldsOf(errs []FieldError) []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidateAcceptsValidEntry(t *testing.T) {
	e := validEntry()
	assert.Empty(t, Validate(&e))
}

func TestValidateRangeChecks(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.DailyEntry)
		wantField string
	}{
		{"negatif viyol", func(e *models.DailyEntry) { e.ProductionCrates = -1 }, "production_crates"},
		{"viyol üst sınır", func(e *models.DailyEntry) { e.ProductionCrates = 10000 }, "production_crates"},
		{"üretim tavuk üst sınır", func(e *models.DailyEntry) { e.ProductionBirds = 100000 }, "production_birds"},
		{"negatif üretim tavuk", func(e *models.DailyEntry) { e.ProductionBirds = -5 }, "production_birds"},
		{"toplam tavuk üst sınır", func(e *models.DailyEntry) { e.TotalBirds = 100000 }, "total_birds"},
		{"negatif üretim dışı", func(e *models.DailyEntry) { e.NonProduction = -1 }, "non_production"},
		{"negatif ölüm", func(e *models.DailyEntry) { e.Mortality = -1 }, "mortality"},
		{"tarih yok", func(e *models.DailyEntry) { e.EntryDate = time.Time{} }, "entry_date"},
		{"uzun not", func(e *models.DailyEntry) { e.Notes = strings.Repeat("a", 1001) }, "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(&e)
			errs := Validate(&e)
			require.NotEmpty(t, errs)
			assert.Contains(t, fieldsOf(errs), tt.wantField)
		})
	}
}

func TestValidateNotesBoundary(t *testing.T) {
	e := validEntry()
	e.Notes = strings.Repeat("a", 1000)
	assert.Empty(t, Validate(&e))
}

func TestValidateConservation(t *testing.T) {
	// Korunum kuralı tam olarak non_production + production_birds > total_birds
	// durumunda ihlal edilir, eşitlik geçerlidir
	tests := []struct {
		name       string
		production int
		nonProd    int
		total      int
		wantValid  bool
	}{
		{"toplamın altında", 100, 800, 1000, true},
		{"tam eşit", 153, 847, 1000, true},
		{"bir fazla", 154, 847, 1000, false},
		{"hepsi sıfır", 0, 0, 0, true},
		{"sıfır toplam ama üretim var", 30, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			e.ProductionBirds = tt.production
			e.NonProduction = tt.nonProd
			e.TotalBirds = tt.total
			errs := Validate(&e)

			if tt.wantValid {
				assert.Empty(t, errs)
			} else {
				require.NotEmpty(t, errs)
				// İhlal total_birds alanına etiketlenir, UI onu işaretler
				assert.Contains(t, fieldsOf(errs), "total_birds")
			}
		})
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	e := validEntry()
	e.ProductionCrates = -1
	before := e

	Validate(&e)

	assert.Equal(t, before, e)
}
