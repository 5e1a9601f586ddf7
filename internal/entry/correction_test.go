package entry

import (
	"encoding/json"
	"testing"
	"time"

	"kumes-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedEntry() models.DailyEntry {
	return models.DailyEntry{
		ID:               42,
		ShedID:           1,
		WorkerID:         7,
		EntryDate:        time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC),
		ProductionCrates: 5.10,
		ProductionBirds:  153,
		TotalBirds:       1000,
		NonProduction:    847,
		Mortality:        2,
		Notes:            "ilk giriş",
	}
}

func TestApplyCorrectionStampsAndOverwrites(t *testing.T) {
	current := storedEntry()
	now := time.Date(2025, 12, 10, 14, 30, 0, 0, time.UTC)

	values := CorrectionValues{
		ProductionCrates: 6.00,
		ProductionBirds:  180,
		TotalBirds:       1000,
		NonProduction:    820,
		Mortality:        3,
		Notes:            "sayım düzeltildi",
	}

	updated, errs := ApplyCorrection(current, values, 99, now)
	require.Empty(t, errs)

	assert.Equal(t, 6.00, updated.ProductionCrates)
	assert.Equal(t, 180, updated.ProductionBirds)
	assert.Equal(t, 1000, updated.TotalBirds)
	assert.Equal(t, 820, updated.NonProduction)
	assert.Equal(t, 3, updated.Mortality)
	assert.Equal(t, "sayım düzeltildi", updated.Notes)

	require.NotNil(t, updated.CorrectedBy)
	assert.Equal(t, uint(99), *updated.CorrectedBy)
	require.NotNil(t, updated.CorrectedAt)
	assert.Equal(t, now, *updated.CorrectedAt)
}

func TestApplyCorrectionSnapshotTakenOnce(t *testing.T) {
	current := storedEntry()
	now := time.Date(2025, 12, 10, 14, 30, 0, 0, time.UTC)

	// İlk düzeltme: snapshot düzeltme öncesi değerlerden alınır
	first, errs := ApplyCorrection(current, CorrectionValues{
		ProductionCrates: 6.00,
		ProductionBirds:  180,
		TotalBirds:       1000,
		NonProduction:    820,
		Mortality:        3,
		Notes:            "düzeltme 1",
	}, 99, now)
	require.Empty(t, errs)
	require.NotEmpty(t, first.OriginalValues)

	var snap models.EntryOriginalValues
	require.NoError(t, json.Unmarshal([]byte(first.OriginalValues), &snap))
	assert.Equal(t, 5.10, snap.ProductionCrates)
	assert.Equal(t, 153, snap.ProductionBirds)
	assert.Equal(t, 1000, snap.TotalBirds)
	assert.Equal(t, 847, snap.NonProduction)
	assert.Equal(t, 2, snap.Mortality)
	assert.Equal(t, "ilk giriş", snap.Notes)

	// İkinci düzeltme: değerler yine değişir ama snapshot'a dokunulmaz
	second, errs := ApplyCorrection(first, CorrectionValues{
		ProductionCrates: 6.00,
		ProductionBirds:  180,
		TotalBirds:       1000,
		NonProduction:    820,
		Mortality:        5,
		Notes:            "düzeltme 2",
	}, 100, now.Add(time.Hour))
	require.Empty(t, errs)

	assert.Equal(t, 5, second.Mortality)
	assert.Equal(t, first.OriginalValues, second.OriginalValues)
	require.NotNil(t, second.CorrectedBy)
	assert.Equal(t, uint(100), *second.CorrectedBy)
}

func TestApplyCorrectionValidationFailureLeavesEntryUnchanged(t *testing.T) {
	current := storedEntry()

	// Korunum ihlali: 500 + 600 > 1000
	updated, errs := ApplyCorrection(current, CorrectionValues{
		ProductionCrates: 5.10,
		ProductionBirds:  500,
		TotalBirds:       1000,
		NonProduction:    600,
		Mortality:        2,
		Notes:            "",
	}, 99, time.Now())

	require.NotEmpty(t, errs)
	assert.Contains(t, fieldsOf(errs), "total_birds")
	// Kayıt aynen geri döner, kısmi değişiklik yok
	assert.Equal(t, current, updated)
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float64", 6.5, 6.5},
		{"int", 7, 7},
		{"sayı string", "6.00", 6},
		{"boşluklu string", "  3.5 ", 3.5},
		{"json.Number", json.Number("2.25"), 2.25},
		{"bozuk string sıfıra düşer", "abc", 0},
		{"boş string sıfıra düşer", "", 0},
		{"nil sıfıra düşer", nil, 0},
		{"bool sıfıra düşer", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceFloat(tt.in))
		})
	}
}

func TestCoerceInt(t *testing.T) {
	assert.Equal(t, 180, coerceInt(float64(180)))
	assert.Equal(t, 180, coerceInt("180"))
	assert.Equal(t, 4, coerceInt(3.6)) // en yakına yuvarlanır
	assert.Equal(t, 0, coerceInt("bozuk"))
	assert.Equal(t, 0, coerceInt(nil))
}

func TestApplyCorrectionMalformedNumbersBecomeZero(t *testing.T) {
	// Bilinçli politika: bozuk sayısal girdi işlemi düşürmez, 0 olarak yazılır
	current := storedEntry()

	updated, errs := ApplyCorrection(current, CorrectionValues{
		ProductionCrates: "not-a-number",
		ProductionBirds:  "also-bad",
		TotalBirds:       1000,
		NonProduction:    900,
		Mortality:        nil,
		Notes:            "",
	}, 99, time.Now())

	require.Empty(t, errs)
	assert.Equal(t, 0.0, updated.ProductionCrates)
	assert.Equal(t, 0, updated.ProductionBirds)
	assert.Equal(t, 1000, updated.TotalBirds)
	assert.Equal(t, 0, updated.Mortality)
}
