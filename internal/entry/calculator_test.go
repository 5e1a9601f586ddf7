package entry

import (
	"testing"
	"time"

	"kumes-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeColdStart(t *testing.T) {
	// Önceki kayıt yok: toplam sürü kümesin taban değerinden gelir
	shed := &models.Shed{NumberOfBirds: 1000}

	got := Compute(5.10, shed, nil)

	assert.Equal(t, 153, got.ProductionBirds)
	assert.Equal(t, 1000, got.TotalBirds)
	assert.Equal(t, 847, got.NonProduction)
}

func TestComputeCarryForward(t *testing.T) {
	// Dünkü toplam - dünkü ölüm bugünün başlangıç nüfusu olur
	shed := &models.Shed{NumberOfBirds: 500}
	prior := &models.DailyEntry{
		TotalBirds: 1000,
		Mortality:  4,
		EntryDate:  time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC),
	}

	got := Compute(0, shed, prior)

	assert.Equal(t, 0, got.ProductionBirds)
	assert.Equal(t, 996, got.TotalBirds)
	// Sıfır viyol: tüm sürü üretim dışı sayılır
	assert.Equal(t, 996, got.NonProduction)
}

func TestComputeRounding(t *testing.T) {
	shed := &models.Shed{NumberOfBirds: 10000}

	tests := []struct {
		name   string
		crates float64
		want   int
	}{
		{"tam viyol", 5.0, 150},
		{"ondalıklı viyol", 5.10, 153},
		{"yarım yukarı yuvarlanır", 2.15, 65},  // 2.15 * 30 = 64.5
		{"yarım yukarı küçük", 0.05, 2},        // 0.05 * 30 = 1.5
		{"yarımın altı aşağı", 0.04, 1},        // 0.04 * 30 = 1.2
		{"sıfır viyol", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.crates, shed, nil)
			assert.Equal(t, tt.want, got.ProductionBirds)
		})
	}
}

func TestComputeClampsNegativeTotal(t *testing.T) {
	// Tutarsız veri: dünkü ölüm dünkü toplamdan büyük bile olsa nüfus negatife düşmez
	shed := &models.Shed{NumberOfBirds: 100}
	prior := &models.DailyEntry{TotalBirds: 3, Mortality: 10}

	got := Compute(1.0, shed, prior)

	assert.Equal(t, 0, got.TotalBirds)
	assert.Equal(t, 0, got.NonProduction)
	assert.Equal(t, 30, got.ProductionBirds)
}

func TestComputeZeroBaseline(t *testing.T) {
	// Boş kümes + önceki kayıt yok: her şey sıfır, validator aşağıda reddeder
	shed := &models.Shed{NumberOfBirds: 0}

	got := Compute(0, shed, nil)

	assert.Equal(t, 0, got.TotalBirds)
	assert.Equal(t, 0, got.ProductionBirds)
	assert.Equal(t, 0, got.NonProduction)
}

func TestComputeNonProductionNeverNegative(t *testing.T) {
	// Üretim toplam sürüden fazla görünse bile üretim dışı negatif olamaz
	shed := &models.Shed{NumberOfBirds: 50}

	got := Compute(10.0, shed, nil) // 300 yumurta, 50 tavuk

	assert.Equal(t, 300, got.ProductionBirds)
	assert.Equal(t, 0, got.NonProduction)
	assert.Equal(t, 50, got.TotalBirds)
}

func TestComputeDeterministic(t *testing.T) {
	shed := &models.Shed{NumberOfBirds: 1000}
	prior := &models.DailyEntry{TotalBirds: 800, Mortality: 5}

	first := Compute(3.33, shed, prior)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Compute(3.33, shed, prior))
	}
}
