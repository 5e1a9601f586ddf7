package reports

import (
	"testing"

	"kumes-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)

	assert.Equal(t, 0, got.EntryCount)
	assert.Equal(t, 0.0, got.TotalCrates)
	assert.Equal(t, 0.0, got.AvgTotalBirds)
}

func TestSummarizeTotals(t *testing.T) {
	entries := []models.DailyEntry{
		{ProductionCrates: 5.10, ProductionBirds: 153, TotalBirds: 1000, NonProduction: 847, Mortality: 2},
		{ProductionCrates: 6.00, ProductionBirds: 180, TotalBirds: 998, NonProduction: 818, Mortality: 3},
		{ProductionCrates: 0, ProductionBirds: 0, TotalBirds: 995, NonProduction: 995, Mortality: 0},
	}

	got := Summarize(entries)

	assert.Equal(t, 3, got.EntryCount)
	assert.InDelta(t, 11.10, got.TotalCrates, 0.0001)
	assert.Equal(t, 333, got.TotalProductionBirds)
	assert.Equal(t, 2660, got.TotalNonProduction)
	assert.Equal(t, 5, got.TotalMortality)
	// (1000 + 998 + 995) / 3
	assert.InDelta(t, 997.6667, got.AvgTotalBirds, 0.001)
}

func TestSummarizeSingleEntry(t *testing.T) {
	got := Summarize([]models.DailyEntry{
		{ProductionCrates: 2.5, ProductionBirds: 75, TotalBirds: 500, NonProduction: 425, Mortality: 1},
	})

	assert.Equal(t, 1, got.EntryCount)
	assert.Equal(t, 2.5, got.TotalCrates)
	assert.Equal(t, 500.0, got.AvgTotalBirds)
}
