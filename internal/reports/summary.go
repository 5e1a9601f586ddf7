package reports

import "kumes-backend/internal/models"

// Summary: bir giriş kümesinin üretim özeti. Raporlama basit toplama ve
// ortalamadan ibarettir; alan anlamları DailyEntry ile birebir aynıdır.
type Summary struct {
	TotalCrates          float64 `json:"total_production_crates"`
	TotalProductionBirds int     `json:"total_production_birds"`
	AvgTotalBirds        float64 `json:"avg_total_birds"`
	TotalNonProduction   int     `json:"total_non_production"`
	TotalMortality       int     `json:"total_mortality"`
	EntryCount           int     `json:"entry_count"`
}

// Summarize: girişleri tek özet satırına indirger.
func Summarize(entries []models.DailyEntry) Summary {
	s := Summary{EntryCount: len(entries)}

	totalBirdsSum := 0
	for _, e := range entries {
		s.TotalCrates += e.ProductionCrates
		s.TotalProductionBirds += e.ProductionBirds
		s.TotalNonProduction += e.NonProduction
		s.TotalMortality += e.Mortality
		totalBirdsSum += e.TotalBirds
	}

	if len(entries) > 0 {
		s.AvgTotalBirds = float64(totalBirdsSum) / float64(len(entries))
	}

	return s
}
