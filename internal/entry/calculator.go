package entry

import (
	"kumes-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Bir viyol 30 yumurta eder; ondalık kısım eksik yumurtayı temsil eder
// (ör: 5.10 viyol = 153 yumurta).
const EggsPerCrate = 30

// Computed: viyol sayısından türetilen günlük tavuk sayıları.
type Computed struct {
	ProductionBirds int
	NonProduction   int
	TotalBirds      int
}

// Compute: girilen viyol sayısı, kümesin taban tavuk sayısı ve (varsa) bir önceki
// günün kaydından o günün sayılarını türetir. Saf fonksiyondur, hiçbir state değiştirmez.
//
// Yuvarlama kuralı: viyol * 30 en yakın tam sayıya yuvarlanır, .5 sınırında sıfırdan
// uzağa (half away from zero). Float hatalarından kaçınmak için decimal ile hesaplanır.
func Compute(cratesEntered float64, shed *models.Shed, prior *models.DailyEntry) Computed {
	productionBirds := int(decimal.NewFromFloat(cratesEntered).
		Mul(decimal.NewFromInt(EggsPerCrate)).
		Round(0).
		IntPart())

	// Toplam sürü: dünkü toplam - dünkü ölüm bugünün başlangıç nüfusu olur.
	// Önceki kayıt yoksa kümesin taban değeri kullanılır (ilk giriş).
	var totalBirds int
	if prior != nil {
		totalBirds = prior.TotalBirds - prior.Mortality
		if totalBirds < 0 {
			// Tutarsız ölüm verisi bile olsa nüfus negatife düşmez
			totalBirds = 0
		}
	} else {
		totalBirds = shed.NumberOfBirds
	}

	// Üretim dışı tavuk doğrudan ölçülmez, kalan olarak çıkarılır
	nonProduction := totalBirds - productionBirds
	if nonProduction < 0 {
		nonProduction = 0
	}

	return Computed{
		ProductionBirds: productionBirds,
		NonProduction:   nonProduction,
		TotalBirds:      totalBirds,
	}
}
