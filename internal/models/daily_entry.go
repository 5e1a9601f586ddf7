package models

import "time"

// DailyEntry: bir kümes için bir takvim gününe ait üretim kaydı.
// ProductionBirds, TotalBirds ve NonProduction viyol sayısından türetilir;
// Mortality işçi tarafından doğrudan girilir.
type DailyEntry struct {
	ID        uint `gorm:"primaryKey"`
	ShedID    uint `gorm:"not null;uniqueIndex:idx_daily_entries_shed_date"`
	Shed      Shed
	WorkerID  uint `gorm:"index;not null"`
	Worker    User
	EntryDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_entries_shed_date"`

	ProductionCrates float64 `gorm:"not null"` // viyol (1 viyol = 30 yumurta, ondalık kısım eksik yumurta)
	ProductionBirds  int     `gorm:"not null"` // türetilmiş: round(viyol * 30)
	TotalBirds       int     `gorm:"not null"` // o gün başındaki toplam sürü
	NonProduction    int     `gorm:"not null"` // türetilmiş: toplam - üretim
	Mortality        int     `gorm:"not null"`
	Notes            string  `gorm:"size:1000"`

	// Düzeltme metadatası. OriginalValues ilk düzeltmede bir kez doldurulur
	// ve sonraki düzeltmelerde asla üzerine yazılmaz.
	CorrectedBy    *uint
	CorrectedAt    *time.Time
	OriginalValues string `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryOriginalValues: ilk düzeltmeden hemen önceki değerlerin dondurulmuş kopyası.
type EntryOriginalValues struct {
	ProductionCrates float64 `json:"production_crates"`
	ProductionBirds  int     `json:"production_birds"`
	TotalBirds       int     `json:"total_birds"`
	NonProduction    int     `json:"non_production"`
	Mortality        int     `json:"mortality"`
	Notes            string  `json:"notes"`
}
