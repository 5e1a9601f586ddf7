package models

import "time"

type ShedVariant string

const (
	ShedVariantWhite ShedVariant = "W"
	ShedVariantBrown ShedVariant = "B"
)

// Shed: fiziksel kümes birimi. NumberOfBirds, o kümes için henüz hiç
// günlük giriş yokken kullanılan başlangıç tavuk sayısıdır.
type Shed struct {
	ID            uint        `gorm:"primaryKey"`
	Name          string      `gorm:"size:50;not null;unique"`
	Variant       ShedVariant `gorm:"size:1;not null"` // W (beyaz) / B (kahverengi)
	Description   string      `gorm:"size:500"`
	Capacity      int         `gorm:"not null;default:0"` // tasarım kapasitesi
	NumberOfBirds int         `gorm:"not null;default:0"` // mevcut tavuk sayısı (ilk giriş için taban)
	IsActive      bool        `gorm:"default:true"`
	CreatedBy     *uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
