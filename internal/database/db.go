package database

import (
	"log"

	"kumes-backend/internal/config"
	"kumes-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError: aynı kümes + tarih için ikinci giriş denemesi
	// gorm.ErrDuplicatedKey olarak yakalanabilsin diye açık
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	// Shed migration: number_of_birds kolonu ekleniyor (AutoMigrate'ten ÖNCE)
	// İlk sürümde sadece capacity vardı, mevcut kayıtlar capacity değerini devralır
	if DB.Migrator().HasTable(&models.Shed{}) {
		if !DB.Migrator().HasColumn(&models.Shed{}, "number_of_birds") {
			log.Println("Shed.number_of_birds kolonu ekleniyor...")

			if err := DB.Exec("ALTER TABLE sheds ADD COLUMN number_of_birds BIGINT NOT NULL DEFAULT 0").Error; err != nil {
				log.Printf("number_of_birds kolonu eklenirken hata (zaten var olabilir): %v", err)
			} else {
				DB.Exec("UPDATE sheds SET number_of_birds = capacity WHERE number_of_birds = 0")
				log.Println("Mevcut kümesler capacity değeriyle güncellendi")
			}
		}
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Shed{},
		&models.WorkerAssignment{},
		&models.DailyEntry{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
