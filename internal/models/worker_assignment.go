package models

import "time"

// WorkerAssignment: işçinin hangi kümeslere giriş yapabileceğini belirler.
// Aynı işçi-kümes çifti için tek kayıt tutulur; pasifleştirme IsActive ile yapılır.
type WorkerAssignment struct {
	ID         uint `gorm:"primaryKey"`
	WorkerID   uint `gorm:"not null;uniqueIndex:idx_assignments_worker_shed"`
	Worker     User `gorm:"foreignKey:WorkerID"`
	ShedID     uint `gorm:"not null;uniqueIndex:idx_assignments_worker_shed"`
	Shed       Shed
	AssignedBy *uint
	AssignedAt time.Time
	IsActive   bool `gorm:"default:true"`
}
