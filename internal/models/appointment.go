package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentActive    AppointmentStatus = "active"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentDeleted   AppointmentStatus = "deleted" // soft delete, kayıt silinmez
)

type Appointment struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"index;not null"`
	Company   Company

	CustomerName  string `gorm:"size:100;not null"`
	CustomerPhone string `gorm:"size:20;not null"`

	// Etkinlik aralığı yarı-açık: [EventStart, EventEnd)
	EventStart time.Time `gorm:"index;not null"`
	EventEnd   time.Time `gorm:"not null"`
	Hours      int       `gorm:"not null"`

	BookingAmount float64 `gorm:"not null"`
	Tags          []AppointmentTag

	NeedCake   bool
	CakeWeight *float64 // kg
	CakePrice  float64  `gorm:"default:0"`

	Note        string `gorm:"size:255"`
	PaymentDone bool   // kapora alındı mı
	PaymentType string `gorm:"size:20"` // nakit / havale / kart

	Status AppointmentStatus `gorm:"size:20;not null;default:'active';index"`

	// Soft delete meta (Status = deleted olduğunda dolar)
	DeleteReason string `gorm:"size:255"`
	DeletedByID  *uint
	RefundAmount float64 `gorm:"default:0"`
	RefundReason string  `gorm:"size:255"`
	DeletedDate  *time.Time

	// Düzenleme meta
	EditedByID *uint
	EditedDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentTag - randevuya bağlı ek hizmet (ör: palyaço, süsleme) ve fiyatı
type AppointmentTag struct {
	ID            uint    `gorm:"primaryKey"`
	AppointmentID uint    `gorm:"index;not null"`
	Name          string  `gorm:"size:100;not null"`
	Price         float64 `gorm:"default:0"`
}

// ActiveAppointments - silinmiş randevuları dışarıda bırakan tek sorgu noktası.
// Çakışma kontrolü ve raporlar HER ZAMAN bu scope üzerinden okur.
func ActiveAppointments(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", AppointmentDeleted)
}
