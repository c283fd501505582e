package models

import "time"

// Payment - personele yapılan ödeme kaydı
type Payment struct {
	ID           uint `gorm:"primaryKey"`
	CompanyID    uint `gorm:"index;not null"`
	Company      Company
	EmployeeName string    `gorm:"size:100;not null"`
	Amount       float64   `gorm:"not null"`
	PaidDate     time.Time `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
