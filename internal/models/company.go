package models

import "time"

type UserRole string

const (
	RoleOwner UserRole = "owner"
	RoleStaff UserRole = "staff"
)

// Company - tenant. Tüm iş kayıtları (randevu, harcama, ödeme) company_id ile izole edilir.
type Company struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:150;not null"`
	Address   string `gorm:"size:255"`
	Phone     string `gorm:"size:20;not null"`
	AltPhone  string `gorm:"size:20"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID           uint `gorm:"primaryKey"`
	CompanyID    uint `gorm:"index;not null"`
	Company      Company
	Username     string   `gorm:"size:100;not null"`
	Phone        string   `gorm:"size:20;uniqueIndex;not null"` // login anahtarı
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
