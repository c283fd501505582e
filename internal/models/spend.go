package models

import "time"

// SpendKind - harcama kaydının türü. Maaş ve gider aynı tabloda tutulur,
// tür alanı ayrıştırır; tür bazlı zorunlu alanlar handler'da doğrulanır.
type SpendKind string

const (
	SpendKindSalary  SpendKind = "salary"
	SpendKindExpense SpendKind = "expense"
)

type SpendSource string

const (
	SpendSourceOnline  SpendSource = "online"
	SpendSourceOffline SpendSource = "offline"
)

type Spend struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"index;not null"`
	Company   Company

	Kind   SpendKind `gorm:"size:10;not null;index"`
	Amount float64   `gorm:"not null"`
	Note   string    `gorm:"size:255"`

	PaymentChannel string `gorm:"size:20"` // nakit / havale / kart

	// Salary alanları
	EmployeeName    string `gorm:"size:100"`
	PayPeriod       string `gorm:"size:20"` // ör: "2025-08"
	SalaryGivenDate *time.Time

	// Expense alanları
	ItemName   string `gorm:"size:150"`
	BuyerName  string `gorm:"size:100"`
	BoughtDate *time.Time
	Source     SpendSource `gorm:"size:10"`
	SourceRef  string      `gorm:"size:100"` // online ise sipariş/işlem referansı

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveDate - aylık gruplamada kullanılan tarih: maaşta verilme tarihi,
// giderde satın alma tarihi. İkisi de boşsa false döner ve kayıt rapora girmez.
func (s *Spend) EffectiveDate() (time.Time, bool) {
	if s.Kind == SpendKindSalary && s.SalaryGivenDate != nil {
		return *s.SalaryGivenDate, true
	}
	if s.BoughtDate != nil {
		return *s.BoughtDate, true
	}
	return time.Time{}, false
}
