package report

import (
	"time"

	"github.com/shopspring/decimal"

	"partievi-backend/internal/models"
)

// Rapor motoru saf bir katlamadır: store'dan çekilmiş satırları alır, hiçbir
// şeyi mutasyona uğratmaz ve aynı girdiyle her çağrıda aynı çıktıyı üretir.
// Para alanları decimal ile tam hassasiyette toplanır, yuvarlama yalnızca
// çıktı anında bir kez yapılır.

type AppointmentRow struct {
	EventStart    time.Time
	BookingAmount float64
	TagPrices     []*float64 // eksik fiyat sıfıra çekilir, rapor asla patlamaz
	CakePrice     float64
}

type SpendRow struct {
	Kind          models.SpendKind
	EffectiveDate time.Time
	Amount        float64
}

type PaymentRow struct {
	PaidDate time.Time
	Amount   float64
}

type MonthSummary struct {
	Month               string  `json:"month"`
	TotalBookingAmount  float64 `json:"total_booking_amount"`
	TotalAddonAmount    float64 `json:"total_addon_amount"`
	TotalIncome         float64 `json:"total_income"`
	AmountSpentOnSalary float64 `json:"amount_spent_on_salary"`
	TotalExpense        float64 `json:"total_expense"`
	AmountSpent         float64 `json:"amount_spent"`
	TotalSpentOnCake    float64 `json:"total_spent_on_cake"`
	AmountSpentWithCake float64 `json:"amount_spent_with_cake"`
	AmountLeft          float64 `json:"amount_left"`
}

type FinancialSummary struct {
	MonthlySummary     []MonthSummary `json:"monthly_summary"`
	TotalBookingAmount float64        `json:"total_booking_amount"`
	TotalAddonAmount   float64        `json:"total_addon_amount"`
	TotalIncome        float64        `json:"total_income"`
	TotalSpentOnSalary float64        `json:"total_spent_on_salary"`
	TotalExpense       float64        `json:"total_expense"`
	TotalSpent         float64        `json:"total_spent"`
	TotalSpentOnCake   float64        `json:"total_spent_on_cake"`
	TotalSpentWithCake float64        `json:"total_spent_with_cake"`
	TotalLeft          float64        `json:"total_left"`
}

// monthAcc - bir ayın tüm kaynaklardan gelen katkıları. Eksik kaynak sıfırda
// kalır; ay hiçbir zaman rapordan düşmez.
type monthAcc struct {
	booking decimal.Decimal
	addon   decimal.Decimal
	cake    decimal.Decimal
	salary  decimal.Decimal
	expense decimal.Decimal
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// BuildFinancialSummary - randevu ve harcama kaynaklarını ay anahtarında
// birleştirip tam genişlikte aylık rapor üretir. Kek maliyeti hem ayrı hem de
// "ile birlikte" alanlarında raporlanır; amount_spent keki içermez.
func BuildFinancialSummary(appointments []AppointmentRow, spends []SpendRow) FinancialSummary {
	months := make(map[MonthKey]*monthAcc)
	acc := func(k MonthKey) *monthAcc {
		if m, ok := months[k]; ok {
			return m
		}
		m := &monthAcc{}
		months[k] = m
		return m
	}

	for _, a := range appointments {
		m := acc(MonthKeyOf(a.EventStart))
		m.booking = m.booking.Add(decimal.NewFromFloat(a.BookingAmount))
		for _, p := range a.TagPrices {
			if p == nil {
				continue // eksik fiyat = 0
			}
			m.addon = m.addon.Add(decimal.NewFromFloat(*p))
		}
		m.cake = m.cake.Add(decimal.NewFromFloat(a.CakePrice))
	}

	for _, s := range spends {
		m := acc(MonthKeyOf(s.EffectiveDate))
		amount := decimal.NewFromFloat(s.Amount)
		if s.Kind == models.SpendKindSalary {
			m.salary = m.salary.Add(amount)
		} else {
			m.expense = m.expense.Add(amount)
		}
	}

	out := FinancialSummary{MonthlySummary: make([]MonthSummary, 0, len(months))}
	var totBooking, totAddon, totCake, totSalary, totExpense decimal.Decimal

	for _, k := range sortedKeys(months) {
		m := months[k]
		income := m.booking.Add(m.addon)
		spent := m.salary.Add(m.expense)
		out.MonthlySummary = append(out.MonthlySummary, MonthSummary{
			Month:               k.String(),
			TotalBookingAmount:  round2(m.booking),
			TotalAddonAmount:    round2(m.addon),
			TotalIncome:         round2(income),
			AmountSpentOnSalary: round2(m.salary),
			TotalExpense:        round2(m.expense),
			AmountSpent:         round2(spent),
			TotalSpentOnCake:    round2(m.cake),
			AmountSpentWithCake: round2(spent.Add(m.cake)),
			AmountLeft:          round2(income.Sub(spent)),
		})

		totBooking = totBooking.Add(m.booking)
		totAddon = totAddon.Add(m.addon)
		totCake = totCake.Add(m.cake)
		totSalary = totSalary.Add(m.salary)
		totExpense = totExpense.Add(m.expense)
	}

	totIncome := totBooking.Add(totAddon)
	totSpent := totSalary.Add(totExpense)

	out.TotalBookingAmount = round2(totBooking)
	out.TotalAddonAmount = round2(totAddon)
	out.TotalIncome = round2(totIncome)
	out.TotalSpentOnSalary = round2(totSalary)
	out.TotalExpense = round2(totExpense)
	out.TotalSpent = round2(totSpent)
	out.TotalSpentOnCake = round2(totCake)
	out.TotalSpentWithCake = round2(totSpent.Add(totCake))
	out.TotalLeft = round2(totIncome.Sub(totSpent))
	return out
}

type SpentMonth struct {
	Month      string  `json:"month"`
	TotalSpent float64 `json:"total_spent"`
}

type SpentSummary struct {
	MonthlySpentSummary []SpentMonth `json:"monthly_spent_summary"`
	TotalSpent          float64      `json:"total_spent"`
}

// BuildSpentSummary - bordro odaklı özet: harcamalar ve personel ödemeleri
// aynı ay anahtarında toplanır; yalnızca tek kaynağı olan ay sıfırla
// tamamlanır, düşmez.
func BuildSpentSummary(spends []SpendRow, payments []PaymentRow) SpentSummary {
	months := make(map[MonthKey]decimal.Decimal)

	for _, s := range spends {
		k := MonthKeyOf(s.EffectiveDate)
		months[k] = months[k].Add(decimal.NewFromFloat(s.Amount))
	}
	for _, p := range payments {
		k := MonthKeyOf(p.PaidDate)
		months[k] = months[k].Add(decimal.NewFromFloat(p.Amount))
	}

	out := SpentSummary{MonthlySpentSummary: make([]SpentMonth, 0, len(months))}
	var total decimal.Decimal
	for _, k := range sortedKeys(months) {
		out.MonthlySpentSummary = append(out.MonthlySpentSummary, SpentMonth{
			Month:      k.String(),
			TotalSpent: round2(months[k]),
		})
		total = total.Add(months[k])
	}
	out.TotalSpent = round2(total)
	return out
}

type BookingMonth struct {
	Month             string  `json:"month"`
	TotalAppointments int     `json:"total_appointments"`
	TotalAmount       float64 `json:"total_amount"`
}

type BookingSummary struct {
	MonthlySummary    []BookingMonth `json:"monthly_summary"`
	TotalAppointments int            `json:"total_appointments"`
	TotalAmount       float64        `json:"total_amount"`
}

// BuildBookingSummary - ay bazında randevu adedi ve rezervasyon tutarı.
func BuildBookingSummary(appointments []AppointmentRow) BookingSummary {
	type bucket struct {
		count  int
		amount decimal.Decimal
	}
	months := make(map[MonthKey]*bucket)

	for _, a := range appointments {
		k := MonthKeyOf(a.EventStart)
		b, ok := months[k]
		if !ok {
			b = &bucket{}
			months[k] = b
		}
		b.count++
		b.amount = b.amount.Add(decimal.NewFromFloat(a.BookingAmount))
	}

	out := BookingSummary{MonthlySummary: make([]BookingMonth, 0, len(months))}
	var total decimal.Decimal
	for _, k := range sortedKeys(months) {
		b := months[k]
		out.MonthlySummary = append(out.MonthlySummary, BookingMonth{
			Month:             k.String(),
			TotalAppointments: b.count,
			TotalAmount:       round2(b.amount),
		})
		out.TotalAppointments += b.count
		total = total.Add(b.amount)
	}
	out.TotalAmount = round2(total)
	return out
}
