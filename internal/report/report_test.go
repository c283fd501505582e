package report

import (
	"testing"
	"time"

	"partievi-backend/internal/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 18, 0, 0, 0, time.UTC)
}

func fptr(f float64) *float64 { return &f }

func TestMonthKey_OrderAndDisplay(t *testing.T) {
	feb := MonthKey{Year: 2025, Month: time.February}
	oct := MonthKey{Year: 2025, Month: time.October}
	jan26 := MonthKey{Year: 2026, Month: time.January}

	if !feb.Before(oct) || !oct.Before(jan26) {
		t.Fatal("ay anahtarları kronolojik sıralanmalı")
	}
	// String gösterimi sıralamayı etkilemez: "10-2025" < "02-2025" tuzağı yok.
	if feb.String() != "02-2025" {
		t.Fatalf("gösterim = %q, beklenen 02-2025", feb.String())
	}
}

func TestBuildFinancialSummary_ZeroFillMerge(t *testing.T) {
	// Mart ayında sadece gider var, randevu yok: ay rapordan düşmemeli,
	// randevu alanları sıfırla gelmeli.
	appointments := []AppointmentRow{
		{EventStart: day(2025, time.February, 10), BookingAmount: 1500, TagPrices: []*float64{fptr(200)}, CakePrice: 100},
	}
	spends := []SpendRow{
		{Kind: models.SpendKindExpense, EffectiveDate: day(2025, time.March, 5), Amount: 300},
	}

	sum := BuildFinancialSummary(appointments, spends)

	if len(sum.MonthlySummary) != 2 {
		t.Fatalf("ay sayısı = %d, beklenen 2", len(sum.MonthlySummary))
	}
	march := sum.MonthlySummary[1]
	if march.Month != "03-2025" {
		t.Fatalf("ikinci ay = %s, beklenen 03-2025", march.Month)
	}
	if march.TotalBookingAmount != 0 || march.TotalAddonAmount != 0 {
		t.Fatalf("randevusuz ay sıfırla doldurulmalı: %+v", march)
	}
	if march.TotalExpense != 300 || march.AmountLeft != -300 {
		t.Fatalf("mart gider/bakiye yanlış: %+v", march)
	}
}

func TestBuildFinancialSummary_ChronologicalSort(t *testing.T) {
	spends := []SpendRow{
		{Kind: models.SpendKindExpense, EffectiveDate: day(2025, time.October, 1), Amount: 10},
		{Kind: models.SpendKindExpense, EffectiveDate: day(2025, time.February, 1), Amount: 20},
		{Kind: models.SpendKindExpense, EffectiveDate: day(2026, time.January, 1), Amount: 30},
	}
	sum := BuildFinancialSummary(nil, spends)

	want := []string{"02-2025", "10-2025", "01-2026"}
	for i, m := range sum.MonthlySummary {
		if m.Month != want[i] {
			t.Fatalf("sıra %d: %s, beklenen %s", i, m.Month, want[i])
		}
	}
}

func TestBuildFinancialSummary_FieldArithmetic(t *testing.T) {
	appointments := []AppointmentRow{
		{
			EventStart:    day(2025, time.June, 14),
			BookingAmount: 2000,
			TagPrices:     []*float64{fptr(150), nil, fptr(50.5)}, // nil fiyat sıfıra çekilir
			CakePrice:     120,
		},
	}
	spends := []SpendRow{
		{Kind: models.SpendKindSalary, EffectiveDate: day(2025, time.June, 30), Amount: 800},
		{Kind: models.SpendKindExpense, EffectiveDate: day(2025, time.June, 3), Amount: 99.5},
	}

	sum := BuildFinancialSummary(appointments, spends)
	m := sum.MonthlySummary[0]

	if m.TotalAddonAmount != 200.5 {
		t.Fatalf("addon = %v, beklenen 200.5", m.TotalAddonAmount)
	}
	if m.TotalIncome != 2200.5 {
		t.Fatalf("income = %v, beklenen 2200.5", m.TotalIncome)
	}
	if m.AmountSpent != 899.5 {
		t.Fatalf("spent = %v, beklenen 899.5 (kek hariç)", m.AmountSpent)
	}
	if m.AmountSpentWithCake != 1019.5 {
		t.Fatalf("spent_with_cake = %v, beklenen 1019.5", m.AmountSpentWithCake)
	}
	if m.AmountLeft != 1301 {
		t.Fatalf("left = %v, beklenen 1301", m.AmountLeft)
	}
	if sum.TotalLeft != m.AmountLeft {
		t.Fatalf("tek aylı raporda genel toplam ay toplamına eşit olmalı")
	}
}

func TestBuildFinancialSummary_RoundingAtOutputOnly(t *testing.T) {
	// Üç adet 0.335: tam hassasiyetli toplam 1.005 → 1.01.
	// Kalem kalem yuvarlansaydı 0.34*3 = 1.02 olurdu.
	spends := []SpendRow{
		{Kind: models.SpendKindExpense, EffectiveDate: day(2025, time.May, 1), Amount: 0.335},
		{Kind: models.SpendKindExpense, EffectiveDate: day(2025, time.May, 2), Amount: 0.335},
		{Kind: models.SpendKindExpense, EffectiveDate: day(2025, time.May, 3), Amount: 0.335},
	}
	sum := BuildFinancialSummary(nil, spends)
	if sum.TotalExpense != 1.01 {
		t.Fatalf("toplam gider = %v, beklenen 1.01 (yuvarlamadan önce biriktir)", sum.TotalExpense)
	}
}

func TestBuildFinancialSummary_Idempotent(t *testing.T) {
	appointments := []AppointmentRow{
		{EventStart: day(2025, time.April, 8), BookingAmount: 1234.56, TagPrices: []*float64{fptr(0.1), fptr(0.2)}, CakePrice: 33.33},
	}
	spends := []SpendRow{
		{Kind: models.SpendKindSalary, EffectiveDate: day(2025, time.April, 28), Amount: 456.789},
	}

	first := BuildFinancialSummary(appointments, spends)
	second := BuildFinancialSummary(appointments, spends)

	if len(first.MonthlySummary) != len(second.MonthlySummary) {
		t.Fatal("aynı girdiyle farklı ay sayısı")
	}
	for i := range first.MonthlySummary {
		if first.MonthlySummary[i] != second.MonthlySummary[i] {
			t.Fatalf("ay %d iki çalıştırmada farklı: %+v / %+v", i, first.MonthlySummary[i], second.MonthlySummary[i])
		}
	}
	if first.TotalLeft != second.TotalLeft || first.TotalSpentWithCake != second.TotalSpentWithCake {
		t.Fatal("genel toplamlar iki çalıştırmada farklı")
	}
}

func TestBuildSpentSummary_UnionOfSources(t *testing.T) {
	spends := []SpendRow{
		{Kind: models.SpendKindExpense, EffectiveDate: day(2025, time.January, 5), Amount: 100},
	}
	payments := []PaymentRow{
		{PaidDate: day(2025, time.January, 20), Amount: 50},
		{PaidDate: day(2025, time.February, 1), Amount: 75},
	}

	sum := BuildSpentSummary(spends, payments)

	if len(sum.MonthlySpentSummary) != 2 {
		t.Fatalf("ay sayısı = %d, beklenen 2", len(sum.MonthlySpentSummary))
	}
	if sum.MonthlySpentSummary[0].Month != "01-2025" || sum.MonthlySpentSummary[0].TotalSpent != 150 {
		t.Fatalf("ocak = %+v", sum.MonthlySpentSummary[0])
	}
	if sum.MonthlySpentSummary[1].TotalSpent != 75 {
		t.Fatalf("şubat = %+v (sadece ödeme olan ay düşmemeli)", sum.MonthlySpentSummary[1])
	}
	if sum.TotalSpent != 225 {
		t.Fatalf("toplam = %v, beklenen 225", sum.TotalSpent)
	}
}

func TestBuildBookingSummary(t *testing.T) {
	appointments := []AppointmentRow{
		{EventStart: day(2025, time.July, 1), BookingAmount: 1000},
		{EventStart: day(2025, time.July, 15), BookingAmount: 1500},
		{EventStart: day(2025, time.August, 2), BookingAmount: 2000},
	}

	sum := BuildBookingSummary(appointments)

	if sum.TotalAppointments != 3 || sum.TotalAmount != 4500 {
		t.Fatalf("genel toplam = %d / %v", sum.TotalAppointments, sum.TotalAmount)
	}
	july := sum.MonthlySummary[0]
	if july.Month != "07-2025" || july.TotalAppointments != 2 || july.TotalAmount != 2500 {
		t.Fatalf("temmuz = %+v", july)
	}
}

func TestBuildFinancialSummary_Empty(t *testing.T) {
	sum := BuildFinancialSummary(nil, nil)
	if len(sum.MonthlySummary) != 0 || sum.TotalLeft != 0 {
		t.Fatalf("boş girdi boş rapor üretmeli: %+v", sum)
	}
}
