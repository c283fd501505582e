package appointment

import (
	"testing"
	"time"

	"partievi-backend/internal/models"
)

func TestEventInterval(t *testing.T) {
	iv, err := eventInterval("2025-12-09", "18:30", 3, time.UTC)
	if err != nil {
		t.Fatalf("eventInterval hata verdi: %v", err)
	}
	wantStart := time.Date(2025, 12, 9, 18, 30, 0, 0, time.UTC)
	if !iv.Start.Equal(wantStart) {
		t.Fatalf("başlangıç = %v, beklenen %v", iv.Start, wantStart)
	}
	if iv.Duration() != 3*time.Hour {
		t.Fatalf("süre = %v, beklenen 3h", iv.Duration())
	}
}

func TestEventInterval_CrossesMidnight(t *testing.T) {
	// 23:00 + 3 saat: bitiş ertesi güne sarkar, aralık yine geçerli.
	iv, err := eventInterval("2025-12-09", "23:00", 3, time.UTC)
	if err != nil {
		t.Fatalf("eventInterval hata verdi: %v", err)
	}
	if iv.End.Day() != 10 || iv.End.Hour() != 2 {
		t.Fatalf("bitiş = %v, beklenen ertesi gün 02:00", iv.End)
	}
}

func TestEventInterval_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		date    string
		timeStr string
		hours   int
	}{
		{"negatif süre", "2025-12-09", "18:00", -1},
		{"sıfır süre", "2025-12-09", "18:00", 0},
		{"bozuk tarih", "09.12.2025", "18:00", 2},
		{"bozuk saat", "2025-12-09", "altı buçuk", 2},
	}
	for _, tc := range cases {
		if _, err := eventInterval(tc.date, tc.timeStr, tc.hours, time.UTC); err == nil {
			t.Fatalf("%s: hata bekleniyordu", tc.name)
		}
	}
}

func TestPresentStatus(t *testing.T) {
	now := time.Date(2025, 8, 15, 20, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		status   models.AppointmentStatus
		eventEnd time.Time
		want     models.AppointmentStatus
	}{
		{"bitişi geçmiş aktif completed sunulur", models.AppointmentActive, now.Add(-time.Hour), models.AppointmentCompleted},
		{"bitişi tam şimdi olan aktif completed sunulur", models.AppointmentActive, now, models.AppointmentCompleted},
		{"süren aktif aktif kalır", models.AppointmentActive, now.Add(time.Hour), models.AppointmentActive},
		{"tamamlanmış kayda dokunulmaz", models.AppointmentCompleted, now.Add(time.Hour), models.AppointmentCompleted},
		{"silinmiş kayda dokunulmaz", models.AppointmentDeleted, now.Add(-time.Hour), models.AppointmentDeleted},
	}
	for _, tc := range cases {
		if got := presentStatus(tc.status, tc.eventEnd, now); got != tc.want {
			t.Fatalf("%s: %s geldi, beklenen %s", tc.name, got, tc.want)
		}
	}
}

func TestValidateRequest(t *testing.T) {
	valid := AppointmentRequest{
		CustomerName:  "Ayşe Yılmaz",
		CustomerPhone: "+905551112233",
		BookingAmount: 1500,
		Tags:          []TagInput{{Name: "palyaço", Price: 250}},
	}
	if err := validateRequest(&valid); err != nil {
		t.Fatalf("geçerli istek reddedildi: %v", err)
	}

	cases := []struct {
		name string
		mod  func(r *AppointmentRequest)
	}{
		{"isim eksik", func(r *AppointmentRequest) { r.CustomerName = "  " }},
		{"telefon eksik", func(r *AppointmentRequest) { r.CustomerPhone = "" }},
		{"tutar sıfır", func(r *AppointmentRequest) { r.BookingAmount = 0 }},
		{"tag adı boş", func(r *AppointmentRequest) { r.Tags = []TagInput{{Name: "", Price: 10}} }},
		{"tag fiyatı negatif", func(r *AppointmentRequest) { r.Tags = []TagInput{{Name: "süsleme", Price: -5}} }},
	}
	for _, tc := range cases {
		body := valid
		body.Tags = append([]TagInput(nil), valid.Tags...)
		tc.mod(&body)
		if err := validateRequest(&body); err == nil {
			t.Fatalf("%s: hata bekleniyordu", tc.name)
		}
	}
}
