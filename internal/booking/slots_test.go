package booking

import (
	"testing"
	"time"
)

var testDay = time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

func window(startH, startM, endH, endM int) Window {
	return Window{
		Start: TimeOfDay{Hour: startH, Minute: startM},
		End:   TimeOfDay{Hour: endH, Minute: endM},
	}
}

func TestGenerateSlots_DayWindow(t *testing.T) {
	// [09:00, 17:00), 60 dk süre, 30 dk adım: 09:00, 09:30, ..., 16:00 → 15 slot
	slots := GenerateSlots(testDay, window(9, 0, 17, 0), time.Hour, DefaultStride)
	if len(slots) != 15 {
		t.Fatalf("slot sayısı = %d, beklenen 15", len(slots))
	}
	first := slots[0]
	if first.Start.Hour() != 9 || first.Start.Minute() != 0 {
		t.Fatalf("ilk slot %v, beklenen 09:00", first.Start)
	}
	last := slots[len(slots)-1]
	if last.Start.Hour() != 16 || last.End.Hour() != 17 {
		t.Fatalf("son slot [%v, %v), beklenen [16:00, 17:00)", last.Start, last.End)
	}
	for i := 1; i < len(slots); i++ {
		if got := slots[i].Start.Sub(slots[i-1].Start); got != DefaultStride {
			t.Fatalf("slot %d adımı %v, beklenen %v", i, got, DefaultStride)
		}
	}
}

func TestGenerateSlots_WindowCrossingMidnight(t *testing.T) {
	// [22:00, 02:00): bitiş ertesi güne demirlenir.
	// Başlangıçlar 22:00'den ertesi gün 01:00'e kadar → 7 slot.
	slots := GenerateSlots(testDay, window(22, 0, 2, 0), time.Hour, DefaultStride)
	if len(slots) != 7 {
		t.Fatalf("slot sayısı = %d, beklenen 7", len(slots))
	}
	last := slots[len(slots)-1]
	nextDay := testDay.AddDate(0, 0, 1)
	if !last.Start.Equal(nextDay.Add(time.Hour)) {
		t.Fatalf("son slot başlangıcı %v, beklenen ertesi gün 01:00", last.Start)
	}
	if !last.End.Equal(nextDay.Add(2 * time.Hour)) {
		t.Fatalf("son slot bitişi %v, beklenen ertesi gün 02:00", last.End)
	}
}

func TestGenerateSlots_DurationExceedsWindow(t *testing.T) {
	// Süre pencereden büyükse boş dilim döner, hata değil.
	slots := GenerateSlots(testDay, window(9, 0, 10, 0), 2*time.Hour, DefaultStride)
	if len(slots) != 0 {
		t.Fatalf("slot sayısı = %d, beklenen 0", len(slots))
	}
}

func TestGenerateSlots_FullDayWindow(t *testing.T) {
	// Eşit uçlar [10:00, ertesi gün 10:00): 60 dk süre, 30 dk adım ile
	// başlangıçlar 10:00'dan ertesi gün 09:00'a kadar → 47 slot.
	slots := GenerateSlots(testDay, window(10, 0, 10, 0), time.Hour, DefaultStride)
	if len(slots) != 47 {
		t.Fatalf("slot sayısı = %d, beklenen 47", len(slots))
	}
	last := slots[len(slots)-1]
	if !last.End.Equal(testDay.AddDate(0, 0, 1).Add(10 * time.Hour)) {
		t.Fatalf("son slot bitişi %v, beklenen ertesi gün 10:00", last.End)
	}
}

func TestGenerateSlots_DurationFillsWindowExactly(t *testing.T) {
	slots := GenerateSlots(testDay, window(9, 0, 10, 0), time.Hour, DefaultStride)
	if len(slots) != 1 {
		t.Fatalf("slot sayısı = %d, beklenen 1", len(slots))
	}
}

func TestWindowAbsolute(t *testing.T) {
	cases := []struct {
		name    string
		w       Window
		endDay  int // beklenen bitiş gün farkı
		endHour int
	}{
		{"gün içi pencere", window(9, 0, 17, 0), 0, 17},
		{"gece yarısını aşan pencere", window(22, 0, 2, 0), 1, 2},
		{"eşit uçlar 24 saatlik pencere", window(10, 0, 10, 0), 1, 10},
	}
	for _, tc := range cases {
		start, end := tc.w.Absolute(testDay)
		if start.Day() != testDay.Day() {
			t.Fatalf("%s: başlangıç günü kaydı", tc.name)
		}
		wantEnd := testDay.AddDate(0, 0, tc.endDay).Add(time.Duration(tc.endHour) * time.Hour)
		if !end.Equal(wantEnd) {
			t.Fatalf("%s: bitiş %v, beklenen %v", tc.name, end, wantEnd)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	td, err := ParseTimeOfDay("22:30")
	if err != nil {
		t.Fatalf("ParseTimeOfDay hata verdi: %v", err)
	}
	if td.Hour != 22 || td.Minute != 30 {
		t.Fatalf("ParseTimeOfDay = %+v", td)
	}
	if _, err := ParseTimeOfDay("saat yok"); err == nil {
		t.Fatal("bozuk girdi için hata bekleniyordu")
	}
}
