package booking

import (
	"testing"
	"time"
)

func TestFindConflict_Policy(t *testing.T) {
	existing := []Interval{iv(t, 14, 16)}

	// [15:00, 17:00) mevcut [14:00, 16:00) ile çakışır → ret
	if _, conflict := FindConflict(iv(t, 15, 17), existing); !conflict {
		t.Fatal("çakışan aday reddedilmeliydi")
	}
	// [16:00, 18:00) uçtan değiyor → kabul
	if idx, conflict := FindConflict(iv(t, 16, 18), existing); conflict {
		t.Fatalf("bitişik aday kabul edilmeliydi, %d ile çakıştı", idx)
	}
}

func TestFindConflict_ReturnsBlockingIndex(t *testing.T) {
	existing := []Interval{iv(t, 9, 10), iv(t, 14, 16), iv(t, 18, 20)}
	idx, conflict := FindConflict(iv(t, 15, 17), existing)
	if !conflict || idx != 1 {
		t.Fatalf("çakışan indeks = %d (conflict=%v), beklenen 1", idx, conflict)
	}
}

func TestFindConflict_EmptyExisting(t *testing.T) {
	if _, conflict := FindConflict(iv(t, 10, 12), nil); conflict {
		t.Fatal("boş mevcut listesiyle çakışma olamaz")
	}
}

func TestFreeSlots_PreservesOrder(t *testing.T) {
	day := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	all := GenerateSlots(day, window(9, 0, 13, 0), time.Hour, DefaultStride)
	existing := []Interval{
		{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)}, // [10:00, 11:00)
	}

	free := FreeSlots(all, existing)

	// 09:00 ve 09:30 başlangıçlı slotlardan sadece 09:00 serbest (09:30-10:30 çakışır);
	// 11:00'den itibaren tekrar serbest.
	for i := 1; i < len(free); i++ {
		if !free[i-1].Start.Before(free[i].Start) {
			t.Fatal("serbest slotlar kronolojik sıralı kalmalı")
		}
	}
	for _, s := range free {
		if s.Overlaps(existing[0]) {
			t.Fatalf("serbest slot %v dolu aralıkla çakışıyor", s)
		}
	}
	// [9:00,13:00) penceresinde 60 dk'lık 7 aday var; [10:00,11:00) dolu iken
	// 09:30, 10:00 ve 10:30 elenmeli → 4 serbest slot.
	if len(free) != 4 {
		t.Fatalf("serbest slot sayısı = %d, beklenen 4", len(free))
	}
}

func TestFreeSlots_SelfExclusionScenario(t *testing.T) {
	// Güncellemede kaydın kendi aralığı mevcutlar listesinden çıkarılır;
	// aynı aralık adayı bu durumda kabul edilmelidir.
	own := iv(t, 14, 16)
	others := []Interval{iv(t, 18, 20)}
	if _, conflict := FindConflict(own, others); conflict {
		t.Fatal("kendi aralığı hariç tutulduğunda aynı slota güncelleme kabul edilmeli")
	}
}
