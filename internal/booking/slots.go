package booking

import (
	"fmt"
	"time"
)

// DefaultStride - ardışık aday slot başlangıçları arasındaki sabit adım.
const DefaultStride = 30 * time.Minute

// TimeOfDay - güne bağlı olmayan saat:dakika değeri.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("saat formatı 'HH:MM' olmalı: %w", err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (td TimeOfDay) on(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), td.Hour, td.Minute, 0, 0, day.Location())
}

// Window - işletmenin günlük çalışma penceresi. End sayısal olarak Start'tan
// büyük değilse pencere gece yarısını aşar; bitiş ertesi güne demirlenir.
// Eşit uçlar 24 saatlik pencere demektir.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Absolute - pencereyi verilen güne demirler ve [start, end) mutlak aralığını döner.
func (w Window) Absolute(day time.Time) (time.Time, time.Time) {
	start := w.Start.on(day)
	end := w.End.on(day)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// GenerateSlots - verilen gün için [t, t+duration) aday aralıklarını stride
// adımıyla üretir; bitişi pencereyi aşacak aday üretilmez. Süre pencereye hiç
// sığmıyorsa boş dilim döner, bu bir hata değildir. Çıktı kronolojik sıralı ve
// tamamen materyalize edilmiştir.
func GenerateSlots(day time.Time, w Window, duration, stride time.Duration) []Interval {
	if duration <= 0 || stride <= 0 {
		return nil
	}
	start, end := w.Absolute(day)
	slots := make([]Interval, 0)
	for t := start; !t.Add(duration).After(end); t = t.Add(stride) {
		slots = append(slots, Interval{Start: t, End: t.Add(duration)})
	}
	return slots
}
