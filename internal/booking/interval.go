package booking

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("geçersiz aralık: başlangıç bitişten önce olmalı")

// Interval - yarı açık zaman aralığı [Start, End). Aday slotları ve mevcut
// randevuların dolu aralıklarını temsil eder; oluşturulduktan sonra değişmez.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps - yarı açık semantik: uçları değen aralıklar (a.End == b.Start) çakışmaz.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}
