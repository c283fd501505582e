package booking

import (
	"testing"
	"time"
)

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2025, 8, 15, hour, min, 0, 0, time.UTC)
}

func iv(t *testing.T, startHour, endHour int) Interval {
	t.Helper()
	i, err := NewInterval(at(t, startHour, 0), at(t, endHour, 0))
	if err != nil {
		t.Fatalf("NewInterval(%d, %d) hata verdi: %v", startHour, endHour, err)
	}
	return i
}

func TestNewInterval_RejectsNonPositiveSpan(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"start equals end", at(t, 10, 0), at(t, 10, 0)},
		{"start after end", at(t, 12, 0), at(t, 10, 0)},
	}
	for _, tc := range cases {
		if _, err := NewInterval(tc.start, tc.end); err != ErrInvalidInterval {
			t.Fatalf("%s: ErrInvalidInterval bekleniyordu, %v geldi", tc.name, err)
		}
	}
}

func TestOverlaps_Symmetry(t *testing.T) {
	cases := []struct {
		a, b     Interval
		expected bool
	}{
		{iv(t, 14, 16), iv(t, 15, 17), true},
		{iv(t, 14, 16), iv(t, 16, 18), false}, // uçları değiyor, çakışma yok
		{iv(t, 9, 12), iv(t, 10, 11), true},   // kapsama
		{iv(t, 9, 10), iv(t, 12, 13), false},
	}
	for _, tc := range cases {
		if got := tc.a.Overlaps(tc.b); got != tc.expected {
			t.Fatalf("Overlaps(%v, %v) = %v, beklenen %v", tc.a, tc.b, got, tc.expected)
		}
		if got := tc.b.Overlaps(tc.a); got != tc.expected {
			t.Fatalf("simetri bozuldu: Overlaps(%v, %v) = %v, beklenen %v", tc.b, tc.a, got, tc.expected)
		}
	}
}

func TestOverlaps_Self(t *testing.T) {
	a := iv(t, 14, 16)
	if !a.Overlaps(a) {
		t.Fatal("geçerli bir aralık kendisiyle çakışmalı")
	}
}

func TestContainsAndDuration(t *testing.T) {
	a := iv(t, 14, 16)
	if !a.Contains(at(t, 14, 0)) {
		t.Fatal("başlangıç noktası aralığa dahil olmalı")
	}
	if a.Contains(at(t, 16, 0)) {
		t.Fatal("bitiş noktası aralığa dahil olmamalı (yarı açık)")
	}
	if a.Duration() != 2*time.Hour {
		t.Fatalf("Duration = %v, beklenen 2h", a.Duration())
	}
}
