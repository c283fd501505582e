package booking

// FindConflict - adayı mevcut dolu aralıklara karşı dener ve ilk çakışanın
// indeksini döner. Politika deterministik: herhangi bir çakışmada ret, kısmi
// rezervasyon yok. Silinmiş randevular bu listeye hiç girmemeli (sorgu tarafı
// models.ActiveAppointments ile filtreler).
func FindConflict(candidate Interval, existing []Interval) (int, bool) {
	for i, e := range existing {
		if candidate.Overlaps(e) {
			return i, true
		}
	}
	return -1, false
}

// FreeSlots - aday slotlardan dolu aralıklarla çakışanları eler; kronolojik
// sıra korunur.
func FreeSlots(candidates, existing []Interval) []Interval {
	free := make([]Interval, 0, len(candidates))
	for _, s := range candidates {
		if _, conflict := FindConflict(s, existing); !conflict {
			free = append(free, s)
		}
	}
	return free
}
