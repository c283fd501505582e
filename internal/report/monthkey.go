package report

import (
	"fmt"
	"sort"
	"time"
)

// MonthKey - (yıl, ay) gruplama anahtarı. Sıralama her zaman yıl/ay alanları
// üzerinden yapılır; "10-2025" < "2-2025" türü string sıralama hatası burada
// imkansızdır. Gösterim metni yalnızca çıktı anında türetilir.
type MonthKey struct {
	Year  int
	Month time.Month
}

func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// String - "MM-YYYY" gösterimi, kaynak API ile aynı biçim.
func (k MonthKey) String() string {
	return fmt.Sprintf("%02d-%d", int(k.Month), k.Year)
}

func sortedKeys[V any](m map[MonthKey]V) []MonthKey {
	keys := make([]MonthKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
