package appointment

import (
	"time"

	"partievi-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RunCompletionSweeper - bitiş saati geçmiş aktif randevuları düzenli
// aralıklarla completed durumuna çeker. main'de goroutine olarak başlatılır,
// stop kanalı kapanınca döner.
func RunCompletionSweeper(db *gorm.DB, every time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			res := db.Model(&models.Appointment{}).
				Where("status = ? AND event_end <= ?", models.AppointmentActive, time.Now()).
				Update("status", models.AppointmentCompleted)
			if res.Error != nil {
				logrus.WithError(res.Error).Warn("Randevu tamamlama taraması başarısız")
				continue
			}
			if res.RowsAffected > 0 {
				logrus.WithField("count", res.RowsAffected).Info("Süresi dolan randevular tamamlandı olarak işaretlendi")
			}
		}
	}
}
