package database

import (
	"fmt"

	"partievi-backend/internal/config"
	"partievi-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open - store bağlantısını kurar ve şemayı migrate eder. Handle çağırana
// döner; paket seviyesinde global bağlantı tutulmaz, her bileşen kendi
// aldığı handle ile çalışır.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Appointment{},
		&models.AppointmentTag{},
		&models.Spend{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("automigrate hatası: %w", err)
	}

	logrus.Info("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
	return db, nil
}

// Close - altta yatan sql.DB havuzunu kapatır. Kapanışta bir kez çağrılır.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Warn("Veritabanı bağlantısı kapatılamadı")
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Warn("Veritabanı bağlantısı kapatılamadı")
	}
}
