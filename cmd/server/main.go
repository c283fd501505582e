package main

import (
	"strings"
	"time"

	"partievi-backend/internal/appointment"
	"partievi-backend/internal/audit"
	"partievi-backend/internal/auth"
	"partievi-backend/internal/booking"
	"partievi-backend/internal/config"
	"partievi-backend/internal/database"
	"partievi-backend/internal/models"
	"partievi-backend/internal/notification"
	"partievi-backend/internal/payment"
	"partievi-backend/internal/report"
	"partievi-backend/internal/spend"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		logrus.Fatalf("Store açılamadı: %v", err)
	}
	defer database.Close(db)

	// Slot penceresi: bitiş başlangıçtan büyük değilse gece yarısını aşar
	windowStart, err := booking.ParseTimeOfDay(cfg.SlotWindowStart)
	if err != nil {
		logrus.Fatalf("SLOT_WINDOW_START geçersiz: %v", err)
	}
	windowEnd, err := booking.ParseTimeOfDay(cfg.SlotWindowEnd)
	if err != nil {
		logrus.Fatalf("SLOT_WINDOW_END geçersiz: %v", err)
	}
	window := booking.Window{Start: windowStart, End: windowEnd}

	// Twilio yapılandırılmamışsa bildirimler sadece loglanır
	var sender notification.Sender = notification.LogSender{}
	if cfg.TwilioAccountSID != "" {
		sender = notification.NewTwilioSender(
			cfg.TwilioAccountSID,
			cfg.TwilioAuthToken,
			cfg.TwilioPhoneNumber,
			cfg.TwilioWhatsAppFrom,
		)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logrus.WithError(err).Error("Beklenmeyen hata")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg, db))
	api.Post("/auth/login", auth.LoginHandler(cfg, db))
	api.Post("/auth/reset-password", auth.ResetPasswordHandler(db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))
	protected.Post("/auth/staff", auth.RequireRole(models.RoleOwner), auth.CreateStaffHandler(db))

	// Randevular
	protected.Post("/appointments", appointment.CreateAppointmentHandler(db, sender))
	protected.Get("/appointments", appointment.ListAppointmentsHandler(db))
	protected.Get("/appointments/available-slots", appointment.AvailableSlotsHandler(db, window))
	protected.Get("/appointments/summary/monthly", appointment.MonthlySummaryHandler(db))
	protected.Put("/appointments/:id", appointment.UpdateAppointmentHandler(db))
	protected.Delete("/appointments/:id", appointment.DeleteAppointmentHandler(db))
	protected.Post("/appointments/:id/complete", appointment.CompleteAppointmentHandler(db))

	// Harcamalar (maaş + gider)
	protected.Post("/spents", spend.CreateSpendHandler(db))
	protected.Get("/spents", spend.ListSpendsHandler(db))
	protected.Get("/spents/summary/monthly", spend.MonthlySpentSummaryHandler(db))
	protected.Put("/spents/:id", spend.UpdateSpendHandler(db))

	// Personel ödemeleri
	protected.Post("/payments", payment.CreatePaymentHandler(db))
	protected.Get("/payments", payment.ListPaymentsHandler(db))
	protected.Put("/payments/:id", payment.UpdatePaymentHandler(db))
	protected.Delete("/payments/:id", payment.DeletePaymentHandler(db))

	// Finansal özet
	protected.Get("/financial-summary", report.FinancialSummaryHandler(db))

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler(db))

	// Süresi dolan randevuları tamamlanmış sayan arka plan taraması
	stop := make(chan struct{})
	defer close(stop)
	go appointment.RunCompletionSweeper(db, 5*time.Minute, stop)

	logrus.Info("Server çalışıyor port: ", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logrus.Fatal(err)
	}
}
