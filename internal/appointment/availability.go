package appointment

import (
	"fmt"
	"time"

	"partievi-backend/internal/auth"
	"partievi-backend/internal/booking"
	"partievi-backend/internal/models"
	"partievi-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GET /api/appointments/available-slots?date=2025-12-09&hours=2
// Pencere mutlak aralığı [windowStart, windowEnd) üzerinden sorgulanır: güne
// demirli ama gece yarısını aşan randevular da, ertesi güne demirli ama
// pencere bitmeden başlayan randevular da mevcutlar listesine girer.
func AvailableSlotsHandler(db *gorm.DB, window booking.Window) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		dateStr := c.Query("date")
		if dateStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "date zorunlu")
		}
		day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date formatı 'YYYY-MM-DD' olmalı")
		}

		hours := 0
		if _, err := fmt.Sscan(c.Query("hours"), &hours); err != nil || hours < 1 || hours > 24 {
			return fiber.NewError(fiber.StatusBadRequest, "hours geçersiz (1-24)")
		}
		duration := time.Duration(hours) * time.Hour

		all := booking.GenerateSlots(day, window, duration, booking.DefaultStride)

		wStart, wEnd := window.Absolute(day)
		var rows []models.Appointment
		if err := db.Scopes(models.ActiveAppointments).
			Where("company_id = ? AND event_start < ? AND event_end > ?", companyID, wEnd, wStart).
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Randevular okunamadı")
		}

		existing := make([]booking.Interval, len(rows))
		for i, r := range rows {
			existing[i] = booking.Interval{Start: r.EventStart, End: r.EventEnd}
		}

		free := booking.FreeSlots(all, existing)

		slots := make([]SlotResponse, 0, len(free))
		for _, s := range free {
			slots = append(slots, SlotResponse{
				Start: s.Start.Format(time.RFC3339),
				End:   s.End.Format(time.RFC3339),
			})
		}

		return c.JSON(fiber.Map{
			"date":  dateStr,
			"hours": hours,
			"slots": slots,
		})
	}
}

// GET /api/appointments/summary/monthly - ay bazında randevu adedi ve
// rezervasyon tutarı. Silinmiş randevular özete girmez.
func MonthlySummaryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		var rows []models.Appointment
		if err := db.Scopes(models.ActiveAppointments).
			Where("company_id = ?", companyID).
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}

		appts := make([]report.AppointmentRow, 0, len(rows))
		for _, r := range rows {
			appts = append(appts, report.AppointmentRow{
				EventStart:    r.EventStart,
				BookingAmount: r.BookingAmount,
			})
		}

		return c.JSON(report.BuildBookingSummary(appts))
	}
}
