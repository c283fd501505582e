package appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"partievi-backend/internal/audit"
	"partievi-backend/internal/auth"
	"partievi-backend/internal/booking"
	"partievi-backend/internal/models"
	"partievi-backend/internal/notification"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TagInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type AppointmentRequest struct {
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	EventDate     string     `json:"event_date"` // "2025-12-09"
	EventTime     string     `json:"event_time"` // "18:30"
	Hours         int        `json:"hours"`
	Tags          []TagInput `json:"tags"`
	BookingAmount float64    `json:"booking_amount"`
	NeedCake      bool       `json:"need_cake"`
	CakeWeight    *float64   `json:"cake_weight"`
	CakePrice     float64    `json:"cake_price"`
	Note          string     `json:"note"`
	PaymentDone   bool       `json:"payment"`
	PaymentType   string     `json:"payment_type"`
}

type DeleteAppointmentRequest struct {
	Reason       string  `json:"reason"`
	RefundAmount float64 `json:"refund_amount"`
	RefundReason string  `json:"refund_reason"`
}

type TagResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type AppointmentResponse struct {
	ID            uint                     `json:"id"`
	CustomerName  string                   `json:"customer_name"`
	CustomerPhone string                   `json:"customer_phone"`
	EventStart    string                   `json:"event_start"`
	EventEnd      string                   `json:"event_end"`
	Hours         int                      `json:"hours"`
	BookingAmount float64                  `json:"booking_amount"`
	Tags          []TagResponse            `json:"tags"`
	NeedCake      bool                     `json:"need_cake"`
	CakeWeight    *float64                 `json:"cake_weight"`
	CakePrice     float64                  `json:"cake_price"`
	Note          string                   `json:"note"`
	PaymentDone   bool                     `json:"payment"`
	PaymentType   string                   `json:"payment_type"`
	Status        models.AppointmentStatus `json:"status"`
}

// presentStatus - dışa dönük durum: bitişi geçmiş ama tarama henüz
// işaretlememiş aktif randevu completed olarak sunulur. Store'daki kayıt
// değişmez, dönüşüm yalnızca sunum anındadır.
func presentStatus(s models.AppointmentStatus, eventEnd, now time.Time) models.AppointmentStatus {
	if s == models.AppointmentActive && !eventEnd.After(now) {
		return models.AppointmentCompleted
	}
	return s
}

func toResponse(a *models.Appointment) AppointmentResponse {
	tags := make([]TagResponse, 0, len(a.Tags))
	for _, tg := range a.Tags {
		tags = append(tags, TagResponse{Name: tg.Name, Price: tg.Price})
	}
	return AppointmentResponse{
		ID:            a.ID,
		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		EventStart:    a.EventStart.Format(time.RFC3339),
		EventEnd:      a.EventEnd.Format(time.RFC3339),
		Hours:         a.Hours,
		BookingAmount: a.BookingAmount,
		Tags:          tags,
		NeedCake:      a.NeedCake,
		CakeWeight:    a.CakeWeight,
		CakePrice:     a.CakePrice,
		Note:          a.Note,
		PaymentDone:   a.PaymentDone,
		PaymentType:   a.PaymentType,
		Status:        presentStatus(a.Status, a.EventEnd, time.Now()),
	}
}

// eventInterval - istek gövdesindeki tarih/saat/süre üçlüsünden etkinlik
// aralığını türetir. Saf fonksiyon, handler 400'e çevirir.
func eventInterval(dateStr, timeStr string, hours int, loc *time.Location) (booking.Interval, error) {
	if hours <= 0 {
		return booking.Interval{}, errors.New("hours pozitif olmalı")
	}
	day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return booking.Interval{}, errors.New("event_date formatı 'YYYY-MM-DD' olmalı")
	}
	tod, err := booking.ParseTimeOfDay(timeStr)
	if err != nil {
		return booking.Interval{}, errors.New("event_time formatı 'HH:MM' olmalı")
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), tod.Hour, tod.Minute, 0, 0, loc)
	return booking.NewInterval(start, start.Add(time.Duration(hours)*time.Hour))
}

func validateRequest(body *AppointmentRequest) error {
	body.CustomerName = strings.TrimSpace(body.CustomerName)
	body.CustomerPhone = strings.TrimSpace(body.CustomerPhone)
	if body.CustomerName == "" || body.CustomerPhone == "" {
		return errors.New("customer_name ve customer_phone zorunlu")
	}
	if body.BookingAmount <= 0 {
		return errors.New("booking_amount pozitif olmalı")
	}
	for _, tg := range body.Tags {
		if strings.TrimSpace(tg.Name) == "" {
			return errors.New("tag adı boş olamaz")
		}
		if tg.Price < 0 {
			return errors.New("tag fiyatı negatif olamaz")
		}
	}
	return nil
}

// conflictCheck - adayla çakışan ilk aktif randevuyu döner. Aday aralığıyla
// kesişebilecek kayıtlar store'dan aralık filtresiyle çekilir, karar yarı açık
// çakışma motoruna bırakılır. Silinmişler scope ile dışarıda kalır.
func conflictCheck(tx *gorm.DB, companyID uint, iv booking.Interval, excludeID uint) (*models.Appointment, error) {
	q := tx.Scopes(models.ActiveAppointments).
		Where("company_id = ? AND event_start < ? AND event_end > ?", companyID, iv.End, iv.Start).
		Order("event_start asc")
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID) // güncellemede kaydın kendisi çakışma sayılmaz
	}

	var rows []models.Appointment
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	existing := make([]booking.Interval, len(rows))
	for i, r := range rows {
		existing[i] = booking.Interval{Start: r.EventStart, End: r.EventEnd}
	}
	if idx, conflict := booking.FindConflict(iv, existing); conflict {
		return &rows[idx], nil
	}
	return nil, nil
}

func conflictError(blocking *models.Appointment) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, fmt.Sprintf(
		"Slot dolu: %s - %s arası #%d numaralı randevuyla çakışıyor",
		blocking.EventStart.Format("2006-01-02 15:04"),
		blocking.EventEnd.Format("15:04"),
		blocking.ID,
	))
}

// POST /api/appointments
func CreateAppointmentHandler(db *gorm.DB, sender notification.Sender) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		var body AppointmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validateRequest(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		iv, err := eventInterval(body.EventDate, body.EventTime, body.Hours, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		appt := models.Appointment{
			CompanyID:     companyID,
			CustomerName:  body.CustomerName,
			CustomerPhone: body.CustomerPhone,
			EventStart:    iv.Start,
			EventEnd:      iv.End,
			Hours:         body.Hours,
			BookingAmount: body.BookingAmount,
			NeedCake:      body.NeedCake,
			CakeWeight:    body.CakeWeight,
			CakePrice:     body.CakePrice,
			Note:          body.Note,
			PaymentDone:   body.PaymentDone,
			PaymentType:   body.PaymentType,
			Status:        models.AppointmentActive,
		}
		for _, tg := range body.Tags {
			appt.Tags = append(appt.Tags, models.AppointmentTag{Name: tg.Name, Price: tg.Price})
		}

		// Çakışma kontrolü ve insert aynı transaction'da, şirket bazlı advisory
		// lock altında çalışır: aynı şirkete eşzamanlı iki istek sıralanır,
		// farklı şirketler birbirini beklemez.
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(companyID)).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Slot kilidi alınamadı")
			}
			blocking, err := conflictCheck(tx, companyID, iv, 0)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Çakışma kontrolü yapılamadı")
			}
			if blocking != nil {
				return conflictError(blocking)
			}
			return tx.Create(&appt).Error
		})
		if txErr != nil {
			var fe *fiber.Error
			if errors.As(txErr, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Randevu kaydedilemedi")
		}

		writeAppointmentAudit(c, db, &appt, models.AuditActionCreate, nil,
			fmt.Sprintf("Randevu eklendi: %s - %.2f TL", appt.CustomerName, appt.BookingAmount))

		notification.Dispatch(sender, notification.ChannelSMS, appt.CustomerPhone, fmt.Sprintf(
			"Sayın %s, %s tarihli rezervasyonunuz alınmıştır (%s - %s).",
			appt.CustomerName,
			appt.EventStart.Format("2006-01-02"),
			appt.EventStart.Format("15:04"),
			appt.EventEnd.Format("15:04"),
		))

		return c.Status(fiber.StatusCreated).JSON(toResponse(&appt))
	}
}

// GET /api/appointments?from=...&to=...&status=...
func ListAppointmentsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := db.Model(&models.Appointment{}).
			Preload("Tags").
			Where("company_id = ?", companyID)

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
			}
			dbq = dbq.Where("event_start >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
			}
			dbq = dbq.Where("event_start < ?", to.AddDate(0, 0, 1))
		}
		if status := c.Query("status"); status != "" {
			// Filtre sunulan durumla tutarlı: bitişi geçmiş ama taramanın henüz
			// işaretlemediği aktifler completed sayılır.
			now := time.Now()
			switch models.AppointmentStatus(status) {
			case models.AppointmentActive:
				dbq = dbq.Where("status = ? AND event_end > ?", models.AppointmentActive, now)
			case models.AppointmentCompleted:
				dbq = dbq.Where("(status = ? OR (status = ? AND event_end <= ?))",
					models.AppointmentCompleted, models.AppointmentActive, now)
			default:
				dbq = dbq.Where("status = ?", status)
			}
		}

		var rows []models.Appointment
		if err := dbq.Order("event_start asc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Randevular listelenemedi")
		}

		resp := make([]AppointmentResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/appointments/:id
func UpdateAppointmentHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var appt models.Appointment
		if err := db.Preload("Tags").Where("company_id = ?", companyID).First(&appt, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Randevu bulunamadı")
		}
		if appt.Status == models.AppointmentDeleted {
			return fiber.NewError(fiber.StatusBadRequest, "Silinmiş randevu güncellenemez")
		}

		var body AppointmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validateRequest(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		iv, err := eventInterval(body.EventDate, body.EventTime, body.Hours, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		before := toResponse(&appt)

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(companyID)).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Slot kilidi alınamadı")
			}
			blocking, err := conflictCheck(tx, companyID, iv, appt.ID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Çakışma kontrolü yapılamadı")
			}
			if blocking != nil {
				return conflictError(blocking)
			}

			now := time.Now()
			appt.CustomerName = body.CustomerName
			appt.CustomerPhone = body.CustomerPhone
			appt.EventStart = iv.Start
			appt.EventEnd = iv.End
			appt.Hours = body.Hours
			appt.BookingAmount = body.BookingAmount
			appt.NeedCake = body.NeedCake
			appt.CakeWeight = body.CakeWeight
			appt.CakePrice = body.CakePrice
			appt.Note = body.Note
			appt.PaymentDone = body.PaymentDone
			appt.PaymentType = body.PaymentType
			appt.EditedDate = &now
			if userID, ok := auth.UserFromCtx(c); ok {
				appt.EditedByID = &userID
			}

			if err := tx.Save(&appt).Error; err != nil {
				return err
			}

			// Tag listesi komple yenilenir
			if err := tx.Where("appointment_id = ?", appt.ID).Delete(&models.AppointmentTag{}).Error; err != nil {
				return err
			}
			appt.Tags = nil
			for _, tg := range body.Tags {
				appt.Tags = append(appt.Tags, models.AppointmentTag{AppointmentID: appt.ID, Name: tg.Name, Price: tg.Price})
			}
			if len(appt.Tags) > 0 {
				if err := tx.Create(&appt.Tags).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			var fe *fiber.Error
			if errors.As(txErr, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Randevu güncellenemedi")
		}

		writeAppointmentAudit(c, db, &appt, models.AuditActionUpdate, before,
			fmt.Sprintf("Randevu güncellendi: #%d", appt.ID))

		return c.JSON(toResponse(&appt))
	}
}

// DELETE /api/appointments/:id - soft delete: kayıt fiziksel silinmez, durum
// geçişi ve denetim alanlarıyla işaretlenir.
func DeleteAppointmentHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var appt models.Appointment
		if err := db.Where("company_id = ?", companyID).First(&appt, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Randevu bulunamadı")
		}
		if appt.Status == models.AppointmentDeleted {
			return fiber.NewError(fiber.StatusBadRequest, "Randevu zaten silinmiş")
		}

		var body DeleteAppointmentRequest
		_ = c.BodyParser(&body) // gövde opsiyonel (sebep ve iade bilgisi)
		if body.RefundAmount < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "refund_amount negatif olamaz")
		}

		before := toResponse(&appt)

		now := time.Now()
		appt.Status = models.AppointmentDeleted
		appt.DeleteReason = body.Reason
		appt.RefundAmount = body.RefundAmount
		appt.RefundReason = body.RefundReason
		appt.DeletedDate = &now
		if userID, ok := auth.UserFromCtx(c); ok {
			appt.DeletedByID = &userID
		}

		if err := db.Save(&appt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Randevu silinemedi")
		}

		writeAppointmentAudit(c, db, &appt, models.AuditActionDelete, before,
			fmt.Sprintf("Randevu silindi: #%d (%s)", appt.ID, body.Reason))

		return c.JSON(fiber.Map{"message": "Randevu silindi", "id": appt.ID})
	}
}

// POST /api/appointments/:id/complete - manuel tamamlama geçişi.
func CompleteAppointmentHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var appt models.Appointment
		if err := db.Where("company_id = ?", companyID).First(&appt, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Randevu bulunamadı")
		}
		if appt.Status != models.AppointmentActive {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece aktif randevu tamamlanabilir")
		}

		if err := db.Model(&appt).Update("status", models.AppointmentCompleted).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Randevu güncellenemedi")
		}

		return c.JSON(fiber.Map{"message": "Randevu tamamlandı", "id": appt.ID})
	}
}

func writeAppointmentAudit(c *fiber.Ctx, db *gorm.DB, appt *models.Appointment, action models.AuditAction, before any, desc string) {
	userID, _ := auth.UserFromCtx(c)

	var user models.User
	userName := ""
	if err := db.First(&user, "id = ?", userID).Error; err == nil {
		userName = user.Username
	}

	if err := audit.WriteLog(db, audit.LogOptions{
		CompanyID:   appt.CompanyID,
		UserID:      userID,
		UserName:    userName,
		EntityType:  "appointment",
		EntityID:    appt.ID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       toResponse(appt),
	}); err != nil {
		// Log hatası kritik değil, işlem sonucunu etkilemez
		fmt.Printf("Audit log yazılamadı: %v\n", err)
	}
}
