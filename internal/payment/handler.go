package payment

import (
	"fmt"
	"strings"
	"time"

	"partievi-backend/internal/audit"
	"partievi-backend/internal/auth"
	"partievi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentRequest struct {
	EmployeeName string  `json:"employee_name"`
	Amount       float64 `json:"amount"`
	PaidDate     string  `json:"paid_date"` // "2025-08-28"
}

type UpdatePaymentRequest struct {
	EmployeeName *string  `json:"employee_name"`
	Amount       *float64 `json:"amount"`
	PaidDate     *string  `json:"paid_date"`
}

type PaymentResponse struct {
	ID           uint    `json:"id"`
	EmployeeName string  `json:"employee_name"`
	Amount       float64 `json:"amount"`
	PaidDate     string  `json:"paid_date"`
}

func toResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		EmployeeName: p.EmployeeName,
		Amount:       p.Amount,
		PaidDate:     p.PaidDate.Format("2006-01-02"),
	}
}

// POST /api/payments
func CreatePaymentHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.EmployeeName = strings.TrimSpace(body.EmployeeName)
		if body.EmployeeName == "" || body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "employee_name zorunlu, amount pozitif olmalı")
		}

		d, err := time.ParseInLocation("2006-01-02", body.PaidDate, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "paid_date formatı 'YYYY-MM-DD' olmalı")
		}

		p := models.Payment{
			CompanyID:    companyID,
			EmployeeName: body.EmployeeName,
			Amount:       body.Amount,
			PaidDate:     d,
		}
		if err := db.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödeme kaydedilemedi")
		}

		writePaymentAudit(c, db, &p, models.AuditActionCreate,
			fmt.Sprintf("Ödeme eklendi: %s - %.2f TL", p.EmployeeName, p.Amount))

		return c.Status(fiber.StatusCreated).JSON(toResponse(&p))
	}
}

// GET /api/payments?from=...&to=...
func ListPaymentsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := db.Model(&models.Payment{}).Where("company_id = ?", companyID)

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
			}
			dbq = dbq.Where("paid_date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
			}
			dbq = dbq.Where("paid_date <= ?", to)
		}

		var rows []models.Payment
		if err := dbq.Order("paid_date asc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödemeler listelenemedi")
		}

		resp := make([]PaymentResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/payments/:id
func UpdatePaymentHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var p models.Payment
		if err := db.Where("company_id = ?", companyID).First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ödeme bulunamadı")
		}

		var body UpdatePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.EmployeeName != nil {
			name := strings.TrimSpace(*body.EmployeeName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "employee_name boş olamaz")
			}
			p.EmployeeName = name
		}
		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "amount pozitif olmalı")
			}
			p.Amount = *body.Amount
		}
		if body.PaidDate != nil {
			d, err := time.ParseInLocation("2006-01-02", *body.PaidDate, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "paid_date geçersiz")
			}
			p.PaidDate = d
		}

		if err := db.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödeme güncellenemedi")
		}

		writePaymentAudit(c, db, &p, models.AuditActionUpdate,
			fmt.Sprintf("Ödeme güncellendi: #%d", p.ID))

		return c.JSON(toResponse(&p))
	}
}

// DELETE /api/payments/:id - ödeme kayıtlarında soft delete yok.
func DeletePaymentHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var p models.Payment
		if err := db.Where("company_id = ?", companyID).First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ödeme bulunamadı")
		}

		if err := db.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödeme silinemedi")
		}

		writePaymentAudit(c, db, &p, models.AuditActionDelete,
			fmt.Sprintf("Ödeme silindi: #%d", p.ID))

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func writePaymentAudit(c *fiber.Ctx, db *gorm.DB, p *models.Payment, action models.AuditAction, desc string) {
	userID, _ := auth.UserFromCtx(c)

	var user models.User
	userName := ""
	if err := db.First(&user, "id = ?", userID).Error; err == nil {
		userName = user.Username
	}

	if err := audit.WriteLog(db, audit.LogOptions{
		CompanyID:   p.CompanyID,
		UserID:      userID,
		UserName:    userName,
		EntityType:  "payment",
		EntityID:    p.ID,
		Action:      action,
		Description: desc,
		After:       toResponse(p),
	}); err != nil {
		fmt.Printf("Audit log yazılamadı: %v\n", err)
	}
}
