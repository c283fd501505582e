package spend

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"partievi-backend/internal/audit"
	"partievi-backend/internal/auth"
	"partievi-backend/internal/models"
	"partievi-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateSpendRequest struct {
	Kind           models.SpendKind `json:"kind"` // "salary" | "expense"
	Amount         float64          `json:"amount"`
	Note           string           `json:"note"`
	PaymentChannel string           `json:"payment_channel"`

	// Salary alanları
	EmployeeName    string `json:"employee_name"`
	PayPeriod       string `json:"pay_period"` // ör: "2025-08"
	SalaryGivenDate string `json:"salary_given_date"`

	// Expense alanları
	ItemName   string             `json:"item_name"`
	BuyerName  string             `json:"buyer_name"`
	BoughtDate string             `json:"bought_date"`
	Source     models.SpendSource `json:"source"` // "online" | "offline"
	SourceRef  string             `json:"source_ref"`
}

type UpdateSpendRequest struct {
	Amount          *float64 `json:"amount"`
	Note            *string  `json:"note"`
	PaymentChannel  *string  `json:"payment_channel"`
	EmployeeName    *string  `json:"employee_name"`
	PayPeriod       *string  `json:"pay_period"`
	SalaryGivenDate *string  `json:"salary_given_date"`
	ItemName        *string  `json:"item_name"`
	BuyerName       *string  `json:"buyer_name"`
	BoughtDate      *string  `json:"bought_date"`
	SourceRef       *string  `json:"source_ref"`
}

type SpendResponse struct {
	ID             uint             `json:"id"`
	Kind           models.SpendKind `json:"kind"`
	Amount         float64          `json:"amount"`
	Note           string           `json:"note"`
	PaymentChannel string           `json:"payment_channel"`

	EmployeeName    string `json:"employee_name,omitempty"`
	PayPeriod       string `json:"pay_period,omitempty"`
	SalaryGivenDate string `json:"salary_given_date,omitempty"`

	ItemName   string             `json:"item_name,omitempty"`
	BuyerName  string             `json:"buyer_name,omitempty"`
	BoughtDate string             `json:"bought_date,omitempty"`
	Source     models.SpendSource `json:"source,omitempty"`
	SourceRef  string             `json:"source_ref,omitempty"`
}

func toResponse(s *models.Spend) SpendResponse {
	resp := SpendResponse{
		ID:             s.ID,
		Kind:           s.Kind,
		Amount:         s.Amount,
		Note:           s.Note,
		PaymentChannel: s.PaymentChannel,
		EmployeeName:   s.EmployeeName,
		PayPeriod:      s.PayPeriod,
		ItemName:       s.ItemName,
		BuyerName:      s.BuyerName,
		Source:         s.Source,
		SourceRef:      s.SourceRef,
	}
	if s.SalaryGivenDate != nil {
		resp.SalaryGivenDate = s.SalaryGivenDate.Format("2006-01-02")
	}
	if s.BoughtDate != nil {
		resp.BoughtDate = s.BoughtDate.Format("2006-01-02")
	}
	return resp
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// buildSpend - tür bazlı doğrulama: maaş ve gider varyantlarının zorunlu
// alanları burada ayrışır, tablo ortak olsa da geçersiz karışım store'a inmez.
func buildSpend(companyID uint, body *CreateSpendRequest) (*models.Spend, error) {
	if body.Amount <= 0 {
		return nil, errors.New("amount pozitif olmalı")
	}

	s := &models.Spend{
		CompanyID:      companyID,
		Kind:           body.Kind,
		Amount:         body.Amount,
		Note:           body.Note,
		PaymentChannel: body.PaymentChannel,
	}

	switch body.Kind {
	case models.SpendKindSalary:
		body.EmployeeName = strings.TrimSpace(body.EmployeeName)
		body.PayPeriod = strings.TrimSpace(body.PayPeriod)
		if body.EmployeeName == "" || body.PayPeriod == "" || body.SalaryGivenDate == "" {
			return nil, errors.New("maaş kaydı için employee_name, pay_period ve salary_given_date zorunlu")
		}
		d, err := parseDate(body.SalaryGivenDate)
		if err != nil {
			return nil, errors.New("salary_given_date formatı 'YYYY-MM-DD' olmalı")
		}
		s.EmployeeName = body.EmployeeName
		s.PayPeriod = body.PayPeriod
		s.SalaryGivenDate = &d

	case models.SpendKindExpense:
		body.ItemName = strings.TrimSpace(body.ItemName)
		if body.ItemName == "" || body.BoughtDate == "" {
			return nil, errors.New("gider kaydı için item_name ve bought_date zorunlu")
		}
		d, err := parseDate(body.BoughtDate)
		if err != nil {
			return nil, errors.New("bought_date formatı 'YYYY-MM-DD' olmalı")
		}
		if body.Source == "" {
			body.Source = models.SpendSourceOffline
		}
		if body.Source != models.SpendSourceOnline && body.Source != models.SpendSourceOffline {
			return nil, errors.New("source 'online' veya 'offline' olmalı")
		}
		if body.Source == models.SpendSourceOnline && strings.TrimSpace(body.SourceRef) == "" {
			return nil, errors.New("online gider için source_ref zorunlu")
		}
		s.ItemName = body.ItemName
		s.BuyerName = strings.TrimSpace(body.BuyerName)
		s.BoughtDate = &d
		s.Source = body.Source
		s.SourceRef = body.SourceRef

	default:
		return nil, errors.New("kind 'salary' veya 'expense' olmalı")
	}

	return s, nil
}

// applySpendUpdate - kısmi alanları mevcut kayda işler, tür değişmez. Maaş
// kimliği (personel + dönem) değiştiyse true döner; handler o durumda
// mükerrerlik kontrolünü yeniden çalıştırır.
func applySpendUpdate(s *models.Spend, body *UpdateSpendRequest) (bool, error) {
	if body.Amount != nil {
		if *body.Amount <= 0 {
			return false, errors.New("amount pozitif olmalı")
		}
		s.Amount = *body.Amount
	}
	if body.Note != nil {
		s.Note = *body.Note
	}
	if body.PaymentChannel != nil {
		s.PaymentChannel = *body.PaymentChannel
	}

	identityChanged := false
	if s.Kind == models.SpendKindSalary {
		if body.EmployeeName != nil {
			name := strings.TrimSpace(*body.EmployeeName)
			if name != s.EmployeeName {
				identityChanged = true
			}
			s.EmployeeName = name
		}
		if body.PayPeriod != nil {
			period := strings.TrimSpace(*body.PayPeriod)
			if period != s.PayPeriod {
				identityChanged = true
			}
			s.PayPeriod = period
		}
		if body.SalaryGivenDate != nil {
			d, err := parseDate(*body.SalaryGivenDate)
			if err != nil {
				return false, errors.New("salary_given_date geçersiz")
			}
			s.SalaryGivenDate = &d
		}
	} else {
		if body.ItemName != nil {
			s.ItemName = strings.TrimSpace(*body.ItemName)
		}
		if body.BuyerName != nil {
			s.BuyerName = strings.TrimSpace(*body.BuyerName)
		}
		if body.BoughtDate != nil {
			d, err := parseDate(*body.BoughtDate)
			if err != nil {
				return false, errors.New("bought_date geçersiz")
			}
			s.BoughtDate = &d
		}
		if body.SourceRef != nil {
			s.SourceRef = *body.SourceRef
		}
	}
	return identityChanged, nil
}

// POST /api/spents
func CreateSpendHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateSpendRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		s, err := buildSpend(companyID, &body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Aynı personel için aynı dönemin maaşı ikinci kez girilemez
		if s.Kind == models.SpendKindSalary {
			var count int64
			if err := db.Model(&models.Spend{}).
				Where("company_id = ? AND kind = ? AND employee_name = ? AND pay_period = ?",
					companyID, models.SpendKindSalary, s.EmployeeName, s.PayPeriod).
				Count(&count).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Maaş kaydı kontrol edilemedi")
			}
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("%s için %s dönemi maaşı zaten girilmiş", s.EmployeeName, s.PayPeriod))
			}
		}

		if err := db.Create(s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Harcama kaydedilemedi")
		}

		writeSpendAudit(c, db, s, models.AuditActionCreate,
			fmt.Sprintf("Harcama eklendi (%s): %.2f TL", s.Kind, s.Amount))

		return c.Status(fiber.StatusCreated).JSON(toResponse(s))
	}
}

// GET /api/spents?kind=salary
func ListSpendsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := db.Model(&models.Spend{}).Where("company_id = ?", companyID)
		if kind := c.Query("kind"); kind != "" {
			if kind != string(models.SpendKindSalary) && kind != string(models.SpendKindExpense) {
				return fiber.NewError(fiber.StatusBadRequest, "kind geçersiz")
			}
			dbq = dbq.Where("kind = ?", kind)
		}

		var rows []models.Spend
		if err := dbq.Order("created_at asc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Harcamalar listelenemedi")
		}

		resp := make([]SpendResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/spents/:id - tür değiştirilemez, alanlar kısmi güncellenir.
func UpdateSpendHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var s models.Spend
		if err := db.Where("company_id = ?", companyID).First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Harcama kaydı bulunamadı")
		}

		var body UpdateSpendRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		identityChanged, err := applySpendUpdate(&s, &body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Güncelleme, oluşturmanın reddettiği mükerrer maaş durumunu üretemez:
		// kimlik (personel + dönem) değiştiyse kontrol kendi kaydı hariç tekrarlanır
		if identityChanged {
			var count int64
			if err := db.Model(&models.Spend{}).
				Where("company_id = ? AND kind = ? AND employee_name = ? AND pay_period = ? AND id <> ?",
					companyID, models.SpendKindSalary, s.EmployeeName, s.PayPeriod, s.ID).
				Count(&count).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Maaş kaydı kontrol edilemedi")
			}
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("%s için %s dönemi maaşı zaten girilmiş", s.EmployeeName, s.PayPeriod))
			}
		}

		if err := db.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Harcama güncellenemedi")
		}

		writeSpendAudit(c, db, &s, models.AuditActionUpdate,
			fmt.Sprintf("Harcama güncellendi: #%d", s.ID))

		return c.JSON(toResponse(&s))
	}
}

// GET /api/spents/summary/monthly - harcamalar + personel ödemeleri birlikte,
// ay bazında. Tek kaynağı olan ay düşmez.
func MonthlySpentSummaryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		var spends []models.Spend
		if err := db.Where("company_id = ?", companyID).Find(&spends).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Harcamalar okunamadı")
		}

		var payments []models.Payment
		if err := db.Where("company_id = ?", companyID).Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödemeler okunamadı")
		}

		spendRows := make([]report.SpendRow, 0, len(spends))
		for i := range spends {
			d, ok := spends[i].EffectiveDate()
			if !ok {
				continue // tarihsiz kayıt rapora giremez
			}
			spendRows = append(spendRows, report.SpendRow{
				Kind:          spends[i].Kind,
				EffectiveDate: d,
				Amount:        spends[i].Amount,
			})
		}

		paymentRows := make([]report.PaymentRow, 0, len(payments))
		for _, p := range payments {
			paymentRows = append(paymentRows, report.PaymentRow{PaidDate: p.PaidDate, Amount: p.Amount})
		}

		return c.JSON(report.BuildSpentSummary(spendRows, paymentRows))
	}
}

func writeSpendAudit(c *fiber.Ctx, db *gorm.DB, s *models.Spend, action models.AuditAction, desc string) {
	userID, _ := auth.UserFromCtx(c)

	var user models.User
	userName := ""
	if err := db.First(&user, "id = ?", userID).Error; err == nil {
		userName = user.Username
	}

	if err := audit.WriteLog(db, audit.LogOptions{
		CompanyID:   s.CompanyID,
		UserID:      userID,
		UserName:    userName,
		EntityType:  "spend",
		EntityID:    s.ID,
		Action:      action,
		Description: desc,
		After:       toResponse(s),
	}); err != nil {
		fmt.Printf("Audit log yazılamadı: %v\n", err)
	}
}
