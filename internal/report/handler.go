package report

import (
	"partievi-backend/internal/auth"
	"partievi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/financial-summary
// Bağımsız kaynakları (randevular, harcamalar) ay anahtarında birleştirip tam
// raporu döner. Salt okunur ve idempotent: hiçbir store kaydını değiştirmez,
// aynı veriyle her çağrı aynı rakamları üretir.
func FinancialSummaryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		// Silinmiş randevular rapora girmez
		var appts []models.Appointment
		if err := db.Scopes(models.ActiveAppointments).
			Preload("Tags").
			Where("company_id = ?", companyID).
			Find(&appts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Randevular okunamadı")
		}

		var spends []models.Spend
		if err := db.Where("company_id = ?", companyID).Find(&spends).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Harcamalar okunamadı")
		}

		apptRows := make([]AppointmentRow, 0, len(appts))
		for i := range appts {
			a := &appts[i]
			row := AppointmentRow{
				EventStart:    a.EventStart,
				BookingAmount: a.BookingAmount,
				CakePrice:     a.CakePrice,
			}
			for j := range a.Tags {
				row.TagPrices = append(row.TagPrices, &a.Tags[j].Price)
			}
			apptRows = append(apptRows, row)
		}

		spendRows := make([]SpendRow, 0, len(spends))
		for i := range spends {
			d, ok := spends[i].EffectiveDate()
			if !ok {
				continue // tarihsiz kayıt güvenle atlanır, rapor patlamaz
			}
			spendRows = append(spendRows, SpendRow{
				Kind:          spends[i].Kind,
				EffectiveDate: d,
				Amount:        spends[i].Amount,
			})
		}

		return c.JSON(BuildFinancialSummary(apptRows, spendRows))
	}
}
