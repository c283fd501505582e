package audit

import (
	"fmt"

	"partievi-backend/internal/auth"
	"partievi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/audit-logs?entity_type=appointment&limit=50
func ListAuditLogsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := auth.CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		limit := 50
		if limitStr := c.Query("limit"); limitStr != "" {
			if _, err := fmt.Sscan(limitStr, &limit); err != nil || limit < 1 || limit > 500 {
				return fiber.NewError(fiber.StatusBadRequest, "limit geçersiz (1-500)")
			}
		}

		dbq := db.Model(&models.AuditLog{}).Where("company_id = ?", companyID)
		if et := c.Query("entity_type"); et != "" {
			dbq = dbq.Where("entity_type = ?", et)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at desc, id desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		return c.JSON(logs)
	}
}
