package auth

import (
	"strings"

	"partievi-backend/internal/config"
	"partievi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	AltPhone    string `json:"alt_phone"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Phone       string `json:"phone"`
	NewPassword string `json:"new_password"`
}

type CreateStaffRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/register - şirket kaydı: tenant + sahip kullanıcı tek seferde açılır.
func RegisterHandler(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Phone = strings.TrimSpace(body.Phone)
		body.Username = strings.TrimSpace(body.Username)
		body.CompanyName = strings.TrimSpace(body.CompanyName)

		if body.CompanyName == "" || body.Username == "" || body.Phone == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Şirket adı, kullanıcı adı, telefon ve şifre zorunlu")
		}

		var count int64
		if err := db.Model(&models.User{}).Where("phone = ?", body.Phone).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Telefon kontrolü yapılamadı")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu telefon numarası zaten kayıtlı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		var user models.User
		err = db.Transaction(func(tx *gorm.DB) error {
			company := models.Company{
				Name:     body.CompanyName,
				Address:  body.Address,
				Phone:    body.Phone,
				AltPhone: body.AltPhone,
			}
			if err := tx.Create(&company).Error; err != nil {
				return err
			}

			user = models.User{
				CompanyID:    company.ID,
				Username:     body.Username,
				Phone:        body.Phone,
				PasswordHash: string(hash),
				Role:         models.RoleOwner,
			}
			return tx.Create(&user).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":         user.ID,
			"company_id": user.CompanyID,
			"phone":      user.Phone,
			"role":       user.Role,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Phone = strings.TrimSpace(body.Phone)

		var user models.User
		if err := db.Where("phone = ?", body.Phone).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Telefon veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Telefon veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":         user.ID,
				"username":   user.Username,
				"phone":      user.Phone,
				"role":       user.Role,
				"company_id": user.CompanyID,
			},
		})
	}
}

// POST /api/auth/reset-password
func ResetPasswordHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Phone = strings.TrimSpace(body.Phone)
		if body.Phone == "" || body.NewPassword == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Telefon ve yeni şifre zorunlu")
		}

		var user models.User
		if err := db.Where("phone = ?", body.Phone).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		if err := db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre güncellenemedi")
		}

		return c.JSON(fiber.Map{"message": "Şifre sıfırlandı"})
	}
}

// POST /api/auth/staff (owner) - aynı şirkete personel kullanıcısı ekler.
func CreateStaffHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := CompanyIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateStaffRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Phone = strings.TrimSpace(body.Phone)
		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Phone == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı, telefon ve şifre zorunlu")
		}

		var count int64
		if err := db.Model(&models.User{}).Where("phone = ?", body.Phone).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Telefon kontrolü yapılamadı")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu telefon numarası zaten kayıtlı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			CompanyID:    companyID,
			Username:     body.Username,
			Phone:        body.Phone,
			PasswordHash: string(hash),
			Role:         models.RoleStaff,
		}
		if err := db.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"phone":    user.Phone,
			"role":     user.Role,
		})
	}
}

// GET /api/auth/me
func MeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)
		userID, ok := userIDVal.(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bilgisi alınamadı")
		}

		var user models.User
		if err := db.Preload("Company").First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		return c.JSON(fiber.Map{
			"user_id":  user.ID,
			"username": user.Username,
			"phone":    user.Phone,
			"role":     user.Role,
			"company": fiber.Map{
				"id":        user.Company.ID,
				"name":      user.Company.Name,
				"address":   user.Company.Address,
				"phone":     user.Company.Phone,
				"alt_phone": user.Company.AltPhone,
			},
		})
	}
}
