package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/edithub/edithub-api/internal/apperr"
	"github.com/edithub/edithub-api/internal/middleware"
	"github.com/edithub/edithub-api/internal/models"
	"github.com/edithub/edithub-api/internal/utils"
)

type AuthHandler struct {
	DB           *gorm.DB
	JWTSecret    string
	SessionDays  int
	RememberDays int
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // customer / editor (admins are seeded, never registered)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	password := strings.TrimSpace(req.Password)
	role := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))

	errs := apperr.FieldErrors{}
	if name == "" {
		errs.Add("name", "Name is required")
	}
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Email format is invalid")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if role != models.RoleCustomer && role != models.RoleEditor {
		errs.Add("role", "Role must be customer or editor")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	taken, err := h.emailTaken(role, email)
	if err != nil {
		return fail(c, err)
	}
	if taken {
		errs.Add("email", "Email is already registered")
		return validationFail(c, errs)
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return fail(c, err)
	}

	var id, outName, outEmail string
	switch role {
	case models.RoleCustomer:
		u := models.Customer{Name: name, Email: email, Phone: phone, Password: pw, IsActive: true}
		if err := h.DB.Create(&u).Error; err != nil {
			return fail(c, err)
		}
		id, outName, outEmail = u.ID.String(), u.Name, u.Email
	case models.RoleEditor:
		u := models.Editor{Name: name, Email: email, Phone: phone, Password: pw, IsActive: true}
		if err := h.DB.Create(&u).Error; err != nil {
			return fail(c, err)
		}
		id, outName, outEmail = u.ID.String(), u.Name, u.Email
	}

	if err := h.setSessionCookie(c, id, string(role), false); err != nil {
		return fail(c, err)
	}

	return created(c, fiber.Map{
		"principal": fiber.Map{
			"id":    id,
			"name":  outName,
			"email": outEmail,
			"role":  role,
		},
	})
}

func (h *AuthHandler) emailTaken(role models.Role, email string) (bool, error) {
	var err error
	switch role {
	case models.RoleCustomer:
		err = h.DB.Where("email = ?", email).First(&models.Customer{}).Error
	case models.RoleEditor:
		err = h.DB.Where("email = ?", email).First(&models.Editor{}).Error
	default:
		err = h.DB.Where("email = ?", email).First(&models.Administrator{}).Error
	}
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // which principal table to authenticate against
	Remember bool   `json:"remember"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	role := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))

	errs := apperr.FieldErrors{}
	if email == "" {
		errs.Add("email", "Email is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}
	switch role {
	case models.RoleAdmin, models.RoleCustomer, models.RoleEditor:
	default:
		errs.Add("role", "Role must be admin, customer or editor")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	id, name, hashed, active, err := h.findByEmail(role, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return h.badCredentials(c)
		}
		return fail(c, err)
	}

	if !active {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Account is inactive",
		})
	}

	if !utils.CheckPassword(hashed, password) {
		return h.badCredentials(c)
	}

	if err := h.setSessionCookie(c, id, string(role), req.Remember); err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{
		"principal": fiber.Map{
			"id":    id,
			"name":  name,
			"email": email,
			"role":  role,
		},
	})
}

func (h *AuthHandler) findByEmail(role models.Role, email string) (id, name, hashed string, active bool, err error) {
	switch role {
	case models.RoleAdmin:
		var u models.Administrator
		if err = h.DB.Where("email = ?", email).First(&u).Error; err != nil {
			return
		}
		return u.ID.String(), u.Name, u.Password, true, nil
	case models.RoleCustomer:
		var u models.Customer
		if err = h.DB.Where("email = ?", email).First(&u).Error; err != nil {
			return
		}
		return u.ID.String(), u.Name, u.Password, u.IsActive, nil
	default:
		var u models.Editor
		if err = h.DB.Where("email = ?", email).First(&u).Error; err != nil {
			return
		}
		return u.ID.String(), u.Name, u.Password, u.IsActive, nil
	}
}

func (h *AuthHandler) badCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Email or password is incorrect",
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, principalID, role string, remember bool) error {
	days := h.SessionDays
	if remember {
		days = h.RememberDays
	}

	token, err := utils.SignJWT(h.JWTSecret, principalID, role, days)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   days * 24 * 60 * 60,
	})
	return nil
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

// Me returns the authenticated principal's profile from its own table.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, okP := middleware.Principal(c)
	if !okP {
		return fiber.ErrUnauthorized
	}

	id, name, email, err := h.lookupProfile(p)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrUnauthorized
		}
		return fail(c, err)
	}

	return ok(c, fiber.Map{
		"id":    id,
		"name":  name,
		"email": email,
		"role":  p.Role,
	})
}

func (h *AuthHandler) lookupProfile(p models.Principal) (id, name, email string, err error) {
	switch p.Role {
	case models.RoleAdmin:
		var u models.Administrator
		if err = h.DB.First(&u, "id = ?", p.ID).Error; err != nil {
			return
		}
		return u.ID.String(), u.Name, u.Email, nil
	case models.RoleCustomer:
		var u models.Customer
		if err = h.DB.First(&u, "id = ?", p.ID).Error; err != nil {
			return
		}
		return u.ID.String(), u.Name, u.Email, nil
	default:
		var u models.Editor
		if err = h.DB.First(&u, "id = ?", p.ID).Error; err != nil {
			return
		}
		return u.ID.String(), u.Name, u.Email, nil
	}
}
