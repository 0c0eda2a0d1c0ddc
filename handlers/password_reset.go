package handlers

import (
	"net/http"
	"strings"

	"helpdesk_app_go/config"
	"helpdesk_app_go/db"
	"helpdesk_app_go/services"

	"github.com/labstack/echo/v4"
)

type forgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

// ForgotPasswordHandler issues a reset token and mails the link. The response
// is identical whether or not the email exists, so the endpoint cannot be
// used to enumerate accounts.
func ForgotPasswordHandler(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email is required"})
	}

	resetToken, err := services.GenerateResetToken(db.DB, email)
	if err != nil {
		c.Logger().Error("Failed to generate reset token:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process request"})
	}

	if resetToken != nil {
		if cfg, ok := c.Get("config").(*config.Config); ok {
			resetLink := cfg.AppURL + "/reset-password?token=" + resetToken.Token

			name := email
			if resetToken.User != nil && resetToken.User.FullName != "" {
				name = resetToken.User.FullName
			}

			emailMsg := services.BuildPasswordResetEmail(email, name, resetLink, resetToken.ExpiresAt.Format("January 2, 2006 at 3:04 PM MST"))
			services.SendEmailAsync(cfg, emailMsg)
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "If an account exists with that email, a reset link is on its way",
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token" form:"token"`
	Password string `json:"password" form:"password"`
}

// ResetPasswordHandler consumes a reset or invite token and sets the new
// password. All existing sessions for the account are invalidated.
func ResetPasswordHandler(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Token == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Token and password are required"})
	}

	if err := services.ResetPassword(db.DB, req.Token, req.Password); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
