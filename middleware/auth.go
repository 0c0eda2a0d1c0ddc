package middleware

import (
	"net/http"

	"helpdesk_app_go/config"
	"helpdesk_app_go/db"
	"helpdesk_app_go/models"
	"helpdesk_app_go/services"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "helpdesk_session"
	// ContextKeyUser is the context key for the authenticated identity
	ContextKeyUser = "user"
	// ContextKeyProfile is the context key for the identity's profile
	ContextKeyProfile = "profile"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
)

// RequireAuth is middleware that requires a valid session. The client is an
// SPA, so failures get a JSON 401 rather than a login redirect.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil {
				clearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "Session invalid or expired")
			}

			if !session.User.IsActive {
				clearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "Account is deactivated")
			}

			// Staff profiles share the identity id
			var profile models.Profile
			if err := db.DB.First(&profile, "id = ?", session.UserID).Error; err == nil {
				c.Set(ContextKeyProfile, &profile)
			}

			c.Set(ContextKeyUser, &session.User)
			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

// RequireRole is middleware that requires specific roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetCurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// GetCurrentUser retrieves the current identity from context
func GetCurrentUser(c echo.Context) *models.AuthUser {
	user, ok := c.Get(ContextKeyUser).(*models.AuthUser)
	if !ok {
		return nil
	}
	return user
}

// GetCurrentProfile retrieves the current user's profile from context
func GetCurrentProfile(c echo.Context) *models.Profile {
	profile, ok := c.Get(ContextKeyProfile).(*models.Profile)
	if !ok {
		return nil
	}
	return profile
}

// clearSessionCookie clears the session cookie
func clearSessionCookie(c echo.Context) {
	var isProduction bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		isProduction = cfg.Environment == "production"
	}

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}
