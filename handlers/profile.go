package handlers

import (
	"net/http"

	"helpdesk_app_go/db"
	"helpdesk_app_go/middleware"
	"helpdesk_app_go/models"
	"helpdesk_app_go/services"

	"github.com/labstack/echo/v4"
)

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
}

// UpdateMyProfile updates the current user's own profile
func UpdateMyProfile(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.FullName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Full name is required"})
	}

	var profile models.Profile
	if err := db.DB.First(&profile, "id = ?", user.ID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found"})
	}

	profile.FullName = req.FullName
	profile.Phone = req.Phone
	profile.Company = req.Company

	if err := db.DB.Save(&profile).Error; err != nil {
		c.Logger().Error("Failed to update profile:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update profile"})
	}

	// Keep the identity metadata in sync with the profile
	db.DB.Model(&models.AuthUser{}).Where("id = ?", user.ID).Update("full_name", req.FullName)

	return c.JSON(http.StatusOK, profile)
}

// UploadAvatar stores a new avatar for the current user's profile
func UploadAvatar(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var profile models.Profile
	if err := db.DB.First(&profile, "id = ?", user.ID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found"})
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Avatar file is required"})
	}

	// 2MB cap for avatars
	if file.Size > 2*1024*1024 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Avatar must be smaller than 2MB"})
	}

	key := services.GenerateAvatarKey(profile.ID, file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		c.Logger().Error("Failed to upload avatar:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload avatar"})
	}

	profile.AvatarURL = result.URL
	if err := db.DB.Save(&profile).Error; err != nil {
		c.Logger().Error("Failed to save avatar URL:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update profile"})
	}

	return c.JSON(http.StatusOK, profile)
}
