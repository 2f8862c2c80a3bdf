package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stayhub-backend/middleware"
	"stayhub-backend/services"
	"stayhub-backend/utils"
)

type UserController struct {
	Users  *services.UserService
	Images *services.ImageService
}

func NewUserController(users *services.UserService, images *services.ImageService) *UserController {
	return &UserController{Users: users, Images: images}
}

// GetProfile handles GET /api/users/me.
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := uc.Users.GetByID(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": user})
}

type updateProfilePayload struct {
	Name           *string `json:"name"`
	Email          *string `json:"email" binding:"omitempty,email"`
	ProfilePicture *string `json:"profilePicture"`
}

// UpdateProfile handles PUT /api/users/me with partial-update
// semantics.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload updateProfilePayload
	if !utils.BindJSON(c, &payload) {
		return
	}

	// data-URL profile pictures are persisted to disk; plain URLs are
	// stored as-is
	if payload.ProfilePicture != nil && strings.HasPrefix(*payload.ProfilePicture, "data:") {
		url, err := uc.Images.SaveBase64(*payload.ProfilePicture, "avatars")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		payload.ProfilePicture = &url
	}

	user, err := uc.Users.UpdateProfile(userID, services.ProfileUpdate{
		Name:           payload.Name,
		Email:          payload.Email,
		ProfilePicture: payload.ProfilePicture,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": user})
}

type changePasswordPayload struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ChangePassword handles POST /api/users/me/password.
func (uc *UserController) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload changePasswordPayload
	if !utils.BindJSON(c, &payload) {
		return
	}

	if err := uc.Users.ChangePassword(userID, payload.CurrentPassword, payload.NewPassword); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Password updated"})
}
