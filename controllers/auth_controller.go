package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stayhub-backend/services"
	"stayhub-backend/utils"
)

const accessTokenTTL = 24 * time.Hour

type AuthController struct {
	Users     *services.UserService
	JWTSecret string
}

func NewAuthController(users *services.UserService, jwtSecret string) *AuthController {
	return &AuthController{Users: users, JWTSecret: jwtSecret}
}

type registerPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register handles POST /api/auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if !utils.BindJSON(c, &payload) {
		return
	}

	user, err := ac.Users.Register(payload.Name, payload.Email, payload.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	token, err := utils.NewAccessToken(ac.JWTSecret, user.ID, user.Role, accessTokenTTL)
	if err != nil {
		utils.RespondError(c, utils.NewStorageError(err))
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"user": user, "token": token})
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if !utils.BindJSON(c, &payload) {
		return
	}

	user, err := ac.Users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	token, err := utils.NewAccessToken(ac.JWTSecret, user.ID, user.Role, accessTokenTTL)
	if err != nil {
		utils.RespondError(c, utils.NewStorageError(err))
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": user, "token": token})
}
