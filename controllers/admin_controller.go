package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stayhub-backend/models"
	"stayhub-backend/services"
	"stayhub-backend/utils"
)

type AdminController struct {
	Bookings *services.BookingService
	Users    *services.UserService
}

func NewAdminController(bookings *services.BookingService, users *services.UserService) *AdminController {
	return &AdminController{Bookings: bookings, Users: users}
}

// ListBookings handles GET /api/admin/bookings with the generic
// filter set: status, date bounds, userId, roomId, free-text search.
func (ac *AdminController) ListBookings(c *gin.Context) {
	filter := services.AdminBookingFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   utils.NormalizePageParams(c.Query("page"), c.Query("limit")),
	}

	if raw := c.Query("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "from must be a valid date")
			return
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "to must be a valid date")
			return
		}
		filter.To = &t
	}
	if raw := c.Query("userId"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			filter.UserID = &id
		}
	}
	if raw := c.Query("roomId"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			filter.RoomID = &id
		}
	}

	bookings, pagination, err := ac.Bookings.AdminList(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bookings":   models.BookingsToDTO(bookings),
		"pagination": pagination,
	})
}

type setStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// SetBookingStatus handles PATCH /api/admin/bookings/:id/status.
func (ac *AdminController) SetBookingStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload setStatusPayload
	if !utils.BindJSON(c, &payload) {
		return
	}

	booking, err := ac.Bookings.SetStatus(id, payload.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": models.BookingToDTO(*booking)})
}

// ListUsers handles GET /api/admin/users.
func (ac *AdminController) ListUsers(c *gin.Context) {
	page := utils.NormalizePageParams(c.Query("page"), c.Query("limit"))

	users, pagination, err := ac.Users.List(page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": pagination,
	})
}

// GetUser handles GET /api/admin/users/:id.
func (ac *AdminController) GetUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	user, err := ac.Users.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": user})
}

type adminUpdateUserPayload struct {
	Name           *string `json:"name"`
	Email          *string `json:"email" binding:"omitempty,email"`
	ProfilePicture *string `json:"profilePicture"`
	Role           *string `json:"role"`
}

// UpdateUser handles PUT /api/admin/users/:id.
func (ac *AdminController) UpdateUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload adminUpdateUserPayload
	if !utils.BindJSON(c, &payload) {
		return
	}

	user, err := ac.Users.AdminUpdate(id, services.ProfileUpdate{
		Name:           payload.Name,
		Email:          payload.Email,
		ProfilePicture: payload.ProfilePicture,
	}, payload.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": user})
}

// DeleteUser handles DELETE /api/admin/users/:id. Deleting an admin
// account returns 403.
func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ac.Users.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "User deleted"})
}
