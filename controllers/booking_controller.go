package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stayhub-backend/middleware"
	"stayhub-backend/models"
	"stayhub-backend/services"
	"stayhub-backend/utils"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

// parseDate accepts "2006-01-02" or RFC3339.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// CheckAvailability handles GET /api/bookings/availability.
func (bc *BookingController) CheckAvailability(c *gin.Context) {
	roomIDRaw := c.Query("roomId")
	checkInRaw := c.Query("checkIn")
	checkOutRaw := c.Query("checkOut")

	if roomIDRaw == "" || checkInRaw == "" || checkOutRaw == "" {
		utils.JSONError(c, http.StatusBadRequest, "roomId, checkIn, and checkOut are required")
		return
	}

	roomID, err := strconv.ParseUint(roomIDRaw, 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "roomId must be a number")
		return
	}
	checkIn, err := parseDate(checkInRaw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkIn must be a valid date")
		return
	}
	checkOut, err := parseDate(checkOutRaw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkOut must be a valid date")
		return
	}

	available, err := bc.Bookings.CheckAvailability(uint(roomID), checkIn, checkOut)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"available": available})
}

type createBookingPayload struct {
	RoomID   uint   `json:"roomId" binding:"required"`
	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`
	Nights   int    `json:"nights"`

	TotalPrice   *float64 `json:"totalPrice"`
	BasePrice    *float64 `json:"basePrice"`
	TaxesAndFees *float64 `json:"taxesAndFees"`

	Guests          int    `json:"guests"`
	ContactName     string `json:"contactName" binding:"required"`
	ContactEmail    string `json:"contactEmail" binding:"required,email"`
	ContactPhone    string `json:"contactPhone"`
	SpecialRequests string `json:"specialRequests"`
}

// CreateBooking handles POST /api/bookings. Anonymous requests become
// guest bookings.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var payload createBookingPayload
	if !utils.BindJSON(c, &payload) {
		return
	}

	checkIn, err := parseDate(payload.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkIn must be a valid date")
		return
	}
	checkOut, err := parseDate(payload.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkOut must be a valid date")
		return
	}

	input := services.CreateBookingInput{
		RoomID:          payload.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Nights:          payload.Nights,
		TotalPrice:      payload.TotalPrice,
		BasePrice:       payload.BasePrice,
		TaxesAndFees:    payload.TaxesAndFees,
		Guests:          payload.Guests,
		ContactName:     payload.ContactName,
		ContactEmail:    payload.ContactEmail,
		ContactPhone:    payload.ContactPhone,
		SpecialRequests: payload.SpecialRequests,
	}
	if userID, ok := middleware.UserID(c); ok {
		input.UserID = &userID
	}

	booking, err := bc.Bookings.Create(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"booking": models.BookingToDTO(*booking)})
}

type updateBookingPayload struct {
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`

	TotalPrice   *float64 `json:"totalPrice"`
	BasePrice    *float64 `json:"basePrice"`
	TaxesAndFees *float64 `json:"taxesAndFees"`

	Guests          *int    `json:"guests"`
	SpecialRequests *string `json:"specialRequests"`
}

// UpdateBooking handles PUT /api/bookings/:id. Only fields present in
// the request are written.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload updateBookingPayload
	if !utils.BindJSON(c, &payload) {
		return
	}

	input := services.UpdateBookingInput{
		TotalPrice:      payload.TotalPrice,
		BasePrice:       payload.BasePrice,
		TaxesAndFees:    payload.TaxesAndFees,
		Guests:          payload.Guests,
		SpecialRequests: payload.SpecialRequests,
	}
	if payload.CheckIn != nil {
		t, err := parseDate(*payload.CheckIn)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "checkIn must be a valid date")
			return
		}
		input.CheckIn = &t
	}
	if payload.CheckOut != nil {
		t, err := parseDate(*payload.CheckOut)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "checkOut must be a valid date")
			return
		}
		input.CheckOut = &t
	}

	booking, err := bc.Bookings.Update(id, userID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": models.BookingToDTO(*booking)})
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	booking, err := bc.Bookings.Cancel(id, userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": models.BookingToDTO(*booking)})
}

// GetMyBookings handles GET /api/bookings/me.
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	bookings, err := bc.Bookings.ListByUser(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"bookings": models.BookingsToDTO(bookings)})
}

// GetMyStats handles GET /api/bookings/me/stats.
func (bc *BookingController) GetMyStats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := bc.Bookings.StatsByUser(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"stats": stats})
}

// GetBooking handles GET /api/bookings/:id for the owner or an admin.
func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)
	isAdmin := middleware.Role(c) == models.RoleAdmin

	booking, err := bc.Bookings.GetForUser(id, userID, isAdmin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": models.BookingToDTO(*booking)})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "id must be a number")
		return 0, false
	}
	return uint(id), true
}
