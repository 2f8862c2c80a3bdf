package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Booking rows are never hard-deleted; status "cancelled" is the tombstone.
type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;index" json:"reference_code"`

	RoomID uint  `gorm:"column:room_id;index" json:"room_id"`
	UserID *uint `gorm:"column:user_id;index" json:"user_id,omitempty"`
	// GuestID carries the synthesized identifier for bookings made
	// without an account. Empty for bookings tied to a user.
	GuestID string `gorm:"column:guest_id;size:64" json:"guest_id,omitempty"`

	CheckIn  time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out" json:"check_out"`
	Nights   int       `gorm:"column:nights" json:"nights"`

	TotalPrice   float64 `gorm:"column:total_price" json:"total_price"`
	BasePrice    float64 `gorm:"column:base_price" json:"base_price"`
	TaxesAndFees float64 `gorm:"column:taxes_and_fees" json:"taxes_and_fees"`

	Guests          int    `gorm:"column:guests;default:1" json:"guests"`
	ContactName     string `gorm:"column:contact_name;size:255" json:"contact_name"`
	ContactEmail    string `gorm:"column:contact_email;size:255" json:"contact_email"`
	ContactPhone    string `gorm:"column:contact_phone;size:50" json:"contact_phone"`
	SpecialRequests string `gorm:"column:special_requests;type:text" json:"special_requests"`

	Status        string `gorm:"column:status;size:32;index" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:32" json:"payment_status"`

	// Room display fields are copied here at creation time so the
	// booking survives later room edits or deletion.
	RoomTitle string `gorm:"column:room_title;size:255" json:"room_title"`
	RoomImage string `gorm:"column:room_image;size:512" json:"room_image"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// OwnedBy reports whether the booking belongs to the given user.
func (b *Booking) OwnedBy(userID uint) bool {
	return b.UserID != nil && *b.UserID == userID
}

// allowedStatusTransitions encodes the one-directional lifecycle:
// cancelled and completed are terminal.
var allowedStatusTransitions = map[string][]string{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

// IsValidBookingStatus reports whether s names a known booking status.
func IsValidBookingStatus(s string) bool {
	_, ok := allowedStatusTransitions[s]
	return ok
}

// CanTransitionStatus reports whether a booking may move from one
// status to another.
func CanTransitionStatus(from, to string) bool {
	for _, s := range allowedStatusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
