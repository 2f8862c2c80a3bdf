package models

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// API-facing shapes are camelCase with defaults applied, independent of
// the snake_case nullable storage columns. The mapping is pure (no I/O)
// and applying defaults twice yields the same object.

const (
	DefaultRoomRating    = 4.5
	PlaceholderRoomImage = "/assets/images/room-placeholder.jpg"

	dateLayout = "2006-01-02"
)

type RoomDTO struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Capacity    int      `json:"capacity"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Amenities   []string `json:"amenities"`
	ImageURL    string   `json:"imageUrl"`
	Images      []string `json:"images"`
	Available   bool     `json:"available"`
	Rating      float64  `json:"rating"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

type BookingDTO struct {
	ID            uint    `json:"id"`
	Reference     string  `json:"reference"`
	RoomID        uint    `json:"roomId"`
	UserID        string  `json:"userId"`
	RoomTitle     string  `json:"roomTitle"`
	RoomImage     string  `json:"roomImage"`
	CheckIn       string  `json:"checkIn"`
	CheckOut      string  `json:"checkOut"`
	Nights        int     `json:"nights"`
	TotalPrice    float64 `json:"totalPrice"`
	BasePrice     float64 `json:"basePrice"`
	TaxesAndFees  float64 `json:"taxesAndFees"`
	PricePerNight float64 `json:"pricePerNight"`
	Guests        int     `json:"guests"`
	ContactName   string  `json:"contactName"`
	ContactEmail  string  `json:"contactEmail"`
	ContactPhone  string  `json:"contactPhone"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	SpecialReqs   string  `json:"specialRequests"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

// RoomToDTO maps a stored room onto its API shape with defaults applied.
func RoomToDTO(r Room) RoomDTO {
	dto := RoomDTO{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Category:    r.Category,
		Location:    r.Location,
		Amenities:   decodeStringList([]byte(r.Amenities)),
		ImageURL:    r.ImageURL,
		Images:      decodeStringList([]byte(r.Images)),
		Available:   r.Available,
	}
	if r.Rating != nil {
		dto.Rating = *r.Rating
	}
	if !r.CreatedAt.IsZero() {
		dto.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	ApplyRoomDefaults(&dto)
	return dto
}

// ApplyRoomDefaults fills missing fields in place. Idempotent.
func ApplyRoomDefaults(d *RoomDTO) {
	if d.Rating <= 0 {
		d.Rating = DefaultRoomRating
	}
	if d.Price < 0 {
		d.Price = 0
	}
	if d.Capacity < 1 {
		d.Capacity = 1
	}
	if d.Amenities == nil {
		d.Amenities = []string{}
	}
	if d.Images == nil {
		d.Images = []string{}
	}
	if d.ImageURL == "" {
		if len(d.Images) > 0 {
			d.ImageURL = d.Images[0]
		} else {
			d.ImageURL = PlaceholderRoomImage
		}
	}
}

// RoomsToDTO maps a page of rooms.
func RoomsToDTO(rooms []Room) []RoomDTO {
	out := make([]RoomDTO, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomToDTO(r))
	}
	return out
}

// BookingToDTO maps a stored booking onto its API shape with defaults
// applied.
func BookingToDTO(b Booking) BookingDTO {
	dto := BookingDTO{
		ID:            b.ID,
		Reference:     b.ReferenceCode,
		RoomID:        b.RoomID,
		RoomTitle:     b.RoomTitle,
		RoomImage:     b.RoomImage,
		Nights:        b.Nights,
		TotalPrice:    b.TotalPrice,
		BasePrice:     b.BasePrice,
		TaxesAndFees:  b.TaxesAndFees,
		Guests:        b.Guests,
		ContactName:   b.ContactName,
		ContactEmail:  b.ContactEmail,
		ContactPhone:  b.ContactPhone,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		SpecialReqs:   b.SpecialRequests,
	}
	if b.UserID != nil {
		dto.UserID = strconv.FormatUint(uint64(*b.UserID), 10)
	} else {
		dto.UserID = b.GuestID
	}
	if !b.CheckIn.IsZero() {
		dto.CheckIn = b.CheckIn.Format(dateLayout)
	}
	if !b.CheckOut.IsZero() {
		dto.CheckOut = b.CheckOut.Format(dateLayout)
	}
	if !b.CreatedAt.IsZero() {
		dto.CreatedAt = b.CreatedAt.UTC().Format(time.RFC3339)
	}
	ApplyBookingDefaults(&dto)
	return dto
}

// ApplyBookingDefaults fills derived and missing fields in place.
// Nights are recomputed from the DTO's own date strings when absent,
// as ceil(|checkOut - checkIn| / 1 day). Idempotent.
func ApplyBookingDefaults(d *BookingDTO) {
	if d.Nights <= 0 {
		d.Nights = NightsBetweenStrings(d.CheckIn, d.CheckOut)
	}
	if d.PricePerNight <= 0 && d.Nights > 0 && d.TotalPrice > 0 {
		d.PricePerNight = d.TotalPrice / float64(d.Nights)
	}
	if d.RoomImage == "" {
		d.RoomImage = PlaceholderRoomImage
	}
	if d.Status == "" {
		d.Status = BookingStatusPending
	}
	if d.PaymentStatus == "" {
		d.PaymentStatus = PaymentStatusPending
	}
	if d.Guests < 1 {
		d.Guests = 1
	}
}

// BookingsToDTO maps a page of bookings.
func BookingsToDTO(bookings []Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToDTO(b))
	}
	return out
}

// NightsBetween returns ceil(|checkOut - checkIn| / 24h), minimum 0.
func NightsBetween(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	hours := checkOut.Sub(checkIn).Hours()
	if hours < 0 {
		hours = -hours
	}
	return int(math.Ceil(hours / 24))
}

// NightsBetweenStrings is NightsBetween over "2006-01-02" strings;
// unparseable input yields 0.
func NightsBetweenStrings(checkIn, checkOut string) int {
	ci, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return 0
	}
	co, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return 0
	}
	return NightsBetween(ci, co)
}

func decodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	return items
}
