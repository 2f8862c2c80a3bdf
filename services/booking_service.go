package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"stayhub-backend/logger"
	"stayhub-backend/models"
	"stayhub-backend/utils"
)

// FallbackTotalPrice is charged when neither a total nor a room price
// is available at booking time.
const FallbackTotalPrice = 100.0

// BookingService wraps *gorm.DB with the booking lifecycle logic.
//
// Availability uses half-open [checkIn, checkOut) intervals: two stays
// conflict iff a.checkIn < b.checkOut AND b.checkIn < a.checkOut, so
// back-to-back same-day turnover is allowed. Creation deliberately does
// not re-run the availability check; callers wanting overlap prevention
// invoke CheckAvailability first. The check is read-then-write with no
// locking, so strict exclusivity needs a storage-level constraint.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// CheckAvailability reports whether the room has no non-cancelled
// booking overlapping [checkIn, checkOut).
func (s *BookingService) CheckAvailability(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	if !checkOut.After(checkIn) {
		return false, utils.NewValidationError("checkOut must be after checkIn")
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, utils.NewNotFoundError("Room not found")
		}
		return false, utils.NewStorageError(err)
	}

	count, err := s.overlapCount(roomID, checkIn, checkOut, 0)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// overlapCount counts non-cancelled bookings on the room overlapping
// the half-open interval, excluding excludeID when non-zero.
func (s *BookingService) overlapCount(roomID uint, checkIn, checkOut time.Time, excludeID uint) (int64, error) {
	q := s.DB.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ?", roomID, models.BookingStatusCancelled).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, utils.NewStorageError(err)
	}
	return count, nil
}

type CreateBookingInput struct {
	RoomID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int

	TotalPrice   *float64
	BasePrice    *float64
	TaxesAndFees *float64

	Guests          int
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	SpecialRequests string

	// Nil UserID marks a guest booking; a guest identifier is
	// synthesized.
	UserID *uint
}

// Create persists a denormalized booking record with status confirmed
// and payment pending. Missing price fields are derived: total from
// nights x room price (or the flat fallback), tax as 10% of the total
// and base as 90% when unspecified.
func (s *BookingService) Create(in CreateBookingInput) (*models.Booking, error) {
	if !in.CheckOut.After(in.CheckIn) {
		return nil, utils.NewValidationError("checkOut must be after checkIn")
	}

	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Room not found")
		}
		return nil, utils.NewStorageError(err)
	}

	nights := in.Nights
	if nights <= 0 {
		nights = models.NightsBetween(in.CheckIn, in.CheckOut)
	}

	var total float64
	switch {
	case in.TotalPrice != nil && *in.TotalPrice > 0:
		total = *in.TotalPrice
	case room.Price > 0:
		total = float64(nights) * room.Price
	default:
		total = FallbackTotalPrice
	}

	tax := total * 0.10
	if in.TaxesAndFees != nil {
		tax = *in.TaxesAndFees
	}
	base := total * 0.90
	if in.BasePrice != nil {
		base = *in.BasePrice
	}

	guests := in.Guests
	if guests < 1 {
		guests = 1
	}

	booking := models.Booking{
		ReferenceCode:   utils.NewBookingReference(),
		RoomID:          room.ID,
		UserID:          in.UserID,
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		Nights:          nights,
		TotalPrice:      total,
		BasePrice:       base,
		TaxesAndFees:    tax,
		Guests:          guests,
		ContactName:     in.ContactName,
		ContactEmail:    in.ContactEmail,
		ContactPhone:    in.ContactPhone,
		SpecialRequests: in.SpecialRequests,
		Status:          models.BookingStatusConfirmed,
		PaymentStatus:   models.PaymentStatusPending,
		RoomTitle:       room.Title,
		RoomImage:       room.ImageURL,
	}
	if in.UserID == nil {
		booking.GuestID = utils.NewGuestID()
	}

	if err := s.DB.Create(&booking).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}

	logger.Get().Info().
		Uint("booking_id", booking.ID).
		Str("reference", booking.ReferenceCode).
		Uint("room_id", booking.RoomID).
		Msg("booking created")

	return &booking, nil
}

type UpdateBookingInput struct {
	CheckIn  *time.Time
	CheckOut *time.Time

	TotalPrice   *float64
	BasePrice    *float64
	TaxesAndFees *float64

	Guests          *int
	SpecialRequests *string
}

// Update applies a partial update to a booking owned by userID. Guard
// order: ownership, not already cancelled, then an overlap re-check
// against the other bookings on the room when both dates are supplied.
func (s *BookingService) Update(id, userID uint, in UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.ownedBooking(id, userID)
	if err != nil {
		return nil, err
	}

	if booking.Status == models.BookingStatusCancelled {
		return nil, utils.NewConflictError("Cannot update a cancelled booking")
	}

	updates := map[string]interface{}{}

	// a lone date is merged with the stored counterpart so one-sided
	// updates still move the stay
	if in.CheckIn != nil || in.CheckOut != nil {
		checkIn := booking.CheckIn
		if in.CheckIn != nil {
			checkIn = *in.CheckIn
		}
		checkOut := booking.CheckOut
		if in.CheckOut != nil {
			checkOut = *in.CheckOut
		}

		if !checkOut.After(checkIn) {
			return nil, utils.NewValidationError("checkOut must be after checkIn")
		}
		count, err := s.overlapCount(booking.RoomID, checkIn, checkOut, booking.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &utils.AppError{
				Status:  400,
				Message: "Room is not available for the selected dates",
				Extra:   map[string]interface{}{"available": false},
			}
		}
		updates["check_in"] = checkIn
		updates["check_out"] = checkOut
		updates["nights"] = models.NightsBetween(checkIn, checkOut)
	}

	if in.TotalPrice != nil {
		updates["total_price"] = *in.TotalPrice
	}
	if in.BasePrice != nil {
		updates["base_price"] = *in.BasePrice
	}
	if in.TaxesAndFees != nil {
		updates["taxes_and_fees"] = *in.TaxesAndFees
	}
	if in.Guests != nil {
		updates["guests"] = *in.Guests
	}
	if in.SpecialRequests != nil {
		updates["special_requests"] = *in.SpecialRequests
	}

	// updated_at refreshes even when nothing else changed
	updates["updated_at"] = time.Now().UTC()

	if err := s.DB.Model(booking).Updates(updates).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}

	if err := s.DB.First(booking, booking.ID).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}
	return booking, nil
}

// Cancel marks a booking owned by userID as cancelled. Re-cancelling
// is rejected, not treated as a no-op.
func (s *BookingService) Cancel(id, userID uint) (*models.Booking, error) {
	booking, err := s.ownedBooking(id, userID)
	if err != nil {
		return nil, err
	}

	if booking.Status == models.BookingStatusCancelled {
		return nil, utils.NewConflictError("Booking is already cancelled")
	}

	updates := map[string]interface{}{
		"status":     models.BookingStatusCancelled,
		"updated_at": time.Now().UTC(),
	}
	if err := s.DB.Model(booking).Updates(updates).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}

	logger.Get().Info().Uint("booking_id", booking.ID).Msg("booking cancelled")

	booking.Status = models.BookingStatusCancelled
	return booking, nil
}

// GetForUser returns a booking visible to the requester: its owner, or
// any admin.
func (s *BookingService) GetForUser(id, userID uint, isAdmin bool) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Booking not found")
		}
		return nil, utils.NewStorageError(err)
	}
	if !isAdmin && !booking.OwnedBy(userID) {
		// access-scoped away, surfaced as absent
		return nil, utils.NewNotFoundError("Booking not found")
	}
	return &booking, nil
}

// ListByUser returns the requester's bookings, newest first.
func (s *BookingService) ListByUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, utils.NewStorageError(err)
	}
	return bookings, nil
}

// BookingStats aggregates a user's booking history.
type BookingStats struct {
	Total       int64   `json:"total"`
	Pending     int64   `json:"pending"`
	Confirmed   int64   `json:"confirmed"`
	Cancelled   int64   `json:"cancelled"`
	Completed   int64   `json:"completed"`
	TotalNights int64   `json:"totalNights"`
	TotalSpent  float64 `json:"totalSpent"`
}

// StatsByUser computes per-status counts plus nights and spend totals
// over the user's non-cancelled bookings.
func (s *BookingService) StatsByUser(userID uint) (BookingStats, error) {
	var stats BookingStats

	type statusCount struct {
		Status string
		N      int64
	}
	var rows []statusCount
	err := s.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) AS n").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return stats, utils.NewStorageError(err)
	}
	for _, row := range rows {
		stats.Total += row.N
		switch row.Status {
		case models.BookingStatusPending:
			stats.Pending = row.N
		case models.BookingStatusConfirmed:
			stats.Confirmed = row.N
		case models.BookingStatusCancelled:
			stats.Cancelled = row.N
		case models.BookingStatusCompleted:
			stats.Completed = row.N
		}
	}

	type totals struct {
		Nights int64
		Spent  float64
	}
	var t totals
	err = s.DB.Model(&models.Booking{}).
		Select("COALESCE(SUM(nights),0) AS nights, COALESCE(SUM(total_price),0) AS spent").
		Where("user_id = ? AND status <> ?", userID, models.BookingStatusCancelled).
		Scan(&t).Error
	if err != nil {
		return stats, utils.NewStorageError(err)
	}
	stats.TotalNights = t.Nights
	stats.TotalSpent = t.Spent

	return stats, nil
}

// AdminBookingFilter is the conjunction of optional predicates for the
// admin-wide listing.
type AdminBookingFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	UserID *uint
	RoomID *uint
	// Search matches contact name, contact email, or reference code.
	Search string

	Page utils.PageParams
}

// AdminList returns a filtered, newest-first page of bookings with the
// count envelope.
func (s *BookingService) AdminList(f AdminBookingFilter) ([]models.Booking, utils.Pagination, error) {
	q := s.DB.Model(&models.Booking{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("check_in >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("check_out <= ?", *f.To)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("contact_name LIKE ? OR contact_email LIKE ? OR reference_code LIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, utils.Pagination{}, utils.NewStorageError(err)
	}

	var bookings []models.Booking
	err := q.
		Order("created_at DESC").
		Offset(f.Page.Offset()).
		Limit(f.Page.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, utils.Pagination{}, utils.NewStorageError(err)
	}

	return bookings, utils.NewPagination(f.Page, total), nil
}

// SetStatus is the admin status override, guarded by the
// one-directional transition rules.
func (s *BookingService) SetStatus(id uint, status string) (*models.Booking, error) {
	if !models.IsValidBookingStatus(status) {
		return nil, utils.NewValidationError("Invalid booking status")
	}

	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Booking not found")
		}
		return nil, utils.NewStorageError(err)
	}

	if booking.Status == models.BookingStatusCancelled {
		return nil, utils.NewConflictError("Booking is already cancelled")
	}
	if !models.CanTransitionStatus(booking.Status, status) {
		return nil, utils.NewConflictError("Invalid status transition")
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if err := s.DB.Model(&booking).Updates(updates).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}

	booking.Status = status
	return &booking, nil
}

func (s *BookingService) ownedBooking(id, userID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Booking not found")
		}
		return nil, utils.NewStorageError(err)
	}
	return &booking, nil
}
