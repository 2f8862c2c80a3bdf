package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"stayhub-backend/models"
	"stayhub-backend/utils"
)

// RoomService wraps *gorm.DB with the room catalog logic.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// RoomFilter is the conjunction of optional catalog predicates.
type RoomFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Location string
	Capacity *int
	// Search matches title, description, or location.
	Search string

	Page utils.PageParams
}

// List returns a filtered, newest-first page of rooms with the count
// envelope.
func (s *RoomService) List(f RoomFilter) ([]models.Room, utils.Pagination, error) {
	q := s.DB.Model(&models.Room{})

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Location != "" {
		q = q.Where("location LIKE ?", "%"+f.Location+"%")
	}
	if f.Capacity != nil {
		q = q.Where("capacity >= ?", *f.Capacity)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ? OR location LIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, utils.Pagination{}, utils.NewStorageError(err)
	}

	var rooms []models.Room
	err := q.
		Order("created_at DESC").
		Offset(f.Page.Offset()).
		Limit(f.Page.Limit).
		Find(&rooms).Error
	if err != nil {
		return nil, utils.Pagination{}, utils.NewStorageError(err)
	}

	return rooms, utils.NewPagination(f.Page, total), nil
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Room not found")
		}
		return nil, utils.NewStorageError(err)
	}
	return &room, nil
}

// Create persists a room after checking the catalog invariants.
func (s *RoomService) Create(room *models.Room) error {
	if strings.TrimSpace(room.Title) == "" {
		return utils.NewValidationError("Title is required")
	}
	if room.Price < 0 {
		return utils.NewValidationError("Price must not be negative")
	}
	if room.Capacity < 1 {
		room.Capacity = 1
	}
	if err := s.DB.Create(room).Error; err != nil {
		return utils.NewStorageError(err)
	}
	return nil
}

// Update applies a partial update. Identity and timestamp columns are
// stripped from the incoming map; price/capacity invariants still hold.
func (s *RoomService) Update(id uint, updates map[string]interface{}) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	if v, ok := updates["price"]; ok {
		if price, ok := v.(float64); ok && price < 0 {
			return nil, utils.NewValidationError("Price must not be negative")
		}
	}
	if v, ok := updates["capacity"]; ok {
		if capF, ok := v.(float64); ok && capF < 1 {
			return nil, utils.NewValidationError("Capacity must be at least 1")
		}
	}

	// list-shaped fields arrive as JSON arrays, JSON strings, or
	// comma-separated strings
	for _, key := range []string{"amenities", "images"} {
		if v, ok := updates[key]; ok {
			encoded, err := json.Marshal(utils.ParseStringList(v))
			if err != nil {
				return nil, utils.NewStorageError(err)
			}
			updates[key] = datatypes.JSON(encoded)
		}
	}

	updates["updated_at"] = time.Now().UTC()

	if err := s.DB.Model(room).Updates(updates).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}
	if err := s.DB.First(room, id).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}
	return room, nil
}

func (s *RoomService) Delete(id uint) error {
	result := s.DB.Delete(&models.Room{}, id)
	if result.Error != nil {
		return utils.NewStorageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NewNotFoundError("Room not found")
	}
	return nil
}

// CategoryCount is one row of the category aggregation.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// Categories aggregates room counts per category.
func (s *RoomService) Categories() ([]CategoryCount, error) {
	var rows []CategoryCount
	err := s.DB.Model(&models.Room{}).
		Select("category, COUNT(*) AS count").
		Where("category <> ''").
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, utils.NewStorageError(err)
	}
	return rows, nil
}

// AttachImages appends uploaded image URLs to the room's image list
// and fills the primary image when empty.
func (s *RoomService) AttachImages(id uint, urls []string) (*models.Room, error) {
	if len(urls) == 0 {
		return nil, utils.NewValidationError("No images supplied")
	}

	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	images := utils.ParseStringList([]byte(room.Images))
	images = append(images, urls...)
	encoded, err := json.Marshal(images)
	if err != nil {
		return nil, utils.NewStorageError(err)
	}

	updates := map[string]interface{}{
		"images":     datatypes.JSON(encoded),
		"updated_at": time.Now().UTC(),
	}
	if room.ImageURL == "" {
		updates["image_url"] = urls[0]
	}

	if err := s.DB.Model(room).Updates(updates).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}
	if err := s.DB.First(room, id).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}
	return room, nil
}
