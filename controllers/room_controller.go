package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"stayhub-backend/models"
	"stayhub-backend/services"
	"stayhub-backend/utils"
)

type RoomController struct {
	Rooms  *services.RoomService
	Images *services.ImageService
}

func NewRoomController(rooms *services.RoomService, images *services.ImageService) *RoomController {
	return &RoomController{Rooms: rooms, Images: images}
}

// GetRooms handles GET /api/rooms with filtering and pagination.
func (rc *RoomController) GetRooms(c *gin.Context) {
	filter := services.RoomFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
		Page:     utils.NormalizePageParams(c.Query("page"), c.Query("limit")),
	}

	if raw := c.Query("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	if raw := c.Query("capacity"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Capacity = &v
		}
	}

	rooms, pagination, err := rc.Rooms.List(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"rooms":      models.RoomsToDTO(rooms),
		"pagination": pagination,
	})
}

// GetRoomCategories handles GET /api/rooms/categories.
func (rc *RoomController) GetRoomCategories(c *gin.Context) {
	categories, err := rc.Rooms.Categories()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"categories": categories})
}

// GetRoom handles GET /api/rooms/:id.
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	room, err := rc.Rooms.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room": models.RoomToDTO(*room),
		// reviews are served by a separate system; placeholder keeps
		// the response shape stable for clients
		"reviews": []gin.H{},
	})
}

type roomPayload struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	Price       float64     `json:"price" binding:"gte=0"`
	Capacity    int         `json:"capacity"`
	Category    string      `json:"category"`
	Location    string      `json:"location"`
	Amenities   interface{} `json:"amenities"`
	ImageURL    string      `json:"imageUrl"`
	Images      interface{} `json:"images"`
	Available   *bool       `json:"available"`
}

// CreateRoom handles POST /api/rooms (admin).
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var payload roomPayload
	if !utils.BindJSON(c, &payload) {
		return
	}

	amenities, _ := json.Marshal(utils.ParseStringList(payload.Amenities))
	images, _ := json.Marshal(utils.ParseStringList(payload.Images))

	room := models.Room{
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
		Capacity:    payload.Capacity,
		Category:    payload.Category,
		Location:    payload.Location,
		Amenities:   datatypes.JSON(amenities),
		ImageURL:    payload.ImageURL,
		Images:      datatypes.JSON(images),
		Available:   true,
	}
	if payload.Available != nil {
		room.Available = *payload.Available
	}

	if err := rc.Rooms.Create(&room); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"room": models.RoomToDTO(room)})
}

// UpdateRoom handles PUT /api/rooms/:id (admin) with partial-update
// semantics.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	room, err := rc.Rooms.Update(id, updates)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"room": models.RoomToDTO(*room)})
}

// DeleteRoom handles DELETE /api/rooms/:id (admin).
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := rc.Rooms.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room deleted"})
}

// UploadRoomImage handles POST /api/rooms/:id/image with a single
// multipart "image" field.
func (rc *RoomController) UploadRoomImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "image file is required")
		return
	}

	url, err := rc.Images.SaveUpload(c, file, "rooms")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	room, err := rc.Rooms.AttachImages(id, []string{url})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"url":  url,
		"room": models.RoomToDTO(*room),
	})
}

// UploadRoomImages handles POST /api/rooms/:id/images with a multipart
// "images" field holding one or more files.
func (rc *RoomController) UploadRoomImages(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "multipart form is required")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "at least one image file is required")
		return
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := rc.Images.SaveUpload(c, file, "rooms")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		urls = append(urls, url)
	}

	room, err := rc.Rooms.AttachImages(id, urls)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"urls": urls,
		"room": models.RoomToDTO(*room),
	})
}
