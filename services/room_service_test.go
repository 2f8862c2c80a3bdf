package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"stayhub-backend/models"
	"stayhub-backend/utils"
)

func seedCatalog(t *testing.T, svc *RoomService) {
	t.Helper()
	rooms := []models.Room{
		{Title: "Harbor Suite", Description: "Corner suite with a harbor view", Price: 220, Capacity: 3, Category: "suite", Location: "Lisbon", Available: true},
		{Title: "Garden Double", Description: "Quiet double by the garden", Price: 120, Capacity: 2, Category: "standard", Location: "Lisbon", Available: true},
		{Title: "City Loft", Description: "Open loft downtown", Price: 160, Capacity: 4, Category: "suite", Location: "Porto", Available: true},
	}
	for i := range rooms {
		require.NoError(t, svc.Create(&rooms[i]))
	}
}

func TestListRooms(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db)
	seedCatalog(t, svc)

	page := utils.PageParams{Page: 1, Limit: 10}

	t.Run("no filters returns everything", func(t *testing.T) {
		rooms, p, err := svc.List(RoomFilter{Page: page})
		require.NoError(t, err)
		assert.Len(t, rooms, 3)
		assert.Equal(t, int64(3), p.TotalCount)
		assert.False(t, p.HasNextPage)
	})

	t.Run("filter by category", func(t *testing.T) {
		rooms, _, err := svc.List(RoomFilter{Category: "suite", Page: page})
		require.NoError(t, err)
		assert.Len(t, rooms, 2)
	})

	t.Run("filter by price band", func(t *testing.T) {
		min := 130.0
		max := 200.0
		rooms, _, err := svc.List(RoomFilter{MinPrice: &min, MaxPrice: &max, Page: page})
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "City Loft", rooms[0].Title)
	})

	t.Run("filter by location substring", func(t *testing.T) {
		rooms, _, err := svc.List(RoomFilter{Location: "Lisb", Page: page})
		require.NoError(t, err)
		assert.Len(t, rooms, 2)
	})

	t.Run("filter by capacity floor", func(t *testing.T) {
		capacity := 3
		rooms, _, err := svc.List(RoomFilter{Capacity: &capacity, Page: page})
		require.NoError(t, err)
		assert.Len(t, rooms, 2)
	})

	t.Run("search spans title and description", func(t *testing.T) {
		rooms, _, err := svc.List(RoomFilter{Search: "harbor", Page: page})
		require.NoError(t, err)
		assert.Len(t, rooms, 1)

		rooms, _, err = svc.List(RoomFilter{Search: "downtown", Page: page})
		require.NoError(t, err)
		assert.Len(t, rooms, 1)
	})

	t.Run("pagination envelope", func(t *testing.T) {
		small := utils.PageParams{Page: 1, Limit: 2}
		rooms, p, err := svc.List(RoomFilter{Page: small})
		require.NoError(t, err)
		assert.Len(t, rooms, 2)
		assert.Equal(t, 2, p.TotalPages)
		assert.True(t, p.HasNextPage)

		small.Page = 2
		rooms, p, err = svc.List(RoomFilter{Page: small})
		require.NoError(t, err)
		assert.Len(t, rooms, 1)
		assert.False(t, p.HasNextPage)
	})
}

func TestCreateRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db)

	t.Run("title required", func(t *testing.T) {
		err := svc.Create(&models.Room{Price: 100})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		err := svc.Create(&models.Room{Title: "Bad", Price: -1})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("capacity floors at one", func(t *testing.T) {
		room := models.Room{Title: "Solo", Price: 80}
		require.NoError(t, svc.Create(&room))
		assert.Equal(t, 1, room.Capacity)
	})
}

func TestUpdateRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db)
	room := createTestRoom(t, db, 100)

	t.Run("identity columns stripped", func(t *testing.T) {
		updated, err := svc.Update(room.ID, map[string]interface{}{
			"id":    999,
			"title": "Renamed",
		})
		require.NoError(t, err)
		assert.Equal(t, room.ID, updated.ID)
		assert.Equal(t, "Renamed", updated.Title)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := svc.Update(room.ID, map[string]interface{}{"price": -5.0})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("list fields normalized to arrays", func(t *testing.T) {
		updated, err := svc.Update(room.ID, map[string]interface{}{
			"amenities": "wifi, pool, parking",
		})
		require.NoError(t, err)
		assert.JSONEq(t, `["wifi","pool","parking"]`, string(updated.Amenities))
	})

	t.Run("unknown room not found", func(t *testing.T) {
		_, err := svc.Update(9999, map[string]interface{}{"title": "Ghost"})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Status)
	})
}

func TestDeleteRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db)
	room := createTestRoom(t, db, 100)

	require.NoError(t, svc.Delete(room.ID))

	_, err := svc.GetByID(room.ID)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)

	err = svc.Delete(room.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestRoomCategories(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db)
	seedCatalog(t, svc)
	require.NoError(t, svc.Create(&models.Room{Title: "Uncategorized", Price: 50}))

	rows, err := svc.Categories()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, CategoryCount{Category: "standard", Count: 1}, rows[0])
	assert.Equal(t, CategoryCount{Category: "suite", Count: 2}, rows[1])
}

func TestAttachImages(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db)

	t.Run("first upload becomes the primary image", func(t *testing.T) {
		room := models.Room{Title: "Bare", Price: 100}
		require.NoError(t, svc.Create(&room))
		updated, err := svc.AttachImages(room.ID, []string{"/uploads/a.jpg", "/uploads/b.jpg"})
		require.NoError(t, err)
		assert.Equal(t, "/uploads/a.jpg", updated.ImageURL)
		assert.JSONEq(t, `["/uploads/a.jpg","/uploads/b.jpg"]`, string(updated.Images))
	})

	t.Run("appends to an existing list without replacing the primary", func(t *testing.T) {
		room := models.Room{
			Title:    "Pictured",
			Price:    100,
			ImageURL: "/uploads/cover.jpg",
			Images:   datatypes.JSON(`["/uploads/cover.jpg"]`),
		}
		require.NoError(t, svc.Create(&room))

		updated, err := svc.AttachImages(room.ID, []string{"/uploads/extra.jpg"})
		require.NoError(t, err)
		assert.Equal(t, "/uploads/cover.jpg", updated.ImageURL)
		assert.JSONEq(t, `["/uploads/cover.jpg","/uploads/extra.jpg"]`, string(updated.Images))
	})

	t.Run("empty upload rejected", func(t *testing.T) {
		room := createTestRoom(t, db, 100)
		_, err := svc.AttachImages(room.ID, nil)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})
}
