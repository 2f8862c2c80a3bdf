package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stayhub-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Room{}, &models.Booking{}))
	return db
}

func createTestRoom(t *testing.T, db *gorm.DB, price float64) *models.Room {
	t.Helper()
	room := &models.Room{
		Title:     "Test Room",
		Price:     price,
		Capacity:  2,
		Category:  "standard",
		Location:  "Main Building",
		Available: true,
		ImageURL:  "/uploads/rooms/test.jpg",
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}
