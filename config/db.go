package config

import (
	"encoding/json"
	"strings"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stayhub-backend/logger"
	"stayhub-backend/models"
	"stayhub-backend/utils"
)

var DB *gorm.DB

func resolveMySQLDSN() string {
	if raw := strings.TrimSpace(utils.EnvOrDefault("MYSQL_URL", "")); raw != "" {
		return raw
	}

	cfg := mysql.NewConfig()
	cfg.User = utils.EnvOrDefault("DB_USER", "root")
	cfg.Passwd = utils.EnvOrDefault("DB_PASS", "")
	cfg.Net = "tcp"
	cfg.Addr = utils.EnvOrDefault("DB_HOST", "127.0.0.1") + ":" + utils.EnvOrDefault("DB_PORT", "3306")
	cfg.DBName = utils.EnvOrDefault("DB_NAME", "stayhub_db")
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// ConnectDatabase opens the MySQL connection, runs AutoMigrate, and
// seeds starter data. Sets the package-level DB on success.
func ConnectDatabase() error {
	dsn := resolveMySQLDSN()

	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
	); err != nil {
		return err
	}

	DB = db
	SeedDatabase(db)
	return nil
}

// SeedDatabase creates the default admin account and a starter room
// catalog when the tables are empty.
func SeedDatabase(db *gorm.DB) {
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		password := utils.EnvOrDefault("ADMIN_PASSWORD", "admin12345")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			logger.Get().Warn().Err(err).Msg("failed to hash default admin password")
		} else {
			admin := models.User{
				Name:     "Admin",
				Email:    utils.EnvOrDefault("ADMIN_EMAIL", "admin@stayhub.local"),
				Password: string(hash),
				Role:     models.RoleAdmin,
			}
			if err := db.Create(&admin).Error; err != nil {
				logger.Get().Warn().Err(err).Msg("failed to seed default admin")
			} else {
				logger.Get().Info().Str("email", admin.Email).Msg("default admin seeded")
			}
		}
	}

	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{Title: "Standard Queen", Description: "Cozy queen room", Price: 80, Capacity: 2, Category: "standard", Location: "Main Building", Amenities: jsonList("wifi", "tv")},
			{Title: "Superior Twin", Description: "Twin beds with garden view", Price: 110, Capacity: 3, Category: "superior", Location: "Garden Wing", Amenities: jsonList("wifi", "tv", "minibar")},
			{Title: "Deluxe King", Description: "Spacious king room", Price: 160, Capacity: 4, Category: "deluxe", Location: "Tower", Amenities: jsonList("wifi", "tv", "minibar", "bathtub")},
		}
		for i := range rooms {
			rooms[i].Available = true
		}
		if err := db.Create(&rooms).Error; err != nil {
			logger.Get().Warn().Err(err).Msg("failed to seed starter rooms")
		} else {
			logger.Get().Info().Int("count", len(rooms)).Msg("starter rooms seeded")
		}
	}
}

func jsonList(items ...string) datatypes.JSON {
	encoded, _ := json.Marshal(items)
	return datatypes.JSON(encoded)
}
