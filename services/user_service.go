package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stayhub-backend/logger"
	"stayhub-backend/models"
	"stayhub-backend/utils"
)

// UserService wraps *gorm.DB with profile and account logic.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates a user account. Email uniqueness is enforced with an
// existence check at write time.
func (s *UserService) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, utils.NewValidationError("Name, email, and password are required")
	}
	if len(password) < 8 {
		return nil, utils.NewValidationError("Password must be at least 8 characters")
	}

	taken, err := s.emailTaken(email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, utils.NewConflictError("Email is already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewStorageError(err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}

	logger.Get().Info().Uint("user_id", user.ID).Msg("user registered")
	return &user, nil
}

// Authenticate verifies credentials and returns the account.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewUnauthorizedError("Invalid credentials")
		}
		return nil, utils.NewStorageError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, utils.NewUnauthorizedError("Invalid credentials")
	}
	return &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("User not found")
		}
		return nil, utils.NewStorageError(err)
	}
	return &user, nil
}

// ProfileUpdate carries the optional profile fields; only non-nil
// fields are written.
type ProfileUpdate struct {
	Name           *string
	Email          *string
	ProfilePicture *string
}

// UpdateProfile applies a partial profile update, rejecting an email
// already owned by a different user.
func (s *UserService) UpdateProfile(id uint, in ProfileUpdate) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, utils.NewValidationError("Email must not be empty")
		}
		if email != user.Email {
			taken, err := s.emailTaken(email, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, utils.NewConflictError("Email is already in use")
			}
			updates["email"] = email
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, utils.NewValidationError("Name must not be empty")
		}
		updates["name"] = name
	}
	if in.ProfilePicture != nil {
		updates["profile_picture"] = *in.ProfilePicture
	}

	if len(updates) == 0 {
		return user, nil
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}
	if err := s.DB.First(user, id).Error; err != nil {
		return nil, utils.NewStorageError(err)
	}
	return user, nil
}

// ChangePassword verifies the current password before writing the new
// hash.
func (s *UserService) ChangePassword(id uint, current, next string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return utils.NewValidationError("Current password is incorrect")
	}
	if len(next) < 8 {
		return utils.NewValidationError("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewStorageError(err)
	}

	updates := map[string]interface{}{
		"password":   string(hash),
		"updated_at": time.Now().UTC(),
	}
	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return utils.NewStorageError(err)
	}
	return nil
}

// List returns a newest-first page of accounts for the admin view.
func (s *UserService) List(page utils.PageParams) ([]models.User, utils.Pagination, error) {
	var total int64
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, utils.Pagination{}, utils.NewStorageError(err)
	}

	var users []models.User
	err := s.DB.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&users).Error
	if err != nil {
		return nil, utils.Pagination{}, utils.NewStorageError(err)
	}

	return users, utils.NewPagination(page, total), nil
}

// AdminUpdate lets an admin edit name, email, and role.
func (s *UserService) AdminUpdate(id uint, in ProfileUpdate, role *string) (*models.User, error) {
	if role != nil {
		switch *role {
		case models.RoleGuest, models.RoleUser, models.RoleAdmin:
		default:
			return nil, utils.NewValidationError("Invalid role")
		}
	}

	user, err := s.UpdateProfile(id, in)
	if err != nil {
		return nil, err
	}

	if role != nil && *role != user.Role {
		updates := map[string]interface{}{
			"role":       *role,
			"updated_at": time.Now().UTC(),
		}
		if err := s.DB.Model(user).Updates(updates).Error; err != nil {
			return nil, utils.NewStorageError(err)
		}
		user.Role = *role
	}
	return user, nil
}

// Delete soft-deletes an account. Admin accounts cannot be deleted.
func (s *UserService) Delete(id uint) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return utils.NewForbiddenError("Cannot delete an admin account")
	}
	if err := s.DB.Delete(user).Error; err != nil {
		return utils.NewStorageError(err)
	}
	return nil
}

func (s *UserService) emailTaken(email string, excludeID uint) (bool, error) {
	q := s.DB.Model(&models.User{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, utils.NewStorageError(err)
	}
	return count > 0, nil
}
