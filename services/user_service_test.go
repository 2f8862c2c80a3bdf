package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub-backend/models"
	"stayhub-backend/utils"
)

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	t.Run("normalizes name and email", func(t *testing.T) {
		user, err := svc.Register("  Ada Lovelace ", " Ada@Example.COM ", "password123")
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", user.Name)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.NotEqual(t, "password123", user.Password)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register("Other", "ada@example.com", "password123")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
		assert.Equal(t, "Email is already in use", appErr.Message)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.Register("Short", "short@example.com", "secret")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, err := svc.Register("", "blank@example.com", "password123")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register("Ada", "ada@example.com", "password123")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate("Ada@Example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("ada@example.com", "wrong-password")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Status)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate("nobody@example.com", "password123")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Status)
	})
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	ada := createTestUser(t, db, "ada@example.com", models.RoleUser)
	createTestUser(t, db, "grace@example.com", models.RoleUser)

	t.Run("partial update", func(t *testing.T) {
		name := "Ada L."
		user, err := svc.UpdateProfile(ada.ID, ProfileUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", user.Name)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		email := "grace@example.com"
		_, err := svc.UpdateProfile(ada.ID, ProfileUpdate{Email: &email})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
		assert.Equal(t, "Email is already in use", appErr.Message)
	})

	t.Run("own email is not a conflict", func(t *testing.T) {
		email := "ada@example.com"
		user, err := svc.UpdateProfile(ada.ID, ProfileUpdate{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		name := "Ghost"
		_, err := svc.UpdateProfile(9999, ProfileUpdate{Name: &name})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Status)
	})
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "ada@example.com", models.RoleUser)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(user.ID, "not-it", "newpassword1")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
		assert.Equal(t, "Current password is incorrect", appErr.Message)
	})

	t.Run("short replacement rejected", func(t *testing.T) {
		err := svc.ChangePassword(user.ID, "password123", "tiny")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("successful change", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(user.ID, "password123", "newpassword1"))
		_, err := svc.Authenticate("ada@example.com", "newpassword1")
		assert.NoError(t, err)
	})
}

func TestAdminUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "ada@example.com", models.RoleUser)

	t.Run("promote to admin", func(t *testing.T) {
		role := models.RoleAdmin
		updated, err := svc.AdminUpdate(user.ID, ProfileUpdate{}, &role)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, updated.Role)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		role := "superuser"
		_, err := svc.AdminUpdate(user.ID, ProfileUpdate{}, &role)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user := createTestUser(t, db, "ada@example.com", models.RoleUser)
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)

	t.Run("admin account protected", func(t *testing.T) {
		err := svc.Delete(admin.ID)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Status)
	})

	t.Run("regular account removed", func(t *testing.T) {
		require.NoError(t, svc.Delete(user.ID))
		_, err := svc.GetByID(user.ID)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Status)
	})
}
