package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"notekeep/model"
	"notekeep/utils"
)

type UserRepo struct {
	DB *gorm.DB
}

func GetUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.Email == "" || user.Password == "" {
		utils.TrackError("database", "invalid_user_data")
		return errors.New("email and password required")
	}

	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		utils.TrackError("database", "user_creation_failed")
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindUserByEmail returns nil, nil when no user has the given email.
func (r *UserRepo) FindUserByEmail(email string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, err
	}

	return &user, nil
}

func (r *UserRepo) FindUserByID(id uint) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.DB.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.TrackError("database", "user_not_found")
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepo) Enable2FA(userID uint, secret string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	return r.DB.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"two_factor_enabled": true,
		"two_factor_secret":  secret,
	}).Error
}

func (r *UserRepo) Disable2FA(userID uint) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	return r.DB.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"two_factor_enabled": false,
		"two_factor_secret":  "",
	}).Error
}
