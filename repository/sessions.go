package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"notekeep/model"
	"notekeep/services"
	"notekeep/utils"
)

type SessionRepo struct {
	DB *gorm.DB
}

func GetSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{DB: db}
}

func (r *SessionRepo) CreateSession(session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	if session == nil {
		utils.TrackError("database", "nil_session")
		return fmt.Errorf("session cannot be nil")
	}
	if session.ID == "" || session.UserID == 0 {
		utils.TrackError("database", "invalid_session_data")
		return fmt.Errorf("invalid session data: missing required fields")
	}

	if err := r.DB.Create(session).Error; err != nil {
		utils.TrackError("database", "session_creation_failed")
		return fmt.Errorf("failed to create session in database: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(session); err != nil {
			utils.TrackError("cache", "session_cache_set_failed")
			log.Printf("Warning: failed to cache session: %v", err)
		}
	}

	return nil
}

// GetSession resolves a session id, preferring the cache. Returns nil, nil
// when the session does not exist.
func (r *SessionRepo) GetSession(sessionID string) (*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	if sessionID == "" {
		utils.TrackError("database", "empty_session_id")
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	if services.GlobalSessionCache != nil {
		if session, err := services.GlobalSessionCache.GetSession(sessionID); err == nil && session != nil {
			utils.TrackCacheOperation("session", true)
			return session, nil
		}
		utils.TrackCacheOperation("session", false)
	}

	var session model.Session
	err := r.DB.Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.TrackError("database", "session_not_found")
			return nil, nil
		}
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch session from database: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(&session); err != nil {
			log.Printf("Warning: failed to cache session: %v", err)
		}
	}

	return &session, nil
}

// UpdateSession persists activity and state changes and refreshes the cache.
func (r *SessionRepo) UpdateSession(session *model.Session) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	err := r.DB.Model(&model.Session{}).Where("id = ?", session.ID).Updates(map[string]interface{}{
		"last_activity_at": session.LastActivityAt,
		"is_active":        session.IsActive,
		"expires_at":       session.ExpiresAt,
	}).Error
	if err != nil {
		utils.TrackError("database", "session_update_failed")
		return fmt.Errorf("failed to update session: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if !session.IsActive {
			services.GlobalSessionCache.DeleteSession(session.ID)
		} else if err := services.GlobalSessionCache.SetSession(session); err != nil {
			log.Printf("Warning: failed to cache session: %v", err)
		}
	}

	return nil
}

// EndSession deactivates a session and evicts it from the cache.
func (r *SessionRepo) EndSession(sessionID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	result := r.DB.Model(&model.Session{}).Where("id = ?", sessionID).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	if services.GlobalSessionCache != nil {
		services.GlobalSessionCache.DeleteSession(sessionID)
	}

	return nil
}

func (r *SessionRepo) CountActiveSessions(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Session{}).
		Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, time.Now()).
		Count(&count).Error
	return count, err
}

func (r *SessionRepo) CountUserSessions(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Session{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// EndLeastActiveSession enforces the per-user session cap by ending the
// session with the oldest activity.
func (r *SessionRepo) EndLeastActiveSession(userID uint) error {
	var session model.Session
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_activity_at ASC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return r.EndSession(session.ID)
}
