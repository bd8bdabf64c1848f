package model

import "time"

type Session struct {
	ID             string    `gorm:"primaryKey" json:"session_id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	Pseudo         string    `json:"pseudo"`
	DeviceInfo     string    `json:"device_info"`
	IPAddress      string    `json:"ip_address"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	IsActive       bool      `json:"is_active"`
}
