package model

import "time"

type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Pseudo           string    `gorm:"not null" json:"pseudo"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	Password         string    `gorm:"not null" json:"-"` // argon2id hash, never serialized
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	TwoFactorSecret  string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
}
