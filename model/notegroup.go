package model

import "time"

type NoteGroup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	Notes     []Note    `gorm:"foreignKey:NoteGroupID" json:"notes,omitempty"`
}
