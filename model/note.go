package model

import "time"

// Image source kinds for a note. A note carries exactly one of these:
// no image at all, an uploaded file under the public uploads dir, or an
// external URL.
const (
	PathTypeNone  = "none"
	PathTypeLocal = "local"
	PathTypeURL   = "url"
)

func ValidPathType(kind string) bool {
	switch kind {
	case PathTypeNone, PathTypeLocal, PathTypeURL:
		return true
	}
	return false
}

// ImageSource is the tagged variant behind the path_type/path_image columns.
type ImageSource struct {
	Kind string
	Path string
}

type Note struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	UserID        uint      `gorm:"index;not null" json:"userId"`
	CreatorPseudo string    `json:"creatorPseudo"`
	PathImage     string    `json:"pathImage"`
	PathType      string    `gorm:"default:none" json:"pathType"`
	NoteGroupID   uint      `gorm:"index;not null" json:"noteGroupId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Image returns the note's image as a tagged variant.
func (n *Note) Image() ImageSource {
	return ImageSource{Kind: n.PathType, Path: n.PathImage}
}

// SetImage applies a tagged image source to the two persisted columns.
func (n *Note) SetImage(src ImageSource) {
	n.PathType = src.Kind
	if src.Kind == PathTypeNone {
		n.PathImage = ""
		return
	}
	n.PathImage = src.Path
}
