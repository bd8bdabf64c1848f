package dto

type CreateNoteGroupRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateNoteGroupRequest struct {
	Title string `json:"title" binding:"required"`
}

// NoteGroupOption is the shape the typeahead selector consumes.
type NoteGroupOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
