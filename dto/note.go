package dto

// UpdateNoteRequest is the JSON body of PUT /api/notes/update/:id.
// pathImage may be empty only when pathType is "none".
type UpdateNoteRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=10"`
	PathType    string `json:"pathType" binding:"required"`
	PathImage   string `json:"pathImage"`
}

// SidebarNote and SidebarGroup shape the /api/notes/listeNotes payload
// consumed by the navigation sidebar.
type SidebarNote struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	PathImage   string `json:"pathImage"`
	PathType    string `json:"pathType"`
}

type SidebarGroup struct {
	ID    uint          `json:"id"`
	Title string        `json:"title"`
	Notes []SidebarNote `json:"notes"`
}
