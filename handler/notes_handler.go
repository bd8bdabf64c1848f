package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"notekeep/dto"
	"notekeep/middleware"
	"notekeep/repository"
	"notekeep/usecase"
	"notekeep/utils"
)

// CreateNoteHandler handles POST /api/notes. The body is multipart: title,
// description, noteGroupId, and at most one of imageFile / imageUrl.
func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	groupID, err := strconv.ParseUint(c.PostForm("noteGroupId"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "noteGroupId must be a number")
		return
	}

	input := usecase.CreateNoteInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		NoteGroupID: uint(groupID),
		ImageURL:    c.PostForm("imageUrl"),
	}

	// Absent file is fine; FormFile only errors when no part exists.
	if file, err := c.FormFile("imageFile"); err == nil {
		input.ImageFile = file
	}

	note, err := notesService.CreateNote(userID, middleware.CurrentPseudo(c), input)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			utils.BadRequest(c, err.Error())
		case errors.Is(err, repository.ErrNoteGroupNotFound):
			utils.BadRequest(c, "Unknown note group")
		default:
			utils.TrackError("database", "note_creation_failed")
			utils.InternalError(c, "Failed to create note")
		}
		return
	}

	utils.Created(c, note)
}

// GetNoteHandler handles GET /api/notes/get/:id.
func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid note ID")
		return
	}

	note, err := notesService.GetNote(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to fetch note")
		return
	}

	if _, ok := middleware.AuthorizeOwner(c, note.UserID); !ok {
		return
	}

	utils.Success(c, gin.H{
		"message": "Note fetched successfully",
		"note":    note,
	})
}

// GetNotesByGroupHandler handles GET /api/notes/get/noteCategorie/:id and
// returns the category together with its notes. A group owned by someone
// else reads as not found.
func GetNotesByGroupHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID")
		return
	}

	group, notes, err := notesService.NotesInGroup(uint(id), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteGroupNotFound) {
			utils.NotFound(c, "Category not found")
			return
		}
		utils.InternalError(c, "Failed to fetch notes")
		return
	}

	utils.Success(c, gin.H{
		"category": group,
		"notes":    notes,
	})
}

// ListNotesHandler handles GET /api/notes/listeNotes, the sidebar payload of
// groups with nested notes.
func ListNotesHandler(c *gin.Context, groupsService *usecase.NoteGroupsService) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	sidebar, err := groupsService.Sidebar(userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch noteGroups")
		return
	}

	utils.Success(c, gin.H{"noteGroups": sidebar})
}

// UpdateNoteHandler handles PUT /api/notes/update/:id.
func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid note ID")
		return
	}

	note, err := notesService.GetNote(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to fetch note")
		return
	}

	// Ownership first: the mutation must not run for a foreign note.
	if _, ok := middleware.AuthorizeOwner(c, note.UserID); !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "All required fields must be filled")
		return
	}

	if err := notesService.UpdateNote(note, req); err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.TrackError("database", "note_update_failed")
		utils.InternalError(c, "Failed to update note")
		return
	}

	utils.Success(c, gin.H{
		"message": "Note updated successfully",
		"note":    note,
	})
}

// DeleteNoteHandler handles DELETE /api/notes/delete/:id.
func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid note ID")
		return
	}

	note, err := notesService.GetNote(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to fetch note")
		return
	}

	if _, ok := middleware.AuthorizeOwner(c, note.UserID); !ok {
		return
	}

	if err := notesService.DeleteNote(note.ID); err != nil {
		utils.TrackError("database", "note_delete_failed")
		utils.InternalError(c, "Failed to delete note")
		return
	}

	utils.Success(c, gin.H{"message": "Note deleted successfully"})
}
