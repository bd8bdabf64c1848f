package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"notekeep/dto"
	"notekeep/middleware"
	"notekeep/repository"
	"notekeep/typeahead"
	"notekeep/usecase"
	"notekeep/utils"
)

// CreateNoteGroupHandler handles POST /api/notesCategorie/create.
func CreateNoteGroupHandler(c *gin.Context, groupsService *usecase.NoteGroupsService) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.CreateNoteGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Title is required")
		return
	}

	group, err := groupsService.CreateGroup(userID, req.Title)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.TrackError("database", "note_group_creation_failed")
		utils.InternalError(c, "Failed to create category")
		return
	}

	utils.Created(c, gin.H{
		"message":   "Category created successfully",
		"noteGroup": group,
	})
}

// GetNoteGroupHandler handles the public category fetch. Two historical
// paths point here: /api/notesCategorie/get/:id and
// /api/notesCategorie/categorie/:id.
func GetNoteGroupHandler(c *gin.Context, groupsService *usecase.NoteGroupsService) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID")
		return
	}

	group, err := groupsService.GetGroup(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNoteGroupNotFound) {
			utils.NotFound(c, "Category not found")
			return
		}
		utils.InternalError(c, "Failed to fetch category")
		return
	}

	utils.Success(c, group)
}

// ListNoteGroupOptionsHandler handles GET /api/notesCategorie/get/all,
// the fetch-once source of the typeahead selector.
func ListNoteGroupOptionsHandler(c *gin.Context, groupsService *usecase.NoteGroupsService) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	options, err := groupsService.ListOptions(userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch categories")
		return
	}

	utils.Success(c, gin.H{"noteGroups": options})
}

// SearchNoteGroupsHandler handles GET /api/notesCategorie/search?q=, the
// server-side face of the typeahead selector.
func SearchNoteGroupsHandler(c *gin.Context, groupsService *usecase.NoteGroupsService) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	sel := typeahead.NewSelector(func(_ context.Context) ([]dto.NoteGroupOption, error) {
		return groupsService.ListOptions(userID)
	}, nil)

	if err := sel.Load(c.Request.Context()); err != nil {
		utils.InternalError(c, "Failed to fetch categories")
		return
	}

	sel.SetQuery(c.Query("q"))

	utils.Success(c, gin.H{"noteGroups": sel.Matches()})
}

// UpdateNoteGroupHandler handles PUT /api/notesCategorie/update/:id.
func UpdateNoteGroupHandler(c *gin.Context, groupsService *usecase.NoteGroupsService) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID")
		return
	}

	group, err := groupsService.GetGroup(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNoteGroupNotFound) {
			utils.NotFound(c, "Category not found")
			return
		}
		utils.InternalError(c, "Failed to fetch category")
		return
	}

	if _, ok := middleware.AuthorizeOwner(c, group.UserID); !ok {
		return
	}

	var req dto.UpdateNoteGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Title is required")
		return
	}

	if err := groupsService.UpdateTitle(group, req.Title); err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, "Failed to update category")
		return
	}

	utils.Success(c, gin.H{
		"message":   "Category updated successfully",
		"noteGroup": group,
	})
}
