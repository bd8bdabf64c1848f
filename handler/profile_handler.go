package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"notekeep/middleware"
	"notekeep/repository"
	"notekeep/utils"
)

// GetUserProfileHandler handles GET /api/user/profile.
func GetUserProfileHandler(c *gin.Context, userRepo *repository.UserRepo) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	user, err := userRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		utils.InternalError(c, "Failed to fetch profile")
		return
	}

	utils.Success(c, gin.H{
		"id":                 user.ID,
		"pseudo":             user.Pseudo,
		"email":              user.Email,
		"two_factor_enabled": user.TwoFactorEnabled,
		"created_at":         user.CreatedAt,
	})
}

// GetUserStatsHandler handles GET /api/user/stats: note, group and session
// counts for the account page.
func GetUserStatsHandler(c *gin.Context, notesRepo *repository.NotesRepo, groupsRepo *repository.NoteGroupsRepo, sessionRepo *repository.SessionRepo) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	noteCount, err := notesRepo.CountUserNotes(userID)
	if err != nil {
		utils.InternalError(c, "Failed to compute stats")
		return
	}

	groupCount, err := groupsRepo.CountUserNoteGroups(userID)
	if err != nil {
		utils.InternalError(c, "Failed to compute stats")
		return
	}

	sessionCount, err := sessionRepo.CountUserSessions(userID)
	if err != nil {
		utils.InternalError(c, "Failed to compute stats")
		return
	}

	activeSessions, err := sessionRepo.CountActiveSessions(userID)
	if err != nil {
		utils.InternalError(c, "Failed to compute stats")
		return
	}
	utils.UpdateActiveSessions(float64(activeSessions))

	utils.Success(c, gin.H{
		"notes_stats": gin.H{
			"total":  noteCount,
			"groups": groupCount,
		},
		"activity_stats": gin.H{
			"total_sessions":  sessionCount,
			"active_sessions": activeSessions,
		},
	})
}
