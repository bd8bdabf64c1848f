package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"notekeep/middleware"
	"notekeep/model"
	"notekeep/repository"
	"notekeep/services"
	"notekeep/utils"
)

// LogoutHandler handles POST /api/auth/logout: ends the session, blacklists
// the cookie token, and clears the cookie.
func LogoutHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	v, exists := c.Get("session")
	if !exists {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	session := v.(*model.Session)

	if err := sessionRepo.EndSession(session.ID); err != nil {
		utils.TrackError("session", "logout_failed")
		utils.InternalError(c, "Failed to end session")
		return
	}

	if token := c.GetString("session_token"); token != "" {
		if err := services.BlacklistToken(token); err != nil {
			// The session row is already inactive, so log and move on.
			log.Printf("Warning: failed to blacklist session token: %v", err)
		}
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}
