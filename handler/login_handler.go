package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"

	"notekeep/dto"
	"notekeep/middleware"
	"notekeep/repository"
	"notekeep/usecase"
	"notekeep/utils"
)

// LoginHandler handles POST /api/auth/login: verifies credentials, runs the
// optional 2FA step, and opens a cookie session.
func LoginHandler(c *gin.Context, userService *usecase.UserService, sessionRepo *repository.SessionRepo) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "Invalid request")
		return
	}

	user, err := userService.Authenticate(req.Email, req.Password)
	if err != nil {
		utils.TrackError("auth", "user_lookup")
		utils.InternalError(c, "Failed to verify credentials")
		return
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if user.TwoFactorEnabled {
		if req.TwoFactorCode == "" {
			utils.TrackAuthAttempt("pending", "2fa_required")
			utils.Success(c, gin.H{
				"requires_2fa": true,
				"message":      "2FA code required",
			})
			return
		}
		if !totp.Validate(req.TwoFactorCode, user.TwoFactorSecret) {
			utils.TrackAuthAttempt("failure", "2fa")
			utils.Unauthorized(c, "Invalid 2FA code")
			return
		}
		utils.TrackAuthAttempt("success", "2fa")
	}

	if err := middleware.CreateSession(c, user, sessionRepo); err != nil {
		utils.TrackError("session", "creation")
		utils.InternalError(c, "Failed to create session")
		return
	}

	utils.TrackAuthAttempt("success", "login")

	utils.Success(c, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":     user.ID,
			"email":  user.Email,
			"pseudo": user.Pseudo,
		},
	})
}
