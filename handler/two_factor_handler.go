package handler

import (
	"bytes"
	"encoding/base64"
	"image/png"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"

	"notekeep/middleware"
	"notekeep/repository"
	"notekeep/utils"
)

// Generate2FASecretHandler creates a new TOTP secret and returns it with a
// QR code for the authenticator app. Nothing is persisted until the user
// confirms a code via Enable2FAHandler.
func Generate2FASecretHandler(c *gin.Context, userRepo *repository.UserRepo) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	user, err := userRepo.FindUserByID(userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}

	if user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is already enabled")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "notekeep",
		AccountName: user.Email,
	})
	if err != nil {
		utils.InternalError(c, "Failed to generate 2FA secret")
		return
	}

	img, err := key.Image(200, 200)
	if err != nil {
		utils.InternalError(c, "Failed to generate QR code")
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		utils.InternalError(c, "Failed to encode QR code")
		return
	}

	utils.Success(c, gin.H{
		"secret":  key.Secret(),
		"qr_code": "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}

// Enable2FAHandler turns 2FA on after verifying a code against the secret
// from Generate2FASecretHandler.
func Enable2FAHandler(c *gin.Context, userRepo *repository.UserRepo) {
	var req struct {
		Secret string `json:"secret" binding:"required"`
		Code   string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	user, err := userRepo.FindUserByID(userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}

	if user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is already enabled")
		return
	}

	if !totp.Validate(req.Code, req.Secret) {
		utils.BadRequest(c, "Invalid 2FA code")
		return
	}

	if err := userRepo.Enable2FA(userID, req.Secret); err != nil {
		utils.InternalError(c, "Failed to enable 2FA")
		return
	}

	utils.Success(c, gin.H{"message": "2FA enabled successfully"})
}

// Verify2FAHandler checks a code against the stored secret.
func Verify2FAHandler(c *gin.Context, userRepo *repository.UserRepo) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	user, err := userRepo.FindUserByID(userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}

	if !user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is not enabled")
		return
	}

	if !totp.Validate(req.Code, user.TwoFactorSecret) {
		utils.TrackAuthAttempt("failure", "2fa")
		utils.Unauthorized(c, "Invalid 2FA code")
		return
	}

	utils.Success(c, gin.H{"message": "2FA code valid"})
}

// Disable2FAHandler turns 2FA off after a final code verification.
func Disable2FAHandler(c *gin.Context, userRepo *repository.UserRepo) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	user, err := userRepo.FindUserByID(userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}

	if !user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is not enabled")
		return
	}

	if !totp.Validate(req.Code, user.TwoFactorSecret) {
		utils.Unauthorized(c, "Invalid 2FA code")
		return
	}

	if err := userRepo.Disable2FA(userID); err != nil {
		utils.InternalError(c, "Failed to disable 2FA")
		return
	}

	utils.Success(c, gin.H{"message": "2FA disabled successfully"})
}
