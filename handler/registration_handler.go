package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"notekeep/dto"
	"notekeep/usecase"
	"notekeep/utils"
)

// RegistrationHandler handles POST /api/auth/signup.
func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "signup")
		utils.BadRequest(c, "All fields are required and must be valid")
		return
	}

	user, err := userService.CreateUser(c.Request.Context(), req.Pseudo, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			utils.TrackAuthAttempt("failure", "signup")
			utils.BadRequest(c, "This email is already in use")
			return
		}
		utils.TrackError("auth", "signup_failed")
		utils.InternalError(c, "Failed to create account")
		return
	}

	utils.TrackAuthAttempt("success", "signup")

	// The password hash never leaves the server.
	utils.Created(c, gin.H{
		"message": "Signup successful",
		"user": dto.UserResponse{
			ID:     strconv.FormatUint(uint64(user.ID), 10),
			Email:  user.Email,
			Pseudo: user.Pseudo,
		},
	})
}
