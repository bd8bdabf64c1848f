package dto

type SignupRequest struct {
	Pseudo   string `json:"pseudo" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}

type LoginRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	TwoFactorCode string `json:"two_factor_code"`
}

// UserResponse is the public projection of a user. The web client expects
// the id as a string.
type UserResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Pseudo string `json:"pseudo"`
}
