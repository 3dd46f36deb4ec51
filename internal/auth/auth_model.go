package auth

import "github.com/DhavalSuthar-24/leaguehub/internal/user"

type RegisterRequest struct {
	Name     string    `json:"name" binding:"required,max=100" example:"John Doe"`
	Email    string    `json:"email" binding:"required,email" example:"john@example.com"`
	Phone    string    `json:"phone" binding:"omitempty,max=20" example:"+919876543210"`
	Role     user.Role `json:"role" binding:"required,oneof=Captain Player" example:"Player"`
	Password string    `json:"password" binding:"required,min=6,max=72" example:"password123"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=100" example:"John Doe"`
	Email *string `json:"email,omitempty" binding:"omitempty,email" example:"john.new@example.com"`
	Phone *string `json:"phone,omitempty" binding:"omitempty,max=20" example:"+919876543210"`
}

type AuthResponse struct {
	Token string            `json:"token"`
	User  user.UserResponse `json:"user"`
}
