package dto

import "propertydeals_backend/internal/models"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *UserSummary `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserSummary struct {
	ID         string                                   `json:"id"`
	Username   string                                   `json:"username"`
	FullName   string                                   `json:"full_name"`
	Email      string                                   `json:"email"`
	ActiveRole models.Role                              `json:"active_role"`
	IsAdmin    bool                                     `json:"is_admin"`
	Roles      map[models.Role]models.ApplicationStatus `json:"roles"`
}
