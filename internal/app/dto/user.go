package dto

import (
	"time"

	"stayseek/internal/domain/user"
)

type UserView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

func NewAuthResponse(u *user.User, token string) AuthResponse {
	return AuthResponse{User: MapUser(u), Token: token}
}

func MapUser(u *user.User) UserView {
	if u == nil {
		return UserView{}
	}
	return UserView{
		ID:        int64(u.ID),
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
