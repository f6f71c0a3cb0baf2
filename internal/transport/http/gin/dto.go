package httpgin

import (
	"github.com/eventtick/eventtick-go/internal/domain"
)

type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type CreateReservationRequest struct {
	EventID        string `json:"eventId" binding:"required"`
	TicketQuantity int    `json:"ticketQuantity" binding:"required,gte=1"`
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type EventListResponse struct {
	Data       []domain.Event `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
