package domain

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type EventStatus string

const (
	EventActive    EventStatus = "ACTIVE"
	EventCancelled EventStatus = "CANCELLED"
	EventCompleted EventStatus = "COMPLETED"
)

type Event struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Date             time.Time   `json:"date"`
	Venue            string      `json:"venue"`
	Price            float64     `json:"price"`
	TotalTickets     int         `json:"totalTickets"`
	AvailableTickets int         `json:"availableTickets"`
	Category         string      `json:"category"`
	Image            string      `json:"image"`
	Status           EventStatus `json:"status"`
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationPaid      ReservationStatus = "PAID"
	ReservationNotified  ReservationStatus = "NOTIFIED"
	ReservationFailed    ReservationStatus = "FAILED"
	ReservationExpired   ReservationStatus = "EXPIRED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// statusRank orders the statuses a reservation actually walks through.
// Statuses outside the simulated flow (CONFIRMED, FAILED, EXPIRED, CANCELLED)
// have no rank and never participate in a transition.
var statusRank = map[ReservationStatus]int{
	ReservationPending:  0,
	ReservationPaid:     1,
	ReservationNotified: 2,
}

// Advances reports whether moving from s to next is a forward step along the
// PENDING -> PAID -> NOTIFIED progression.
func (s ReservationStatus) Advances(next ReservationStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

type Reservation struct {
	ID             string            `json:"id"`
	EventID        string            `json:"eventId"`
	EventTitle     string            `json:"eventTitle"`
	UserID         string            `json:"userId"`
	Status         ReservationStatus `json:"status"`
	TicketQuantity int               `json:"ticketQuantity"`
	TotalAmount    float64           `json:"totalAmount"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type NotificationType string

const (
	NotificationReservationConfirmed NotificationType = "RESERVATION_CONFIRMED"
	NotificationReservationCancelled NotificationType = "RESERVATION_CANCELLED"
	NotificationEventReminder        NotificationType = "EVENT_REMINDER"
	NotificationPaymentRequired      NotificationType = "PAYMENT_REQUIRED"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

type HealthStatus string

const (
	HealthUp       HealthStatus = "UP"
	HealthDown     HealthStatus = "DOWN"
	HealthDegraded HealthStatus = "DEGRADED"
)

type ServiceHealth struct {
	ServiceName string       `json:"serviceName"`
	Status      HealthStatus `json:"status"`
	LatencyMs   int          `json:"latency"`
	Version     string       `json:"version"`
	LastCheck   time.Time    `json:"lastCheck"`
}

type SystemMetrics struct {
	TotalEvents       int     `json:"totalEvents"`
	TotalReservations int     `json:"totalReservations"`
	Revenue           float64 `json:"revenue"`
	ActiveUsers       int     `json:"activeUsers"`
}
