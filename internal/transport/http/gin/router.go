package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventtick/eventtick-go/internal/domain"
	redisrepo "github.com/eventtick/eventtick-go/internal/repository/redis"
	"github.com/eventtick/eventtick-go/internal/service"
	"github.com/eventtick/eventtick-go/internal/service/auth"
	"github.com/eventtick/eventtick-go/internal/service/catalog"
	"github.com/eventtick/eventtick-go/internal/service/reservation"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.POST("/auth/register", handleRegister(svcs))
	r.POST("/auth/login", handleLogin(svcs))

	r.GET("/events", handleListEvents(svcs))
	r.GET("/events/:id", handleGetEvent(svcs))

	// Authenticated API
	authed := r.Group("/", AuthMiddleware(svcs.Auth))
	{
		authed.GET("/auth/me", handleMe(svcs))

		authed.POST("/reservations", handleCreateReservation(svcs, idem))
		authed.GET("/reservations", handleListMyReservations(svcs))
		authed.GET("/reservations/:id", handleGetReservation(svcs))

		authed.GET("/notifications", handleListNotifications(svcs))
	}

	// Admin API
	adminGroup := r.Group("/admin", AuthMiddleware(svcs.Auth), RequireRole(domain.RoleAdmin))
	{
		adminGroup.GET("/health", handleSystemHealth(svcs))
		adminGroup.GET("/metrics", handleSystemMetrics(svcs))
	}

	return r
}

// --- Handlers ---

func handleRegister(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		user, token, err := svcs.Auth.Register(
			c.Request.Context(),
			req.Username,
			req.Email,
			req.Password,
			req.ConfirmPassword,
		)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, AuthResponse{User: *user, Token: token})
	}
}

func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		user, token, err := svcs.Auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{User: *user, Token: token})
	}
}

func handleMe(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svcs.Auth.GetUser(c.Request.Context(), c.GetString(ctxUserID))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 0)
		offset := parseIntDefault(c.Query("offset"), 0)

		events, total, err := svcs.Catalog.ListEvents(c.Request.Context(), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}

		resp := EventListResponse{
			Data: events,
			Pagination: Pagination{
				Limit:  limit,
				Offset: offset,
				Total:  total,
			},
		}

		// ETag + Cache-Control 60s: the catalog is immutable for the session
		writeJSONWithCache(c, http.StatusOK, resp, "public, max-age=60", true)
	}
}

func handleGetEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := svcs.Catalog.GetEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, e, "public, max-age=60", true)
	}
}

func handleCreateReservation(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		userID := c.GetString(ctxUserID)

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemReservation(userID, idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		res, err := svcs.Reservation.Create(
			c.Request.Context(),
			req.EventID,
			userID,
			req.TicketQuantity,
			rlKey,
		)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(res)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, res)
	}
}

func handleListMyReservations(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Reservation.ListByUser(c.Request.Context(), c.GetString(ctxUserID))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func handleGetReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svcs.Reservation.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}

		// another user's reservation is indistinguishable from a missing one
		if res.UserID != c.GetString(ctxUserID) && c.GetString(ctxRole) != string(domain.RoleAdmin) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "reservation not found"})
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

func handleListNotifications(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Notifications.ListByUser(c.Request.Context(), c.GetString(ctxUserID))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func handleSystemHealth(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		health, err := svcs.Admin.SystemHealth(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, health)
	}
}

func handleSystemMetrics(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics, err := svcs.Admin.Metrics(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, metrics)
	}
}

// --- Helpers ---

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// auth service
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
		return
	case errors.Is(err, auth.ErrUsernameTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "username already taken"})
		return
	case errors.Is(err, auth.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password must be at least 6 characters long"})
		return
	case errors.Is(err, auth.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "passwords do not match"})
		return
	case errors.Is(err, auth.ErrMissingFields):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username and password are required"})
		return
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
		return
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	// catalog service
	case errors.Is(err, catalog.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	// reservation service
	case errors.Is(err, reservation.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, reservation.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "reservation not found"})
		return
	case errors.Is(err, reservation.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "ticket quantity must be at least 1"})
		return
	case errors.Is(err, reservation.ErrRateLimited):
		c.Header("Retry-After", "60")
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
