package httpgin

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventtick/eventtick-go/internal/domain"
	"github.com/eventtick/eventtick-go/internal/repository/memory"
	"github.com/eventtick/eventtick-go/internal/service"
	"github.com/eventtick/eventtick-go/internal/service/auth"
	"github.com/eventtick/eventtick-go/internal/service/reservation"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	store, err := memory.NewStore(memory.Config{})
	require.NoError(t, err)

	cfg := service.Config{
		Auth: auth.Config{
			JWTSecret:  "test-secret",
			BcryptCost: bcrypt.MinCost,
		},
		Reservation: reservation.Config{
			// keep bookings PENDING for the duration of the test
			PaymentDelay: time.Hour,
			NotifyDelay:  2 * time.Hour,
		},
	}

	svcs := service.NewServices(store, nil, nil, cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRouter(svcs, nil, logger)
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, username, email string) AuthResponse {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/auth/register", "", RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	r := newTestRouter(t)

	resp := register(t, r, "john_doe", "john@example.com")
	assert.Equal(t, domain.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	w := doJSON(r, http.MethodPost, "/auth/login", "", LoginRequest{Username: "john_doe", Password: "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", "", LoginRequest{Username: "john_doe", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", "", LoginRequest{Username: "ghost", Password: "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/auth/register", "", RegisterRequest{
		Username: "short", Email: "s@example.com", Password: "abc", ConfirmPassword: "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/register", "", RegisterRequest{
		Username: "mismatch", Email: "m@example.com", Password: "secret1", ConfirmPassword: "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	register(t, r, "taken", "t@example.com")
	w = doJSON(r, http.MethodPost, "/auth/register", "", RegisterRequest{
		Username: "taken", Email: "t2@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEventsEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/events", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list EventListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Data, 3)
	assert.Equal(t, 3, list.Pagination.Total)

	w = doJSON(r, http.MethodGet, "/events/e1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var e domain.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, 299.00, e.Price)

	w = doJSON(r, http.MethodGet, "/events/e99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationFlow(t *testing.T) {
	r := newTestRouter(t)

	owner := register(t, r, "john_doe", "john@example.com")
	other := register(t, r, "jane_doe", "jane@example.com")

	// booking requires a token
	w := doJSON(r, http.MethodPost, "/reservations", "", CreateReservationRequest{EventID: "e1", TicketQuantity: 2})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/reservations", owner.Token, CreateReservationRequest{EventID: "e1", TicketQuantity: 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res domain.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, domain.ReservationPending, res.Status)
	assert.Equal(t, 598.00, res.TotalAmount)
	assert.Equal(t, owner.User.ID, res.UserID)

	// the owner sees it in their list
	w = doJSON(r, http.MethodGet, "/reservations", owner.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var mine []domain.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, res.ID, mine[0].ID)

	// the other user does not
	w = doJSON(r, http.MethodGet, "/reservations", other.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var theirs []domain.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &theirs))
	assert.Empty(t, theirs)

	// detail lookup: owner 200, other user 404, unknown id 404
	w = doJSON(r, http.MethodGet, "/reservations/"+res.ID, owner.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/reservations/"+res.ID, other.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/reservations/res-nope", owner.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// booking produced a payment-pending notification
	w = doJSON(r, http.MethodGet, "/notifications", owner.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var notes []domain.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationPaymentRequired, notes[0].Type)
}

func TestReservation_InvalidBody(t *testing.T) {
	r := newTestRouter(t)
	owner := register(t, r, "john_doe", "john@example.com")

	w := doJSON(r, http.MethodPost, "/reservations", owner.Token, CreateReservationRequest{EventID: "e99", TicketQuantity: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/reservations", owner.Token, map[string]any{"eventId": "e1", "ticketQuantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminEndpoints_RoleGuard(t *testing.T) {
	r := newTestRouter(t)

	adminUser := register(t, r, "admin_user", "admin@example.com")
	require.Equal(t, domain.RoleAdmin, adminUser.User.Role)
	plain := register(t, r, "john_doe", "john@example.com")

	w := doJSON(r, http.MethodGet, "/admin/health", adminUser.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []domain.ServiceHealth
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 7)

	w = doJSON(r, http.MethodGet, "/admin/metrics", adminUser.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var m domain.SystemMetrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, 142, m.TotalReservations)

	w = doJSON(r, http.MethodGet, "/admin/health", plain.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/admin/health", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMe(t *testing.T) {
	r := newTestRouter(t)
	owner := register(t, r, "john_doe", "john@example.com")

	w := doJSON(r, http.MethodGet, "/auth/me", owner.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var u domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, owner.User.ID, u.ID)

	w = doJSON(r, http.MethodGet, "/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
