package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

const groupPaySecret = "group-pay-secret"

type groupPayServer struct {
	e         *echo.Echo
	auth      *service.AuthService
	sessionID string
}

func newGroupPayServer(t *testing.T, seats ...string) groupPayServer {
	t.Helper()
	store := newStore(t)
	log := logger.NewNop()
	bookings := service.NewBookingService(store, service.SystemClock{}, nil, queue.NopPublisher{}, nil, log)
	groupPay := service.NewGroupPayService(store, bookings, service.SystemClock{}, service.DefaultGroupPayTTL, nil, log)

	users := repository.NewUserRepo()
	for _, u := range repository.DefaultUsers() {
		require.NoError(t, users.Create(u, "password123", bcrypt.MinCost))
	}
	auth := service.NewAuthService(users, repository.NewSessionRepo(), service.SystemClock{}, groupPaySecret, time.Hour, log)

	v, err := groupPay.Initiate(service.ContextWithUserID(context.Background(), "user123"), service.InitiateRequest{
		UserID: "user123", ShowtimeID: showtimeID, SeatIDs: seats,
	})
	require.NoError(t, err)

	e := echo.New()
	h := NewGroupPayHandler(groupPay, auth)
	e.POST("/v1/group-pay/:id/seats/:seat/pay", h.Pay, middleware.OptionalJWTAuth(groupPaySecret, auth))
	return groupPayServer{e: e, auth: auth, sessionID: v.ID}
}

func (s groupPayServer) pay(t *testing.T, seat, body, token string) (*httptest.ResponseRecorder, model.GroupPaySession) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/group-pay/"+s.sessionID+"/seats/"+seat+"/pay", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var sess model.GroupPaySession
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	}
	return rec, sess
}

func TestPayRecordsSignedInPayerByAccountName(t *testing.T) {
	srv := newGroupPayServer(t, "E5", "E6")
	signIn, err := srv.auth.SignIn(context.Background(), "boxoffice@example.com", "password123")
	require.NoError(t, err)

	rec, sess := srv.pay(t, "E5", `{"payer_name":"Somebody Else"}`, signIn.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Box Office", sess.SeatPayments["E5"].PaidBy)
	assert.Equal(t, model.GroupPayPending, sess.Status)

	rec, sess = srv.pay(t, "E6", `{"payer_name":"Priya"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Priya", sess.SeatPayments["E6"].PaidBy)
	assert.Equal(t, model.GroupPayCompleted, sess.Status)
	assert.NotEmpty(t, sess.BookingID)
}

func TestPayGuestNeedsName(t *testing.T) {
	srv := newGroupPayServer(t, "E5")

	rec, _ := srv.pay(t, "E5", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayRejectsInvalidToken(t *testing.T) {
	srv := newGroupPayServer(t, "E5")

	rec, _ := srv.pay(t, "E5", `{"payer_name":"Priya"}`, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
