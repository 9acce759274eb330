package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/config"
	"github.com/scholarbridge/scholarship-portal/internal/lifecycle"
	"github.com/scholarbridge/scholarship-portal/internal/model"
	"github.com/scholarbridge/scholarship-portal/internal/queue"
	"github.com/scholarbridge/scholarship-portal/internal/repository"
	queue_publisher "github.com/scholarbridge/scholarship-portal/internal/service"
	"github.com/scholarbridge/scholarship-portal/internal/utils"
)

// applicationReader is the read surface the checkout flow needs.
type applicationReader interface {
	GetByID(ctx context.Context, id uint64) (model.Application, error)
}

// paymentStore is the persistence surface for checkout sessions.
// *repository.PaymentRepo implements it; tests substitute a fake.
type paymentStore interface {
	CreateSession(ctx context.Context, cs *model.CheckoutSession) error
	Confirm(ctx context.Context, sessionToken string) (model.Application, error)
	LogFailure(ctx context.Context, applicationID uint64, reason string) error
}

// PaymentHandler drives the checkout flow against the external payment
// gateway.  The portal never talks to the gateway directly: it mints a
// single-use session token, redirects the student to the gateway, and
// accepts the success or error callback.  Payment is legal exactly once
// per application, while it is still pending and unpaid.
type PaymentHandler struct {
	Cfg      config.Config
	Apps     applicationReader
	Payments paymentStore
}

func NewPaymentHandler(cfg config.Config, a *repository.ApplicationRepo, p *repository.PaymentRepo) *PaymentHandler {
	return &PaymentHandler{Cfg: cfg, Apps: a, Payments: p}
}

type checkoutReq struct {
	ApplicationID uint64 `json:"applicationId"`
}

// CreateCheckoutSession serves POST /create-checkout-session.  The
// caller must own the application and the Pay action must be legal for
// its current state; otherwise the request is refused without touching
// the gateway.  On success the response carries the gateway URL the
// client redirects to.
func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil || req.ApplicationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "applicationId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	app, err := h.Apps.GetByID(ctx, req.ApplicationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if app.UserEmail != email {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	state := lifecycle.State{
		Status:  lifecycle.ApplicationStatus(app.ApplicationStatus),
		Payment: lifecycle.PaymentStatus(app.PaymentStatus),
	}
	if !lifecycle.CanConfirmPayment(state) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "payment is not available for this application"})
	}

	token, err := utils.NewSessionToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session token failed"})
	}
	cs := model.CheckoutSession{
		ApplicationID: app.ID,
		SessionToken:  token,
		AmountCents:   app.ApplicationFeesCents + app.ServiceChargeCents,
	}
	if err := h.Payments.CreateSession(ctx, &cs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
	}

	redirect := fmt.Sprintf("%s?session_id=%s&amount=%d&return=%s",
		h.Cfg.PaymentGatewayURL, token, cs.AmountCents, url.QueryEscape(h.Cfg.ClientOrigin))
	return c.JSON(http.StatusOK, echo.Map{"url": redirect})
}

// PaymentSuccess serves PATCH /payment-success?session_id=, the gateway
// success callback.  Confirmation consumes the session and flips the
// application from unpaid to paid under the pending guard, so a
// duplicate callback or a racing moderator rejection leaves the record
// untouched and answers 409.  A payment.confirmed event is published
// for the audit trail; a broker outage never fails the callback.
func (h *PaymentHandler) PaymentSuccess(c echo.Context) error {
	token := c.QueryParam("session_id")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	app, err := h.Payments.Confirm(ctx, token)
	if err != nil {
		switch {
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown session"})
		case err == repository.ErrStaleState:
			return c.JSON(http.StatusConflict, echo.Map{"error": "state changed, refresh required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm failed"})
	}

	txn := ""
	if app.TransactionID != nil {
		txn = *app.TransactionID
	}
	_ = queue_publisher.PublishPaymentConfirmed(context.Background(), queue.PaymentConfirmedEvent{
		ApplicationID:   app.ID,
		UserID:          app.UserID,
		UserEmail:       app.UserEmail,
		ScholarshipID:   app.ScholarshipID,
		ScholarshipName: app.ScholarshipName,
		UniversityName:  app.UniversityName,
		AmountCents:     app.ApplicationFeesCents + app.ServiceChargeCents,
		TransactionID:   txn,
		ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"modifiedCount": 1,
		"application":   toApplicationResp(app),
	})
}

// PaymentError serves POST /payment-error?apl_id=, the gateway failure
// or cancellation callback.  The failure is recorded and nothing else
// changes: the application stays pending/unpaid and the student may
// retry.
func (h *PaymentHandler) PaymentError(c echo.Context) error {
	id, err := strconv.ParseUint(c.QueryParam("apl_id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid apl_id"})
	}
	reason := c.QueryParam("reason")
	if reason == "" {
		reason = "gateway reported failure"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Payments.LogFailure(ctx, id, reason); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record failure failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": 0})
}
