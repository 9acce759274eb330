package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/access"
	"github.com/scholarbridge/scholarship-portal/internal/config"
)

func jsonInt(n int) string { return strconv.Itoa(n) }

func configForTest() config.Config {
	return config.Config{
		JWTSecret:         "handler-test-secret",
		PaymentGatewayURL: "http://localhost:4242/checkout",
		ClientOrigin:      "http://localhost:5173",
	}
}

// newCtx builds an echo context carrying an authenticated identity.
// The handlers under test must refuse these requests before touching a
// repository, so the nil repos inside the handler are never reached.
func newCtx(t *testing.T, method, target, body string, role access.Role) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7))
	c.Set("email", "student@example.com")
	c.Set("role", role)
	return c, rec
}

func TestCreateReview_InvalidRatingRejectedBeforeStorage(t *testing.T) {
	h := NewReviewHandler(nil, nil)
	for _, rating := range []int{0, 6, -1} {
		c, rec := newCtx(t, http.MethodPost, "/reviews",
			`{"scholarshipId":3,"ratingPoint":`+jsonInt(rating)+`,"reviewComment":"fine"}`,
			access.RoleStudent)
		if err := h.Create(c); err != nil {
			t.Fatalf("rating %d: handler error: %v", rating, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("rating %d: status got %d, want 400", rating, rec.Code)
		}
		var body struct {
			Fields map[string]string `json:"fields"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("rating %d: unmarshal: %v", rating, err)
		}
		if _, ok := body.Fields["ratingPoint"]; !ok {
			t.Errorf("rating %d: missing field error for ratingPoint", rating)
		}
	}
}

func TestCreateReview_BlankCommentRejectedBeforeStorage(t *testing.T) {
	h := NewReviewHandler(nil, nil)
	c, rec := newCtx(t, http.MethodPost, "/reviews",
		`{"scholarshipId":3,"ratingPoint":4,"reviewComment":"   "}`,
		access.RoleStudent)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestUpdateReview_InvalidInputRejectedBeforeStorage(t *testing.T) {
	h := NewReviewHandler(nil, nil)
	c, rec := newCtx(t, http.MethodPatch, "/reviews/5",
		`{"ratingPoint":9,"reviewComment":"ok"}`, access.RoleStudent)
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestUpdateApplication_StudentCannotTransition(t *testing.T) {
	h := NewApplicationHandler(nil, nil)
	c, rec := newCtx(t, http.MethodPatch, "/applications/4",
		`{"applicationStatus":"completed"}`, access.RoleStudent)
	c.SetParamNames("id")
	c.SetParamValues("4")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
}

func TestUpdateApplication_StudentCannotWriteFeedback(t *testing.T) {
	h := NewApplicationHandler(nil, nil)
	c, rec := newCtx(t, http.MethodPatch, "/applications/4",
		`{"feedback":"looks good"}`, access.RoleStudent)
	c.SetParamNames("id")
	c.SetParamValues("4")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
}

func TestUpdateApplication_UnknownStatusRejected(t *testing.T) {
	h := NewApplicationHandler(nil, nil)
	c, rec := newCtx(t, http.MethodPatch, "/applications/4",
		`{"applicationStatus":"archived"}`, access.RoleModerator)
	c.SetParamNames("id")
	c.SetParamValues("4")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestListApplications_AllViewNeedsModeration(t *testing.T) {
	h := NewApplicationHandler(nil, nil)
	c, rec := newCtx(t, http.MethodGet, "/applications", "", access.RoleStudent)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
}

func TestDeleteApplication_MissingID(t *testing.T) {
	h := NewApplicationHandler(nil, nil)
	c, rec := newCtx(t, http.MethodDelete, "/applications", "", access.RoleStudent)
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestCreateCheckoutSession_MissingApplicationID(t *testing.T) {
	h := NewPaymentHandler(configForTest(), nil, nil)
	c, rec := newCtx(t, http.MethodPost, "/create-checkout-session", `{}`, access.RoleStudent)
	if err := h.CreateCheckoutSession(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestPaymentSuccess_MissingSession(t *testing.T) {
	h := NewPaymentHandler(configForTest(), nil, nil)
	c, rec := newCtx(t, http.MethodPatch, "/payment-success", "", access.RoleStudent)
	if err := h.PaymentSuccess(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestRoleLookup_OtherUserForbiddenForStudents(t *testing.T) {
	h := NewAdminUserHandler(nil)
	c, rec := newCtx(t, http.MethodGet, "/users/other@example.com/role", "", access.RoleStudent)
	c.SetParamNames("email")
	c.SetParamValues("other@example.com")
	if err := h.Role(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
}

func TestUpdateRole_UnknownRoleRejected(t *testing.T) {
	h := NewAdminUserHandler(nil)
	c, rec := newCtx(t, http.MethodPatch, "/user/x@example.com/role",
		`{"role":"SUPERUSER"}`, access.RoleAdmin)
	c.SetParamNames("email")
	c.SetParamValues("x@example.com")
	if err := h.UpdateRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}
