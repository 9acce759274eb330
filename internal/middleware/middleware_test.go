package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/access"
	"github.com/scholarbridge/scholarship-portal/internal/utils"
)

const testSecret = "middleware-test-secret"

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// invoke runs the given middleware chain against a request and returns
// the recorder.
func invoke(t *testing.T, target, token string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := echo.HandlerFunc(okHandler)
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func studentToken(t *testing.T) string {
	t.Helper()
	at, err := utils.NewAccessToken(testSecret, 7, "student@example.com", "STUDENT", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	return at.Token
}

func adminToken(t *testing.T) string {
	t.Helper()
	at, err := utils.NewAccessToken(testSecret, 1, "admin@example.com", "ADMIN", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	return at.Token
}

func TestJWTAuth_MissingHeaderPreservesPath(t *testing.T) {
	rec := invoke(t, "/dashboard/applications", "", JWTAuth(testSecret))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["redirect"] != "/dashboard/applications" {
		t.Errorf("redirect: got %q, want original path", body["redirect"])
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	rec := invoke(t, "/", "not.a.token", JWTAuth(testSecret))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	at, _ := utils.NewAccessToken("other-secret", 7, "s@example.com", "ADMIN", 5)
	rec := invoke(t, "/", at.Token, JWTAuth(testSecret))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestJWTAuth_InjectsIdentity(t *testing.T) {
	e := echo.New()
	var email string
	var role access.Role
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		email, _ = c.Get("email").(string)
		role, _ = c.Get("role").(access.Role)
		return c.NoContent(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken(t))
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if email != "student@example.com" {
		t.Errorf("email: got %q", email)
	}
	if role != access.RoleStudent {
		t.Errorf("role: got %v, want student", role)
	}
}

func TestRequireRole_StudentDeniedOnAdminRoute(t *testing.T) {
	rec := invoke(t, "/users", studentToken(t),
		JWTAuth(testSecret), RequireRole(access.RoleAdmin))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	rec := invoke(t, "/users", adminToken(t),
		JWTAuth(testSecret), RequireRole(access.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestRequireRole_UnknownRoleClaimFailsClosed(t *testing.T) {
	// a token minted with a bogus role collapses to STUDENT and is
	// denied on admin routes, never allowed
	at, _ := utils.NewAccessToken(testSecret, 9, "odd@example.com", "SUPERUSER", 5)
	rec := invoke(t, "/users", at.Token,
		JWTAuth(testSecret), RequireRole(access.RoleAdmin))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
}

func TestRequireSignIn_AnyRolePasses(t *testing.T) {
	rec := invoke(t, "/applications", studentToken(t),
		JWTAuth(testSecret), RequireSignIn())
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestRequire_AnonymousGetsRedirect(t *testing.T) {
	// role middleware without JWTAuth in front behaves like an
	// unauthenticated request and asks for sign-in
	rec := invoke(t, "/applications?email=x", "", RequireSignIn())
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["redirect"] != "/applications?email=x" {
		t.Errorf("redirect: got %q, want original URI", body["redirect"])
	}
}
