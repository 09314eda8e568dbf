package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/salonms/backend/internal/core/domain"
	"github.com/salonms/backend/internal/core/token"
)

func testPolicy() *Policy {
	return NewPolicy(DefaultPublicPrefixes(), DefaultPolicyRules())
}

func testCodec(t *testing.T, ttl time.Duration) *token.Codec {
	t.Helper()
	c, err := token.NewCodec("gate-test-secret", ttl)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func runGate(t *testing.T, codec *token.Codec, method, path, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Gate(codec, testPolicy())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestGate_PublicPathNoToken(t *testing.T) {
	codec := testCodec(t, time.Hour)

	for _, path := range []string{
		"/api/health",
		"/api/admin/auth/login",
		"/api/admin/auth/init",
		"/api/staff/auth/login",
		"/api/staff/auth/check-status",
		"/api/reception/auth/login",
		"/api/public/gallery",
	} {
		rec, err := runGate(t, codec, http.MethodGet, path, "")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", path, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestGate_ProtectedPathNoToken(t *testing.T) {
	codec := testCodec(t, time.Hour)

	_, err := runGate(t, codec, http.MethodGet, "/api/staff/me", "")
	if code := httpErrorCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestGate_MalformedScheme(t *testing.T) {
	codec := testCodec(t, time.Hour)
	tkn, _ := codec.Issue("acc_1", "a@x.com", domain.RoleAdmin)

	for _, header := range []string{"Basic " + tkn, tkn, "Bearer"} {
		_, err := runGate(t, codec, http.MethodGet, "/api/admin/accounts", header)
		if code := httpErrorCode(t, err); code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, code)
		}
	}
}

func TestGate_ExpiredToken(t *testing.T) {
	expired := testCodec(t, -time.Minute)
	tkn, _ := expired.Issue("acc_1", "a@x.com", domain.RoleAdmin)

	_, err := runGate(t, expired, http.MethodGet, "/api/admin/accounts", "Bearer "+tkn)
	if code := httpErrorCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestGate_StaffTokenOnAdminPath(t *testing.T) {
	codec := testCodec(t, time.Hour)
	tkn, _ := codec.Issue("acc_1", "s@x.com", domain.RoleStaff)

	_, err := runGate(t, codec, http.MethodGet, "/api/admin/accounts", "Bearer "+tkn)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "admin access required" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestGate_AdminTokenOnStaffManagement(t *testing.T) {
	codec := testCodec(t, time.Hour)
	tkn, _ := codec.Issue("acc_1", "a@x.com", domain.RoleAdmin)

	// General staff management is admin-only.
	rec, err := runGate(t, codec, http.MethodPost, "/api/staff", "Bearer "+tkn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// But staff self-service carve-outs are not admin surfaces.
	_, err = runGate(t, codec, http.MethodGet, "/api/staff/me", "Bearer "+tkn)
	if code := httpErrorCode(t, err); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestGate_LongestPrefixWins(t *testing.T) {
	codec := testCodec(t, time.Hour)
	tkn, _ := codec.Issue("acc_1", "s@x.com", domain.RoleStaff)

	// /api/staff/photos is a STAFF carve-out inside the admin-only
	// /api/staff prefix.
	rec, err := runGate(t, codec, http.MethodDelete, "/api/staff/photos/123", "Bearer "+tkn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGate_AnyAuthenticatedOnAuthSubpaths(t *testing.T) {
	codec := testCodec(t, time.Hour)

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleStaff, domain.RoleReception} {
		tkn, _ := codec.Issue("acc_1", "x@x.com", role)
		rec, err := runGate(t, codec, http.MethodGet, "/api/admin/auth/validate", "Bearer "+tkn)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", role, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", role, rec.Code)
		}
	}
}

func TestGate_InjectsIdentity(t *testing.T) {
	codec := testCodec(t, time.Hour)
	tkn, _ := codec.Issue("acc_42", "r@x.com", domain.RoleReception)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/reception/me", nil)
	req.Header.Set("Authorization", "Bearer "+tkn)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Gate(codec, testPolicy())(func(c echo.Context) error {
		if c.Get(CtxAccountID) != "acc_42" {
			t.Fatalf("account_id not set")
		}
		if c.Get(CtxEmail) != "r@x.com" {
			t.Fatalf("email not set")
		}
		if c.Get(CtxRole) != domain.RoleReception {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
