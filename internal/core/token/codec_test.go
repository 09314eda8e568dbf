package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/salonms/backend/internal/core/domain"
)

func newTestCodec(t *testing.T, ttl time.Duration, previous ...string) *Codec {
	t.Helper()
	c, err := NewCodec("unit-test-signing-secret", ttl, previous...)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestCodec_IssueAndValidate(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	tkn, err := c.Issue("acc_1", "a@x.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if parts := strings.Split(tkn, "."); len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}
	if !c.Validate(tkn) {
		t.Fatalf("freshly issued token should validate")
	}

	claims, err := c.DecodeClaims(tkn)
	if err != nil {
		t.Fatalf("DecodeClaims: %v", err)
	}
	if claims.AccountID != "acc_1" || claims.Subject != "a@x.com" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected a future exp claim")
	}
}

func TestCodec_DistinctJTIPerIssue(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	t1, _ := c.Issue("acc_1", "a@x.com", domain.RoleAdmin)
	t2, _ := c.Issue("acc_1", "a@x.com", domain.RoleAdmin)
	if t1 == t2 {
		t.Fatalf("two issuances produced identical tokens")
	}

	c1, _ := c.DecodeClaims(t1)
	c2, _ := c.DecodeClaims(t2)
	if c1.ID == c2.ID {
		t.Fatalf("expected distinct jti values")
	}
}

func TestCodec_ExpiredTokenInvalid(t *testing.T) {
	c := newTestCodec(t, -time.Minute)

	tkn, err := c.Issue("acc_1", "a@x.com", domain.RoleStaff)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if c.Validate(tkn) {
		t.Fatalf("expired token should not validate")
	}
	if _, err := c.DecodeClaims(tkn); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_TamperedPayloadInvalid(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	tkn, _ := c.Issue("acc_1", "a@x.com", domain.RoleStaff)
	parts := strings.Split(tkn, ".")

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	forged := strings.Replace(string(payload), "STAFF", "ADMIN", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	if c.Validate(strings.Join(parts, ".")) {
		t.Fatalf("token with rewritten role claim should not validate")
	}
}

func TestCodec_TamperedHeaderInvalid(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	tkn, _ := c.Issue("acc_1", "a@x.com", domain.RoleStaff)
	parts := strings.Split(tkn, ".")
	parts[0] = base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))

	if c.Validate(strings.Join(parts, ".")) {
		t.Fatalf("token with rewritten header should not validate")
	}
}

func TestCodec_MalformedTokens(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	for _, tkn := range []string{
		"",
		"only-one-segment",
		"two.segments",
		"a.b.c.d",
		"!!!.???.***",
	} {
		if c.Validate(tkn) {
			t.Fatalf("Validate(%q) = true, want false", tkn)
		}
		if _, err := c.DecodeClaims(tkn); err != domain.ErrInvalidToken {
			t.Fatalf("DecodeClaims(%q): expected ErrInvalidToken, got %v", tkn, err)
		}
	}
}

func TestCodec_WrongSecretInvalid(t *testing.T) {
	signer := newTestCodec(t, time.Hour)
	other, err := NewCodec("a-completely-different-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	tkn, _ := signer.Issue("acc_1", "a@x.com", domain.RoleAdmin)
	if other.Validate(tkn) {
		t.Fatalf("token should not validate under a different secret")
	}
}

func TestCodec_SecretRotation(t *testing.T) {
	old, err := NewCodec("old-secret-now-retired", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	tkn, _ := old.Issue("acc_1", "a@x.com", domain.RoleReception)

	rotated := newTestCodec(t, time.Hour, "old-secret-now-retired")
	if !rotated.Validate(tkn) {
		t.Fatalf("token signed with the previous secret should still validate")
	}

	fresh, _ := rotated.Issue("acc_1", "a@x.com", domain.RoleReception)
	if !rotated.Validate(fresh) {
		t.Fatalf("token signed with the current secret should validate")
	}
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	if _, err := NewCodec("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
