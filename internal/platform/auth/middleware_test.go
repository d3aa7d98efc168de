package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testSigningKey = []byte("test-secret-key-for-unit-tests-only")

func createTestToken(t *testing.T, claims Claims, key []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return tokenStr
}

func validClaims() Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "clinician-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: []string{"physician"},
	}
}

func run(t *testing.T, cfg JWTConfig, path, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	var seen echo.Context
	err := JWTMiddleware(cfg)(func(c echo.Context) error {
		seen = c
		return c.String(http.StatusOK, "ok")
	})(c)
	return seen, err
}

func expectUnauthorized(t *testing.T, err error) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	_, err := run(t, JWTConfig{SigningKey: testSigningKey}, "/api/patients", "")
	expectUnauthorized(t, err)
}

func TestJWTMiddleware_InvalidFormat(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", "Token abc123"},
		{"missing token", "Bearer"},
		{"empty value", "Bearer "},
		{"basic auth", "Basic dXNlcjpwYXNz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, JWTConfig{SigningKey: testSigningKey}, "/api/patients", tt.header)
			expectUnauthorized(t, err)
		})
	}
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	tok := createTestToken(t, validClaims(), testSigningKey)
	c, err := run(t, JWTConfig{SigningKey: testSigningKey}, "/api/patients", "Bearer "+tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := c.Request().Context()
	if UserIDFromContext(ctx) != "clinician-1" {
		t.Errorf("user id = %q", UserIDFromContext(ctx))
	}
	if roles := RolesFromContext(ctx); len(roles) != 1 || roles[0] != "physician" {
		t.Errorf("roles = %v", roles)
	}
}

func TestJWTMiddleware_RejectedTokens(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil
	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"

	tests := []struct {
		name  string
		token string
		cfg   JWTConfig
	}{
		{"expired", createTestToken(t, expired, testSigningKey), JWTConfig{SigningKey: testSigningKey}},
		{"no expiry", createTestToken(t, noExpiry, testSigningKey), JWTConfig{SigningKey: testSigningKey}},
		{"wrong key", createTestToken(t, validClaims(), []byte("another-key-another-key-another-key")), JWTConfig{SigningKey: testSigningKey}},
		{"wrong issuer", createTestToken(t, wrongIssuer, testSigningKey), JWTConfig{SigningKey: testSigningKey, Issuer: "ehr-dashboard"}},
		{"garbage", "not.a.jwt", JWTConfig{SigningKey: testSigningKey}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.cfg, "/api/patients", "Bearer "+tt.token)
			expectUnauthorized(t, err)
		})
	}
}

func TestJWTMiddleware_RejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	_, err = run(t, JWTConfig{SigningKey: testSigningKey}, "/api/patients", "Bearer "+tok)
	expectUnauthorized(t, err)
}

func TestJWTMiddleware_Skipper(t *testing.T) {
	cfg := JWTConfig{SigningKey: testSigningKey, Skipper: AuthSkipper}
	for _, path := range []string{"/health", "/health/db"} {
		if _, err := run(t, cfg, path, ""); err != nil {
			t.Errorf("%s should be public, got %v", path, err)
		}
	}
	_, err := run(t, cfg, "/api/patients", "")
	expectUnauthorized(t, err)
}

func TestIsPublicPath(t *testing.T) {
	if !IsPublicPath("/health") || IsPublicPath("/api/dashboard") {
		t.Error("unexpected public path classification")
	}
}
