package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func invokeAuth(t *testing.T, secret, authHeader string) (echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/points", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Auth(secret)(next)(c)
	return c, err
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", he.Code)
	}
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	token, err := IssueToken(testSecret, "ann@x.com", "Ann", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, err := invokeAuth(t, testSecret, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if got := c.Get("email"); got != "ann@x.com" {
		t.Errorf("email claim not injected, got %v", got)
	}
	if got := c.Get("name"); got != "Ann" {
		t.Errorf("name claim not injected, got %v", got)
	}
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	token, _ := IssueToken(testSecret, "ann@x.com", "Ann", time.Hour)

	if _, err := invokeAuth(t, testSecret, "bearer "+token); err != nil {
		t.Errorf("lowercase scheme must be accepted, got %v", err)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := invokeAuth(t, testSecret, "")
	assertUnauthorized(t, err)
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic abc123", "just-a-token"} {
		_, err := invokeAuth(t, testSecret, header)
		assertUnauthorized(t, err)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	token, _ := IssueToken("other-secret", "ann@x.com", "Ann", time.Hour)
	_, err := invokeAuth(t, testSecret, "Bearer "+token)
	assertUnauthorized(t, err)
}

func TestAuth_ExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"email": "ann@x.com",
		"name":  "Ann",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, invokeErr := invokeAuth(t, testSecret, "Bearer "+token)
	assertUnauthorized(t, invokeErr)
}

func TestAuth_TokenWithoutEmailClaim(t *testing.T) {
	claims := jwt.MapClaims{
		"name": "Ann",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, invokeErr := invokeAuth(t, testSecret, "Bearer "+token)
	assertUnauthorized(t, invokeErr)
}

func TestAuth_RejectsUnexpectedSigningMethod(t *testing.T) {
	// alg=none style token: header claims no signature.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "ann@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, invokeErr := invokeAuth(t, testSecret, "Bearer "+signed)
	assertUnauthorized(t, invokeErr)
}
