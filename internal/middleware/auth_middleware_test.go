package middleware_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"career-quiz/internal/dto"
	"career-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, tokenType string, expiresIn time.Duration) string {
	t.Helper()
	claims := dto.AuthClaims{
		UserID:    "user-1",
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name         string
		authHeader   string
		expectedCode int
		expectedBody string
	}{
		{name: "missing header", authHeader: "", expectedCode: fiber.StatusUnauthorized, expectedBody: "MISSING_AUTH_HEADER"},
		{name: "wrong scheme", authHeader: "Basic abc", expectedCode: fiber.StatusUnauthorized, expectedBody: "INVALID_AUTH_SCHEME"},
		{name: "empty token", authHeader: "Bearer ", expectedCode: fiber.StatusUnauthorized, expectedBody: "EMPTY_TOKEN"},
		{name: "bare scheme", authHeader: "Bearer", expectedCode: fiber.StatusUnauthorized, expectedBody: "EMPTY_TOKEN"},
		{name: "whitespace only token", authHeader: "Bearer    ", expectedCode: fiber.StatusUnauthorized, expectedBody: "EMPTY_TOKEN"},
		{name: "scheme prefix without space", authHeader: "BearerXYZ", expectedCode: fiber.StatusUnauthorized, expectedBody: "INVALID_AUTH_SCHEME"},
		{name: "garbage token", authHeader: "Bearer not.a.jwt", expectedCode: fiber.StatusUnauthorized, expectedBody: "INVALID_TOKEN"},
		{name: "wrong secret", authHeader: "Bearer " + signToken(t, "other", "access", time.Hour), expectedCode: fiber.StatusUnauthorized, expectedBody: "INVALID_TOKEN"},
		{name: "expired", authHeader: "Bearer " + signToken(t, testSecret, "access", -time.Hour), expectedCode: fiber.StatusUnauthorized, expectedBody: "INVALID_TOKEN"},
		{name: "refresh token", authHeader: "Bearer " + signToken(t, testSecret, "refresh", time.Hour), expectedCode: fiber.StatusForbidden, expectedBody: "INVALID_TOKEN_TYPE"},
		{name: "valid access token", authHeader: "Bearer " + signToken(t, testSecret, "access", time.Hour), expectedCode: fiber.StatusOK, expectedBody: "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/protected", middleware.Protected(middleware.NewTokenVerifier(testSecret)), func(c *fiber.Ctx) error {
				return c.SendString(c.Locals(middleware.UserIDKey).(string))
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			assert.Contains(t, string(body), tt.expectedBody)
		})
	}
}
