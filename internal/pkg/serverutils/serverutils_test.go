package serverutils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	SessionId string `json:"session_id" validate:"omitempty,uuid"`
	Message   string `json:"message" validate:"required,max=5"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Message: "hi"}))

	err := ValidateRequest(sampleRequest{SessionId: "nope", Message: "too long"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"session_id": "must be a valid UUID",
		"message":    "must be at most 5 characters",
	}, verr.Fields)

	err = ValidateRequest(sampleRequest{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["message"])
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/", JwtMiddleware(secret), func(c *fiber.Ctx) error {
		subject, _ := c.Locals("subject").(string)
		return c.SendString(subject)
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	app := protectedApp("s3cret")
	valid := signed(t, "s3cret", jwt.MapClaims{"sub": "crm", "exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
		query  string
		status int
		body   string
	}{
		{name: "missing", status: fiber.StatusUnauthorized},
		{name: "bearer", header: "Bearer " + valid, status: fiber.StatusOK, body: "crm"},
		{name: "query", query: "?token=" + valid, status: fiber.StatusOK, body: "crm"},
		{name: "wrong secret", header: "Bearer " + signed(t, "other", jwt.MapClaims{"sub": "x"}), status: fiber.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signed(t, "s3cret", jwt.MapClaims{"sub": "x", "exp": time.Now().Add(-time.Hour).Unix()}), status: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.body != "" {
				b, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.body, string(b))
			}
		})
	}
}

func TestJwtMiddleware_OpenWithoutSecret(t *testing.T) {
	resp, err := protectedApp("").Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "session not found") })
	app.Get("/invalid", func(c *fiber.Ctx) error { return ValidateRequest(sampleRequest{}) })

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "session not found", body.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/invalid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body = BaseResponse[any]{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "is required", body.Errors["message"])
}
