package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(handler fiber.Handler, middleware ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	for _, m := range middleware {
		app.Use(m)
	}
	app.Get("/", handler)
	return app
}

func decode(t *testing.T, app *fiber.App, auth string) (int, Response[any]) {
	t.Helper()
	r := httptest.NewRequest("GET", "/", nil)
	if auth != "" {
		r.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(r)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body Response[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"app error", BadRequest("Document is empty", errors.New("no blocks")), 400, "Document is empty"},
		{"fiber error", fiber.NewError(fiber.StatusNotFound, "missing"), 404, "missing"},
		{"unknown error", errors.New("db password leaked"), 500, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(func(*fiber.Ctx) error { return tt.err })

			code, body := decode(t, app, "")

			assert.Equal(t, tt.wantCode, code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Text string `validate:"required"`
		TopK int    `validate:"gte=0,lte=10"`
	}

	assert.NoError(t, ValidateRequest(req{Text: "x", TopK: 3}))

	err := ValidateRequest(req{TopK: 11})
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "req.Text failed on required")
	assert.Contains(t, appErr.Message, "req.TopK failed on lte")
}

func TestJwtMiddleware(t *testing.T) {
	const secret = "test-secret"
	sign := func(key string, method jwt.SigningMethod) string {
		tok := jwt.NewWithClaims(method, jwt.MapClaims{
			"sub": "editor-42",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		s, err := tok.SignedString([]byte(key))
		require.NoError(t, err)
		return s
	}

	app := newApp(func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", c.Locals("subject")))
	}, JwtMiddleware(secret))

	tests := []struct {
		name     string
		auth     string
		wantCode int
	}{
		{"valid", "Bearer " + sign(secret, jwt.SigningMethodHS256), 200},
		{"missing", "", 401},
		{"wrong secret", "Bearer " + sign("other", jwt.SigningMethodHS256), 401},
		{"wrong algorithm", "Bearer " + sign(secret, jwt.SigningMethodHS512), 401},
		{"not bearer", "Basic abc", 401},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := decode(t, app, tt.auth)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantCode == 200 {
				assert.Equal(t, "editor-42", body.Data)
			}
		})
	}
}

func TestJwtMiddleware_QueryTokenOnlyForUpgrades(t *testing.T) {
	const secret = "test-secret"
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "editor-7"})
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)

	app := newApp(func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", c.Locals("subject")))
	}, JwtMiddleware(secret))

	tests := []struct {
		name     string
		upgrade  bool
		wantCode int
	}{
		{"websocket handshake", true, 200},
		{"plain request", false, 401},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/?token="+signed, nil)
			if tt.upgrade {
				r.Header.Set("Connection", "Upgrade")
				r.Header.Set("Upgrade", "websocket")
			}
			resp, err := app.Test(r)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}
