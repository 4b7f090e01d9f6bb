package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/leaderboard/latest", func(c *fiber.Ctx) error { return c.SendString("board") })
	return app
}

func TestAuth(t *testing.T) {
	app := setupApp(Config{ApiKey: "secret", Skip: []string{"/health"}})

	tests := []struct {
		name string
		path string
		key  string
		want int
	}{
		{"Valid key", "/leaderboard/latest", "secret", fiber.StatusOK},
		{"Wrong key", "/leaderboard/latest", "nope", fiber.StatusUnauthorized},
		{"Missing key", "/leaderboard/latest", "", fiber.StatusUnauthorized},
		{"Skipped path", "/health", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(Header, tt.key)
			}
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := setupApp(Config{})
	resp, err := app.Test(httptest.NewRequest("GET", "/leaderboard/latest", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
