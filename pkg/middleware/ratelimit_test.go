package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiter_Allow(t *testing.T) {
	l := NewIPRateLimiter(0.001, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "buckets are per ip")
}

func TestIPRateLimiter_Handler(t *testing.T) {
	l := NewIPRateLimiter(0.001, 1)
	app := fiber.New()
	app.Get("/", l.Handler(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("limited")
	}), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	bodies := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		buf := make([]byte, 16)
		n, _ := resp.Body.Read(buf)
		bodies = append(bodies, string(buf[:n]))
	}
	assert.Equal(t, []string{"ok", "limited"}, bodies)
}
