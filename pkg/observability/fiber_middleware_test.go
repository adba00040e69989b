package observability

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareTracesRequests(t *testing.T) {
	p, err := InitTelemetry(context.Background(), Config{ServiceName: "carepulse-test", TracingEnabled: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	app := fiber.New()
	app.Use(Middleware(MiddlewareConfig{SkipPaths: []string{"/livez"}}))
	app.Get("/livez", func(c fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api/v1/appointments/:id", func(c fiber.Ctx) error { return c.SendString(c.Params("id")) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/appointments/abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, resp.Header.Get("X-Trace-Id"), 32)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/livez", nil))
	require.NoError(t, err)
	require.Empty(t, resp.Header.Get("X-Trace-Id"))
}

func TestShutdownNilProvider(t *testing.T) {
	var p *Provider
	require.NoError(t, p.Shutdown(context.Background()))
}
