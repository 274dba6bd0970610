package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports connectivity to a backing store.
type Pinger func(ctx context.Context) error

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	postgres Pinger
	redis    Pinger
}

// NewHealthHandler constructs handler. Either pinger may be nil when the
// backend is not configured.
func NewHealthHandler(postgres, redis Pinger) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redis}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	checks["postgres"] = runCheck(c.UserContext(), h.postgres, &healthy)
	checks["redis"] = runCheck(c.UserContext(), h.redis, &healthy)

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"checks": checks})
}

func runCheck(ctx context.Context, ping Pinger, healthy *bool) string {
	if ping == nil {
		return "skipped"
	}
	if err := ping(ctx); err != nil {
		*healthy = false
		return "fail: " + err.Error()
	}
	return "ok"
}
