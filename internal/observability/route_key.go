package observability

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// UnmatchedRoute is the metrics key shared by every request that hit no registered route.
const UnmatchedRoute = "<unmatched>"

const unmatchedLocal = "observability.unmatched"

// MarkUnmatched flags c when err is Fiber's own not-found or method-not-allowed
// error. Handlers report missing records through apperrors, never through fiber.Error.
func MarkUnmatched(c *fiber.Ctx, err error) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) &&
		(fiberErr.Code == fiber.StatusNotFound || fiberErr.Code == fiber.StatusMethodNotAllowed) {
		c.Locals(unmatchedLocal, true)
	}
}

// RouteKey returns the registered pattern that served c so ids and path
// scanners do not grow the counters without bound.
func RouteKey(c *fiber.Ctx) string {
	if unmatched, _ := c.Locals(unmatchedLocal).(bool); unmatched {
		return UnmatchedRoute
	}
	if path := c.Route().Path; path != "" {
		return path
	}
	return UnmatchedRoute
}
