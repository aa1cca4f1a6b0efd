// Package rayid assigns a correlation ID to every request.
//
// The ID is stored in c.Locals("ray_id"), echoed in the X-Ray-Id response
// header, and picked up by logger.WithRayID and the alert sink so that a
// single webhook delivery can be traced across logs and operator alerts.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the request/response header carrying the ray id.
const Header = "X-Ray-Id"

// New creates the ray id middleware. An inbound X-Ray-Id is honored so that
// upstream proxies can propagate their own correlation ids.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
