package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderName is the response header carrying the RayID.
	HeaderName = "X-Ray-ID"
	// LocalsKey is the Fiber locals key holding the RayID.
	LocalsKey = "ray_id"
)

// New returns a middleware assigning a RayID to every request.
// A valid incoming X-Ray-ID is kept so that callers can trace across services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}

// FromContext returns the RayID of the request, or "".
func FromContext(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsKey).(string)
	return id
}
