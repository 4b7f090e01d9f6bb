package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is the response header carrying the request id.
	Header = "X-Ray-ID"
	// LocalsKey is the fiber locals key the id is stored under.
	LocalsKey = "ray_id"
)

// New creates a middleware that assigns every request an id. An id supplied by the
// client in the same header is kept.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
