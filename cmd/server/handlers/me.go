package handlers

import "github.com/gofiber/fiber/v2"

// Me echoes the identity baked into the caller's token. Handy for checking
// a token without touching any data.
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	username := c.Locals("username").(string)
	fullname, _ := c.Locals("fullname").(string)
	return c.JSON(fiber.Map{
		"uid":      userID,
		"username": username,
		"fullname": fullname,
	})
}
