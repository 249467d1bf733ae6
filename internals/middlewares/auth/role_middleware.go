package auth

import (
	"github.com/gofiber/fiber/v2"

	"mms_backend/internals/constants"
)

// RequireRoles menolak request jika role di token tidak termasuk allowed.
func RequireRoles(allowed ...string) fiber.Handler {
	allowSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowSet[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocRole).(string)
		if role == "" {
			return fiber.NewError(fiber.StatusForbidden, "Role tidak ditemukan di token")
		}
		if _, ok := allowSet[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Akses ditolak untuk role ini")
		}
		return c.Next()
	}
}

// IsAdmin: shortcut untuk route administratif.
func IsAdmin() fiber.Handler {
	return RequireRoles(constants.RoleAdmin)
}
