package runner

import (
	"backend-sprintlab/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	adminOnly := auth.RequireRole(auth.RoleAdmin)

	r.Post("/", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		var req Runner
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" || req.CoachID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and coach_id required")
		}
		created, err := svc.CreateRunner(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	// Coaches see their own roster, admins everyone's.
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		role, ok := auth.RoleFromCtx(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing role")
		}
		coachID := ""
		if role == auth.RoleCoach {
			coachID = auth.UserIDFromCtx(c)
		}
		runners, err := svc.ListRunners(c.Context(), coachID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(runners)
	})

	r.Delete("/:id", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		if err := svc.DeleteRunner(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/stats", authMiddleware, auth.RequireRole(auth.RoleCoach), func(c *fiber.Ctx) error {
		stats, err := svc.CoachStats(c.Context(), auth.UserIDFromCtx(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stats)
	})
}
