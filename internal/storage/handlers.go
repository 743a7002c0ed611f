package storage

import (
	"errors"
	"io"

	"backend-sprintlab/internal/auth"
	"backend-sprintlab/internal/segment"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/videos", authMiddleware, func(c *fiber.Ctx) error {
		sessionID := c.FormValue("session_id")
		segmentKey := c.FormValue("segment")
		if sessionID == "" || segmentKey == "" {
			return fiber.NewError(fiber.StatusBadRequest, "session_id and segment required")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file required")
		}
		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		contentType := fileHeader.Header.Get("Content-Type")
		obj, stored, err := svc.SaveVideo(c.Context(), auth.UserIDFromCtx(c), sessionID, segmentKey,
			fileHeader.Filename, contentType, data)
		if err != nil {
			if errors.Is(err, segment.ErrUnknownSegment) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !stored {
			return c.JSON(fiber.Map{"stored": false})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"stored": true, "object": obj})
	})

	r.Get("/sessions/:id/status", authMiddleware, func(c *fiber.Ctx) error {
		received, pending, err := svc.SessionStatus(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"received": received, "pending": pending})
	})
}
