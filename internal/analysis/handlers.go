package analysis

import (
	"errors"
	"io"

	"backend-sprintlab/internal/auth"
	"backend-sprintlab/internal/kinematics"
	"backend-sprintlab/internal/segment"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/runs", authMiddleware, func(c *fiber.Ctx) error {
		var req RunRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		run, err := svc.CreateRun(c.Context(), req)
		if err != nil {
			return statusError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(run)
	})

	// Demo txt upload: parse a whitespace-delimited series file and return
	// the samples with their metrics, without persisting anything.
	r.Post("/parse", authMiddleware, func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file required")
		}
		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		defer file.Close()

		series, err := parseSeriesFn(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := series.Validate(); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		metrics, err := kinematics.ComputeMetrics(series)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return c.JSON(fiber.Map{"samples": series, "metrics": metrics})
	})

	r.Get("/runs", authMiddleware, func(c *fiber.Ctx) error {
		records, err := svc.ListRuns(c.Context(), coachScope(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(records)
	})

	r.Get("/summary", authMiddleware, func(c *fiber.Ctx) error {
		sum, err := svc.Summarize(c.Context(), coachScope(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(sum)
	})

	r.Get("/runs/:id", authMiddleware, func(c *fiber.Ctx) error {
		run, err := svc.GetRun(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(run)
	})

	r.Get("/runs/:id/chart", authMiddleware, func(c *fiber.Ctx) error {
		field, err := kinematics.ParseField(c.Query("field"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		segmentKey := c.Query("segment")

		points, err := svc.ProjectSegment(c.Context(), c.Params("id"), segmentKey, field)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(fiber.Map{
			"field":     field,
			"kind":      field.DefaultKind(),
			"unit":      field.Unit(),
			"time_unit": "s",
			"points":    points,
		})
	})
}

func coachScope(c *fiber.Ctx) string {
	if role, ok := auth.RoleFromCtx(c); ok && role == auth.RoleCoach {
		return auth.UserIDFromCtx(c)
	}
	return ""
}

func statusError(err error) error {
	switch {
	case errors.Is(err, kinematics.ErrEmptySeries):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, kinematics.ErrInvalidField),
		errors.Is(err, kinematics.ErrInvalidSeries),
		errors.Is(err, segment.ErrUnknownSegment),
		errors.Is(err, errRunnerRequired):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

var parseSeriesFn = func(r io.Reader) (kinematics.Series, error) {
	return kinematics.ParseSeries(r)
}
