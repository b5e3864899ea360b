package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/http/dto"
	"github.com/research-hours/backend/internal/middleware"
	"github.com/research-hours/backend/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
	log     *zap.Logger
}

func NewReportHandler(reports *services.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, log: log}
}

// MyReport computes the caller's hours report. year=0 (or absent) covers all
// years; approved=true restricts to fully approved items.
func (h *ReportHandler) MyReport(c *fiber.Ctx) error {
	return h.report(c, middleware.GetUserID(c))
}

// UserReport is the admin view of another user's report.
func (h *ReportHandler) UserReport(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}
	return h.report(c, userID)
}

func (h *ReportHandler) report(c *fiber.Ctx, userID int64) error {
	year := 0
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid year"})
		}
		year = y
	}
	approvedOnly := c.Query("approved") == "true"

	report, err := h.reports.ForUser(c.Context(), userID, year, approvedOnly)
	if err != nil {
		h.log.Error("build report", zap.Int64("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: report})
}

// PublicationHours previews the credit for one stored publication.
func (h *ReportHandler) PublicationHours(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}
	res, err := h.reports.PublicationHours(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "publication not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: res})
}

// ProjectHours previews the share breakdown for one stored project.
func (h *ReportHandler) ProjectHours(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}
	res, err := h.reports.ProjectHours(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "project not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: res})
}
