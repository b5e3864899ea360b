package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/http/dto"
	"github.com/research-hours/backend/internal/middleware"
	"github.com/research-hours/backend/internal/models"
	"github.com/research-hours/backend/internal/repositories"
	"github.com/research-hours/backend/internal/services"
)

// ApprovalHandler is the admin desk: pending queues, scoped item lists and
// the approval actions.
type ApprovalHandler struct {
	approvals       *services.ApprovalService
	publicationRepo *repositories.PublicationRepo
	projectRepo     *repositories.ProjectRepo
	activityRepo    *repositories.ActivityRepo
	log             *zap.Logger
}

func NewApprovalHandler(
	approvals *services.ApprovalService,
	publicationRepo *repositories.PublicationRepo,
	projectRepo *repositories.ProjectRepo,
	activityRepo *repositories.ActivityRepo,
	log *zap.Logger,
) *ApprovalHandler {
	return &ApprovalHandler{
		approvals:       approvals,
		publicationRepo: publicationRepo,
		projectRepo:     projectRepo,
		activityRepo:    activityRepo,
		log:             log,
	}
}

// Pending returns the items waiting on the caller's desk, oldest first.
func (h *ApprovalHandler) Pending(c *fiber.Ctx) error {
	kind, ok := itemKind(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown item kind"})
	}

	actor := middleware.GetActor(c)
	sc := services.ScopeOf(actor)

	var (
		data any
		err  error
	)
	switch kind {
	case models.KindPublication:
		data, err = h.publicationRepo.ListPendingForActor(c.Context(), sc)
	case models.KindProject:
		data, err = h.projectRepo.ListPendingForActor(c.Context(), sc)
	case models.KindActivity:
		data, err = h.activityRepo.ListPendingForActor(c.Context(), sc)
	}
	if err != nil {
		h.log.Error("list pending", zap.String("kind", kind), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: data})
}

// ListScoped returns every item visible under the caller's scope, with the
// lower-desk pending rows filtered out.
func (h *ApprovalHandler) ListScoped(c *fiber.Ctx) error {
	kind, ok := itemKind(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown item kind"})
	}

	actor := middleware.GetActor(c)
	sc := services.ScopeOf(actor)
	f := scopedFilter(c)

	var (
		data any
		err  error
	)
	switch kind {
	case models.KindPublication:
		data, err = h.publicationRepo.ListScoped(c.Context(), sc, f)
	case models.KindProject:
		data, err = h.projectRepo.ListScoped(c.Context(), sc, f)
	case models.KindActivity:
		data, err = h.activityRepo.ListScoped(c.Context(), sc, f)
	}
	if err != nil {
		h.log.Error("list scoped", zap.String("kind", kind), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: data})
}

func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	kind, ok := itemKind(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown item kind"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}

	res, err := h.approvals.Approve(c.Context(), middleware.GetActor(c), kind, id)
	if err != nil {
		h.log.Error("approve", zap.String("kind", kind), zap.Int64("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	if !res.OK {
		return c.Status(fiber.StatusConflict).JSON(res)
	}
	return c.JSON(res)
}

func (h *ApprovalHandler) Return(c *fiber.Ctx) error {
	kind, ok := itemKind(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown item kind"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}

	var req dto.ReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	res, err := h.approvals.Return(c.Context(), middleware.GetActor(c), kind, id, req.Reason)
	if err != nil {
		h.log.Error("return", zap.String("kind", kind), zap.Int64("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	if !res.OK {
		return c.Status(fiber.StatusConflict).JSON(res)
	}
	return c.JSON(res)
}

func (h *ApprovalHandler) Reject(c *fiber.Ctx) error {
	kind, ok := itemKind(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown item kind"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}

	res, err := h.approvals.Reject(c.Context(), middleware.GetActor(c), kind, id)
	if err != nil {
		h.log.Error("reject", zap.String("kind", kind), zap.Int64("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	if !res.OK {
		return c.Status(fiber.StatusConflict).JSON(res)
	}
	return c.JSON(res)
}

// ApproveAll drains the caller's pending queue for one kind in a single run.
func (h *ApprovalHandler) ApproveAll(c *fiber.Ctx) error {
	kind, ok := itemKind(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown item kind"})
	}

	res, err := h.approvals.ApproveAllPending(c.Context(), middleware.GetActor(c), kind)
	if err != nil {
		h.log.Error("approve all", zap.String("kind", kind), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: res})
}

func scopedFilter(c *fiber.Ctx) repositories.ItemFilter {
	var f repositories.ItemFilter
	if v := c.Query("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			f.Year = &y
		}
	}
	if v := c.Query("status"); v != "" {
		f.Status = &v
	}
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.OwnerID = &id
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Offset = n
		}
	}
	return f
}
