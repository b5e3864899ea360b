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

// ItemHandler covers the owner-facing surface of all three item kinds:
// create, edit, submit, delete and the personal lists.
type ItemHandler struct {
	submissions     *services.SubmissionService
	publicationRepo *repositories.PublicationRepo
	projectRepo     *repositories.ProjectRepo
	activityRepo    *repositories.ActivityRepo
	auditRepo       *repositories.AuditRepo
	userRepo        *repositories.UserRepo
	log             *zap.Logger
}

func NewItemHandler(
	submissions *services.SubmissionService,
	publicationRepo *repositories.PublicationRepo,
	projectRepo *repositories.ProjectRepo,
	activityRepo *repositories.ActivityRepo,
	auditRepo *repositories.AuditRepo,
	userRepo *repositories.UserRepo,
	log *zap.Logger,
) *ItemHandler {
	return &ItemHandler{
		submissions:     submissions,
		publicationRepo: publicationRepo,
		projectRepo:     projectRepo,
		activityRepo:    activityRepo,
		auditRepo:       auditRepo,
		userRepo:        userRepo,
		log:             log,
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// itemKind maps the :kind route segment to the stored kind name.
func itemKind(c *fiber.Ctx) (string, bool) {
	switch c.Params("kind") {
	case "publications":
		return models.KindPublication, true
	case "projects":
		return models.KindProject, true
	case "activities":
		return models.KindActivity, true
	}
	return "", false
}

func ownerFilter(c *fiber.Ctx) repositories.ItemFilter {
	ownerID := middleware.GetUserID(c)
	f := repositories.ItemFilter{OwnerID: &ownerID}
	if v := c.Query("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			f.Year = &y
		}
	}
	if v := c.Query("status"); v != "" {
		f.Status = &v
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

// Publications

func (h *ItemHandler) CreatePublication(c *fiber.Ctx) error {
	var req dto.PublicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Title == "" || req.Type == "" || req.Year == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "title, type and year are required"})
	}

	p := publicationFromRequest(&req)
	p.UserID = middleware.GetUserID(c)
	if err := h.submissions.CreatePublication(c.Context(), p, req.Submit); err != nil {
		h.log.Error("create publication", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: p})
}

func (h *ItemHandler) UpdatePublication(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}
	var req dto.PublicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	p := publicationFromRequest(&req)
	p.ID = id
	if err := h.submissions.UpdatePublication(c.Context(), middleware.GetUserID(c), p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: p})
}

func (h *ItemHandler) GetPublication(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}
	p, err := h.publicationRepo.GetByID(c.Context(), id)
	if err != nil || p.UserID != middleware.GetUserID(c) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "publication not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: p})
}

func (h *ItemHandler) ListMyPublications(c *fiber.Ctx) error {
	items, err := h.publicationRepo.List(c.Context(), ownerFilter(c))
	if err != nil {
		h.log.Error("list publications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: items})
}

// Projects

func (h *ItemHandler) CreateProject(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Title == "" || req.Level == "" || req.StartYear == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "title, project_level and start_year are required"})
	}

	p := projectFromRequest(&req)
	p.UserID = middleware.GetUserID(c)
	if err := h.submissions.CreateProject(c.Context(), p, req.Submit); err != nil {
		h.log.Error("create project", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: p})
}

func (h *ItemHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	p := projectFromRequest(&req)
	p.ID = id
	if err := h.submissions.UpdateProject(c.Context(), middleware.GetUserID(c), p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: p})
}

func (h *ItemHandler) GetProject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}
	p, err := h.projectRepo.GetByID(c.Context(), id)
	if err != nil || p.UserID != middleware.GetUserID(c) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "project not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: p})
}

func (h *ItemHandler) ListMyProjects(c *fiber.Ctx) error {
	items, err := h.projectRepo.List(c.Context(), ownerFilter(c))
	if err != nil {
		h.log.Error("list projects", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: items})
}

// Activities

func (h *ItemHandler) CreateActivity(c *fiber.Ctx) error {
	var req dto.ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Type == "" || req.Year == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "activity_type and year are required"})
	}

	a := activityFromRequest(&req)
	a.UserID = middleware.GetUserID(c)
	if err := h.submissions.CreateActivity(c.Context(), a, req.Submit); err != nil {
		h.log.Error("create activity", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: a})
}

func (h *ItemHandler) UpdateActivity(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}
	var req dto.ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	a := activityFromRequest(&req)
	a.ID = id
	if err := h.submissions.UpdateActivity(c.Context(), middleware.GetUserID(c), a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: a})
}

func (h *ItemHandler) GetActivity(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}
	a, err := h.activityRepo.GetByID(c.Context(), id)
	if err != nil || a.UserID != middleware.GetUserID(c) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "activity not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: a})
}

func (h *ItemHandler) ListMyActivities(c *fiber.Ctx) error {
	items, err := h.activityRepo.List(c.Context(), ownerFilter(c))
	if err != nil {
		h.log.Error("list activities", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: items})
}

// Kind-generic operations

func (h *ItemHandler) Submit(c *fiber.Ctx) error {
	kind, ok := itemKind(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown item kind"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}

	newStatus, err := h.submissions.Submit(c.Context(), middleware.GetUserID(c), kind, id)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{"new_status": newStatus}})
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	kind, ok := itemKind(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown item kind"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}

	if err := h.submissions.Delete(c.Context(), middleware.GetUserID(c), kind, id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// itemOwnerID resolves the owning user of one item.
func (h *ItemHandler) itemOwnerID(c *fiber.Ctx, kind string, id int64) (int64, error) {
	switch kind {
	case models.KindPublication:
		p, err := h.publicationRepo.GetByID(c.Context(), id)
		if err != nil {
			return 0, err
		}
		return p.UserID, nil
	case models.KindProject:
		p, err := h.projectRepo.GetByID(c.Context(), id)
		if err != nil {
			return 0, err
		}
		return p.UserID, nil
	default:
		a, err := h.activityRepo.GetByID(c.Context(), id)
		if err != nil {
			return 0, err
		}
		return a.UserID, nil
	}
}

// History returns the approval trail of one item: the owner's own items, or
// any item whose owner falls under the caller's admin scope.
func (h *ItemHandler) History(c *fiber.Ctx) error {
	kind, ok := itemKind(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown item kind"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}

	ownerID, err := h.itemOwnerID(c, kind, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "item not found"})
	}
	if ownerID != middleware.GetUserID(c) {
		owner, err := h.userRepo.GetByID(c.Context(), ownerID)
		if err != nil || !middleware.GetActor(c).CanModerate(owner) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "item not found"})
		}
	}

	logs, err := h.auditRepo.ListApprovalsByItem(c.Context(), kind, id, 100, 0)
	if err != nil {
		h.log.Error("list approval logs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: logs})
}

func publicationFromRequest(req *dto.PublicationRequest) *models.Publication {
	return &models.Publication{
		Year:            req.Year,
		Title:           req.Title,
		Type:            req.Type,
		Quartile:        req.Quartile,
		DomesticPoints:  req.DomesticPoints,
		PatentStage:     req.PatentStage,
		Republished:     req.Republished,
		TotalAuthors:    req.TotalAuthors,
		AuthorRole:      req.AuthorRole,
		ContributionPct: req.ContributionPct,
		Journal:         req.Journal,
		DOI:             req.DOI,
	}
}

func projectFromRequest(req *dto.ProjectRequest) *models.Project {
	status := req.Status
	if status == "" {
		status = models.ProjectOngoing
	}
	return &models.Project{
		Title:         req.Title,
		Level:         req.Level,
		Role:          req.Role,
		Status:        status,
		StartYear:     req.StartYear,
		EndYear:       req.EndYear,
		FundingAmount: req.FundingAmount,
		DurationYears: req.DurationYears,
		TotalMembers:  req.TotalMembers,
		Code:          req.Code,
	}
}

func activityFromRequest(req *dto.ActivityRequest) *models.Activity {
	return &models.Activity{
		Year:        req.Year,
		Type:        req.Type,
		Description: req.Description,
		Quantity:    req.Quantity,
		Venue:       req.Venue,
	}
}
