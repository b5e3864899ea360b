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

// AdminHandler covers the university-only management surface: admin grants,
// organization structure and the permission audit trail.
type AdminHandler struct {
	roles     *services.RoleService
	roleRepo  *repositories.RoleRepo
	orgRepo   *repositories.OrgRepo
	auditRepo *repositories.AuditRepo
	log       *zap.Logger
}

func NewAdminHandler(
	roles *services.RoleService,
	roleRepo *repositories.RoleRepo,
	orgRepo *repositories.OrgRepo,
	auditRepo *repositories.AuditRepo,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		roles:     roles,
		roleRepo:  roleRepo,
		orgRepo:   orgRepo,
		auditRepo: auditRepo,
		log:       log,
	}
}

// Roles

func (h *AdminHandler) GrantRole(c *fiber.Ctx) error {
	var req dto.GrantRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.UserID == 0 || req.RoleLevel == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "user_id and role_level are required"})
	}

	role := &models.AdminRole{
		UserID:             req.UserID,
		RoleLevel:          req.RoleLevel,
		OrganizationUnitID: req.OrganizationUnitID,
		DivisionID:         req.DivisionID,
		Notes:              req.Notes,
	}
	if err := h.roles.Grant(c.Context(), middleware.GetUserID(c), role); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: role})
}

func (h *AdminHandler) ListRoles(c *fiber.Ctx) error {
	filter := repositories.RoleFilter{ActiveOnly: c.Query("active") == "true"}
	if v := c.Query("level"); v != "" {
		filter.Level = &v
	}
	if v := c.Query("unit_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.UnitID = &id
		}
	}
	if v := c.Query("division_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.DivisionID = &id
		}
	}

	roles, err := h.roleRepo.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list roles", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: roles})
}

func (h *AdminHandler) RevokeRole(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid role id"})
	}
	if err := h.roles.Revoke(c.Context(), middleware.GetUserID(c), id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *AdminHandler) ToggleRole(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid role id"})
	}
	active, err := h.roles.Toggle(c.Context(), middleware.GetUserID(c), id)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{"is_active": active}})
}

func (h *AdminHandler) DeleteRole(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid role id"})
	}
	if err := h.roles.Delete(c.Context(), middleware.GetUserID(c), id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *AdminHandler) PermissionLogs(c *fiber.Ctx) error {
	limit, offset := 50, 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	logs, err := h.auditRepo.ListPermissionLogs(c.Context(), limit, offset)
	if err != nil {
		h.log.Error("list permission logs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: logs})
}

// Organization structure

func (h *AdminHandler) ListUnits(c *fiber.Ctx) error {
	units, err := h.orgRepo.ListUnits(c.Context(), c.Query("active") == "true")
	if err != nil {
		h.log.Error("list units", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: units})
}

func (h *AdminHandler) CreateUnit(c *fiber.Ctx) error {
	var req dto.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "name is required"})
	}
	if req.UnitType != models.UnitTypeFaculty && req.UnitType != models.UnitTypeOffice {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unit_type must be faculty or office"})
	}

	unit := &models.OrganizationUnit{
		Name:        req.Name,
		Code:        req.Code,
		UnitType:    req.UnitType,
		Description: req.Description,
		IsActive:    true,
	}
	if err := h.orgRepo.CreateUnit(c.Context(), unit); err != nil {
		h.log.Error("create unit", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: unit})
}

func (h *AdminHandler) UpdateUnit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid unit id"})
	}
	unit, err := h.orgRepo.GetUnit(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "unit not found"})
	}

	var req dto.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Name != "" {
		unit.Name = req.Name
	}
	if req.Code != nil {
		unit.Code = req.Code
	}
	if req.UnitType != "" {
		unit.UnitType = req.UnitType
	}
	if req.Description != nil {
		unit.Description = req.Description
	}
	if req.IsActive != nil {
		unit.IsActive = *req.IsActive
	}

	if err := h.orgRepo.UpdateUnit(c.Context(), unit); err != nil {
		h.log.Error("update unit", zap.Int64("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: unit})
}

func (h *AdminHandler) ListDivisions(c *fiber.Ctx) error {
	var unitID *int64
	if v := c.Query("unit_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			unitID = &id
		}
	}

	divisions, err := h.orgRepo.ListDivisions(c.Context(), unitID)
	if err != nil {
		h.log.Error("list divisions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: divisions})
}

func (h *AdminHandler) CreateDivision(c *fiber.Ctx) error {
	var req dto.DivisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Name == "" || req.OrganizationUnitID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "name and organization_unit_id are required"})
	}

	unit, err := h.orgRepo.GetUnit(c.Context(), req.OrganizationUnitID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "organization unit not found"})
	}
	if unit.UnitType != models.UnitTypeFaculty {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "divisions can only belong to faculty units"})
	}

	division := &models.Division{
		Name:               req.Name,
		Code:               req.Code,
		OrganizationUnitID: req.OrganizationUnitID,
		Description:        req.Description,
		IsActive:           true,
	}
	if err := h.orgRepo.CreateDivision(c.Context(), division); err != nil {
		h.log.Error("create division", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: division})
}

func (h *AdminHandler) UpdateDivision(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid division id"})
	}
	division, err := h.orgRepo.GetDivision(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "division not found"})
	}

	var req dto.DivisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Name != "" {
		division.Name = req.Name
	}
	if req.Code != nil {
		division.Code = req.Code
	}
	if req.Description != nil {
		division.Description = req.Description
	}
	if req.IsActive != nil {
		division.IsActive = *req.IsActive
	}

	if err := h.orgRepo.UpdateDivision(c.Context(), division); err != nil {
		h.log.Error("update division", zap.Int64("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: division})
}
