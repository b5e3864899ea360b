package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/config"
	"github.com/research-hours/backend/internal/http/dto"
	"github.com/research-hours/backend/internal/middleware"
	"github.com/research-hours/backend/internal/repositories"
)

type UserHandler struct {
	userRepo *repositories.UserRepo
	cfg      *config.Config
	log      *zap.Logger
}

func NewUserHandler(userRepo *repositories.UserRepo, cfg *config.Config, log *zap.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, cfg: cfg, log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)

	resp := dto.MeResponse{
		User:           actor.User,
		Roles:          actor.Roles,
		EffectiveLevel: actor.EffectiveLevel(),
		PlainUserMode:  actor.PlainUserMode,
	}
	if actor.ActAs != nil {
		resp.ActAsRoleID = &actor.ActAs.ID
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: resp})
}

// SwitchContext persists the act-as choice. A role_id must belong to the
// caller's own active grants; plain_user_mode true drops admin capabilities
// for the session regardless of role_id.
func (h *UserHandler) SwitchContext(c *fiber.Ctx) error {
	var req dto.SwitchContextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	actor := middleware.GetActor(c)
	if req.RoleID != nil {
		owned := false
		for _, r := range actor.Roles {
			if r.ID == *req.RoleID {
				owned = true
				break
			}
		}
		if !owned {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "role does not belong to you or is inactive"})
		}
	}

	if err := h.userRepo.SetActAs(c.Context(), actor.User.ID, req.RoleID, req.PlainUserMode); err != nil {
		h.log.Error("switch context", zap.Int64("user_id", actor.User.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	actor := middleware.GetActor(c)
	user := actor.User
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.EmployeeID != nil {
		user.EmployeeID = req.EmployeeID
	}
	if req.OrganizationUnitID != nil {
		user.OrganizationUnitID = req.OrganizationUnitID
	}
	if req.DivisionID != nil {
		user.DivisionID = req.DivisionID
	}

	if err := h.userRepo.UpdateProfile(c.Context(), user); err != nil {
		h.log.Error("update profile", zap.Int64("user_id", user.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: user})
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "password must be at least 8 characters"})
	}

	actor := middleware.GetActor(c)
	if !actor.User.CheckPassword(req.CurrentPassword) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "current password is incorrect"})
	}

	user := actor.User
	if err := user.SetPassword(req.NewPassword, h.cfg.BcryptCost); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	if err := h.userRepo.SetPasswordHash(c.Context(), user.ID, user.PasswordHash); err != nil {
		h.log.Error("set password hash", zap.Int64("user_id", user.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

// ListUsers serves the admin user directory.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	filter := repositories.UserFilter{ActiveOnly: c.Query("active") == "true"}
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
	if v := c.Query("q"); v != "" {
		filter.Search = &v
	}

	users, err := h.userRepo.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: users})
}
