package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/events"
	"github.com/research-hours/backend/internal/models"
	"github.com/research-hours/backend/internal/repositories"
)

// RoleService manages admin role grants. Every mutation validates the
// level/scope pairing, refuses to leave an occupied scope without any admin,
// and writes a permission log entry.
type RoleService struct {
	roleRepo  *repositories.RoleRepo
	userRepo  *repositories.UserRepo
	orgRepo   *repositories.OrgRepo
	auditRepo *repositories.AuditRepo
	publisher events.Publisher
	log       *zap.Logger
}

func NewRoleService(
	roleRepo *repositories.RoleRepo,
	userRepo *repositories.UserRepo,
	orgRepo *repositories.OrgRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *RoleService {
	return &RoleService{
		roleRepo:  roleRepo,
		userRepo:  userRepo,
		orgRepo:   orgRepo,
		auditRepo: auditRepo,
		publisher: publisher,
		log:       log,
	}
}

// Grant creates (or reactivates) an admin role for a user.
func (s *RoleService) Grant(ctx context.Context, actorID int64, role *models.AdminRole) error {
	target, err := s.userRepo.GetByID(ctx, role.UserID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if !target.IsActive {
		return fmt.Errorf("cannot grant a role to a deactivated user")
	}

	var division *models.Division
	if role.DivisionID != nil {
		d, err := s.orgRepo.GetDivision(ctx, *role.DivisionID)
		if err != nil {
			return fmt.Errorf("load division: %w", err)
		}
		division = d
	}
	if err := models.ValidateRoleScope(role, division); err != nil {
		return err
	}
	if role.OrganizationUnitID != nil {
		unit, err := s.orgRepo.GetUnit(ctx, *role.OrganizationUnitID)
		if err != nil {
			return fmt.Errorf("load unit: %w", err)
		}
		if role.RoleLevel == models.LevelDepartment || role.RoleLevel == models.LevelFaculty {
			if unit.UnitType == models.UnitTypeOffice {
				return fmt.Errorf("office units have no %s admins", role.RoleLevel)
			}
		}
	}

	// Reactivate an identical grant instead of duplicating it.
	existing, err := s.roleRepo.FindExisting(ctx, role.UserID, role.RoleLevel, role.OrganizationUnitID, role.DivisionID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.IsActive {
			return fmt.Errorf("user already holds this role")
		}
		if err := s.roleRepo.SetActive(ctx, existing.ID, true); err != nil {
			return err
		}
		*role = *existing
		role.IsActive = true
	} else {
		role.AssignedBy = &actorID
		role.IsActive = true
		if err := s.roleRepo.Create(ctx, role); err != nil {
			return err
		}
	}

	s.logPermission(ctx, models.AdminPermissionLog{
		RoleID:   role.ID,
		TargetID: role.UserID,
		ActorID:  actorID,
		Action:   models.PermGrant,
	}, events.EventRoleGranted)
	return nil
}

// Revoke deactivates a grant, refusing to remove the last effective admin of
// an occupied scope.
func (s *RoleService) Revoke(ctx context.Context, actorID, roleID int64) error {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if err := s.guardLastAdmin(ctx, role); err != nil {
		return err
	}
	if err := s.roleRepo.SetActive(ctx, roleID, false); err != nil {
		return err
	}

	s.logPermission(ctx, models.AdminPermissionLog{
		RoleID:   role.ID,
		TargetID: role.UserID,
		ActorID:  actorID,
		Action:   models.PermRevoke,
	}, events.EventRoleRevoked)
	return nil
}

// Toggle flips a grant's active flag, with the same last-admin guard on the
// way down.
func (s *RoleService) Toggle(ctx context.Context, actorID, roleID int64) (bool, error) {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return false, err
	}
	if role.IsActive {
		if err := s.guardLastAdmin(ctx, role); err != nil {
			return false, err
		}
	}
	newState := !role.IsActive
	if err := s.roleRepo.SetActive(ctx, roleID, newState); err != nil {
		return false, err
	}

	event := events.EventRoleRevoked
	if newState {
		event = events.EventRoleGranted
	}
	s.logPermission(ctx, models.AdminPermissionLog{
		RoleID:   role.ID,
		TargetID: role.UserID,
		ActorID:  actorID,
		Action:   models.PermToggle,
	}, event)
	return newState, nil
}

// Delete removes a grant entirely. Same guard as revoke.
func (s *RoleService) Delete(ctx context.Context, actorID, roleID int64) error {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role.IsActive {
		if err := s.guardLastAdmin(ctx, role); err != nil {
			return err
		}
	}
	if err := s.roleRepo.Delete(ctx, roleID); err != nil {
		return err
	}

	s.logPermission(ctx, models.AdminPermissionLog{
		RoleID:   role.ID,
		TargetID: role.UserID,
		ActorID:  actorID,
		Action:   models.PermRevoke,
	}, events.EventRoleRevoked)
	return nil
}

// guardLastAdmin refuses the mutation when no other effective admin would
// remain at the role's level and scope.
func (s *RoleService) guardLastAdmin(ctx context.Context, role *models.AdminRole) error {
	remaining, err := s.roleRepo.CountEffectiveAdmins(ctx, role.RoleLevel,
		role.OrganizationUnitID, role.DivisionID, &role.ID, nil)
	if err != nil {
		return err
	}
	if remaining == 0 {
		return fmt.Errorf("cannot remove the last %s admin of this scope", role.RoleLevel)
	}
	return nil
}

func (s *RoleService) logPermission(ctx context.Context, entry models.AdminPermissionLog, eventType string) {
	if err := s.auditRepo.LogPermission(ctx, entry); err != nil {
		s.log.Warn("write permission log", zap.Int64("role_id", entry.RoleID), zap.Error(err))
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.StreamAdmin, events.Event{
		Type: eventType,
		Payload: map[string]any{
			"role_id":        entry.RoleID,
			"target_user_id": entry.TargetID,
			"actor_id":       entry.ActorID,
			"action":         entry.Action,
		},
	}); err != nil {
		s.log.Warn("publish role event", zap.Int64("role_id", entry.RoleID), zap.Error(err))
	}
}
