package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/approval"
	"github.com/research-hours/backend/internal/events"
	"github.com/research-hours/backend/internal/models"
	"github.com/research-hours/backend/internal/repositories"
	"github.com/research-hours/backend/internal/scope"
)

// ActionResult is the outcome of one approval action. A refusal is an
// expected user-facing outcome, not an error: the refusal message explains
// why nothing changed.
type ActionResult struct {
	OK        bool   `json:"ok"`
	NewStatus string `json:"new_status,omitempty"`
	Refusal   string `json:"refusal,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

// BatchResult counts a whole-queue approval run.
type BatchResult struct {
	Approved int `json:"approved"`
	Failed   int `json:"failed"`
}

// ApprovalService is the only writer of approval state. Every action
// re-validates the decision, then writes the new status and its log entry in
// one transaction, guarded by the expected current status so a concurrent
// writer produces a refusal instead of a double transition.
type ApprovalService struct {
	pool            *pgxpool.Pool
	publicationRepo *repositories.PublicationRepo
	projectRepo     *repositories.ProjectRepo
	activityRepo    *repositories.ActivityRepo
	userRepo        *repositories.UserRepo
	roleRepo        *repositories.RoleRepo
	auditRepo       *repositories.AuditRepo
	publisher       events.Publisher
	log             *zap.Logger
}

func NewApprovalService(
	pool *pgxpool.Pool,
	publicationRepo *repositories.PublicationRepo,
	projectRepo *repositories.ProjectRepo,
	activityRepo *repositories.ActivityRepo,
	userRepo *repositories.UserRepo,
	roleRepo *repositories.RoleRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *ApprovalService {
	return &ApprovalService{
		pool:            pool,
		publicationRepo: publicationRepo,
		projectRepo:     projectRepo,
		activityRepo:    activityRepo,
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		auditRepo:       auditRepo,
		publisher:       publisher,
		log:             log,
	}
}

// itemRef is the kind-independent view of one item the executor works with.
type itemRef struct {
	ID      int64
	OwnerID int64
	Status  string
}

func (s *ApprovalService) getItem(ctx context.Context, kind string, id int64) (itemRef, error) {
	switch kind {
	case models.KindPublication:
		p, err := s.publicationRepo.GetByID(ctx, id)
		if err != nil {
			return itemRef{}, err
		}
		return itemRef{ID: p.ID, OwnerID: p.UserID, Status: p.ApprovalStatus}, nil
	case models.KindProject:
		p, err := s.projectRepo.GetByID(ctx, id)
		if err != nil {
			return itemRef{}, err
		}
		return itemRef{ID: p.ID, OwnerID: p.UserID, Status: p.ApprovalStatus}, nil
	case models.KindActivity:
		a, err := s.activityRepo.GetByID(ctx, id)
		if err != nil {
			return itemRef{}, err
		}
		return itemRef{ID: a.ID, OwnerID: a.UserID, Status: a.ApprovalStatus}, nil
	}
	return itemRef{}, fmt.Errorf("unknown item kind %q", kind)
}

func (s *ApprovalService) transition(ctx context.Context, tx pgx.Tx, kind string, id int64, from string, u repositories.StatusUpdate) (bool, error) {
	switch kind {
	case models.KindPublication:
		return s.publicationRepo.TransitionStatus(ctx, tx, id, from, u)
	case models.KindProject:
		return s.projectRepo.TransitionStatus(ctx, tx, id, from, u)
	case models.KindActivity:
		return s.activityRepo.TransitionStatus(ctx, tx, id, from, u)
	}
	return false, fmt.Errorf("unknown item kind %q", kind)
}

func (s *ApprovalService) pendingForActor(ctx context.Context, kind string, sc repositories.Scope) ([]itemRef, error) {
	var refs []itemRef
	switch kind {
	case models.KindPublication:
		pubs, err := s.publicationRepo.ListPendingForActor(ctx, sc)
		if err != nil {
			return nil, err
		}
		for _, p := range pubs {
			refs = append(refs, itemRef{ID: p.ID, OwnerID: p.UserID, Status: p.ApprovalStatus})
		}
	case models.KindProject:
		projects, err := s.projectRepo.ListPendingForActor(ctx, sc)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			refs = append(refs, itemRef{ID: p.ID, OwnerID: p.UserID, Status: p.ApprovalStatus})
		}
	case models.KindActivity:
		activities, err := s.activityRepo.ListPendingForActor(ctx, sc)
		if err != nil {
			return nil, err
		}
		for _, a := range activities {
			refs = append(refs, itemRef{ID: a.ID, OwnerID: a.UserID, Status: a.ApprovalStatus})
		}
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
	return refs, nil
}

// ScopeOf flattens the actor's working context into the query filter shape.
func ScopeOf(actor scope.Actor) repositories.Scope {
	return repositories.Scope{
		Level:       actor.EffectiveLevel(),
		UnitIDs:     actor.ScopeIDs(models.LevelFaculty),
		DivisionIDs: actor.ScopeIDs(models.LevelDepartment),
	}
}

// decisionContext resolves everything the pure state machine needs for one
// actor/owner pair: scope permissions and chain vacancies.
func (s *ApprovalService) decisionContext(ctx context.Context, actor scope.Actor, owner *models.UserWithUnit, status string) (approval.Context, error) {
	canUni, canFac, canDept := actor.Permissions(&owner.User)

	missingDept := true
	if owner.DivisionID != nil {
		n, err := s.roleRepo.CountEffectiveAdmins(ctx, models.LevelDepartment, nil, owner.DivisionID, nil, nil)
		if err != nil {
			return approval.Context{}, err
		}
		missingDept = n == 0
	}
	missingFac := true
	if owner.OrganizationUnitID != nil {
		n, err := s.roleRepo.CountEffectiveAdmins(ctx, models.LevelFaculty, owner.OrganizationUnitID, nil, nil, nil)
		if err != nil {
			return approval.Context{}, err
		}
		missingFac = n == 0
	}

	return approval.Context{
		CurrentStatus:          status,
		OfficeOwner:            owner.OfficeMember(),
		CanUniversity:          canUni,
		CanFaculty:             canFac,
		CanDepartment:          canDept,
		MissingDepartmentAdmin: missingDept,
		MissingFacultyAdmin:    missingFac,
	}, nil
}

func approveAction(newStatus string) string {
	switch newStatus {
	case models.StatusDepartmentApproved:
		return models.ActionDepartmentApprove
	case models.StatusFacultyApproved:
		return models.ActionFacultyApprove
	case models.StatusApproved:
		return models.ActionUniversityApprove
	}
	return "approve"
}

// Approve advances one item along the chain on behalf of the actor.
func (s *ApprovalService) Approve(ctx context.Context, actor scope.Actor, kind string, itemID int64) (ActionResult, error) {
	item, err := s.getItem(ctx, kind, itemID)
	if err != nil {
		return ActionResult{}, err
	}
	owner, err := s.userRepo.GetWithUnit(ctx, item.OwnerID)
	if err != nil {
		return ActionResult{}, err
	}
	decision, err := s.decisionContext(ctx, actor, owner, item.Status)
	if err != nil {
		return ActionResult{}, err
	}

	allowed, reason := approval.CanApprove(decision)
	if !allowed {
		return ActionResult{Refusal: reason}, nil
	}
	newStatus := approval.NextStatus(decision)
	level := approval.ActionLevel(decision)

	upd := repositories.StatusUpdate{Status: newStatus}
	if newStatus == models.StatusApproved {
		now := time.Now().UTC()
		upd.ApprovedBy = &actor.User.ID
		upd.ApprovedAt = &now
	}

	res, err := s.applyInTx(ctx, kind, item, upd, models.ApprovalLog{
		ItemKind:   kind,
		ItemID:     item.ID,
		ActorID:    actor.User.ID,
		Action:     approveAction(newStatus),
		FromStatus: item.Status,
		ToStatus:   newStatus,
		Level:      level,
	})
	if err != nil || !res.OK {
		return res, err
	}

	if item.Status == models.StatusPending && !decision.OfficeOwner {
		res.Warning = vacancyWarning(decision)
	}
	return res, nil
}

// Return sends an item back to its owner for correction. Requires a reason.
func (s *ApprovalService) Return(ctx context.Context, actor scope.Actor, kind string, itemID int64, reason string) (ActionResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ActionResult{Refusal: "a reason is required to return an item"}, nil
	}

	item, err := s.getItem(ctx, kind, itemID)
	if err != nil {
		return ActionResult{}, err
	}
	if item.Status == models.StatusApproved {
		return ActionResult{Refusal: "item is already approved; use reject to undo the approval"}, nil
	}
	if item.Status == models.StatusDraft {
		return ActionResult{Refusal: "draft items cannot be returned"}, nil
	}

	owner, err := s.userRepo.GetWithUnit(ctx, item.OwnerID)
	if err != nil {
		return ActionResult{}, err
	}
	decision, err := s.decisionContext(ctx, actor, owner, item.Status)
	if err != nil {
		return ActionResult{}, err
	}
	if !approval.CanReturn(decision) {
		return ActionResult{Refusal: "you have no authority over this item's owner"}, nil
	}

	now := time.Now().UTC()
	level := actor.EffectiveLevel()
	upd := repositories.StatusUpdate{
		Status:          models.StatusReturned,
		RejectionReason: &reason,
		ReturnedBy:      &actor.User.ID,
		ReturnedLevel:   &level,
		ReturnedAt:      &now,
	}
	return s.applyInTx(ctx, kind, item, upd, models.ApprovalLog{
		ItemKind:   kind,
		ItemID:     item.ID,
		ActorID:    actor.User.ID,
		Action:     models.ActionReturn,
		FromStatus: item.Status,
		ToStatus:   models.StatusReturned,
		Level:      level,
		Reason:     &reason,
	})
}

// Reject undoes a final approval: university admins only, hard reset to
// pending with all approval metadata cleared.
func (s *ApprovalService) Reject(ctx context.Context, actor scope.Actor, kind string, itemID int64) (ActionResult, error) {
	item, err := s.getItem(ctx, kind, itemID)
	if err != nil {
		return ActionResult{}, err
	}
	if item.Status != models.StatusApproved {
		return ActionResult{Refusal: "only approved items can be rejected"}, nil
	}
	if !actor.HasUniversityAccess() {
		return ActionResult{Refusal: "only a university admin can undo an approval"}, nil
	}

	upd := repositories.StatusUpdate{Status: models.StatusPending}
	return s.applyInTx(ctx, kind, item, upd, models.ApprovalLog{
		ItemKind:   kind,
		ItemID:     item.ID,
		ActorID:    actor.User.ID,
		Action:     models.ActionReject,
		FromStatus: item.Status,
		ToStatus:   models.StatusPending,
		Level:      models.LevelUniversity,
	})
}

// ApproveAllPending approves everything currently on the actor's desk for one
// item kind in a single transaction. Per-item eligibility is checked against
// state read at the start; refusals are counted, never raised, and only a
// storage error rolls the whole batch back.
func (s *ApprovalService) ApproveAllPending(ctx context.Context, actor scope.Actor, kind string) (BatchResult, error) {
	refs, err := s.pendingForActor(ctx, kind, ScopeOf(actor))
	if err != nil {
		return BatchResult{}, err
	}
	if len(refs) == 0 {
		return BatchResult{}, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return BatchResult{}, err
	}
	defer tx.Rollback(ctx)

	var out BatchResult
	for _, item := range refs {
		owner, err := s.userRepo.GetWithUnit(ctx, item.OwnerID)
		if err != nil {
			return BatchResult{}, err
		}
		decision, err := s.decisionContext(ctx, actor, owner, item.Status)
		if err != nil {
			return BatchResult{}, err
		}
		allowed, _ := approval.CanApprove(decision)
		if !allowed {
			out.Failed++
			continue
		}

		newStatus := approval.NextStatus(decision)
		upd := repositories.StatusUpdate{Status: newStatus}
		if newStatus == models.StatusApproved {
			now := time.Now().UTC()
			upd.ApprovedBy = &actor.User.ID
			upd.ApprovedAt = &now
		}
		ok, err := s.transition(ctx, tx, kind, item.ID, item.Status, upd)
		if err != nil {
			return BatchResult{}, err
		}
		if !ok {
			out.Failed++
			continue
		}
		if err := s.auditRepo.LogApproval(ctx, tx, models.ApprovalLog{
			ItemKind:   kind,
			ItemID:     item.ID,
			ActorID:    actor.User.ID,
			Action:     approveAction(newStatus),
			FromStatus: item.Status,
			ToStatus:   newStatus,
			Level:      approval.ActionLevel(decision),
		}); err != nil {
			return BatchResult{}, err
		}
		out.Approved++
	}

	if err := tx.Commit(ctx); err != nil {
		return BatchResult{}, err
	}

	s.publishStatusChange(ctx, kind, 0, "", "batch_approved", map[string]any{
		"approved": out.Approved,
		"failed":   out.Failed,
		"actor_id": actor.User.ID,
	})
	return out, nil
}

func (s *ApprovalService) applyInTx(ctx context.Context, kind string, item itemRef, upd repositories.StatusUpdate, entry models.ApprovalLog) (ActionResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ActionResult{}, err
	}
	defer tx.Rollback(ctx)

	ok, err := s.transition(ctx, tx, kind, item.ID, item.Status, upd)
	if err != nil {
		return ActionResult{}, err
	}
	if !ok {
		// Another writer moved the item first; their transition stands.
		return ActionResult{Refusal: "item status changed in the meantime, reload and try again"}, nil
	}
	if err := s.auditRepo.LogApproval(ctx, tx, entry); err != nil {
		return ActionResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return ActionResult{}, err
	}

	s.publishStatusChange(ctx, kind, item.ID, upd.Status, entry.Action, map[string]any{
		"item_kind":  kind,
		"item_id":    item.ID,
		"old_status": item.Status,
		"new_status": upd.Status,
		"action":     entry.Action,
		"actor_id":   entry.ActorID,
	})
	return ActionResult{OK: true, NewStatus: upd.Status}, nil
}

func (s *ApprovalService) publishStatusChange(ctx context.Context, kind string, itemID int64, newStatus, action string, payload map[string]any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.StreamApprovals, events.Event{
		Type:    events.EventItemStatusChanged,
		Payload: payload,
	}); err != nil {
		s.log.Warn("publish approval event",
			zap.String("kind", kind), zap.Int64("item_id", itemID),
			zap.String("action", action), zap.Error(err))
	}
}

func vacancyWarning(decision approval.Context) string {
	switch {
	case decision.MissingDepartmentAdmin && decision.MissingFacultyAdmin:
		return "no department or faculty admin is assigned for this owner; approval steps were skipped"
	case decision.MissingDepartmentAdmin:
		return "no department admin is assigned for this owner's division; that step was skipped"
	case decision.MissingFacultyAdmin:
		return "no faculty admin is assigned for this owner's unit; approval will skip that step"
	}
	return ""
}
