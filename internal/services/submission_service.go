package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/approval"
	"github.com/research-hours/backend/internal/models"
	"github.com/research-hours/backend/internal/repositories"
)

// SubmissionService covers the owner side of the workflow: creating and
// editing items while they are still editable, and moving them in and out of
// the approval chain.
type SubmissionService struct {
	pool            *pgxpool.Pool
	publicationRepo *repositories.PublicationRepo
	projectRepo     *repositories.ProjectRepo
	activityRepo    *repositories.ActivityRepo
	auditRepo       *repositories.AuditRepo
	log             *zap.Logger
}

func NewSubmissionService(
	pool *pgxpool.Pool,
	publicationRepo *repositories.PublicationRepo,
	projectRepo *repositories.ProjectRepo,
	activityRepo *repositories.ActivityRepo,
	auditRepo *repositories.AuditRepo,
	log *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		pool:            pool,
		publicationRepo: publicationRepo,
		projectRepo:     projectRepo,
		activityRepo:    activityRepo,
		auditRepo:       auditRepo,
		log:             log,
	}
}

func createStatus(submit bool) string {
	if submit {
		return approval.SubmitStatus("")
	}
	return approval.SaveDraftStatus("")
}

// CreatePublication stores a new publication. submit=false keeps it as a
// draft the owner can keep editing.
func (s *SubmissionService) CreatePublication(ctx context.Context, p *models.Publication, submit bool) error {
	p.ApprovalStatus = createStatus(submit)
	return s.publicationRepo.Create(ctx, p)
}

func (s *SubmissionService) CreateProject(ctx context.Context, p *models.Project, submit bool) error {
	p.ApprovalStatus = createStatus(submit)
	return s.projectRepo.Create(ctx, p)
}

func (s *SubmissionService) CreateActivity(ctx context.Context, a *models.Activity, submit bool) error {
	a.ApprovalStatus = createStatus(submit)
	return s.activityRepo.Create(ctx, a)
}

// UpdatePublication rewrites an editable publication owned by the caller.
// The status is left untouched: a returned item stays returned so its reason
// stays visible until the owner explicitly submits again.
func (s *SubmissionService) UpdatePublication(ctx context.Context, ownerID int64, p *models.Publication) error {
	current, err := s.publicationRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if err := s.ownerEditable(current.UserID, ownerID, current.ApprovalStatus); err != nil {
		return err
	}
	p.UserID = current.UserID
	return s.publicationRepo.Update(ctx, p)
}

func (s *SubmissionService) UpdateProject(ctx context.Context, ownerID int64, p *models.Project) error {
	current, err := s.projectRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if err := s.ownerEditable(current.UserID, ownerID, current.ApprovalStatus); err != nil {
		return err
	}
	p.UserID = current.UserID
	return s.projectRepo.Update(ctx, p)
}

func (s *SubmissionService) UpdateActivity(ctx context.Context, ownerID int64, a *models.Activity) error {
	current, err := s.activityRepo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if err := s.ownerEditable(current.UserID, ownerID, current.ApprovalStatus); err != nil {
		return err
	}
	a.UserID = current.UserID
	return s.activityRepo.Update(ctx, a)
}

// Submit moves a draft or returned item into the approval chain and clears
// the previous return metadata.
func (s *SubmissionService) Submit(ctx context.Context, ownerID int64, kind string, itemID int64) (string, error) {
	ref, err := s.getOwned(ctx, ownerID, kind, itemID)
	if err != nil {
		return "", err
	}
	newStatus := approval.SubmitStatus(ref.Status)
	if newStatus == ref.Status {
		return "", fmt.Errorf("item in status %q cannot be submitted", ref.Status)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	upd := repositories.StatusUpdate{Status: newStatus}
	ok, err := s.transition(ctx, tx, kind, itemID, ref.Status, upd)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("item status changed in the meantime")
	}
	if err := s.auditRepo.LogApproval(ctx, tx, models.ApprovalLog{
		ItemKind:   kind,
		ItemID:     itemID,
		ActorID:    ownerID,
		Action:     models.ActionSubmit,
		FromStatus: ref.Status,
		ToStatus:   newStatus,
	}); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return newStatus, nil
}

// Delete removes an item that is still editable by its owner.
func (s *SubmissionService) Delete(ctx context.Context, ownerID int64, kind string, itemID int64) error {
	ref, err := s.getOwned(ctx, ownerID, kind, itemID)
	if err != nil {
		return err
	}
	if !models.Editable(ref.Status) {
		return fmt.Errorf("item in status %q can no longer be deleted", ref.Status)
	}
	switch kind {
	case models.KindPublication:
		return s.publicationRepo.Delete(ctx, itemID)
	case models.KindProject:
		return s.projectRepo.Delete(ctx, itemID)
	case models.KindActivity:
		return s.activityRepo.Delete(ctx, itemID)
	}
	return fmt.Errorf("unknown item kind %q", kind)
}

func (s *SubmissionService) ownerEditable(itemOwnerID, callerID int64, status string) error {
	if itemOwnerID != callerID {
		return fmt.Errorf("item belongs to another user")
	}
	if !models.Editable(status) {
		return fmt.Errorf("item in status %q can no longer be edited", status)
	}
	return nil
}

func (s *SubmissionService) getOwned(ctx context.Context, ownerID int64, kind string, itemID int64) (itemRef, error) {
	var ref itemRef
	switch kind {
	case models.KindPublication:
		p, err := s.publicationRepo.GetByID(ctx, itemID)
		if err != nil {
			return ref, err
		}
		ref = itemRef{ID: p.ID, OwnerID: p.UserID, Status: p.ApprovalStatus}
	case models.KindProject:
		p, err := s.projectRepo.GetByID(ctx, itemID)
		if err != nil {
			return ref, err
		}
		ref = itemRef{ID: p.ID, OwnerID: p.UserID, Status: p.ApprovalStatus}
	case models.KindActivity:
		a, err := s.activityRepo.GetByID(ctx, itemID)
		if err != nil {
			return ref, err
		}
		ref = itemRef{ID: a.ID, OwnerID: a.UserID, Status: a.ApprovalStatus}
	default:
		return ref, fmt.Errorf("unknown item kind %q", kind)
	}
	if ref.OwnerID != ownerID {
		return ref, fmt.Errorf("item belongs to another user")
	}
	return ref, nil
}

func (s *SubmissionService) transition(ctx context.Context, tx pgx.Tx, kind string, id int64, from string, u repositories.StatusUpdate) (bool, error) {
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
