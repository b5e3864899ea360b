package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/hours"
	"github.com/research-hours/backend/internal/models"
	"github.com/research-hours/backend/internal/repositories"
)

// ReportService assembles research-hours reports from stored items. The
// arithmetic itself lives in the hours package; this layer only decides which
// rows feed it.
type ReportService struct {
	publicationRepo *repositories.PublicationRepo
	projectRepo     *repositories.ProjectRepo
	activityRepo    *repositories.ActivityRepo
	cfg             hours.Config
	log             *zap.Logger
}

func NewReportService(
	publicationRepo *repositories.PublicationRepo,
	projectRepo *repositories.ProjectRepo,
	activityRepo *repositories.ActivityRepo,
	cfg hours.Config,
	log *zap.Logger,
) *ReportService {
	return &ReportService{
		publicationRepo: publicationRepo,
		projectRepo:     projectRepo,
		activityRepo:    activityRepo,
		cfg:             cfg,
		log:             log,
	}
}

// UserReport is the full hours report for one user.
type UserReport struct {
	UserID       int64                    `json:"user_id"`
	Summary      hours.TotalSummary       `json:"summary"`
	Publications hours.PublicationSummary `json:"publications"`
	Activities   *hours.ActivityYearTotal `json:"activities,omitempty"`
	ApprovedOnly bool                     `json:"approved_only"`
}

// ForUser computes the report for one user, for a single year (year != 0) or
// all years. approvedOnly restricts the figures to fully approved items, the
// view official reports use.
func (s *ReportService) ForUser(ctx context.Context, userID int64, year int, approvedOnly bool) (*UserReport, error) {
	f := repositories.ItemFilter{OwnerID: &userID, Limit: 200}
	if year != 0 {
		f.Year = &year
	}
	if approvedOnly {
		f.Statuses = []string{models.StatusApproved}
	}

	pubs, err := s.collectPublications(ctx, f)
	if err != nil {
		return nil, err
	}
	projects, err := s.collectProjects(ctx, f)
	if err != nil {
		return nil, err
	}
	activities, err := s.collectActivities(ctx, f)
	if err != nil {
		return nil, err
	}

	report := &UserReport{
		UserID:       userID,
		Summary:      hours.Summarize(pubs, projects, activities, year, s.cfg),
		Publications: hours.SummarizePublications(pubs, year, s.cfg),
		ApprovedOnly: approvedOnly,
	}
	if year != 0 {
		t := hours.ActivitiesForYear(activities, year, s.cfg)
		report.Activities = &t
	}
	return report, nil
}

// PublicationHours computes the credit preview for one stored publication.
func (s *ReportService) PublicationHours(ctx context.Context, id int64) (hours.PublicationHours, error) {
	p, err := s.publicationRepo.GetByID(ctx, id)
	if err != nil {
		return hours.PublicationHours{}, err
	}
	return hours.ForPublication(p, s.cfg), nil
}

// ProjectHours computes the share breakdown preview for one stored project.
func (s *ReportService) ProjectHours(ctx context.Context, id int64) (hours.ProjectHours, error) {
	p, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return hours.ProjectHours{}, err
	}
	return hours.ForProject(p, s.cfg), nil
}

func (s *ReportService) collectPublications(ctx context.Context, f repositories.ItemFilter) ([]models.Publication, error) {
	var all []models.Publication
	for {
		page, err := s.publicationRepo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < f.Limit {
			return all, nil
		}
		f.Offset += f.Limit
	}
}

func (s *ReportService) collectProjects(ctx context.Context, f repositories.ItemFilter) ([]models.Project, error) {
	var all []models.Project
	for {
		page, err := s.projectRepo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < f.Limit {
			return all, nil
		}
		f.Offset += f.Limit
	}
}

func (s *ReportService) collectActivities(ctx context.Context, f repositories.ItemFilter) ([]models.Activity, error) {
	var all []models.Activity
	for {
		page, err := s.activityRepo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < f.Limit {
			return all, nil
		}
		f.Offset += f.Limit
	}
}
