package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	appauth "github.com/campuscrm/admitdesk/internal/app/auth"
	"github.com/campuscrm/admitdesk/internal/app/models"
	"github.com/campuscrm/admitdesk/internal/app/repositories"
	"github.com/campuscrm/admitdesk/internal/pkg/apperrors"
	"github.com/campuscrm/admitdesk/internal/pkg/ingest"
)

// UnknownStaffName is the audit-trace fallback when the acting principal has
// no display name.
const UnknownStaffName = "Unknown Staff"

// CallRecordUpdate is the normalized call-record patch accepted by
// UpdateCallRecord.
type CallRecordUpdate struct {
	Status     string
	Interest   string
	Notes      string
	PrevCourse string
}

// BulkIngestResult reports insert and reject counts for one upload batch
type BulkIngestResult struct {
	Inserted int64
	Rejected int
}

// DashboardStats aggregates the visible student set for the dashboard
type DashboardStats struct {
	Total          int64
	InterestGroups map[models.Interest]int64
	StatusGroups   map[models.CallStatus]int64
}

// StudentService defines the interface for student record operations
type StudentService interface {
	BulkIngest(ctx context.Context, actorID int64, rows []ingest.Row) (*BulkIngestResult, error)
	UpdateCallRecord(ctx context.Context, actorID, studentID int64, update CallRecordUpdate) error
	ListVisible(ctx context.Context, actorID int64) ([]*models.Student, error)
	GetDashboardStats(ctx context.Context, actorID int64) (*DashboardStats, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
	userRepo    repositories.IUserRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.IStudentRepository, userRepo repositories.IUserRepository, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// BulkIngest maps upload rows onto student records and stores the survivors
// tagged with the actor as uploader. Rows failing extraction are counted as
// rejects, not errors; duplicates are skipped row-by-row inside the store.
// The only failure short of a storage error is a batch where nothing
// survived filtering.
func (s *studentServiceImpl) BulkIngest(ctx context.Context, actorID int64, rows []ingest.Row) (*BulkIngestResult, error) {
	actor, err := resolvePrincipal(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	var toInsert []repositories.NewStudent
	rejected := 0
	for _, row := range rows {
		candidate := ingest.MapRow(row)
		if !candidate.Valid() {
			rejected++
			continue
		}
		toInsert = append(toInsert, repositories.NewStudent{
			Name:         candidate.Name,
			Phone:        candidate.Phone,
			Address:      candidate.Address,
			PrevCourse:   candidate.PrevCourse,
			UploadedByID: actor.ID,
		})
	}

	if len(toInsert) == 0 {
		return nil, apperrors.NewValidationError("no valid students found")
	}

	inserted, err := s.studentRepo.InsertSkipDuplicates(ctx, toInsert)
	if err != nil {
		return nil, fmt.Errorf("error ingesting students: %w", err)
	}

	s.logger.Info().
		Int64("inserted", inserted).
		Int("rejected", rejected).
		Int64("uploadedBy", actor.ID).
		Msg("Bulk ingest completed")

	return &BulkIngestResult{Inserted: inserted, Rejected: rejected}, nil
}

// normalizeInterest maps the submitted interest onto the stored enum. An
// empty value clears the field. "OTHER" is stored as NULL when it is not a
// member of the enum; today it always is, but the guard keeps behavior
// stable if the member set ever changes.
func normalizeInterest(value string) (*models.Interest, error) {
	if value == "" {
		return nil, nil
	}
	interest := models.Interest(value)
	if interest == models.InterestOther && !interest.Valid() {
		return nil, nil
	}
	if !interest.Valid() {
		return nil, apperrors.NewValidationError("unknown interest")
	}
	return &interest, nil
}

// optionalString returns nil for the empty string
func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// UpdateCallRecord overwrites a student's call-tracking fields. Any
// authenticated staff member may update any record, including ones they did
// not upload; the audit trace is the actor's display name only.
func (s *studentServiceImpl) UpdateCallRecord(ctx context.Context, actorID, studentID int64, update CallRecordUpdate) error {
	actor, err := resolvePrincipal(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}

	status := models.CallStatus(update.Status)
	if !status.Valid() {
		return apperrors.NewValidationError("unknown call status")
	}

	interest, err := normalizeInterest(update.Interest)
	if err != nil {
		return err
	}

	updaterName := actor.Name
	if updaterName == "" {
		updaterName = UnknownStaffName
	}

	patch := repositories.CallRecordPatch{
		Status:        status,
		Interest:      interest,
		Notes:         optionalString(update.Notes),
		PrevCourse:    optionalString(update.PrevCourse),
		LastUpdatedBy: updaterName,
	}

	if err := s.studentRepo.UpdateCallRecord(ctx, studentID, patch); err != nil {
		return err
	}

	return nil
}

// ListVisible returns the actor's calling list, most recent first, under the
// list visibility rule: everything for SUPER_ADMIN, own uploads otherwise.
func (s *studentServiceImpl) ListVisible(ctx context.Context, actorID int64) ([]*models.Student, error) {
	actor, err := resolvePrincipal(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	students, err := s.studentRepo.List(ctx, appauth.ListScope(actor))
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

// GetDashboardStats aggregates the visible set under the aggregate rule:
// global for SUPER_ADMIN and ADMIN, own uploads for FACULTY. This is wider
// than ListVisible for ADMIN on purpose.
func (s *studentServiceImpl) GetDashboardStats(ctx context.Context, actorID int64) (*DashboardStats, error) {
	actor, err := resolvePrincipal(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	scope := appauth.AggregateScope(actor)

	total, err := s.studentRepo.Count(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}

	interestGroups, err := s.studentRepo.CountByInterest(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("error aggregating interests: %w", err)
	}

	statusGroups, err := s.studentRepo.CountByStatus(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("error aggregating call statuses: %w", err)
	}

	return &DashboardStats{
		Total:          total,
		InterestGroups: interestGroups,
		StatusGroups:   statusGroups,
	}, nil
}
