package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscrm/admitdesk/internal/app/auth"
	"github.com/campuscrm/admitdesk/internal/app/models"
	"github.com/campuscrm/admitdesk/internal/pkg/apperrors"
)

// NewStudent carries the insertable fields of a freshly ingested row
type NewStudent struct {
	Name         string
	Phone        string
	Address      *string
	PrevCourse   *string
	UploadedByID int64
}

// CallRecordPatch carries a full call-record update. All columns are
// overwritten; the caller is responsible for normalization.
type CallRecordPatch struct {
	Status        models.CallStatus
	Interest      *models.Interest
	Notes         *string
	PrevCourse    *string
	LastUpdatedBy string
}

// IStudentRepository defines the interface for student database operations
type IStudentRepository interface {
	InsertSkipDuplicates(ctx context.Context, students []NewStudent) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateCallRecord(ctx context.Context, id int64, patch CallRecordPatch) error
	List(ctx context.Context, scope auth.StudentScope) ([]*models.Student, error)
	Count(ctx context.Context, scope auth.StudentScope) (int64, error)
	CountByInterest(ctx context.Context, scope auth.StudentScope) (map[models.Interest]int64, error)
	CountByStatus(ctx context.Context, scope auth.StudentScope) (map[models.CallStatus]int64, error)
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// InsertSkipDuplicates inserts the given rows, silently skipping any that
// collide with the (name, phone) unique constraint. Skipping is row-granular:
// a duplicate never aborts the rest of the batch. Returns the number of rows
// actually stored.
func (r *StudentRepository) InsertSkipDuplicates(ctx context.Context, students []NewStudent) (int64, error) {
	var inserted int64
	for _, s := range students {
		tag, err := r.db.Exec(ctx, `
			INSERT INTO students (name, phone, address, prev_course, uploaded_by_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT ON CONSTRAINT students_name_phone_key DO NOTHING`,
			s.Name, s.Phone, s.Address, s.PrevCourse, s.UploadedByID)
		if err != nil {
			return inserted, fmt.Errorf("error inserting student: %w", err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, phone, address, prev_course, call_status, future_interest,
		       notes, last_updated_by, uploaded_by_id, created_at
		FROM students
		WHERE id = $1`,
		id).Scan(
		&student.ID, &student.Name, &student.Phone, &student.Address, &student.PrevCourse,
		&student.CallStatus, &student.FutureInterest, &student.Notes, &student.LastUpdatedBy,
		&student.UploadedByID, &student.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// UpdateCallRecord overwrites the call-tracking columns of a student
func (r *StudentRepository) UpdateCallRecord(ctx context.Context, id int64, patch CallRecordPatch) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students
		SET call_status = $1, future_interest = $2, notes = $3, prev_course = $4, last_updated_by = $5
		WHERE id = $6`,
		patch.Status, patch.Interest, patch.Notes, patch.PrevCourse, patch.LastUpdatedBy, id)
	if err != nil {
		return fmt.Errorf("error updating call record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// scopeClause renders the visibility restriction as a WHERE fragment
func scopeClause(scope auth.StudentScope, args []any) (string, []any) {
	if !scope.Restricted() {
		return "", args
	}
	args = append(args, scope.UploadedByID)
	return fmt.Sprintf(" WHERE uploaded_by_id = $%d", len(args)), args
}

// List retrieves visible students, most recent first
func (r *StudentRepository) List(ctx context.Context, scope auth.StudentScope) ([]*models.Student, error) {
	query := `
		SELECT id, name, phone, address, prev_course, call_status, future_interest,
		       notes, last_updated_by, uploaded_by_id, created_at
		FROM students`
	clause, args := scopeClause(scope, nil)
	query += clause + " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(
			&student.ID, &student.Name, &student.Phone, &student.Address, &student.PrevCourse,
			&student.CallStatus, &student.FutureInterest, &student.Notes, &student.LastUpdatedBy,
			&student.UploadedByID, &student.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Count returns the number of visible students
func (r *StudentRepository) Count(ctx context.Context, scope auth.StudentScope) (int64, error) {
	query := `SELECT COUNT(*) FROM students`
	clause, args := scopeClause(scope, nil)
	query += clause

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// CountByInterest returns visible students grouped by future interest.
// Records without an interest are excluded from the breakdown.
func (r *StudentRepository) CountByInterest(ctx context.Context, scope auth.StudentScope) (map[models.Interest]int64, error) {
	query := `SELECT future_interest, COUNT(*) FROM students WHERE future_interest IS NOT NULL`
	args := []any{}
	if scope.Restricted() {
		args = append(args, scope.UploadedByID)
		query += fmt.Sprintf(" AND uploaded_by_id = $%d", len(args))
	}
	query += " GROUP BY future_interest"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error grouping students by interest: %w", err)
	}
	defer rows.Close()

	groups := make(map[models.Interest]int64)
	for rows.Next() {
		var interest models.Interest
		var count int64
		if err := rows.Scan(&interest, &count); err != nil {
			return nil, fmt.Errorf("error scanning interest group: %w", err)
		}
		groups[interest] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interest groups: %w", err)
	}

	return groups, nil
}

// CountByStatus returns visible students grouped by call status
func (r *StudentRepository) CountByStatus(ctx context.Context, scope auth.StudentScope) (map[models.CallStatus]int64, error) {
	query := `SELECT call_status, COUNT(*) FROM students`
	clause, args := scopeClause(scope, nil)
	query += clause + " GROUP BY call_status"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error grouping students by status: %w", err)
	}
	defer rows.Close()

	groups := make(map[models.CallStatus]int64)
	for rows.Next() {
		var status models.CallStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning status group: %w", err)
		}
		groups[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status groups: %w", err)
	}

	return groups, nil
}
