package repositories

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/ekinura/schoolboard/internal/app/models"
	"github.com/ekinura/schoolboard/internal/pkg/apperrors"
	"github.com/ekinura/schoolboard/internal/pkg/dberrors"
	"github.com/ekinura/schoolboard/internal/pkg/helpers"
	"github.com/ekinura/schoolboard/internal/pkg/logger"
)

// createSchoolsTableSQL lazily creates the record table. CREATE TABLE IF
// NOT EXISTS is idempotent, so concurrent callers racing on it are safe
// without any application-level locking.
const createSchoolsTableSQL = `
	CREATE TABLE IF NOT EXISTS schools (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		contact BIGINT NOT NULL,
		image TEXT,
		email_id TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

// SchoolRepository handles school database operations
type SchoolRepository struct {
	db *sql.DB
	// Use squirrel instance with placeholder format
	sb squirrel.StatementBuilderType
}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository(db *sql.DB) *SchoolRepository {
	return &SchoolRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// EnsureTable creates the schools table if it does not exist. Calling it
// repeatedly or concurrently is a no-op after the first success.
func (r *SchoolRepository) EnsureTable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSchoolsTableSQL); err != nil {
		logger.Error().Err(err).Msg("Error ensuring schools table")
		return apperrors.ErrStorageUnavailable
	}
	return nil
}

// Insert stores a new school record and returns the assigned id. The
// insert is a single statement: a failure leaves no partial row behind.
func (r *SchoolRepository) Insert(ctx context.Context, school *models.School) (int64, error) {
	query, args, err := r.sb.Insert("schools").
		Columns("name", "address", "city", "state", "contact", "image", "email_id").
		Values(
			school.Name,
			school.Address,
			school.City,
			school.State,
			school.Contact,
			helpers.NullStringFromPtr(school.Image),
			school.EmailID,
		).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert school SQL")
		return 0, apperrors.ErrStorageUnavailable
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if dberrors.IsConstraintError(err) {
			logger.Error().Err(err).Msg("Store rejected school record")
			return 0, apperrors.ErrConstraintViolation
		}
		logger.Error().Err(err).Msg("Error executing insert school query")
		return 0, apperrors.ErrStorageUnavailable
	}

	id, err := result.LastInsertId()
	if err != nil {
		logger.Error().Err(err).Msg("Error reading assigned school id")
		return 0, apperrors.ErrStorageUnavailable
	}

	school.ID = id
	return id, nil
}

// ListAll retrieves every school ordered most recent first; records sharing
// a created_at tick fall back to insertion order. An empty table yields an
// empty slice, not an error.
func (r *SchoolRepository) ListAll(ctx context.Context) ([]*models.School, error) {
	query, args, err := r.sb.Select("id", "name", "address", "city", "state", "contact", "image", "email_id", "created_at").
		From("schools").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list schools SQL")
		return nil, apperrors.ErrStorageUnavailable
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list schools query")
		return nil, apperrors.ErrStorageUnavailable
	}
	defer rows.Close()

	schools := make([]*models.School, 0)
	for rows.Next() {
		var school models.School
		var image sql.NullString
		if err := rows.Scan(
			&school.ID,
			&school.Name,
			&school.Address,
			&school.City,
			&school.State,
			&school.Contact,
			&image,
			&school.EmailID,
			&school.CreatedAt,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning school row")
			return nil, apperrors.ErrStorageUnavailable
		}
		school.Image = helpers.PtrFromNullString(image)
		schools = append(schools, &school)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating school rows")
		return nil, apperrors.ErrStorageUnavailable
	}

	return schools, nil
}
