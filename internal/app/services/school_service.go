package services

import (
	"context"
	"mime/multipart"

	"github.com/ekinura/schoolboard/internal/app/models"
	"github.com/ekinura/schoolboard/internal/app/repositories"
	"github.com/ekinura/schoolboard/internal/pkg/filestorage"
	"github.com/ekinura/schoolboard/internal/pkg/logger"
	"github.com/ekinura/schoolboard/internal/pkg/schema"
)

// SchoolService defines the interface for school record operations
type SchoolService interface {
	// AddSchool runs the submission pipeline: ensure table, validate,
	// persist the image best-effort, insert. A non-nil fieldErrs return
	// means validation rejected the input and nothing was persisted.
	AddSchool(ctx context.Context, input schema.SchoolInput, image *multipart.FileHeader) (id int64, fieldErrs []schema.FieldError, err error)

	// ListSchools returns every stored record, most recent first.
	ListSchools(ctx context.Context) ([]*models.School, error)
}

// schoolServiceImpl implements the SchoolService interface
type schoolServiceImpl struct {
	schoolRepo *repositories.SchoolRepository
	storage    *filestorage.LocalStorage
}

// NewSchoolService creates a new school service instance
func NewSchoolService(schoolRepo *repositories.SchoolRepository, storage *filestorage.LocalStorage) SchoolService {
	return &schoolServiceImpl{
		schoolRepo: schoolRepo,
		storage:    storage,
	}
}

// AddSchool implements the linear submission protocol. The image write is
// sequenced before the insert but its outcome never blocks it: a rejected
// or failed image simply leaves the record with no image.
func (s *schoolServiceImpl) AddSchool(ctx context.Context, input schema.SchoolInput, image *multipart.FileHeader) (int64, []schema.FieldError, error) {
	if err := s.schoolRepo.EnsureTable(ctx); err != nil {
		return 0, nil, err
	}

	if fieldErrs := schema.Validate(input); len(fieldErrs) > 0 {
		return 0, fieldErrs, nil
	}

	contact, err := schema.ParseContact(input.Contact)
	if err != nil {
		// Unreachable after a passing Validate; kept as a guard.
		return 0, []schema.FieldError{{Field: "contact", Message: "contact must be numeric"}}, nil
	}

	var imagePath *string
	if image != nil {
		if path, ok := s.storage.SaveUpload(image); ok {
			imagePath = &path
		} else {
			logger.Warn().Str("filename", image.Filename).Msg("Image not persisted, continuing without it")
		}
	}

	school := &models.School{
		Name:    input.Name,
		Address: input.Address,
		City:    input.City,
		State:   input.State,
		Contact: contact,
		Image:   imagePath,
		EmailID: input.EmailID,
	}

	id, err := s.schoolRepo.Insert(ctx, school)
	if err != nil {
		return 0, nil, err
	}

	logger.Info().Int64("id", id).Str("name", school.Name).Msg("School added")
	return id, nil, nil
}

// ListSchools ensures the table exists and returns all records.
func (s *schoolServiceImpl) ListSchools(ctx context.Context) ([]*models.School, error) {
	if err := s.schoolRepo.EnsureTable(ctx); err != nil {
		return nil, err
	}

	return s.schoolRepo.ListAll(ctx)
}
