package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"pupils-backend/apperror"
	"pupils-backend/models"
	"pupils-backend/repository"
	"pupils-backend/schema"
)

type PupilStore interface {
	FindByID(ctx context.Context, id uint) (*models.Pupil, error)
	ListOrdered(ctx context.Context) ([]models.Pupil, error)
	Create(ctx context.Context, pupil *models.Pupil) error
	Save(ctx context.Context, pupil *models.Pupil) error
	Delete(ctx context.Context, pupil *models.Pupil) error
}

type ClassStore interface {
	List(ctx context.Context) ([]models.SchoolClass, error)
	FindByID(ctx context.Context, id uint) (*models.SchoolClass, error)
}

type Option func(*PupilService)

// WithClock replaces time.Now for the age check.
func WithClock(now func() time.Time) Option {
	return func(s *PupilService) { s.now = now }
}

type PupilService struct {
	pupils  PupilStore
	classes ClassStore
	now     func() time.Time
}

func NewPupilService(pupils PupilStore, classes ClassStore, opts ...Option) *PupilService {
	s := &PupilService{pupils: pupils, classes: classes, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PupilService) List(ctx context.Context) ([]models.Pupil, error) {
	pupils, err := s.pupils.ListOrdered(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(pupils) == 0 {
		return nil, apperror.NotFound("There are no pupils exists.")
	}
	return pupils, nil
}

// Roster is List without the empty-list failure.
func (s *PupilService) Roster(ctx context.Context) ([]models.Pupil, error) {
	pupils, err := s.pupils.ListOrdered(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return pupils, nil
}

func (s *PupilService) Get(ctx context.Context, id uint) (*models.Pupil, error) {
	pupil, err := s.pupils.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Pupil with id %d not found.", id))
		}
		return nil, apperror.Internal(err)
	}
	return pupil, nil
}

func (s *PupilService) Create(ctx context.Context, in schema.NewPupil) (*models.Pupil, error) {
	if err := schema.CheckAge(in.BirthDate, s.now()); err != nil {
		return nil, err
	}

	pupil := &models.Pupil{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		BirthDate: in.BirthDate,
	}
	if err := s.pupils.Create(ctx, pupil); err != nil {
		return nil, apperror.Internal(err)
	}

	log.Info().Uint("pupil_id", pupil.ID).Msg("✅ Pupil created")
	return pupil, nil
}

// Update applies only the fields present in the patch.
func (s *PupilService) Update(ctx context.Context, id uint, patch schema.PupilPatch) (*models.Pupil, error) {
	pupil, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, pupil, patch)
}

// Apply is Update for a pupil the caller has already loaded.
func (s *PupilService) Apply(ctx context.Context, pupil *models.Pupil, patch schema.PupilPatch) (*models.Pupil, error) {
	if patch.FirstName != nil {
		pupil.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		pupil.LastName = *patch.LastName
	}
	if patch.BirthDate != nil {
		if err := schema.CheckAge(*patch.BirthDate, s.now()); err != nil {
			return nil, err
		}
		pupil.BirthDate = *patch.BirthDate
	}

	if err := s.pupils.Save(ctx, pupil); err != nil {
		return nil, apperror.Internal(err)
	}

	log.Info().Uint("pupil_id", pupil.ID).Msg("✅ Pupil updated")
	return pupil, nil
}

func (s *PupilService) Delete(ctx context.Context, id uint) error {
	pupil, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.pupils.Delete(ctx, pupil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(fmt.Sprintf("Pupil with id %d not found.", id))
		}
		return apperror.Internal(err)
	}

	log.Info().Uint("pupil_id", id).Msg("🗑️ Pupil deleted")
	return nil
}

// Assign puts the pupil into the class whatever its current class is.
func (s *PupilService) Assign(ctx context.Context, pupilID, classID uint) (*models.Pupil, *models.SchoolClass, error) {
	pupil, class, err := s.lookupPair(ctx, pupilID, classID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.assign(ctx, pupil, class); err != nil {
		return nil, nil, err
	}
	return pupil, class, nil
}

// Reassign is Assign that refuses a move into the pupil's current class.
func (s *PupilService) Reassign(ctx context.Context, pupilID, classID uint) (*models.Pupil, *models.SchoolClass, error) {
	pupil, class, err := s.lookupPair(ctx, pupilID, classID)
	if err != nil {
		return nil, nil, err
	}
	if pupil.InClass(class.ID) {
		return nil, nil, apperror.AlreadyAssigned()
	}
	if err := s.assign(ctx, pupil, class); err != nil {
		return nil, nil, err
	}
	return pupil, class, nil
}

func (s *PupilService) Classes(ctx context.Context) ([]models.SchoolClass, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return classes, nil
}

func (s *PupilService) lookupPair(ctx context.Context, pupilID, classID uint) (*models.Pupil, *models.SchoolClass, error) {
	pupil, err := s.Get(ctx, pupilID)
	if err != nil {
		return nil, nil, err
	}

	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperror.NotFound(fmt.Sprintf("School Class with id %d not found.", classID))
		}
		return nil, nil, apperror.Internal(err)
	}
	return pupil, class, nil
}

func (s *PupilService) assign(ctx context.Context, pupil *models.Pupil, class *models.SchoolClass) error {
	pupil.AssignTo(class)
	if err := s.pupils.Save(ctx, pupil); err != nil {
		return apperror.Internal(err)
	}
	log.Info().Uint("pupil_id", pupil.ID).Uint("class_id", class.ID).Msg("✅ Pupil assigned to class")
	return nil
}
