package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pupils-backend/models"
)

var ErrNotFound = errors.New("record not found")

type PupilRepository struct {
	db *gorm.DB
}

func NewPupilRepository(db *gorm.DB) *PupilRepository {
	return &PupilRepository{db: db}
}

func (r *PupilRepository) FindByID(ctx context.Context, id uint) (*models.Pupil, error) {
	var pupil models.Pupil
	err := r.db.WithContext(ctx).Preload("SchoolClass").First(&pupil, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "find pupil %d", id)
	}
	return &pupil, nil
}

// ListOrdered returns every pupil sorted by class then last name, pupils
// without a class first.
func (r *PupilRepository) ListOrdered(ctx context.Context) ([]models.Pupil, error) {
	var pupils []models.Pupil
	err := r.db.WithContext(ctx).
		Preload("SchoolClass").
		Order("school_class_id IS NOT NULL").
		Order("school_class_id").
		Order("last_name").
		Order("id").
		Find(&pupils).Error
	if err != nil {
		return nil, errors.Wrap(err, "list pupils")
	}
	return pupils, nil
}

func (r *PupilRepository) Create(ctx context.Context, pupil *models.Pupil) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(pupil).Error; err != nil {
		return errors.Wrap(err, "create pupil")
	}
	return nil
}

// Save writes all columns of an existing pupil. The loaded class is never
// written back.
func (r *PupilRepository) Save(ctx context.Context, pupil *models.Pupil) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(pupil).Error; err != nil {
		return errors.Wrapf(err, "save pupil %d", pupil.ID)
	}
	return nil
}

func (r *PupilRepository) Delete(ctx context.Context, pupil *models.Pupil) error {
	result := r.db.WithContext(ctx).Delete(&models.Pupil{}, pupil.ID)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "delete pupil %d", pupil.ID)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
