package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"pupils-backend/models"
)

// ClassRepository reads school classes with plain SQL; classes are never
// written through the API.
type ClassRepository struct {
	db *sqlx.DB
}

func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) List(ctx context.Context) ([]models.SchoolClass, error) {
	classes := []models.SchoolClass{}
	if err := r.db.SelectContext(ctx, &classes, `SELECT id, name, course FROM school_class ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "list school classes")
	}
	return classes, nil
}

func (r *ClassRepository) FindByID(ctx context.Context, id uint) (*models.SchoolClass, error) {
	var class models.SchoolClass
	query := r.db.Rebind(`SELECT id, name, course FROM school_class WHERE id = ?`)
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "find school class %d", id)
	}
	return &class, nil
}
