package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/models"
)

// TruckRepo reads trucks from PostgreSQL. Only availability is ever written.
type TruckRepo struct {
	db *sqlx.DB
}

// NewTruckRepository creates a truck repository
func NewTruckRepository(db *sqlx.DB) *TruckRepo {
	return &TruckRepo{db: db}
}

// GetByID retrieves a truck by ID
func (r *TruckRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Truck, error) {
	query := `
		SELECT id, owner_id, plate_number, capacity_kg, rate_per_km, minimum_charge, is_available, updated_at
		FROM trucks
		WHERE id = $1`

	var truck models.Truck
	if err := r.db.GetContext(ctx, &truck, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFoundError{Resource: "truck", ID: id.String(), Err: err}
		}
		return nil, fmt.Errorf("failed to get truck: %w", err)
	}
	return &truck, nil
}

// SetAvailability stores the truck's availability flag
func (r *TruckRepo) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query := `UPDATE trucks SET is_available = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, available, id)
	if err != nil {
		return fmt.Errorf("failed to update truck availability: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFoundError{Resource: "truck", ID: id.String()}
	}
	return nil
}
