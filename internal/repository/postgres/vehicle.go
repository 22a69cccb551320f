package postgres

import (
	"context"
	"database/sql"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, owner_id, COALESCE(brand, ''), COALESCE(model, ''), COALESCE(year, 0) FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.OwnerID, &v.Brand, &v.Model, &v.Year)
	if err != nil {
		return nil, notFound(err, "vehicle", id)
	}
	return v, nil
}
