package postgres

import (
	"context"
	"database/sql"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, COALESCE(phone, ''), COALESCE(device_token, ''), role FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.DeviceToken, &u.Role)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return u, nil
}
