package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/repository"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const contractColumns = `id, booking_id, contract_number, status, renter_signed, renter_signed_at, owner_signed, owner_signed_at, created_at, updated_at`

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

func scanContract(s rowScanner) (*domain.Contract, error) {
	c := &domain.Contract{}
	var status string
	var renterAt, ownerAt sql.NullTime
	err := s.Scan(&c.ID, &c.BookingID, &c.ContractNumber, &status, &c.RenterSigned, &renterAt, &c.OwnerSigned, &ownerAt, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	c.Status = domain.ContractStatus(status)
	c.RenterSignedAt = nullTimePtr(renterAt)
	c.OwnerSignedAt = nullTimePtr(ownerAt)
	return c, nil
}

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	query := `INSERT INTO contracts (booking_id, contract_number, status, renter_signed, owner_signed, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if c.CreatedOn.IsZero() {
		c.CreatedOn = time.Now()
	}
	c.UpdatedOn = c.CreatedOn
	err := r.db.QueryRowContext(ctx, query, c.BookingID, c.ContractNumber, string(c.Status), c.RenterSigned, c.OwnerSigned, c.CreatedOn, c.UpdatedOn).Scan(&c.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("contract for booking %d: %w", c.BookingID, domain.ErrAlreadyExists)
	}
	return err
}

func (r *contractRepository) GetByID(ctx context.Context, id int32) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	c, err := scanContract(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "contract", id)
	}
	return c, nil
}

func (r *contractRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE booking_id = $1 ORDER BY id DESC LIMIT 1`
	c, err := scanContract(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		return nil, notFound(err, "contract for booking", bookingID)
	}
	return c, nil
}

func (r *contractRepository) Update(ctx context.Context, c *domain.Contract) error {
	query := `UPDATE contracts SET status = $1, renter_signed = $2, renter_signed_at = $3, owner_signed = $4, owner_signed_at = $5, updated_at = $6 WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query, string(c.Status), c.RenterSigned, c.RenterSignedAt, c.OwnerSigned, c.OwnerSignedAt, c.UpdatedOn, c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(sql.ErrNoRows, "contract", c.ID)
	}
	return nil
}

// ApplySignature flips one party's flag and derives the status from the row
// being updated, so concurrent callbacks for both parties end up signed.
func (r *contractRepository) ApplySignature(ctx context.Context, id int32, party domain.SignatureParty, at time.Time) (*domain.Contract, error) {
	query := `UPDATE contracts SET
	              renter_signed    = renter_signed OR $2::text = 'renter',
	              renter_signed_at = CASE WHEN $2::text = 'renter' THEN $3 ELSE renter_signed_at END,
	              owner_signed     = owner_signed OR $2::text = 'owner',
	              owner_signed_at  = CASE WHEN $2::text = 'owner' THEN $3 ELSE owner_signed_at END,
	              status = CASE
	                  WHEN (renter_signed OR $2::text = 'renter') AND (owner_signed OR $2::text = 'owner') THEN 'signed'
	                  ELSE 'sent'
	              END,
	              updated_at = $3
	          WHERE id = $1 AND status <> 'signed'
	          RETURNING ` + contractColumns
	logger.DatabaseCall("UPDATE", "contracts", "contractID", id, "party", party)
	c, err := scanContract(r.db.QueryRowContext(ctx, query, id, string(party), at))
	if err == nil {
		logger.DatabaseResult("UPDATE", 1, nil)
		return c, nil
	}
	logger.DatabaseResult("UPDATE", 0, err)
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("contract %d: %w", id, domain.ErrContractImmutable)
}
