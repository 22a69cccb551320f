package service

import (
	"context"
	"errors"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/repository"
)

type contractService struct {
	contractRepo repository.ContractRepository
}

func NewContractService(contractRepo repository.ContractRepository) ContractService {
	return &contractService{contractRepo: contractRepo}
}

func (s *contractService) MarkSent(ctx context.Context, contractID int32) (*domain.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, storageErr("get contract", err)
	}
	if err := c.MarkSent(time.Now()); err != nil {
		return nil, err
	}
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, storageErr("update contract", err)
	}
	return c, nil
}

// ApplySignature records a signing-provider callback for one party. The
// flag and the resulting status are written in one statement.
func (s *contractService) ApplySignature(ctx context.Context, contractID int32, party domain.SignatureParty) (*domain.Contract, error) {
	if !party.Valid() {
		return nil, domain.NewValidationError("signature", contractID, "unknown party "+string(party))
	}
	c, err := s.contractRepo.ApplySignature(ctx, contractID, party, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrContractImmutable) {
			return nil, err
		}
		return nil, storageErr("apply signature", err)
	}
	logger.Info("Contract signature applied", "contractID", c.ID, "bookingID", c.BookingID, "party", party, "status", c.Status)
	return c, nil
}
