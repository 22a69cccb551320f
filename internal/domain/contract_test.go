package domain_test

import (
	"testing"
	"time"

	"alugae-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContract_MarkSent(t *testing.T) {
	now := time.Date(2025, 7, 20, 15, 0, 0, 0, time.UTC)

	c := domain.NewDraftContract(42, now)
	require.NoError(t, c.MarkSent(now.Add(time.Minute)))
	assert.Equal(t, domain.ContractStatusSent, c.Status)
	assert.Equal(t, now.Add(time.Minute), c.UpdatedOn)

	require.NoError(t, c.MarkSent(now.Add(time.Hour)))
	assert.Equal(t, now.Add(time.Minute), c.UpdatedOn)

	signed := &domain.Contract{Status: domain.ContractStatusSigned, RenterSigned: true, OwnerSigned: true}
	assert.ErrorIs(t, signed.MarkSent(now), domain.ErrContractImmutable)
}

func TestContract_Consistent(t *testing.T) {
	assert.False(t, (&domain.Contract{Status: domain.ContractStatusSigned, RenterSigned: true}).Consistent())
	assert.False(t, (&domain.Contract{Status: domain.ContractStatusSent, RenterSigned: true, OwnerSigned: true}).Consistent())
	assert.True(t, (&domain.Contract{Status: domain.ContractStatusDraft}).Consistent())
}
