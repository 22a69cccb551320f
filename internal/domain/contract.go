package domain

import (
	"fmt"
	"time"
)

type ContractStatus string

const (
	ContractStatusDraft  ContractStatus = "draft"
	ContractStatusSent   ContractStatus = "sent"
	ContractStatusSigned ContractStatus = "signed"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusDraft, ContractStatusSent, ContractStatusSigned:
		return true
	}
	return false
}

// SignatureParty identifies who signed through the provider callback.
type SignatureParty string

const (
	PartyRenter SignatureParty = "renter"
	PartyOwner  SignatureParty = "owner"
)

func (p SignatureParty) Valid() bool {
	return p == PartyRenter || p == PartyOwner
}

type Contract struct {
	ID             int32          `json:"id"`
	BookingID      int32          `json:"booking_id"`
	ContractNumber string         `json:"contract_number"`
	Status         ContractStatus `json:"status"`
	RenterSigned   bool           `json:"renter_signed"`
	RenterSignedAt *time.Time     `json:"renter_signed_at,omitempty"`
	OwnerSigned    bool           `json:"owner_signed"`
	OwnerSignedAt  *time.Time     `json:"owner_signed_at,omitempty"`
	CreatedOn      time.Time      `json:"created_on"`
	UpdatedOn      time.Time      `json:"updated_on"`
}

// NewDraftContract creates the contract issued when a booking is approved.
func NewDraftContract(bookingID int32, now time.Time) *Contract {
	return &Contract{
		BookingID:      bookingID,
		ContractNumber: fmt.Sprintf("ALG-%s-%06d", now.Format("20060102"), bookingID),
		Status:         ContractStatusDraft,
		CreatedOn:      now,
		UpdatedOn:      now,
	}
}

// MarkSent moves a draft to sent once the signing envelope went out.
func (c *Contract) MarkSent(now time.Time) error {
	switch c.Status {
	case ContractStatusSigned:
		return ErrContractImmutable
	case ContractStatusSent:
		return nil
	}
	c.Status = ContractStatusSent
	c.UpdatedOn = now
	return nil
}

// Consistent checks the signed-iff-both-flags invariant on a stored record.
func (c *Contract) Consistent() bool {
	return (c.Status == ContractStatusSigned) == (c.RenterSigned && c.OwnerSigned)
}
