package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// Event describes the effect of one successful campaign command. Storage
// adapters persist events inside the same transaction that applied the
// command.
type Event interface {
	// Name is a short operation label used in logs and metrics.
	Name() string
	// CampaignAddress is the campaign the event belongs to.
	CampaignAddress() common.Address
}

// Contributed is emitted by Campaign.Contribute.
type Contributed struct {
	Campaign    common.Address
	Contributor common.Address
	Amount      *big.Int
	// NewApprover is set when this contribution added Contributor to the
	// approver set.
	NewApprover bool
	ID          uuid.UUID
}

// RequestCreated is emitted by Campaign.CreateRequest.
type RequestCreated struct {
	Campaign common.Address
	Request  *SpendingRequest
}

// RequestApproved is emitted by Campaign.ApproveRequest.
type RequestApproved struct {
	Campaign      common.Address
	Index         int
	Approver      common.Address
	ApprovalCount int
}

// RequestFinalized is emitted by Campaign.FinalizeRequest. It carries the
// single transfer the finalization performed.
type RequestFinalized struct {
	Campaign   common.Address
	Index      int
	Recipient  common.Address
	Value      *big.Int
	TransferID uuid.UUID
}

func (e *Contributed) Name() string      { return "contribute" }
func (e *RequestCreated) Name() string   { return "create_request" }
func (e *RequestApproved) Name() string  { return "approve_request" }
func (e *RequestFinalized) Name() string { return "finalize_request" }

func (e *Contributed) CampaignAddress() common.Address      { return e.Campaign }
func (e *RequestCreated) CampaignAddress() common.Address   { return e.Campaign }
func (e *RequestApproved) CampaignAddress() common.Address  { return e.Campaign }
func (e *RequestFinalized) CampaignAddress() common.Address { return e.Campaign }
