package domain

import (
	"bytes"
	"math/big"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// Campaign is a single fundraising effort. It owns the pooled balance, the
// approver set and the append-only list of spending requests.
//
// Campaign methods are not safe for concurrent use. Storage adapters
// serialize all commands against one campaign and hand out clones for reads.
type Campaign struct {
	Address             common.Address
	Nonce               uint64
	Manager             common.Address
	MinimumContribution *big.Int
	Balance             *big.Int
	CreatedAt           time.Time

	approvers map[common.Address]struct{}
	requests  []*SpendingRequest
}

// CampaignAddress derives the handle of the campaign deployed by factory at
// the given nonce, the same way a contract creation address is derived.
func CampaignAddress(factory common.Address, nonce uint64) common.Address {
	return crypto.CreateAddress(factory, nonce)
}

// NewCampaign returns an empty campaign managed by manager.
func NewCampaign(address common.Address, nonce uint64, manager common.Address, minimum *big.Int) (*Campaign, error) {
	if minimum == nil || minimum.Sign() < 0 {
		return nil, Errorf(CodeInvalidArgument, "minimum contribution must not be negative")
	}
	if minimum.Cmp(math.MaxBig256) > 0 {
		return nil, Errorf(CodeInvalidArgument, "minimum contribution exceeds 2^256-1")
	}
	return &Campaign{
		Address:             address,
		Nonce:               nonce,
		Manager:             manager,
		MinimumContribution: new(big.Int).Set(minimum),
		Balance:             new(big.Int),
		CreatedAt:           time.Now().UTC(),
		approvers:           make(map[common.Address]struct{}),
	}, nil
}

// Restore rebuilds a campaign from persisted state.
func Restore(c *Campaign, approvers []common.Address, requests []*SpendingRequest) *Campaign {
	c.approvers = make(map[common.Address]struct{}, len(approvers))
	for _, a := range approvers {
		c.approvers[a] = struct{}{}
	}
	c.requests = requests
	if c.Balance == nil {
		c.Balance = new(big.Int)
	}
	return c
}

// Clone returns a deep copy that shares no mutable state with c.
func (c *Campaign) Clone() *Campaign {
	out := *c
	out.MinimumContribution = new(big.Int).Set(c.MinimumContribution)
	out.Balance = new(big.Int).Set(c.Balance)
	out.approvers = make(map[common.Address]struct{}, len(c.approvers))
	for a := range c.approvers {
		out.approvers[a] = struct{}{}
	}
	out.requests = make([]*SpendingRequest, len(c.requests))
	for i, r := range c.requests {
		out.requests[i] = r.clone()
	}
	return &out
}

// IsApprover reports whether who has contributed at least the minimum.
func (c *Campaign) IsApprover(who common.Address) bool {
	_, ok := c.approvers[who]
	return ok
}

// ApproversCount is the quorum denominator.
func (c *Campaign) ApproversCount() int {
	return len(c.approvers)
}

// Approvers returns the approver set in byte order.
func (c *Campaign) Approvers() []common.Address {
	out := make([]common.Address, 0, len(c.approvers))
	for a := range c.approvers {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b common.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return out
}

// RequestsCount returns the number of spending requests ever created.
func (c *Campaign) RequestsCount() int {
	return len(c.requests)
}

// Request returns a copy of the request at index.
func (c *Campaign) Request(index int) (*SpendingRequest, error) {
	r, err := c.request(index)
	if err != nil {
		return nil, err
	}
	return r.clone(), nil
}

// Requests returns copies of all requests in creation order.
func (c *Campaign) Requests() []*SpendingRequest {
	out := make([]*SpendingRequest, len(c.requests))
	for i, r := range c.requests {
		out[i] = r.clone()
	}
	return out
}

// Summary is the read-only overview of a campaign.
type Summary struct {
	Address             common.Address
	Manager             common.Address
	MinimumContribution *big.Int
	Balance             *big.Int
	RequestsCount       int
	ApproversCount      int
}

// Summary returns a snapshot overview of c.
func (c *Campaign) Summary() Summary {
	return Summary{
		Address:             c.Address,
		Manager:             c.Manager,
		MinimumContribution: new(big.Int).Set(c.MinimumContribution),
		Balance:             new(big.Int).Set(c.Balance),
		RequestsCount:       len(c.requests),
		ApproversCount:      len(c.approvers),
	}
}

// Contribute adds amount to the pool. A caller becomes an approver on its
// first qualifying contribution; later contributions never add weight. The
// pool never exceeds 2^256-1, the largest amount ParseAmount accepts.
func (c *Campaign) Contribute(caller common.Address, amount *big.Int) (*Contributed, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, Errorf(CodeInvalidArgument, "contribution must not be negative")
	}
	if amount.Cmp(c.MinimumContribution) < 0 {
		return nil, Errorf(CodeInsufficientContribution,
			"contribution %s is below the minimum of %s", amount, c.MinimumContribution)
	}

	next := new(big.Int).Add(c.Balance, amount)
	if next.Cmp(math.MaxBig256) > 0 {
		return nil, Errorf(CodeInvalidArgument,
			"contribution %s would push the pool past 2^256-1", amount)
	}

	_, known := c.approvers[caller]
	c.Balance.Set(next)
	if !known {
		c.approvers[caller] = struct{}{}
	}
	return &Contributed{
		Campaign:    c.Address,
		Contributor: caller,
		Amount:      new(big.Int).Set(amount),
		NewApprover: !known,
		ID:          uuid.New(),
	}, nil
}

// CreateRequest appends a pending spending request. Only the manager may
// call it. The value is checked against the pool at finalization, not here.
func (c *Campaign) CreateRequest(caller common.Address, description string, value *big.Int, recipient common.Address) (*RequestCreated, error) {
	if caller != c.Manager {
		return nil, Errorf(CodeUnauthorized, "only the manager can create requests")
	}
	if value == nil || value.Sign() < 0 {
		return nil, Errorf(CodeInvalidArgument, "request value must not be negative")
	}
	if value.Cmp(math.MaxBig256) > 0 {
		return nil, Errorf(CodeInvalidArgument, "request value exceeds 2^256-1")
	}

	r := NewSpendingRequest(len(c.requests), description, value, recipient, false, nil)
	c.requests = append(c.requests, r)
	return &RequestCreated{Campaign: c.Address, Request: r.clone()}, nil
}

// ApproveRequest records caller's vote on the request at index.
func (c *Campaign) ApproveRequest(caller common.Address, index int) (*RequestApproved, error) {
	r, err := c.request(index)
	if err != nil {
		return nil, err
	}
	if !c.IsApprover(caller) {
		return nil, Errorf(CodeUnauthorized, "%s is not an approver", caller.Hex())
	}
	if r.HasApproved(caller) {
		return nil, Errorf(CodeAlreadyVoted, "%s already approved request %d", caller.Hex(), index)
	}
	if r.Complete {
		return nil, Errorf(CodeRequestAlreadyFinalized, "request %d is already finalized", index)
	}

	r.approvals[caller] = struct{}{}
	r.ApprovalCount++
	return &RequestApproved{
		Campaign:      c.Address,
		Index:         index,
		Approver:      caller,
		ApprovalCount: r.ApprovalCount,
	}, nil
}

// FinalizeRequest pays the request out of the pool once a strict majority
// of all-time approvers voted for it. The majority uses integer division:
// with 4 approvers, 2 votes are not enough and 3 are.
func (c *Campaign) FinalizeRequest(caller common.Address, index int) (*RequestFinalized, error) {
	if caller != c.Manager {
		return nil, Errorf(CodeUnauthorized, "only the manager can finalize requests")
	}
	r, err := c.request(index)
	if err != nil {
		return nil, err
	}
	if r.Complete {
		return nil, Errorf(CodeRequestAlreadyFinalized, "request %d is already finalized", index)
	}
	if !QuorumMet(r.ApprovalCount, len(c.approvers)) {
		return nil, Errorf(CodeQuorumNotMet,
			"request %d has %d approvals, needs more than %d", index, r.ApprovalCount, len(c.approvers)/2)
	}
	if r.Value.Cmp(c.Balance) > 0 {
		return nil, Errorf(CodeInsufficientFunds,
			"request %d needs %s but the campaign holds %s", index, r.Value, c.Balance)
	}

	c.Balance.Sub(c.Balance, r.Value)
	r.Complete = true
	return &RequestFinalized{
		Campaign:   c.Address,
		Index:      index,
		Recipient:  r.Recipient,
		Value:      new(big.Int).Set(r.Value),
		TransferID: uuid.New(),
	}, nil
}

// QuorumMet is the finalization rule: approvals > approvers/2.
func QuorumMet(approvals, approvers int) bool {
	return approvals > approvers/2
}

func (c *Campaign) request(index int) (*SpendingRequest, error) {
	if index < 0 || index >= len(c.requests) {
		return nil, Errorf(CodeIndexOutOfRange, "request %d does not exist (have %d)", index, len(c.requests))
	}
	return c.requests[index], nil
}
