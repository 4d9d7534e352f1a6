package domain

import (
	"bytes"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
)

// SpendingRequest is a manager's proposal to pay Value out of the campaign
// pool to Recipient. Description, Value and Recipient are fixed at creation.
// Complete flips false→true once and never reverts.
type SpendingRequest struct {
	Index         int
	Description   string
	Value         *big.Int
	Recipient     common.Address
	Complete      bool
	ApprovalCount int

	approvals map[common.Address]struct{}
}

// NewSpendingRequest builds a request in its persisted state. Storage
// adapters use it to rehydrate aggregates; ApprovalCount is derived from
// approvals so the two can never disagree.
func NewSpendingRequest(index int, description string, value *big.Int, recipient common.Address, complete bool, approvals []common.Address) *SpendingRequest {
	r := &SpendingRequest{
		Index:       index,
		Description: description,
		Value:       new(big.Int).Set(value),
		Recipient:   recipient,
		Complete:    complete,
		approvals:   make(map[common.Address]struct{}, len(approvals)),
	}
	for _, a := range approvals {
		r.approvals[a] = struct{}{}
	}
	r.ApprovalCount = len(r.approvals)
	return r
}

// HasApproved reports whether who has voted on this request.
func (r *SpendingRequest) HasApproved(who common.Address) bool {
	_, ok := r.approvals[who]
	return ok
}

// Approvals returns the voters in byte order.
func (r *SpendingRequest) Approvals() []common.Address {
	out := make([]common.Address, 0, len(r.approvals))
	for a := range r.approvals {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b common.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return out
}

func (r *SpendingRequest) clone() *SpendingRequest {
	c := *r
	c.Value = new(big.Int).Set(r.Value)
	c.approvals = make(map[common.Address]struct{}, len(r.approvals))
	for a := range r.approvals {
		c.approvals[a] = struct{}{}
	}
	return &c
}
