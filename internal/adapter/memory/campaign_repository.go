// Package memory provides an in-process implementation of
// port.CampaignRepository.
package memory

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
)

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// CampaignRepository keeps campaigns in memory. Each campaign has its own
// lock; commands run against a clone which replaces the stored aggregate
// only when the command succeeds, so a failing command leaves no trace.
type CampaignRepository struct {
	mu        sync.RWMutex
	deployed  []common.Address
	campaigns map[common.Address]*entry

	ledgerMu sync.RWMutex
	ledger   map[common.Address]*big.Int
}

type entry struct {
	mu       sync.RWMutex
	campaign *domain.Campaign
}

// NewCampaignRepository returns an empty repository.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{
		campaigns: make(map[common.Address]*entry),
		ledger:    make(map[common.Address]*big.Int),
	}
}

// Deploy builds the campaign with the next nonce and appends it.
func (r *CampaignRepository) Deploy(ctx context.Context, fn port.DeployFunc) (*domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := fn(uint64(len(r.deployed)))
	if err != nil {
		return nil, err
	}
	if _, exists := r.campaigns[c.Address]; exists {
		return nil, domain.Errorf(domain.CodeInvalidArgument, "campaign %s already deployed", c.Address.Hex())
	}
	r.campaigns[c.Address] = &entry{campaign: c.Clone()}
	r.deployed = append(r.deployed, c.Address)
	return c, nil
}

// DeployedCampaigns returns a copy of the deployed list.
func (r *CampaignRepository) DeployedCampaigns(ctx context.Context) ([]common.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]common.Address, len(r.deployed))
	copy(out, r.deployed)
	return out, nil
}

// Campaign returns a clone of the stored aggregate.
func (r *CampaignRepository) Campaign(ctx context.Context, address common.Address) (*domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, err := r.entry(address)
	if err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.campaign.Clone(), nil
}

// Apply runs fn on a clone under the campaign's write lock and swaps the
// clone in on success. Finalizations credit the recipient's ledger account
// before the lock is released.
func (r *CampaignRepository) Apply(ctx context.Context, address common.Address, fn port.CommandFunc) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, err := r.entry(address)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.campaign.Clone()
	ev, err := fn(next)
	if err != nil {
		return nil, err
	}
	if fin, ok := ev.(*domain.RequestFinalized); ok {
		r.credit(fin.Recipient, fin.Value)
	}
	e.campaign = next
	return ev, nil
}

// AccountBalance returns the credited balance of account.
func (r *CampaignRepository) AccountBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.ledgerMu.RLock()
	defer r.ledgerMu.RUnlock()

	if b, ok := r.ledger[account]; ok {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

func (r *CampaignRepository) credit(account common.Address, value *big.Int) {
	r.ledgerMu.Lock()
	defer r.ledgerMu.Unlock()

	b, ok := r.ledger[account]
	if !ok {
		b = new(big.Int)
		r.ledger[account] = b
	}
	b.Add(b, value)
}

func (r *CampaignRepository) entry(address common.Address) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.campaigns[address]
	if !ok {
		return nil, domain.Errorf(domain.CodeCampaignNotFound, "campaign %s not found", address.Hex())
	}
	return e, nil
}
