package port

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"crowdfund/internal/core/domain"
)

// DeployFunc builds a new campaign for the given factory nonce. It runs
// while the repository holds the factory lock, so nonce is unique.
type DeployFunc func(nonce uint64) (*domain.Campaign, error)

// CommandFunc applies one domain command to a campaign. It must either
// return an error without having mutated c, or mutate c and return the
// resulting event.
type CommandFunc func(c *domain.Campaign) (domain.Event, error)

// CampaignRepository is the persistence layer for the factory and its
// campaigns. It is an outbound port. Implementations must be
// concurrency-safe: commands against one campaign are applied one at a time,
// and reads return consistent snapshots.
type CampaignRepository interface {
	// Deploy stores the campaign built by fn and appends it to the factory's
	// deployed list.
	Deploy(ctx context.Context, fn DeployFunc) (*domain.Campaign, error)

	// DeployedCampaigns returns all campaign addresses in creation order.
	DeployedCampaigns(ctx context.Context) ([]common.Address, error)

	// Campaign returns a snapshot of the campaign at address, or
	// domain.ErrCampaignNotFound.
	Campaign(ctx context.Context, address common.Address) (*domain.Campaign, error)

	// Apply runs fn against the campaign at address under its exclusive
	// lock and persists the returned event atomically. When fn fails
	// nothing is persisted.
	Apply(ctx context.Context, address common.Address, fn CommandFunc) (domain.Event, error)

	// AccountBalance returns the funds credited to account by finalized
	// requests across all campaigns.
	AccountBalance(ctx context.Context, account common.Address) (*big.Int, error)
}
