package port

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"crowdfund/internal/core/domain"
)

// CampaignUseCase defines the operations exposed by the crowdfunding core.
// It is the primary port into the application domain. Mutating operations
// read the caller from ctx (see domain.WithCaller) and fail with
// domain.ErrUnauthenticated when none is present.
type CampaignUseCase interface {
	// CreateCampaign deploys a campaign managed by the caller and returns
	// its address.
	CreateCampaign(ctx context.Context, minimum *big.Int) (common.Address, error)

	// DeployedCampaigns lists campaign addresses in creation order.
	DeployedCampaigns(ctx context.Context) ([]common.Address, error)

	// Contribute adds amount to the campaign pool on behalf of the caller.
	Contribute(ctx context.Context, campaign common.Address, amount *big.Int) error

	// CreateRequest appends a spending request and returns its index.
	CreateRequest(ctx context.Context, campaign common.Address, in CreateRequestInput) (int, error)

	// ApproveRequest records the caller's vote.
	ApproveRequest(ctx context.Context, campaign common.Address, index int) error

	// FinalizeRequest transfers the request value to its recipient.
	FinalizeRequest(ctx context.Context, campaign common.Address, index int) error

	Manager(ctx context.Context, campaign common.Address) (common.Address, error)
	IsApprover(ctx context.Context, campaign, who common.Address) (bool, error)
	Request(ctx context.Context, campaign common.Address, index int) (*domain.SpendingRequest, error)
	Requests(ctx context.Context, campaign common.Address) ([]*domain.SpendingRequest, error)
	Summary(ctx context.Context, campaign common.Address) (*domain.Summary, error)

	// AccountBalance returns the funds an account received from finalized
	// requests.
	AccountBalance(ctx context.Context, account common.Address) (*big.Int, error)
}

// CreateRequestInput carries the fields of a new spending request.
type CreateRequestInput struct {
	Description string
	Value       *big.Int
	Recipient   common.Address
}
