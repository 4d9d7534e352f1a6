package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
	"crowdfund/internal/metrics"
)

// CampaignUseCase implements port.CampaignUseCase. It plays the role of the
// campaign factory and routes every campaign command through the
// repository so that each one is applied atomically.
type CampaignUseCase struct {
	repo    port.CampaignRepository
	factory common.Address
	logger  *slog.Logger
	metrics *metrics.Metrics
}

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)

// Option configures a CampaignUseCase.
type Option func(*CampaignUseCase)

// WithLogger sets the logger used for operation logs.
func WithLogger(l *slog.Logger) Option {
	return func(u *CampaignUseCase) { u.logger = l }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(u *CampaignUseCase) { u.metrics = m }
}

// NewCampaignUseCase creates a use case backed by repo. factory is the
// address campaign handles are derived from.
func NewCampaignUseCase(repo port.CampaignRepository, factory common.Address, opts ...Option) *CampaignUseCase {
	u := &CampaignUseCase{repo: repo, factory: factory, logger: slog.Default()}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CreateCampaign deploys a new campaign managed by the caller.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, minimum *big.Int) (common.Address, error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if minimum == nil {
		minimum = new(big.Int)
	}
	c, err := u.repo.Deploy(ctx, func(nonce uint64) (*domain.Campaign, error) {
		return domain.NewCampaign(domain.CampaignAddress(u.factory, nonce), nonce, caller, minimum)
	})
	u.metrics.ObserveOperation("create_campaign", err)
	if err != nil {
		return common.Address{}, err
	}
	u.metrics.CampaignDeployed()
	u.logger.InfoContext(ctx, "campaign deployed",
		slog.String("campaign", c.Address.Hex()),
		slog.String("manager", caller.Hex()),
		slog.String("minimum", minimum.String()),
		slog.Uint64("nonce", c.Nonce),
	)
	return c.Address, nil
}

// DeployedCampaigns lists campaigns in creation order.
func (u *CampaignUseCase) DeployedCampaigns(ctx context.Context) ([]common.Address, error) {
	return u.repo.DeployedCampaigns(ctx)
}

// Contribute adds amount to the campaign pool.
func (u *CampaignUseCase) Contribute(ctx context.Context, campaign common.Address, amount *big.Int) error {
	if amount == nil {
		return domain.Errorf(domain.CodeInvalidArgument, "amount is required")
	}
	_, err := u.apply(ctx, campaign, "contribute", func(caller common.Address, c *domain.Campaign) (domain.Event, error) {
		return c.Contribute(caller, amount)
	})
	return err
}

// CreateRequest appends a spending request and returns its index.
func (u *CampaignUseCase) CreateRequest(ctx context.Context, campaign common.Address, in port.CreateRequestInput) (int, error) {
	if in.Value == nil {
		return 0, domain.Errorf(domain.CodeInvalidArgument, "value is required")
	}
	ev, err := u.apply(ctx, campaign, "create_request", func(caller common.Address, c *domain.Campaign) (domain.Event, error) {
		return c.CreateRequest(caller, in.Description, in.Value, in.Recipient)
	})
	if err != nil {
		return 0, err
	}
	created, ok := ev.(*domain.RequestCreated)
	if !ok {
		return 0, fmt.Errorf("unexpected event %T", ev)
	}
	return created.Request.Index, nil
}

// ApproveRequest records the caller's vote on request index.
func (u *CampaignUseCase) ApproveRequest(ctx context.Context, campaign common.Address, index int) error {
	_, err := u.apply(ctx, campaign, "approve_request", func(caller common.Address, c *domain.Campaign) (domain.Event, error) {
		return c.ApproveRequest(caller, index)
	})
	return err
}

// FinalizeRequest pays out request index once quorum is met.
func (u *CampaignUseCase) FinalizeRequest(ctx context.Context, campaign common.Address, index int) error {
	ev, err := u.apply(ctx, campaign, "finalize_request", func(caller common.Address, c *domain.Campaign) (domain.Event, error) {
		return c.FinalizeRequest(caller, index)
	})
	if err != nil {
		return err
	}
	if fin, ok := ev.(*domain.RequestFinalized); ok {
		u.metrics.FundsTransferred(fin.Value)
	}
	return nil
}

// Manager returns the campaign manager.
func (u *CampaignUseCase) Manager(ctx context.Context, campaign common.Address) (common.Address, error) {
	c, err := u.repo.Campaign(ctx, campaign)
	if err != nil {
		return common.Address{}, err
	}
	return c.Manager, nil
}

// IsApprover reports whether who is an approver of the campaign.
func (u *CampaignUseCase) IsApprover(ctx context.Context, campaign, who common.Address) (bool, error) {
	c, err := u.repo.Campaign(ctx, campaign)
	if err != nil {
		return false, err
	}
	return c.IsApprover(who), nil
}

// Request returns a snapshot of request index.
func (u *CampaignUseCase) Request(ctx context.Context, campaign common.Address, index int) (*domain.SpendingRequest, error) {
	c, err := u.repo.Campaign(ctx, campaign)
	if err != nil {
		return nil, err
	}
	return c.Request(index)
}

// Requests returns snapshots of all requests.
func (u *CampaignUseCase) Requests(ctx context.Context, campaign common.Address) ([]*domain.SpendingRequest, error) {
	c, err := u.repo.Campaign(ctx, campaign)
	if err != nil {
		return nil, err
	}
	return c.Requests(), nil
}

// Summary returns the campaign overview.
func (u *CampaignUseCase) Summary(ctx context.Context, campaign common.Address) (*domain.Summary, error) {
	c, err := u.repo.Campaign(ctx, campaign)
	if err != nil {
		return nil, err
	}
	s := c.Summary()
	return &s, nil
}

// AccountBalance returns the funds credited to account.
func (u *CampaignUseCase) AccountBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	return u.repo.AccountBalance(ctx, account)
}

// apply resolves the caller and runs cmd through the repository, recording
// the outcome.
func (u *CampaignUseCase) apply(
	ctx context.Context,
	campaign common.Address,
	operation string,
	cmd func(caller common.Address, c *domain.Campaign) (domain.Event, error),
) (domain.Event, error) {
	caller, err := callerOf(ctx)
	if err != nil {
		u.metrics.ObserveOperation(operation, err)
		return nil, err
	}
	ev, err := u.repo.Apply(ctx, campaign, func(c *domain.Campaign) (domain.Event, error) {
		return cmd(caller, c)
	})
	u.metrics.ObserveOperation(operation, err)
	if err != nil {
		u.logger.DebugContext(ctx, "campaign command rejected",
			slog.String("operation", operation),
			slog.String("campaign", campaign.Hex()),
			slog.String("caller", caller.Hex()),
			slog.Any("error", err),
		)
		return nil, err
	}
	u.logger.InfoContext(ctx, "campaign command applied",
		slog.String("operation", ev.Name()),
		slog.String("campaign", campaign.Hex()),
		slog.String("caller", caller.Hex()),
	)
	return ev, nil
}

func callerOf(ctx context.Context) (common.Address, error) {
	caller, ok := domain.CallerFromContext(ctx)
	if !ok {
		return common.Address{}, domain.ErrUnauthenticated
	}
	return caller, nil
}
