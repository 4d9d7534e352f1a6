package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/adapter/memory"
	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
	"crowdfund/internal/core/port/mocks"
)

var (
	factory   = common.HexToAddress("0x00000000000000000000000000000000000000fa")
	manager   = common.HexToAddress("0x1000000000000000000000000000000000000001")
	alice     = common.HexToAddress("0x2000000000000000000000000000000000000002")
	recipient = common.HexToAddress("0x6000000000000000000000000000000000000006")
)

func as(who common.Address) context.Context {
	return domain.WithCaller(context.Background(), who)
}

func newMemoryUseCase(t *testing.T) (*CampaignUseCase, common.Address) {
	t.Helper()
	svc := NewCampaignUseCase(memory.NewCampaignRepository(), factory)
	addr, err := svc.CreateCampaign(as(manager), big.NewInt(100))
	require.NoError(t, err)
	return svc, addr
}

// TestProcessesRequests walks the full lifecycle: deploy, contribute,
// request, approve, finalize.
func TestProcessesRequests(t *testing.T) {
	svc, addr := newMemoryUseCase(t)
	ctx := context.Background()

	deployed, err := svc.DeployedCampaigns(ctx)
	require.NoError(t, err)
	require.Equal(t, []common.Address{addr}, deployed)
	assert.Equal(t, domain.CampaignAddress(factory, 0), addr)

	gotManager, err := svc.Manager(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, manager, gotManager)

	require.NoError(t, svc.Contribute(as(alice), addr, big.NewInt(200)))
	ok, err := svc.IsApprover(ctx, addr, alice)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Contribute(as(manager), addr, big.NewInt(100)))

	idx, err := svc.CreateRequest(as(manager), addr, port.CreateRequestInput{
		Description: "Buy batteries",
		Value:       big.NewInt(100),
		Recipient:   recipient,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	req, err := svc.Request(ctx, addr, 0)
	require.NoError(t, err)
	assert.Equal(t, "Buy batteries", req.Description)

	before, err := svc.AccountBalance(ctx, recipient)
	require.NoError(t, err)

	require.NoError(t, svc.ApproveRequest(as(manager), addr, 0))
	require.NoError(t, svc.ApproveRequest(as(alice), addr, 0))
	require.NoError(t, svc.FinalizeRequest(as(manager), addr, 0))

	after, err := svc.AccountBalance(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, "100", new(big.Int).Sub(after, before).String())

	req, err = svc.Request(ctx, addr, 0)
	require.NoError(t, err)
	assert.True(t, req.Complete)

	summary, err := svc.Summary(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, "200", summary.Balance.String())
	assert.Equal(t, 2, summary.ApproversCount)
	assert.Equal(t, 1, summary.RequestsCount)
}

func TestSoleApproverScenario(t *testing.T) {
	svc, addr := newMemoryUseCase(t)

	require.NoError(t, svc.Contribute(as(manager), addr, big.NewInt(200)))
	_, err := svc.CreateRequest(as(manager), addr, port.CreateRequestInput{
		Description: "Buy batteries", Value: big.NewInt(100), Recipient: recipient,
	})
	require.NoError(t, err)
	require.NoError(t, svc.ApproveRequest(as(manager), addr, 0))
	require.NoError(t, svc.FinalizeRequest(as(manager), addr, 0))

	err = svc.FinalizeRequest(as(manager), addr, 0)
	require.ErrorIs(t, err, domain.ErrRequestAlreadyFinalized)

	bal, err := svc.AccountBalance(context.Background(), recipient)
	require.NoError(t, err)
	assert.Equal(t, "100", bal.String())
}

func TestMutationsRequireCaller(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	svc := NewCampaignUseCase(repo, factory)
	ctx := context.Background()
	addr := domain.CampaignAddress(factory, 0)

	_, err := svc.CreateCampaign(ctx, big.NewInt(1))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.ErrorIs(t, svc.Contribute(ctx, addr, big.NewInt(1)), domain.ErrUnauthenticated)
	_, err = svc.CreateRequest(ctx, addr, port.CreateRequestInput{Value: big.NewInt(1)})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.ErrorIs(t, svc.ApproveRequest(ctx, addr, 0), domain.ErrUnauthenticated)
	assert.ErrorIs(t, svc.FinalizeRequest(ctx, addr, 0), domain.ErrUnauthenticated)
	// the mock has no expectations: no repository call was made
}

func TestCreateCampaignUsesFactoryNonce(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().
		Deploy(mock.Anything, mock.AnythingOfType("port.DeployFunc")).
		RunAndReturn(func(_ context.Context, fn port.DeployFunc) (*domain.Campaign, error) {
			return fn(7)
		})

	svc := NewCampaignUseCase(repo, factory)
	addr, err := svc.CreateCampaign(as(manager), big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignAddress(factory, 7), addr)
}

func TestCreateCampaignRejectsNegativeMinimum(t *testing.T) {
	svc := NewCampaignUseCase(memory.NewCampaignRepository(), factory)
	_, err := svc.CreateCampaign(as(manager), big.NewInt(-1))
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	deployed, err := svc.DeployedCampaigns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, deployed)
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	boom := errors.New("connection reset")
	addr := domain.CampaignAddress(factory, 0)

	repo.EXPECT().Apply(mock.Anything, addr, mock.Anything).Return(nil, boom)
	repo.EXPECT().Campaign(mock.Anything, addr).Return(nil, domain.Errorf(domain.CodeCampaignNotFound, "gone"))

	svc := NewCampaignUseCase(repo, factory)

	err := svc.Contribute(as(alice), addr, big.NewInt(1))
	assert.ErrorIs(t, err, boom)

	_, err = svc.Manager(context.Background(), addr)
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestApplyPassesCallerToCommand(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	addr := domain.CampaignAddress(factory, 0)
	c, err := domain.NewCampaign(addr, 0, manager, big.NewInt(10))
	require.NoError(t, err)

	repo.EXPECT().
		Apply(mock.Anything, addr, mock.Anything).
		RunAndReturn(func(_ context.Context, _ common.Address, fn port.CommandFunc) (domain.Event, error) {
			return fn(c)
		})

	svc := NewCampaignUseCase(repo, factory)
	require.NoError(t, svc.Contribute(as(alice), addr, big.NewInt(10)))
	assert.True(t, c.IsApprover(alice))
	assert.False(t, c.IsApprover(manager))
}

func TestUnknownCampaign(t *testing.T) {
	svc := NewCampaignUseCase(memory.NewCampaignRepository(), factory)
	addr := domain.CampaignAddress(factory, 99)

	err := svc.Contribute(as(alice), addr, big.NewInt(100))
	require.ErrorIs(t, err, domain.ErrCampaignNotFound)
	_, err = svc.Summary(context.Background(), addr)
	require.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

// TestConcurrentFinalize ensures a request racing many finalize calls pays
// out exactly once.
func TestConcurrentFinalize(t *testing.T) {
	svc, addr := newMemoryUseCase(t)
	require.NoError(t, svc.Contribute(as(manager), addr, big.NewInt(1000)))
	_, err := svc.CreateRequest(as(manager), addr, port.CreateRequestInput{
		Description: "A", Value: big.NewInt(300), Recipient: recipient,
	})
	require.NoError(t, err)
	require.NoError(t, svc.ApproveRequest(as(manager), addr, 0))

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		finalized atomic.Int32
	)
	count := 32
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			err := svc.FinalizeRequest(as(manager), addr, 0)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrRequestAlreadyFinalized):
				finalized.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(count-1), finalized.Load())

	bal, err := svc.AccountBalance(context.Background(), recipient)
	require.NoError(t, err)
	assert.Equal(t, "300", bal.String())

	summary, err := svc.Summary(context.Background(), addr)
	require.NoError(t, err)
	assert.Equal(t, "700", summary.Balance.String())
}

// TestConcurrentContributions checks that approversCount counts identities,
// not contributions, under contention.
func TestConcurrentContributions(t *testing.T) {
	svc, addr := newMemoryUseCase(t)

	contributors := make([]common.Address, 10)
	for i := range contributors {
		contributors[i] = common.HexToAddress(fmt.Sprintf("0x%040x", i+1000))
	}

	var wg sync.WaitGroup
	for _, who := range contributors {
		for j := 0; j < 5; j++ {
			wg.Add(1)
			go func(who common.Address) {
				defer wg.Done()
				assert.NoError(t, svc.Contribute(as(who), addr, big.NewInt(100)))
			}(who)
		}
	}
	wg.Wait()

	summary, err := svc.Summary(context.Background(), addr)
	require.NoError(t, err)
	assert.Equal(t, len(contributors), summary.ApproversCount)
	assert.Equal(t, "5000", summary.Balance.String())
}

func TestConcurrentDeploysGetDistinctHandles(t *testing.T) {
	svc := NewCampaignUseCase(memory.NewCampaignRepository(), factory)

	var wg sync.WaitGroup
	count := 20
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.CreateCampaign(as(manager), big.NewInt(1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	deployed, err := svc.DeployedCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, deployed, count)
	for i, addr := range deployed {
		assert.Equal(t, domain.CampaignAddress(factory, uint64(i)), addr)
	}
}
