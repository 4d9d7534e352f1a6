package postgres

import (
	"context"
	"math/big"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/config/configs"
	"crowdfund/internal/core/domain"
	"crowdfund/internal/db"
)

var (
	manager   = common.HexToAddress("0x1000000000000000000000000000000000000001")
	alice     = common.HexToAddress("0x2000000000000000000000000000000000000002")
	recipient = common.HexToAddress("0x6000000000000000000000000000000000000006")
)

// newRepository connects to PSQL_TEST_ADDRESS, migrates and truncates the
// schema. Tests are skipped when the variable is unset.
func newRepository(t *testing.T) *CampaignRepository {
	t.Helper()
	addr := os.Getenv("PSQL_TEST_ADDRESS")
	if addr == "" {
		t.Skip("PSQL_TEST_ADDRESS not set")
	}
	u, err := url.Parse(addr)
	require.NoError(t, err)
	require.NoError(t, db.MigratePostgres(addr))

	pool, err := db.NewPostgresPool(context.Background(), configs.Postgres{Addr: *u})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `TRUNCATE ledger_accounts, transfers, request_approvals,
		spending_requests, contributions, approvers, campaigns`)
	require.NoError(t, err)
	return NewCampaignRepository(pool)
}

func deploy(t *testing.T, r *CampaignRepository, factory common.Address, minimum int64) *domain.Campaign {
	t.Helper()
	c, err := r.Deploy(context.Background(), func(nonce uint64) (*domain.Campaign, error) {
		return domain.NewCampaign(domain.CampaignAddress(factory, nonce), nonce, manager, big.NewInt(minimum))
	})
	require.NoError(t, err)
	return c
}

func TestLifecycle(t *testing.T) {
	r := newRepository(t)
	ctx := context.Background()
	factory := common.HexToAddress("0xfa")
	c := deploy(t, r, factory, 10)

	steps := []func(c *domain.Campaign) (domain.Event, error){
		func(c *domain.Campaign) (domain.Event, error) { return c.Contribute(alice, big.NewInt(80)) },
		func(c *domain.Campaign) (domain.Event, error) { return c.Contribute(manager, big.NewInt(20)) },
		func(c *domain.Campaign) (domain.Event, error) {
			return c.CreateRequest(manager, "Buy batteries", big.NewInt(30), recipient)
		},
		func(c *domain.Campaign) (domain.Event, error) { return c.ApproveRequest(alice, 0) },
		func(c *domain.Campaign) (domain.Event, error) { return c.ApproveRequest(manager, 0) },
		func(c *domain.Campaign) (domain.Event, error) { return c.FinalizeRequest(manager, 0) },
	}
	for _, step := range steps {
		_, err := r.Apply(ctx, c.Address, step)
		require.NoError(t, err)
	}

	loaded, err := r.Campaign(ctx, c.Address)
	require.NoError(t, err)
	assert.Equal(t, "70", loaded.Balance.String())
	assert.Equal(t, 2, loaded.ApproversCount())
	req, err := loaded.Request(0)
	require.NoError(t, err)
	assert.True(t, req.Complete)
	assert.Equal(t, 2, req.ApprovalCount)

	_, err = r.Apply(ctx, c.Address, func(c *domain.Campaign) (domain.Event, error) {
		return c.FinalizeRequest(manager, 0)
	})
	require.ErrorIs(t, err, domain.ErrRequestAlreadyFinalized)

	bal, err := r.AccountBalance(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, "30", bal.String())

	_, err = r.Campaign(ctx, alice)
	require.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestConcurrentDeploysAndContributions(t *testing.T) {
	r := newRepository(t)
	ctx := context.Background()
	factory := common.HexToAddress("0xfb")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Deploy(ctx, func(nonce uint64) (*domain.Campaign, error) {
				return domain.NewCampaign(domain.CampaignAddress(factory, nonce), nonce, manager, big.NewInt(1))
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	deployed, err := r.DeployedCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, deployed, 10)
	for i, addr := range deployed {
		assert.Equal(t, domain.CampaignAddress(factory, uint64(i)), addr)
	}

	var ok atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Apply(ctx, deployed[0], func(c *domain.Campaign) (domain.Event, error) {
				return c.Contribute(alice, big.NewInt(5))
			})
			if assert.NoError(t, err) {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	loaded, err := r.Campaign(ctx, deployed[0])
	require.NoError(t, err)
	assert.Equal(t, int32(20), ok.Load())
	assert.Equal(t, "100", loaded.Balance.String())
	assert.Equal(t, 1, loaded.ApproversCount())
}
