package sqlite

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/db"
)

var (
	factory   = common.HexToAddress("0x00000000000000000000000000000000000000fa")
	manager   = common.HexToAddress("0x1000000000000000000000000000000000000001")
	alice     = common.HexToAddress("0x2000000000000000000000000000000000000002")
	bob       = common.HexToAddress("0x3000000000000000000000000000000000000003")
	recipient = common.HexToAddress("0x6000000000000000000000000000000000000006")
)

func newRepository(t *testing.T) *CampaignRepository {
	t.Helper()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "crowdfund.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewCampaignRepository(conn)
}

func deploy(t *testing.T, r *CampaignRepository, minimum int64) *domain.Campaign {
	t.Helper()
	c, err := r.Deploy(context.Background(), func(nonce uint64) (*domain.Campaign, error) {
		return domain.NewCampaign(domain.CampaignAddress(factory, nonce), nonce, manager, big.NewInt(minimum))
	})
	require.NoError(t, err)
	return c
}

func apply(t *testing.T, r *CampaignRepository, addr common.Address, fn func(c *domain.Campaign) (domain.Event, error)) {
	t.Helper()
	_, err := r.Apply(context.Background(), addr, fn)
	require.NoError(t, err)
}

func TestDeployAssignsNonces(t *testing.T) {
	r := newRepository(t)
	first := deploy(t, r, 1)
	second := deploy(t, r, 2)

	got, err := r.DeployedCampaigns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{first.Address, second.Address}, got)
	assert.Equal(t, domain.CampaignAddress(factory, 1), second.Address)

	loaded, err := r.Campaign(context.Background(), second.Address)
	require.NoError(t, err)
	assert.Equal(t, manager, loaded.Manager)
	assert.Equal(t, "2", loaded.MinimumContribution.String())
	assert.Equal(t, uint64(1), loaded.Nonce)
}

func TestEmptyDeployedList(t *testing.T) {
	r := newRepository(t)
	got, err := r.DeployedCampaigns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRoundTripsAggregate(t *testing.T) {
	r := newRepository(t)
	c := deploy(t, r, 10)

	apply(t, r, c.Address, func(c *domain.Campaign) (domain.Event, error) { return c.Contribute(alice, big.NewInt(40)) })
	apply(t, r, c.Address, func(c *domain.Campaign) (domain.Event, error) { return c.Contribute(alice, big.NewInt(40)) })
	apply(t, r, c.Address, func(c *domain.Campaign) (domain.Event, error) { return c.Contribute(bob, big.NewInt(20)) })
	apply(t, r, c.Address, func(c *domain.Campaign) (domain.Event, error) {
		return c.CreateRequest(manager, "Buy batteries", big.NewInt(30), recipient)
	})
	apply(t, r, c.Address, func(c *domain.Campaign) (domain.Event, error) { return c.ApproveRequest(alice, 0) })
	apply(t, r, c.Address, func(c *domain.Campaign) (domain.Event, error) { return c.ApproveRequest(bob, 0) })

	loaded, err := r.Campaign(context.Background(), c.Address)
	require.NoError(t, err)
	assert.Equal(t, "100", loaded.Balance.String())
	assert.Equal(t, 2, loaded.ApproversCount())

	req, err := loaded.Request(0)
	require.NoError(t, err)
	assert.Equal(t, "Buy batteries", req.Description)
	assert.Equal(t, 2, req.ApprovalCount)
	assert.True(t, req.HasApproved(alice))
	assert.False(t, req.Complete)

	apply(t, r, c.Address, func(c *domain.Campaign) (domain.Event, error) { return c.FinalizeRequest(manager, 0) })

	loaded, err = r.Campaign(context.Background(), c.Address)
	require.NoError(t, err)
	assert.Equal(t, "70", loaded.Balance.String())
	req, err = loaded.Request(0)
	require.NoError(t, err)
	assert.True(t, req.Complete)

	bal, err := r.AccountBalance(context.Background(), recipient)
	require.NoError(t, err)
	assert.Equal(t, "30", bal.String())
}

func TestRejectedCommandWritesNothing(t *testing.T) {
	r := newRepository(t)
	c := deploy(t, r, 10)

	_, err := r.Apply(context.Background(), c.Address, func(c *domain.Campaign) (domain.Event, error) {
		return c.Contribute(alice, big.NewInt(5))
	})
	require.ErrorIs(t, err, domain.ErrInsufficientContribution)

	_, err = r.Apply(context.Background(), c.Address, func(c *domain.Campaign) (domain.Event, error) {
		if _, err := c.Contribute(alice, big.NewInt(50)); err != nil {
			return nil, err
		}
		return nil, errors.New("abort")
	})
	require.Error(t, err)

	loaded, err := r.Campaign(context.Background(), c.Address)
	require.NoError(t, err)
	assert.Equal(t, "0", loaded.Balance.String())
	assert.False(t, loaded.IsApprover(alice))
}

func TestUnknownCampaign(t *testing.T) {
	r := newRepository(t)
	_, err := r.Campaign(context.Background(), alice)
	require.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestConcurrentFinalizePaysOnce(t *testing.T) {
	r := newRepository(t)
	c := deploy(t, r, 1)
	apply(t, r, c.Address, func(c *domain.Campaign) (domain.Event, error) { return c.Contribute(manager, big.NewInt(100)) })
	apply(t, r, c.Address, func(c *domain.Campaign) (domain.Event, error) {
		return c.CreateRequest(manager, "A", big.NewInt(60), recipient)
	})
	apply(t, r, c.Address, func(c *domain.Campaign) (domain.Event, error) { return c.ApproveRequest(manager, 0) })

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Apply(context.Background(), c.Address, func(c *domain.Campaign) (domain.Event, error) {
				return c.FinalizeRequest(manager, 0)
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	bal, err := r.AccountBalance(context.Background(), recipient)
	require.NoError(t, err)
	assert.Equal(t, "60", bal.String())
}
