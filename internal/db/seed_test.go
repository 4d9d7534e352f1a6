package db

import (
	"context"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/adapter/memory"
	"crowdfund/internal/adapter/usecase"
)

func TestSeed(t *testing.T) {
	factory := common.HexToAddress("0xfa")
	svc := usecase.NewCampaignUseCase(memory.NewCampaignRepository(), factory)
	ctx := context.Background()

	created, err := Seed(ctx, svc, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, created, 3)

	deployed, err := svc.DeployedCampaigns(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, deployed)

	for i, addr := range created {
		summary, err := svc.Summary(ctx, addr)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, summary.ApproversCount, 3)
		assert.Equal(t, 1, summary.RequestsCount)

		req, err := svc.Request(ctx, addr, 0)
		require.NoError(t, err)
		assert.Equal(t, i%2 == 0, req.Complete)
		bal, err := svc.AccountBalance(ctx, req.Recipient)
		require.NoError(t, err)
		if req.Complete {
			assert.Equal(t, req.Value.String(), bal.String())
		} else {
			assert.Equal(t, "0", bal.String())
		}
	}
}
