package db

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
)

// Seed creates count demo campaigns through svc, so it works against any
// storage backend. Each campaign gets a few contributors and one spending
// request approved by a majority of them; every other request is also
// finalized. It returns the addresses of the new campaigns.
func Seed(ctx context.Context, svc port.CampaignUseCase, count int, r *rand.Rand) ([]common.Address, error) {
	out := make([]common.Address, 0, count)
	for i := 0; i < count; i++ {
		manager, err := newIdentity()
		if err != nil {
			return out, err
		}
		asManager := domain.WithCaller(ctx, manager)

		minimum := big.NewInt(int64(100 * (i + 1)))
		campaign, err := svc.CreateCampaign(asManager, minimum)
		if err != nil {
			return out, fmt.Errorf("create campaign %d: %w", i, err)
		}

		contributors := make([]common.Address, 3+r.Intn(3))
		for j := range contributors {
			if contributors[j], err = newIdentity(); err != nil {
				return out, err
			}
			amount := new(big.Int).Add(minimum, big.NewInt(r.Int63n(1000)))
			if err = svc.Contribute(domain.WithCaller(ctx, contributors[j]), campaign, amount); err != nil {
				return out, fmt.Errorf("contribute to %s: %w", campaign.Hex(), err)
			}
		}

		recipient, err := newIdentity()
		if err != nil {
			return out, err
		}
		idx, err := svc.CreateRequest(asManager, campaign, port.CreateRequestInput{
			Description: fmt.Sprintf("Supplies batch %d", i+1),
			Value:       minimum,
			Recipient:   recipient,
		})
		if err != nil {
			return out, fmt.Errorf("create request: %w", err)
		}
		for _, who := range contributors[:len(contributors)/2+1] {
			if err = svc.ApproveRequest(domain.WithCaller(ctx, who), campaign, idx); err != nil {
				return out, fmt.Errorf("approve request: %w", err)
			}
		}
		if i%2 == 0 {
			if err = svc.FinalizeRequest(asManager, campaign, idx); err != nil {
				return out, fmt.Errorf("finalize request: %w", err)
			}
		}
		out = append(out, campaign)
	}
	return out, nil
}

func newIdentity() (common.Address, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return common.Address{}, fmt.Errorf("generate key: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}
