package postgres

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
)

// factoryLockKey serializes deployments so that every campaign gets the
// next factory nonce.
const factoryLockKey int64 = 0x63726f776466

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. Commands lock the campaign row with SELECT ... FOR UPDATE, so
// commands against one campaign are serialized while other campaigns
// proceed in parallel.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Deploy takes the factory lock, reads the next nonce and inserts the
// campaign built by fn.
func (r *CampaignRepository) Deploy(ctx context.Context, fn port.DeployFunc) (*domain.Campaign, error) {
	var c *domain.Campaign
	err := r.inTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, factoryLockKey); err != nil {
			return fmt.Errorf("lock factory: %w", err)
		}
		var nonce int64
		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(nonce) + 1, 0) FROM campaigns`).Scan(&nonce); err != nil {
			return fmt.Errorf("next nonce: %w", err)
		}
		built, err := fn(uint64(nonce))
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO campaigns (address, nonce, manager, minimum_contribution, balance, created_at)
			VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6)`,
			built.Address.Hex(), int64(built.Nonce), built.Manager.Hex(),
			built.MinimumContribution.String(), built.Balance.String(), built.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert campaign: %w", err)
		}
		c = built
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeployedCampaigns returns campaign addresses ordered by nonce.
func (r *CampaignRepository) DeployedCampaigns(ctx context.Context) ([]common.Address, error) {
	rows, err := r.pool.Query(ctx, `SELECT address FROM campaigns ORDER BY nonce`)
	if err != nil {
		return nil, err
	}
	addrs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	out := make([]common.Address, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, common.HexToAddress(a))
	}
	return out, nil
}

// Campaign loads the aggregate inside a read-only repeatable read
// transaction so all of its rows come from one snapshot.
func (r *CampaignRepository) Campaign(ctx context.Context, address common.Address) (*domain.Campaign, error) {
	var c *domain.Campaign
	err := r.inTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		var err error
		c, err = load(ctx, tx, address, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Apply locks the campaign row, runs fn against the loaded aggregate and
// writes the resulting event in the same transaction.
func (r *CampaignRepository) Apply(ctx context.Context, address common.Address, fn port.CommandFunc) (domain.Event, error) {
	var ev domain.Event
	err := r.inTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		c, err := load(ctx, tx, address, true)
		if err != nil {
			return err
		}
		ev, err = fn(c)
		if err != nil {
			return err
		}
		return persist(ctx, tx, c, ev)
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// AccountBalance returns the credited balance of account, zero when the
// account has never received funds.
func (r *CampaignRepository) AccountBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	var raw string
	err := r.pool.QueryRow(ctx, `SELECT balance::text FROM ledger_accounts WHERE address = $1`, account.Hex()).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return parseNumeric(raw)
}

func (r *CampaignRepository) inTx(ctx context.Context, opts pgx.TxOptions, fn func(pgx.Tx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()
	return fn(tx)
}

func load(ctx context.Context, q querier, address common.Address, forUpdate bool) (*domain.Campaign, error) {
	query := `
		SELECT nonce, manager, minimum_contribution::text, balance::text, created_at
		FROM campaigns WHERE address = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		nonce            int64
		manager          string
		minimum, balance string
		createdAt        time.Time
	)
	err := q.QueryRow(ctx, query, address.Hex()).Scan(&nonce, &manager, &minimum, &balance, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Errorf(domain.CodeCampaignNotFound, "campaign %s not found", address.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("load campaign: %w", err)
	}

	c := &domain.Campaign{
		Address:   address,
		Nonce:     uint64(nonce),
		Manager:   common.HexToAddress(manager),
		CreatedAt: createdAt.UTC(),
	}
	if c.MinimumContribution, err = parseNumeric(minimum); err != nil {
		return nil, err
	}
	if c.Balance, err = parseNumeric(balance); err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `SELECT approver FROM approvers WHERE campaign_address = $1`, address.Hex())
	if err != nil {
		return nil, fmt.Errorf("load approvers: %w", err)
	}
	approvers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (common.Address, error) {
		var a string
		err := row.Scan(&a)
		return common.HexToAddress(a), err
	})
	if err != nil {
		return nil, fmt.Errorf("load approvers: %w", err)
	}

	rows, err = q.Query(ctx, `SELECT idx, approver FROM request_approvals WHERE campaign_address = $1`, address.Hex())
	if err != nil {
		return nil, fmt.Errorf("load approvals: %w", err)
	}
	votes := make(map[int][]common.Address)
	var (
		idx      int
		approver string
	)
	_, err = pgx.ForEachRow(rows, []any{&idx, &approver}, func() error {
		votes[idx] = append(votes[idx], common.HexToAddress(approver))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load approvals: %w", err)
	}

	rows, err = q.Query(ctx, `
		SELECT idx, description, value::text, recipient, complete
		FROM spending_requests WHERE campaign_address = $1 ORDER BY idx`, address.Hex())
	if err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}
	requests, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.SpendingRequest, error) {
		var (
			index       int
			description string
			value       string
			recipient   string
			complete    bool
		)
		if err := row.Scan(&index, &description, &value, &recipient, &complete); err != nil {
			return nil, err
		}
		v, err := parseNumeric(value)
		if err != nil {
			return nil, err
		}
		return domain.NewSpendingRequest(index, description, v, common.HexToAddress(recipient), complete, votes[index]), nil
	})
	if err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}

	return domain.Restore(c, approvers, requests), nil
}

func persist(ctx context.Context, tx pgx.Tx, c *domain.Campaign, ev domain.Event) error {
	campaign := c.Address.Hex()
	switch e := ev.(type) {
	case *domain.Contributed:
		if e.NewApprover {
			if _, err := tx.Exec(ctx, `INSERT INTO approvers (campaign_address, approver) VALUES ($1, $2)`,
				campaign, e.Contributor.Hex()); err != nil {
				return fmt.Errorf("insert approver: %w", err)
			}
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO contributions (id, campaign_address, contributor, amount)
			VALUES ($1, $2, $3, $4::numeric)`,
			e.ID.String(), campaign, e.Contributor.Hex(), e.Amount.String()); err != nil {
			return fmt.Errorf("insert contribution: %w", err)
		}
		return updateBalance(ctx, tx, c)

	case *domain.RequestCreated:
		req := e.Request
		_, err := tx.Exec(ctx, `
			INSERT INTO spending_requests (campaign_address, idx, description, value, recipient)
			VALUES ($1, $2, $3, $4::numeric, $5)`,
			campaign, req.Index, req.Description, req.Value.String(), req.Recipient.Hex())
		if err != nil {
			return fmt.Errorf("insert request: %w", err)
		}
		return nil

	case *domain.RequestApproved:
		if _, err := tx.Exec(ctx, `INSERT INTO request_approvals (campaign_address, idx, approver) VALUES ($1, $2, $3)`,
			campaign, e.Index, e.Approver.Hex()); err != nil {
			return fmt.Errorf("insert approval: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE spending_requests SET approval_count = $3 WHERE campaign_address = $1 AND idx = $2`,
			campaign, e.Index, e.ApprovalCount); err != nil {
			return fmt.Errorf("update approval count: %w", err)
		}
		return nil

	case *domain.RequestFinalized:
		if _, err := tx.Exec(ctx, `UPDATE spending_requests SET complete = TRUE WHERE campaign_address = $1 AND idx = $2`,
			campaign, e.Index); err != nil {
			return fmt.Errorf("complete request: %w", err)
		}
		if err := updateBalance(ctx, tx, c); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO transfers (id, campaign_address, idx, recipient, value)
			VALUES ($1, $2, $3, $4, $5::numeric)`,
			e.TransferID.String(), campaign, e.Index, e.Recipient.Hex(), e.Value.String()); err != nil {
			return fmt.Errorf("insert transfer: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO ledger_accounts (address, balance) VALUES ($1, $2::numeric)
			ON CONFLICT (address) DO UPDATE SET balance = ledger_accounts.balance + EXCLUDED.balance`,
			e.Recipient.Hex(), e.Value.String()); err != nil {
			return fmt.Errorf("credit recipient: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unsupported event %T", ev)
	}
}

func updateBalance(ctx context.Context, tx pgx.Tx, c *domain.Campaign) error {
	if _, err := tx.Exec(ctx, `UPDATE campaigns SET balance = $2::numeric WHERE address = $1`,
		c.Address.Hex(), c.Balance.String()); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

func parseNumeric(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid numeric value %q", s)
	}
	return v, nil
}
