// Package sqlite implements port.CampaignRepository on an embedded SQLite
// database. The handle must be limited to one open connection (see
// db.OpenSQLite); every call then runs in its own serialized transaction.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
)

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// CampaignRepository stores campaigns in SQLite.
type CampaignRepository struct {
	db *sql.DB
}

// NewCampaignRepository wraps an open database handle.
func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Deploy inserts the campaign built by fn at the next nonce.
func (r *CampaignRepository) Deploy(ctx context.Context, fn port.DeployFunc) (*domain.Campaign, error) {
	var c *domain.Campaign
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var nonce int64
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(nonce) + 1, 0) FROM campaigns`).Scan(&nonce); err != nil {
			return fmt.Errorf("next nonce: %w", err)
		}
		built, err := fn(uint64(nonce))
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO campaigns (address, nonce, manager, minimum_contribution, balance, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			built.Address.Hex(), int64(built.Nonce), built.Manager.Hex(),
			built.MinimumContribution.String(), built.Balance.String(), built.CreatedAt.UnixMilli())
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
	rows, err := r.db.QueryContext(ctx, `SELECT address FROM campaigns ORDER BY nonce`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []common.Address{}
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		out = append(out, common.HexToAddress(a))
	}
	return out, rows.Err()
}

// Campaign loads a snapshot of the aggregate.
func (r *CampaignRepository) Campaign(ctx context.Context, address common.Address) (*domain.Campaign, error) {
	var c *domain.Campaign
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		c, err = load(ctx, tx, address)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Apply runs fn against the stored aggregate and writes the resulting
// event in the same transaction.
func (r *CampaignRepository) Apply(ctx context.Context, address common.Address, fn port.CommandFunc) (domain.Event, error) {
	var ev domain.Event
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		c, err := load(ctx, tx, address)
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

// AccountBalance returns the credited balance of account.
func (r *CampaignRepository) AccountBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT balance FROM ledger_accounts WHERE address = ?`, account.Hex()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return parseNumeric(raw)
}

func (r *CampaignRepository) inTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	return fn(tx)
}

func load(ctx context.Context, q querier, address common.Address) (*domain.Campaign, error) {
	var (
		nonce            int64
		manager          string
		minimum, balance string
		createdAt        int64
	)
	err := q.QueryRowContext(ctx, `
		SELECT nonce, manager, minimum_contribution, balance, created_at
		FROM campaigns WHERE address = ?`, address.Hex()).
		Scan(&nonce, &manager, &minimum, &balance, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Errorf(domain.CodeCampaignNotFound, "campaign %s not found", address.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("load campaign: %w", err)
	}

	c := &domain.Campaign{
		Address:   address,
		Nonce:     uint64(nonce),
		Manager:   common.HexToAddress(manager),
		CreatedAt: time.UnixMilli(createdAt).UTC(),
	}
	if c.MinimumContribution, err = parseNumeric(minimum); err != nil {
		return nil, err
	}
	if c.Balance, err = parseNumeric(balance); err != nil {
		return nil, err
	}

	approvers, err := addresses(ctx, q, `SELECT approver FROM approvers WHERE campaign_address = ?`, address.Hex())
	if err != nil {
		return nil, fmt.Errorf("load approvers: %w", err)
	}

	votes, err := approvals(ctx, q, address)
	if err != nil {
		return nil, fmt.Errorf("load approvals: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT idx, description, value, recipient, complete
		FROM spending_requests WHERE campaign_address = ? ORDER BY idx`, address.Hex())
	if err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}
	defer rows.Close()

	var requests []*domain.SpendingRequest
	for rows.Next() {
		var (
			index       int
			description string
			value       string
			recipient   string
			complete    bool
		)
		if err := rows.Scan(&index, &description, &value, &recipient, &complete); err != nil {
			return nil, fmt.Errorf("load requests: %w", err)
		}
		v, err := parseNumeric(value)
		if err != nil {
			return nil, err
		}
		requests = append(requests,
			domain.NewSpendingRequest(index, description, v, common.HexToAddress(recipient), complete, votes[index]))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}

	return domain.Restore(c, approvers, requests), nil
}

func addresses(ctx context.Context, q querier, query string, args ...any) ([]common.Address, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []common.Address
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		out = append(out, common.HexToAddress(a))
	}
	return out, rows.Err()
}

func approvals(ctx context.Context, q querier, address common.Address) (map[int][]common.Address, error) {
	rows, err := q.QueryContext(ctx, `SELECT idx, approver FROM request_approvals WHERE campaign_address = ?`, address.Hex())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := make(map[int][]common.Address)
	for rows.Next() {
		var (
			idx      int
			approver string
		)
		if err := rows.Scan(&idx, &approver); err != nil {
			return nil, err
		}
		votes[idx] = append(votes[idx], common.HexToAddress(approver))
	}
	return votes, rows.Err()
}

func persist(ctx context.Context, tx *sql.Tx, c *domain.Campaign, ev domain.Event) error {
	campaign := c.Address.Hex()
	now := time.Now().UnixMilli()
	switch e := ev.(type) {
	case *domain.Contributed:
		if e.NewApprover {
			if _, err := tx.ExecContext(ctx, `INSERT INTO approvers (campaign_address, approver, created_at) VALUES (?, ?, ?)`,
				campaign, e.Contributor.Hex(), now); err != nil {
				return fmt.Errorf("insert approver: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO contributions (id, campaign_address, contributor, amount, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			e.ID.String(), campaign, e.Contributor.Hex(), e.Amount.String(), now); err != nil {
			return fmt.Errorf("insert contribution: %w", err)
		}
		return updateBalance(ctx, tx, c)

	case *domain.RequestCreated:
		req := e.Request
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO spending_requests (campaign_address, idx, description, value, recipient, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			campaign, req.Index, req.Description, req.Value.String(), req.Recipient.Hex(), now); err != nil {
			return fmt.Errorf("insert request: %w", err)
		}
		return nil

	case *domain.RequestApproved:
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO request_approvals (campaign_address, idx, approver, created_at)
			VALUES (?, ?, ?, ?)`,
			campaign, e.Index, e.Approver.Hex(), now); err != nil {
			return fmt.Errorf("insert approval: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE spending_requests SET approval_count = ? WHERE campaign_address = ? AND idx = ?`,
			e.ApprovalCount, campaign, e.Index); err != nil {
			return fmt.Errorf("update approval count: %w", err)
		}
		return nil

	case *domain.RequestFinalized:
		if _, err := tx.ExecContext(ctx, `UPDATE spending_requests SET complete = 1 WHERE campaign_address = ? AND idx = ?`,
			campaign, e.Index); err != nil {
			return fmt.Errorf("complete request: %w", err)
		}
		if err := updateBalance(ctx, tx, c); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transfers (id, campaign_address, idx, recipient, value, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			e.TransferID.String(), campaign, e.Index, e.Recipient.Hex(), e.Value.String(), now); err != nil {
			return fmt.Errorf("insert transfer: %w", err)
		}
		return credit(ctx, tx, e.Recipient, e.Value)

	default:
		return fmt.Errorf("unsupported event %T", ev)
	}
}

// credit adds value to the recipient's ledger account. Balances are
// stored as decimal text, so the sum is computed in Go.
func credit(ctx context.Context, tx *sql.Tx, account common.Address, value *big.Int) error {
	var raw string
	err := tx.QueryRowContext(ctx, `SELECT balance FROM ledger_accounts WHERE address = ?`, account.Hex()).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		raw = "0"
	case err != nil:
		return fmt.Errorf("credit recipient: %w", err)
	}
	current, err := parseNumeric(raw)
	if err != nil {
		return err
	}
	current.Add(current, value)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_accounts (address, balance) VALUES (?, ?)
		ON CONFLICT (address) DO UPDATE SET balance = excluded.balance`,
		account.Hex(), current.String()); err != nil {
		return fmt.Errorf("credit recipient: %w", err)
	}
	return nil
}

func updateBalance(ctx context.Context, tx *sql.Tx, c *domain.Campaign) error {
	if _, err := tx.ExecContext(ctx, `UPDATE campaigns SET balance = ? WHERE address = ?`,
		c.Balance.String(), c.Address.Hex()); err != nil {
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
