package postgresdb

import (
	"context"
	"fmt"

	"hr_dashboard/global_models/global_db"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var (
	_ global_db.Pool = (*PoolAdapter)(nil)
	_ global_db.Tx   = (*TxAdapter)(nil)
)

// PoolAdapter отдаёт журналу pgxpool в виде global_db.Pool
type PoolAdapter struct {
	pool *pgxpool.Pool
}

func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	return &PoolAdapter{pool: pool}
}

// Close ничего не закрывает: пулом владеет PgRepo
func (a *PoolAdapter) Close() error {
	return nil
}

// Exec возвращает число затронутых строк
func (a *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := a.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (a *PoolAdapter) Begin(ctx context.Context) (global_db.Tx, error) {
	tx, err := a.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &TxAdapter{tx: tx}, nil
}

type TxAdapter struct {
	tx pgx.Tx
}

func (t *TxAdapter) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (t *TxAdapter) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback после Commit безопасен: pgx вернёт ErrTxClosed
func (t *TxAdapter) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
