package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"artisan-marketplace/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedTx is a pgx.Tx that records every statement and can be told to
// fail mid-transaction, so order creation can be driven through its
// failure branches without a database.
type scriptedTx struct {
	execs     []string
	commits   int
	rollbacks int

	lineInsertErr error
	stockTags     []pgconn.CommandTag
	stockCalls    int
}

func (t *scriptedTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, sql)

	switch {
	case strings.Contains(sql, "INSERT INTO order_lines"):
		if t.lineInsertErr != nil {
			return pgconn.CommandTag{}, t.lineInsertErr
		}
		return pgconn.NewCommandTag("INSERT 0 1"), nil

	case strings.Contains(sql, "UPDATE products"):
		call := t.stockCalls
		t.stockCalls++
		if call < len(t.stockTags) {
			return t.stockTags[call], nil
		}
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}

	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *scriptedTx) Commit(ctx context.Context) error {
	t.commits++
	return nil
}

func (t *scriptedTx) Rollback(ctx context.Context) error {
	if t.commits > 0 {
		// Mirrors pgx: rolling back a committed transaction is a no-op error
		return pgx.ErrTxClosed
	}
	t.rollbacks++
	return nil
}

func (t *scriptedTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *scriptedTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *scriptedTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *scriptedTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *scriptedTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *scriptedTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *scriptedTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return noRow{}
}

func (t *scriptedTx) Conn() *pgx.Conn { return nil }

type noRow struct{}

func (noRow) Scan(dest ...any) error { return pgx.ErrNoRows }

// scriptedDB satisfies database.PgxIface and hands out a single scripted
// transaction from Begin.
type scriptedDB struct {
	tx       *scriptedTx
	beginErr error
}

func (d *scriptedDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func (d *scriptedDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (d *scriptedDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return noRow{}
}

func (d *scriptedDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *scriptedDB) Ping(ctx context.Context) error { return nil }

func (d *scriptedDB) Close() {}

func testOrder(lineCount int) (*entity.Order, []*entity.OrderLine) {
	now := time.Now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber:   "PED-20260901-120000-1234",
		UserID:        uuid.New(),
		Status:        entity.OrderStatusPending,
		PaymentMethod: "tarjeta_credito",
		Total:         70.0,
	}

	lines := make([]*entity.OrderLine, 0, lineCount)
	for i := 0; i < lineCount; i++ {
		lines = append(lines, &entity.OrderLine{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			OrderID:     order.ID,
			ProductID:   uuid.New(),
			ProductName: "Hamaca",
			Quantity:    2,
			UnitPrice:   25.0,
		})
	}

	return order, lines
}

func TestOrderCreate_HappyPathCommitsOnce(t *testing.T) {
	tx := &scriptedTx{}
	repo := NewOrderRepository(&scriptedDB{tx: tx}, zap.NewNop())

	order, lines := testOrder(2)
	err := repo.Create(context.Background(), order, lines)
	require.NoError(t, err)

	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, 0, tx.rollbacks)
	// Header plus, per line, one insert and one stock decrement
	require.Len(t, tx.execs, 5)
	assert.Contains(t, tx.execs[0], "INSERT INTO orders")
	assert.Contains(t, tx.execs[1], "INSERT INTO order_lines")
	assert.Contains(t, tx.execs[2], "UPDATE products")
}

func TestOrderCreate_LineInsertFailureRollsBack(t *testing.T) {
	tx := &scriptedTx{lineInsertErr: errors.New("duplicate key value")}
	repo := NewOrderRepository(&scriptedDB{tx: tx}, zap.NewNop())

	order, lines := testOrder(2)
	err := repo.Create(context.Background(), order, lines)
	require.Error(t, err)

	// The header insert must not survive a failed line insert
	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestOrderCreate_ZeroRowStockDecrementRollsBack(t *testing.T) {
	tx := &scriptedTx{stockTags: []pgconn.CommandTag{pgconn.NewCommandTag("UPDATE 0")}}
	repo := NewOrderRepository(&scriptedDB{tx: tx}, zap.NewNop())

	order, lines := testOrder(1)
	err := repo.Create(context.Background(), order, lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Hamaca")

	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestOrderCreate_SecondLineStockShortageUndoesFirst(t *testing.T) {
	tx := &scriptedTx{stockTags: []pgconn.CommandTag{
		pgconn.NewCommandTag("UPDATE 1"),
		pgconn.NewCommandTag("UPDATE 0"),
	}}
	repo := NewOrderRepository(&scriptedDB{tx: tx}, zap.NewNop())

	order, lines := testOrder(2)
	err := repo.Create(context.Background(), order, lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestOrderCreate_BeginFailure(t *testing.T) {
	repo := NewOrderRepository(&scriptedDB{beginErr: errors.New("pool closed")}, zap.NewNop())

	order, lines := testOrder(1)
	err := repo.Create(context.Background(), order, lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin create order")
}
