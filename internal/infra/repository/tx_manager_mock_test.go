package repository_test

import (
	"context"
	"testing"

	"ordermgr/internal/domain/model"
	infra "ordermgr/internal/infra/repository"
	repo "ordermgr/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Postgres方言でTxの流れ（BEGIN → UPDATE → INSERT失敗 → ROLLBACK）を確認する
func newMockTxManager(t *testing.T) (*infra.TxManagerGorm, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return infra.NewTxManagerGorm(gormDB), mock
}

func TestTxManagerGorm_Postgres_RollbackOnInsertFailure(t *testing.T) {
	tm, mock := newMockTxManager(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET "quantity"=quantity - \$1 WHERE product_id = \$2 AND quantity >= \$3`).
		WithArgs(int64(3), int64(1), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Inventory().Decrease(ctx, 1, 3); err != nil {
			return err
		}
		_, err := r.Orders().Create(ctx, model.Order{ClientID: 7, TotalPrice: 300})
		return err
	})

	assert.ErrorIs(t, err, repo.ErrConstraintViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManagerGorm_Postgres_UniqueViolation(t *testing.T) {
	tm, mock := newMockTxManager(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "clients"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})
	mock.ExpectRollback()

	num := "A1"
	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		_, err := r.Clients().Create(ctx, model.Client{Name: "Bob", OrderNumber: &num})
		return err
	})

	assert.ErrorIs(t, err, repo.ErrUniqueViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManagerGorm_Postgres_Commit(t *testing.T) {
	tm, mock := newMockTxManager(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "orders" WHERE order_id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		return r.Orders().Delete(ctx, 5)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
