package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"ordermgr/internal/domain/model"
	repo "ordermgr/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type LedgerProductRepoMock struct{ mock.Mock }

func (m *LedgerProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in ledger tests")
}

func (m *LedgerProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *LedgerProductRepoMock) FindByIDWithMinQuantity(ctx context.Context, id int64, minQty int64) (model.Product, error) {
	args := m.Called(ctx, id, minQty)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *LedgerProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	panic("not used in ledger tests")
}

type LedgerInventoryRepoMock struct{ mock.Mock }

func (m *LedgerInventoryRepoMock) Decrease(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type ledgerTxRepos struct {
	products  *LedgerProductRepoMock
	inventory *LedgerInventoryRepoMock
}

func (r *ledgerTxRepos) Clients() repo.ClientRepository      { panic("not used in ledger tests") }
func (r *ledgerTxRepos) Products() repo.ProductRepository    { return r.products }
func (r *ledgerTxRepos) Inventory() repo.InventoryRepository { return r.inventory }
func (r *ledgerTxRepos) Orders() repo.OrderRepository        { panic("not used in ledger tests") }

func newLedgerRepos() *ledgerTxRepos {
	return &ledgerTxRepos{
		products:  new(LedgerProductRepoMock),
		inventory: new(LedgerInventoryRepoMock),
	}
}

// =====================
// Tests
// =====================

func TestInventoryLedger_CheckAndReserve(t *testing.T) {
	ctx := context.Background()
	r := newLedgerRepos()
	widget := model.Product{ID: 1, Name: "Widget", Quantity: 5, Price: 100}
	gadget := model.Product{ID: 2, Name: "Gadget", Quantity: 1, Price: 2.5}

	r.products.On("FindByIDWithMinQuantity", ctx, int64(1), int64(3)).Return(widget, nil).Once()
	r.products.On("FindByIDWithMinQuantity", ctx, int64(2), int64(1)).Return(gadget, nil).Once()

	reserved, err := NewInventoryLedger().CheckAndReserve(ctx, r, []model.OrderLine{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, reserved, 2)
	assert.Equal(t, "302.5", orderTotal(reserved).String())

	r.products.AssertExpectations(t)
	r.inventory.AssertNotCalled(t, "Decrease", mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryLedger_CumulativeDemand(t *testing.T) {
	ctx := context.Background()
	r := newLedgerRepos()
	widget := model.Product{ID: 1, Name: "Widget", Quantity: 5, Price: 100}

	r.products.On("FindByIDWithMinQuantity", ctx, int64(1), int64(3)).Return(widget, nil).Once()
	r.products.On("FindByIDWithMinQuantity", ctx, int64(1), int64(6)).Return(model.Product{}, repo.ErrNotFound).Once()
	r.products.On("FindByID", ctx, int64(1)).Return(widget, nil).Once()

	_, err := NewInventoryLedger().CheckAndReserve(ctx, r, []model.OrderLine{
		{ProductID: 1, Quantity: 3},
		{ProductID: 1, Quantity: 3},
	})
	assert.True(t, IsKind(err, KindInsufficientStock))
	assert.EqualError(t, err, "insufficient stock for product 1 (Widget): requested 6, available 5")
	r.products.AssertExpectations(t)
}

func TestInventoryLedger_DemandOverflow(t *testing.T) {
	ctx := context.Background()
	r := newLedgerRepos()
	widget := model.Product{ID: 1, Name: "Widget", Quantity: math.MaxInt64, Price: 1}

	r.products.On("FindByIDWithMinQuantity", ctx, int64(1), int64(math.MaxInt64)).Return(widget, nil).Once()
	r.products.On("FindByID", ctx, int64(1)).Return(model.Product{ID: 1, Name: "Widget", Quantity: 5, Price: 1}, nil).Once()

	// 2行目で合算があふれる
	_, err := NewInventoryLedger().CheckAndReserve(ctx, r, []model.OrderLine{
		{ProductID: 1, Quantity: math.MaxInt64},
		{ProductID: 1, Quantity: 1},
	})
	assert.True(t, IsKind(err, KindInsufficientStock))
	assert.EqualError(t, err, "insufficient stock for product 1 (Widget): requested 9223372036854775807, available 5")
	r.products.AssertExpectations(t)
	r.products.AssertNumberOfCalls(t, "FindByIDWithMinQuantity", 1)
}

func TestInventoryLedger_NonFinitePrice(t *testing.T) {
	ctx := context.Background()
	r := newLedgerRepos()

	r.products.On("FindByIDWithMinQuantity", ctx, int64(1), int64(1)).
		Return(model.Product{ID: 1, Name: "Broken", Quantity: 5, Price: math.Inf(1)}, nil).Once()

	assert.NotPanics(t, func() {
		_, err := NewInventoryLedger().CheckAndReserve(ctx, r, []model.OrderLine{{ProductID: 1, Quantity: 1}})
		assert.True(t, IsKind(err, KindConstraintViolation))
	})
}

func TestInventoryLedger_MissingProduct(t *testing.T) {
	ctx := context.Background()
	r := newLedgerRepos()

	r.products.On("FindByIDWithMinQuantity", ctx, int64(8), int64(1)).Return(model.Product{}, repo.ErrNotFound).Once()
	r.products.On("FindByID", ctx, int64(8)).Return(model.Product{}, repo.ErrNotFound).Once()

	_, err := NewInventoryLedger().CheckAndReserve(ctx, r, []model.OrderLine{{ProductID: 8, Quantity: 1}})
	assert.True(t, IsKind(err, KindNotFound))
	assert.EqualError(t, err, "product 8 not found")
}

func TestInventoryLedger_DBError(t *testing.T) {
	ctx := context.Background()
	r := newLedgerRepos()
	dbErr := errors.New("connection reset")

	r.products.On("FindByIDWithMinQuantity", ctx, int64(1), int64(1)).Return(model.Product{}, dbErr).Once()

	_, err := NewInventoryLedger().CheckAndReserve(ctx, r, []model.OrderLine{{ProductID: 1, Quantity: 1}})
	assert.True(t, IsKind(err, KindInternal))
	assert.ErrorIs(t, err, dbErr)
}

func TestInventoryLedger_CommitStopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	r := newLedgerRepos()

	r.inventory.On("Decrease", ctx, int64(1), int64(2)).Return(nil).Once()
	r.inventory.On("Decrease", ctx, int64(2), int64(1)).Return(repo.ErrConstraintViolation).Once()

	err := NewInventoryLedger().Commit(ctx, r, []ReservedLine{
		{Product: model.Product{ID: 1}, Quantity: 2},
		{Product: model.Product{ID: 2}, Quantity: 1},
		{Product: model.Product{ID: 3}, Quantity: 1},
	})
	assert.True(t, IsKind(err, KindConstraintViolation))
	r.inventory.AssertExpectations(t)
	r.inventory.AssertNotCalled(t, "Decrease", ctx, int64(3), int64(1))
}

func TestEnsureError(t *testing.T) {
	assert.NoError(t, ensureError(nil))

	raw := errors.New("commit failed")
	err := ensureError(raw)
	assert.True(t, IsKind(err, KindInternal))
	assert.ErrorIs(t, err, raw)

	ue := NewError(KindNotFound, "x")
	assert.Same(t, ue, ensureError(ue))
}
