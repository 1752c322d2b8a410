package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ordermgr/internal/domain/model"
	"ordermgr/internal/infra/db/dbtest"
	infra "ordermgr/internal/infra/repository"
	"ordermgr/internal/metrics"
	repo "ordermgr/internal/repository"
	"ordermgr/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// =====================
// Fakes
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// メモリに持つだけのアーカイブ。errを入れると失敗する
type memorySink struct {
	mu   sync.Mutex
	recs map[int64]model.OrderArchive
	err  error
}

func newMemorySink() *memorySink {
	return &memorySink{recs: map[int64]model.OrderArchive{}}
}

func (s *memorySink) Archive(ctx context.Context, rec model.OrderArchive) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.recs[rec.OrderID] = rec
	return fmt.Sprintf("mem://%d.json", rec.OrderID), nil
}

func (s *memorySink) get(orderID int64) (model.OrderArchive, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[orderID]
	return rec, ok
}

var errDiskFull = errors.New("no space left on device")

// 本物のTxの中で注文の登録だけ失敗させる
type failingOrderInsertTx struct {
	inner repo.TransactionManager
	err   error
}

func (f failingOrderInsertTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return f.inner.WithinTx(ctx, func(r repo.TxRepos) error {
		return fn(failingOrderInsertRepos{TxRepos: r, err: f.err})
	})
}

type failingOrderInsertRepos struct {
	repo.TxRepos
	err error
}

func (r failingOrderInsertRepos) Orders() repo.OrderRepository {
	return failingOrderRepo{OrderRepository: r.TxRepos.Orders(), err: r.err}
}

type failingOrderRepo struct {
	repo.OrderRepository
	err error
}

func (o failingOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	return 0, o.err
}

// =====================
// 本物のSQLiteで組み立てる
// =====================

type stack struct {
	db       *gorm.DB
	sink     *memorySink
	reg      *prometheus.Registry
	clients  *usecase.ClientUsecase
	products *usecase.ProductUsecase
	orders   *usecase.OrderUsecase
}

var testDate = time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)

func newStack(t *testing.T) *stack {
	t.Helper()
	return newStackWithThreshold(t, usecase.DefaultHighValueThreshold)
}

func newStackWithThreshold(t *testing.T, threshold float64) *stack {
	t.Helper()

	gdb := dbtest.Open(t)
	txm := infra.NewTxManagerGorm(gdb)
	sink := newMemorySink()
	reg := prometheus.NewRegistry()
	log := zap.NewNop()

	return &stack{
		db:       gdb,
		sink:     sink,
		reg:      reg,
		clients:  usecase.NewClientUsecase(txm, fixedClock{testDate}, log),
		products: usecase.NewProductUsecase(txm, log),
		orders:   usecase.NewOrderUsecase(txm, sink, threshold, log, metrics.New(reg)),
	}
}

func (s *stack) client(t *testing.T, name, num string) model.Client {
	t.Helper()
	c, err := s.clients.RegisterClient(context.Background(), usecase.RegisterClientInput{Name: name, OrderNumber: num})
	require.NoError(t, err)
	return c
}

func (s *stack) product(t *testing.T, name string, qty int64, price float64) model.Product {
	t.Helper()
	p, err := s.products.StockProduct(context.Background(), usecase.StockProductInput{Name: name, Quantity: qty, Price: price})
	require.NoError(t, err)
	return p
}

func (s *stack) quantity(t *testing.T, productID int64) int64 {
	t.Helper()
	p, err := s.products.GetProduct(context.Background(), productID)
	require.NoError(t, err)
	return p.Quantity
}

func (s *stack) orderCount(t *testing.T) int {
	t.Helper()
	items, err := s.orders.ListOrders(context.Background(), nil)
	require.NoError(t, err)
	return len(items)
}

// ラベルは合算
func (s *stack) metric(t *testing.T, name string) float64 {
	t.Helper()
	mfs, err := s.reg.Gather()
	require.NoError(t, err)

	var sum float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}

func requireKind(t *testing.T, err error, kind usecase.ErrorKind) *usecase.Error {
	t.Helper()
	require.Error(t, err)
	ue, ok := usecase.AsError(err)
	require.True(t, ok, "want usecase.Error, got %T: %v", err, err)
	require.Equal(t, kind, ue.Kind, ue.Message)
	return ue
}
