package usecase

import (
	"context"
	"fmt"

	"ordermgr/internal/domain/model"
	"ordermgr/internal/metrics"
	repo "ordermgr/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultHighValueThreshold = 10000.0

// 実行済み注文の書き出し先
type ArchiveSink interface {
	Archive(ctx context.Context, rec model.OrderArchive) (string, error)
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	ledger    *InventoryLedger
	sink      ArchiveSink
	threshold decimal.Decimal
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// thresholdが0以下ならデフォルト。mはnilでもよい
func NewOrderUsecase(tx repo.TransactionManager, sink ArchiveSink, threshold float64, log *zap.Logger, m *metrics.Metrics) *OrderUsecase {
	if threshold <= 0 {
		threshold = DefaultHighValueThreshold
	}
	return &OrderUsecase{
		tx:        tx,
		ledger:    NewInventoryLedger(),
		sink:      sink,
		threshold: decimal.NewFromFloat(threshold),
		log:       log,
		metrics:   m,
	}
}

type PlaceOrderInput struct {
	ClientID int64             `json:"client_id" validate:"gt=0"`
	Lines    []model.OrderLine `json:"lines" validate:"required,min=1,dive"`
}

type PlaceOrderOutput struct {
	OrderID    int64   `json:"order_id"`
	ClientID   int64   `json:"client_id"`
	TotalPrice float64 `json:"total_price"`

	// 高額注文の注意（注文自体は通る）
	Advisory string `json:"advisory,omitempty"`
}

type ExecuteOrderOutput struct {
	OrderID  int64  `json:"order_id"`
	Location string `json:"location"`
}

// 注文処理はトランザクション。
// 顧客確認 → 在庫チェック → 合計 → 在庫減算 → 注文作成 のどこで失敗してもrollback
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderOutput, error) {
	log := u.log.With(zap.Int64("client_id", in.ClientID), zap.Int("lines", len(in.Lines)))
	log.Debug("order state", zap.String("state", string(model.OrderStateRequested)))

	if err := validateInput(in); err != nil {
		u.reject(log, err)
		return PlaceOrderOutput{}, err
	}

	var out PlaceOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//顧客の存在確認
		if _, err := r.Clients().FindByID(ctx, in.ClientID); err != nil {
			return fromRepoError(err, fmt.Sprintf("client %d not found", in.ClientID))
		}

		//在庫チェック（ここまでは何も書かない）
		reserved, err := u.ledger.CheckAndReserve(ctx, r, in.Lines)
		if err != nil {
			return err
		}
		log.Debug("order state", zap.String("state", string(model.OrderStateValidated)))

		total := orderTotal(reserved)

		//高額注文は注意だけ
		var advisory string
		if total.GreaterThan(u.threshold) {
			advisory = fmt.Sprintf("order total %s exceeds %s", total.String(), u.threshold.String())
			log.Warn("high value order",
				zap.String("total", total.String()),
				zap.String("threshold", u.threshold.String()),
			)
		}

		//在庫減算
		if err := u.ledger.Commit(ctx, r, reserved); err != nil {
			return err
		}

		// 注文作成
		totalPrice := total.InexactFloat64()
		orderID, err := r.Orders().Create(ctx, model.Order{
			ClientID:   in.ClientID,
			TotalPrice: totalPrice,
		})
		if err != nil {
			return fromRepoError(err, fmt.Sprintf("client %d not found", in.ClientID))
		}

		out = PlaceOrderOutput{
			OrderID:    orderID,
			ClientID:   in.ClientID,
			TotalPrice: totalPrice,
			Advisory:   advisory,
		}
		return nil
	})
	if err != nil {
		err = ensureError(err)
		u.reject(log, err)
		return PlaceOrderOutput{}, err
	}

	u.metrics.OrderPlaced(out.TotalPrice, out.Advisory != "")
	log.Info("order committed",
		zap.String("state", string(model.OrderStateCommitted)),
		zap.Int64("order_id", out.OrderID),
		zap.Float64("total_price", out.TotalPrice),
	)
	return out, nil
}

// アーカイブに書けたときだけ注文を消す。
// 書けなければ注文はそのまま（再実行で2回書かれることはある）
func (u *OrderUsecase) ExecuteOrder(ctx context.Context, orderID int64) (ExecuteOrderOutput, error) {
	if orderID <= 0 {
		return ExecuteOrderOutput{}, NewError(KindInvalidInput, "invalid order id")
	}
	log := u.log.With(zap.Int64("order_id", orderID))

	var out ExecuteOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return fromRepoError(err, fmt.Sprintf("order %d not found", orderID))
		}
		log.Debug("order state", zap.String("state", string(model.OrderStateExecuted)))

		loc, err := u.sink.Archive(ctx, model.NewOrderArchive(o))
		if err != nil {
			return wrapError(KindArchivalIO, err, fmt.Sprintf("archive order %d: %v", orderID, err))
		}

		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return fromRepoError(err, fmt.Sprintf("order %d not found", orderID))
		}

		out = ExecuteOrderOutput{OrderID: orderID, Location: loc}
		return nil
	})
	if err != nil {
		err = ensureError(err)
		log.Info("order execution failed", zap.String("kind", string(KindOf(err))), zap.Error(err))
		return ExecuteOrderOutput{}, err
	}

	u.metrics.OrderExecuted()
	log.Info("order archived",
		zap.String("state", string(model.OrderStateArchived)),
		zap.String("location", out.Location),
	)
	return out, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewError(KindInvalidInput, "invalid order id")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return fromRepoError(err, fmt.Sprintf("order %d not found", orderID))
		}
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, ensureError(err)
	}
	return out, nil
}

// clientIDがnilなら全件
func (u *OrderUsecase) ListOrders(ctx context.Context, clientID *int64) ([]model.Order, error) {
	var out []model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var (
			items []model.Order
			err   error
		)
		if clientID != nil {
			items, err = r.Orders().ListByClientID(ctx, *clientID)
		} else {
			items, err = r.Orders().List(ctx)
		}
		if err != nil {
			return fromRepoError(err, "")
		}
		out = items
		return nil
	})
	if err != nil {
		return []model.Order{}, ensureError(err)
	}
	return out, nil
}

func (u *OrderUsecase) reject(log *zap.Logger, err error) {
	kind := KindOf(err)
	u.metrics.OrderRejected(string(kind))
	log.Info("order rejected", zap.String("kind", string(kind)), zap.Error(err))
}
