package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"ordermgr/internal/domain/model"
	repo "ordermgr/internal/repository"

	"github.com/shopspring/decimal"
)

// 在庫チェックを通った明細（単価は注文時点の値）
type ReservedLine struct {
	Product  model.Product
	Quantity int64
}

func (l ReservedLine) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Product.Price).Mul(decimal.NewFromInt(l.Quantity))
}

// InventoryLedger は在庫を負にしない。
// チェックは全明細まとめて行い、1つでも足りなければ何も書かない
type InventoryLedger struct{}

func NewInventoryLedger() *InventoryLedger {
	return &InventoryLedger{}
}

// 同じ商品が複数行にあれば要求数を合算してチェックする
func (l *InventoryLedger) CheckAndReserve(ctx context.Context, r repo.TxRepos, lines []model.OrderLine) ([]ReservedLine, error) {
	demand := make(map[int64]int64, len(lines))
	out := make([]ReservedLine, 0, len(lines))

	for _, line := range lines {
		need := demand[line.ProductID]
		// 合算がint64を超えるなら在庫が足りるはずがない
		if line.Quantity > math.MaxInt64-need {
			return nil, l.shortage(ctx, r, line.ProductID, math.MaxInt64)
		}
		need += line.Quantity
		demand[line.ProductID] = need

		p, err := r.Products().FindByIDWithMinQuantity(ctx, line.ProductID, need)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, l.shortage(ctx, r, line.ProductID, need)
		}
		if err != nil {
			return nil, fromRepoError(err, "")
		}
		// decimalは非有限値を扱えない
		if math.IsInf(p.Price, 0) || math.IsNaN(p.Price) {
			return nil, NewError(KindConstraintViolation, fmt.Sprintf("product %d has an invalid price", p.ID))
		}

		out = append(out, ReservedLine{Product: p, Quantity: line.Quantity})
	}
	return out, nil
}

// 商品がないのか、在庫が足りないのかを分ける
func (l *InventoryLedger) shortage(ctx context.Context, r repo.TxRepos, productID int64, need int64) error {
	p, err := r.Products().FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return wrapError(KindNotFound, err, fmt.Sprintf("product %d not found", productID))
	}
	if err != nil {
		return fromRepoError(err, "")
	}
	return NewError(KindInsufficientStock, fmt.Sprintf(
		"insufficient stock for product %d (%s): requested %d, available %d",
		p.ID, p.Name, need, p.Quantity,
	))
}

// チェック済みの明細を減算する。呼び出し側のTxの中で使う
func (l *InventoryLedger) Commit(ctx context.Context, r repo.TxRepos, reserved []ReservedLine) error {
	for _, rl := range reserved {
		if err := r.Inventory().Decrease(ctx, rl.Product.ID, rl.Quantity); err != nil {
			return fromRepoError(err, fmt.Sprintf("product %d not found", rl.Product.ID))
		}
	}
	return nil
}

// 合計 = Σ(単価 × 数量)
func orderTotal(reserved []ReservedLine) decimal.Decimal {
	total := decimal.Zero
	for _, rl := range reserved {
		total = total.Add(rl.Subtotal())
	}
	return total
}
