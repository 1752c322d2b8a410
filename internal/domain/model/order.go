package model

// 注文のライフサイクル（ログ用）
type OrderState string

const (
	OrderStateRequested OrderState = "REQUESTED"
	OrderStateValidated OrderState = "VALIDATED"
	OrderStateCommitted OrderState = "COMMITTED"
	OrderStateExecuted  OrderState = "EXECUTED"
	OrderStateArchived  OrderState = "ARCHIVED"
)

// 明細は保存しない（合計のみ）
type Order struct {
	ID         int64   `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	ClientID   int64   `gorm:"column:client_id;not null;index" json:"client_id"`
	TotalPrice float64 `gorm:"not null;check:chk_orders_total_price,total_price > 0" json:"total_price"`
}

func (Order) TableName() string { return "orders" }
