package model

// 実行済み注文のアーカイブ内容
type OrderArchive struct {
	OrderID    int64   `json:"order_id"`
	ClientID   int64   `json:"client_id"`
	TotalPrice float64 `json:"total_price"`
}

func NewOrderArchive(o Order) OrderArchive {
	return OrderArchive{
		OrderID:    o.ID,
		ClientID:   o.ClientID,
		TotalPrice: o.TotalPrice,
	}
}
