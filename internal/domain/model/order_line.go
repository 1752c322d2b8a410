package model

// 注文時だけ使う明細（永続化しない）
type OrderLine struct {
	ProductID int64 `json:"product_id" validate:"gt=0"`
	Quantity  int64 `json:"quantity" validate:"gt=0"`
}
