package model

// 在庫数は減算のみ。quantity < 0 はDBのCHECKで弾く
type Product struct {
	ID       int64   `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Quantity int64   `gorm:"not null;default:0;check:chk_products_quantity,quantity >= 0" json:"quantity"`
	Price    float64 `gorm:"not null;check:chk_products_price,price > 0" json:"price"`
}

func (Product) TableName() string { return "products" }
