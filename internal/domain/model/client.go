package model

import "time"

// 登録後は更新しない。削除すると注文もCASCADEで消える
type Client struct {
	ID          int64     `gorm:"column:client_id;primaryKey;autoIncrement" json:"client_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	OrderNumber *string   `gorm:"type:varchar(255);uniqueIndex" json:"order_number,omitempty"`
	OrderDate   time.Time `gorm:"type:date" json:"order_date"`

	// FKはorders側に張られる（orders.client_id → clients.client_id）
	Orders []Order `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Client) TableName() string { return "clients" }
