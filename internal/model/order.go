package model

import (
	"time"
)

// OrderStatus 订单状态（闭集，禁止持久化任何其他值）
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus 解析状态字符串，未知值返回 false
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// Terminal 终态没有任何出边
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order 订单模型
// OrderNo 对外唯一单号，创建时生成后不再变更；唯一性由数据库唯一索引保证
type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	OrderNo         string      `json:"orderNo" gorm:"uniqueIndex;size:32;not null"`
	UserID          string      `json:"userId" gorm:"index;size:64;not null"`
	TotalAmount     float64     `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus `json:"status" gorm:"index;size:16;not null;default:pending"`
	ItemsJSON       string      `json:"itemsJson" gorm:"type:text"`
	AddressSnapshot string      `json:"addressSnapshot" gorm:"type:text"`
	TrackingNumber  string      `json:"trackingNumber" gorm:"size:64"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
