package model

import (
	"time"
)

// Merchant 商家模型
type Merchant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:64;not null"`
	Phone     string    `json:"phone" gorm:"size:20"`
	Address   string    `json:"address" gorm:"size:255"`
	Logo      string    `json:"logo" gorm:"size:255"`
	Rating    float64   `json:"rating" gorm:"type:decimal(3,1)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName 指定表名
func (Merchant) TableName() string {
	return "merchants"
}
