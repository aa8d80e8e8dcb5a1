package model

import (
	"time"
)

// Product 商品模型
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:128;not null"`
	Category      string    `json:"category" gorm:"index;size:64"`
	Price         float64   `json:"price" gorm:"type:decimal(10,2)"`
	OriginalPrice float64   `json:"originalPrice" gorm:"type:decimal(10,2)"`
	Stock         int       `json:"stock"`
	Sales         int       `json:"sales"`
	Rating        float64   `json:"rating" gorm:"type:decimal(3,1)"`
	Image         string    `json:"image" gorm:"size:255"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
