package model

import (
	"time"
)

// ServiceItem 服务项目模型（洗护、寄养等）
type ServiceItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:128;not null"`
	Category     string    `json:"category" gorm:"index;size:64"`
	Price        float64   `json:"price" gorm:"type:decimal(10,2)"`
	Duration     string    `json:"duration" gorm:"size:32"`
	Description  string    `json:"description" gorm:"type:text"`
	MerchantName string    `json:"merchantName" gorm:"size:64"`
	MerchantID   uint      `json:"merchantId" gorm:"index"`
	Image        string    `json:"image" gorm:"size:255"`
	Sales        int       `json:"sales"`
	Rating       float64   `json:"rating" gorm:"type:decimal(3,1)"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName 指定表名
func (ServiceItem) TableName() string {
	return "services"
}
