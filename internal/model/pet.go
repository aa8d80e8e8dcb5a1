package model

import (
	"time"
)

// Pet 宠物模型
type Pet struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:64;not null"`
	Breed        string    `json:"breed" gorm:"size:64"`
	Age          string    `json:"age" gorm:"size:32"`
	Gender       string    `json:"gender" gorm:"size:8"`
	Price        float64   `json:"price" gorm:"type:decimal(10,2)"`
	Deposit      float64   `json:"deposit" gorm:"type:decimal(10,2)"`
	Status       string    `json:"status" gorm:"size:16"`
	Description  string    `json:"description" gorm:"type:text"`
	Avatar       string    `json:"avatar" gorm:"size:255"`
	HealthStatus string    `json:"healthStatus" gorm:"size:64"`
	MerchantID   uint      `json:"merchantId" gorm:"index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName 指定表名
func (Pet) TableName() string {
	return "pets"
}
