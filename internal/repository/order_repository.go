package repository

import (
	"context"

	"github.com/d60-Lab/petmall-backend/internal/model"
)

// OrderRepository 订单仓储接口
// 查询未命中时返回 (nil, nil) / 空切片，不作为错误处理
type OrderRepository interface {
	// Create 创建订单；order_no 冲突时返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, order *model.Order) error

	// GetByID 根据主键查询订单
	GetByID(ctx context.Context, id uint) (*model.Order, error)

	// GetByOrderNo 根据订单号查询订单
	GetByOrderNo(ctx context.Context, orderNo string) (*model.Order, error)

	// ListByUser 查询用户全部订单
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)

	// ListByUserAndStatus 按状态查询用户订单
	ListByUserAndStatus(ctx context.Context, userID string, status model.OrderStatus) ([]*model.Order, error)

	// ListAll 查询全部订单（商家/管理端）
	ListAll(ctx context.Context) ([]*model.Order, error)

	// UpdateStatusFrom 条件更新状态：仅当当前状态仍为 from 时写入 to，
	// 返回受影响行数；0 表示状态已被并发修改
	UpdateStatusFrom(ctx context.Context, orderNo string, from, to model.OrderStatus) (int64, error)

	// UpdateTracking 更新运单号，不受状态机约束
	UpdateTracking(ctx context.Context, id uint, trackingNo string) error

	// Delete 物理删除订单（管理/测试用途）
	Delete(ctx context.Context, id uint) error
}
