package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/petmall-backend/internal/model"
	"github.com/d60-Lab/petmall-backend/internal/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrMissingUserID = errors.New("missing user identity")
	ErrInvalidAmount = errors.New("total amount must be greater than 0")
)

// UnknownStatusError 请求的状态字符串不在闭集内
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown order status %q", e.Status)
}

// InvalidTransitionError 状态机不允许的迁移，错误信息必须同时包含两端状态
type InvalidTransitionError struct {
	From model.OrderStatus
	To   model.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// orderTransitions 订单状态机迁移表；completed / cancelled 为终态
var orderTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:   {model.OrderStatusPaid, model.OrderStatusCancelled},
	model.OrderStatusPaid:      {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:   {model.OrderStatusCompleted},
	model.OrderStatusCompleted: {},
	model.OrderStatusCancelled: {},
}

func canTransition(from, to model.OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// 条件写失败（并发竞争）后的重读重试上限
const statusUpdateRetries = 3

// OrderService 订单服务：负责订单生命周期与状态机校验
type OrderService interface {
	// CreateOrder 创建订单，初始状态 pending，订单号全局唯一
	CreateOrder(ctx context.Context, userID string, totalAmount float64, itemsJSON, addressSnapshot string) (*model.Order, error)

	// UpdateOrderStatus 请求状态迁移
	// 返回 (false, nil) 表示目标状态与当前一致，幂等空操作
	UpdateOrderStatus(ctx context.Context, id uint, status string) (bool, error)

	// UpdateTrackingNumber 更新运单号，不受状态机约束
	UpdateTrackingNumber(ctx context.Context, id uint, trackingNo string) error

	// DeleteOrder 物理删除，绕过状态机（管理/测试用途，业务流程应使用 cancelled）
	DeleteOrder(ctx context.Context, id uint) error

	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	GetOrderByOrderNo(ctx context.Context, orderNo string) (*model.Order, error)
	ListUserOrders(ctx context.Context, userID string, status string) ([]*model.Order, error)
	ListAllOrders(ctx context.Context) ([]*model.Order, error)
}

type orderService struct {
	repo repository.OrderRepository
}

// NewOrderService 创建订单服务
func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

// genOrderNo 订单号：ORD + 毫秒时间戳 + 3位随机数
// 随机后缀只降低碰撞概率，唯一性最终由 order_no 唯一索引保证
func genOrderNo() string {
	return fmt.Sprintf("ORD%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

func (s *orderService) CreateOrder(ctx context.Context, userID string, totalAmount float64, itemsJSON, addressSnapshot string) (*model.Order, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if totalAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	order := &model.Order{
		UserID:          userID,
		TotalAmount:     totalAmount,
		Status:          model.OrderStatusPending,
		ItemsJSON:       itemsJSON,
		AddressSnapshot: addressSnapshot,
	}

	// 唯一索引冲突则换号重试
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		order.OrderNo = genOrderNo()
		err = s.repo.Create(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("generate unique order no: %w", err)
}

// UpdateOrderStatus 读取-校验-条件写，整体构成每单串行化的迁移单元：
// 条件写以读到的旧状态为前置条件，写失败说明有并发写入者获胜，
// 以最新状态重跑校验（有限次）。
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (bool, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if order == nil {
		return false, ErrOrderNotFound
	}

	target, ok := model.ParseOrderStatus(status)
	if !ok {
		return false, &UnknownStatusError{Status: status}
	}

	current := order.Status
	for attempt := 0; attempt < statusUpdateRetries; attempt++ {
		// 重复请求同一状态：幂等成功
		if current == target {
			return false, nil
		}
		if !canTransition(current, target) {
			return false, &InvalidTransitionError{From: current, To: target}
		}

		rows, err := s.repo.UpdateStatusFrom(ctx, order.OrderNo, current, target)
		if err != nil {
			return false, err
		}
		if rows > 0 {
			return true, nil
		}

		// 条件写落空：状态已被并发修改，重读后重跑校验
		fresh, err := s.repo.GetByOrderNo(ctx, order.OrderNo)
		if err != nil {
			return false, err
		}
		if fresh == nil {
			return false, ErrOrderNotFound
		}
		current = fresh.Status
	}
	return false, fmt.Errorf("order %s: status update contention, retries exhausted", order.OrderNo)
}

func (s *orderService) UpdateTrackingNumber(ctx context.Context, id uint, trackingNo string) error {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.repo.UpdateTracking(ctx, id, trackingNo)
}

func (s *orderService) DeleteOrder(ctx context.Context, id uint) error {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *orderService) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *orderService) GetOrderByOrderNo(ctx context.Context, orderNo string) (*model.Order, error) {
	return s.repo.GetByOrderNo(ctx, orderNo)
}

// ListUserOrders status 为空串时返回该用户全部订单
func (s *orderService) ListUserOrders(ctx context.Context, userID string, status string) ([]*model.Order, error) {
	if status == "" {
		return s.repo.ListByUser(ctx, userID)
	}
	st, ok := model.ParseOrderStatus(status)
	if !ok {
		return nil, &UnknownStatusError{Status: status}
	}
	return s.repo.ListByUserAndStatus(ctx, userID, st)
}

func (s *orderService) ListAllOrders(ctx context.Context) ([]*model.Order, error) {
	return s.repo.ListAll(ctx)
}
