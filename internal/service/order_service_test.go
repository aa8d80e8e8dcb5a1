package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/petmall-backend/internal/model"
	"github.com/d60-Lab/petmall-backend/internal/repository"
)

func setupOrderDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Order{}))
	return db
}

func newOrderService(t *testing.T) (OrderService, repository.OrderRepository) {
	t.Helper()
	repo := repository.NewOrderRepository(setupOrderDB(t))
	return NewOrderService(repo), repo
}

func TestCreateOrder(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "openid_u1", 99.99, `[{"productId":1}]`, `{"city":"Shenzhen"}`)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "openid_u1", order.UserID)
	assert.True(t, strings.HasPrefix(order.OrderNo, "ORD"))
	assert.NotZero(t, order.ID)

	loaded, err := svc.GetOrderByOrderNo(ctx, order.OrderNo)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, order.ID, loaded.ID)
}

func TestCreateOrder_Validation(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, "", 10, "[]", "{}")
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, err = svc.CreateOrder(ctx, "openid_u1", 0, "[]", "{}")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateOrder(ctx, "openid_u1", -1, "[]", "{}")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreateOrder_UniqueOrderNo(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	const n = 100
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		order, err := svc.CreateOrder(ctx, "openid_u1", 1.5, "[]", "{}")
		require.NoError(t, err)
		_, dup := seen[order.OrderNo]
		require.False(t, dup, "duplicate order no %s", order.OrderNo)
		seen[order.OrderNo] = struct{}{}
	}
}

// seedOrder 直接以指定状态落库，绕过状态机
func seedOrder(t *testing.T, repo repository.OrderRepository, status model.OrderStatus) *model.Order {
	t.Helper()
	order := &model.Order{
		OrderNo:     fmt.Sprintf("ORDTEST%s%d", status, len(status)),
		UserID:      "openid_u1",
		TotalAmount: 10,
		Status:      status,
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestUpdateOrderStatus_TransitionTable(t *testing.T) {
	allowed := map[model.OrderStatus][]model.OrderStatus{
		model.OrderStatusPending: {model.OrderStatusPaid, model.OrderStatusCancelled},
		model.OrderStatusPaid:    {model.OrderStatusShipped, model.OrderStatusCancelled},
		model.OrderStatusShipped: {model.OrderStatusCompleted},
	}
	all := []model.OrderStatus{
		model.OrderStatusPending, model.OrderStatusPaid, model.OrderStatusShipped,
		model.OrderStatusCompleted, model.OrderStatusCancelled,
	}
	isAllowed := func(from, to model.OrderStatus) bool {
		for _, s := range allowed[from] {
			if s == to {
				return true
			}
		}
		return false
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				svc, repo := newOrderService(t)
				ctx := context.Background()
				order := seedOrder(t, repo, from)

				changed, err := svc.UpdateOrderStatus(ctx, order.ID, string(to))

				fresh, gerr := repo.GetByID(ctx, order.ID)
				require.NoError(t, gerr)
				require.NotNil(t, fresh)

				switch {
				case from == to:
					// 幂等：重复请求当前状态不报错也不改变
					require.NoError(t, err)
					assert.False(t, changed)
					assert.Equal(t, from, fresh.Status)
				case isAllowed(from, to):
					require.NoError(t, err)
					assert.True(t, changed)
					assert.Equal(t, to, fresh.Status)
				default:
					var ite *InvalidTransitionError
					require.ErrorAs(t, err, &ite)
					assert.Equal(t, from, ite.From)
					assert.Equal(t, to, ite.To)
					assert.Contains(t, err.Error(), string(from))
					assert.Contains(t, err.Error(), string(to))
					assert.Equal(t, from, fresh.Status, "failed transition must not change persisted status")
				}
			})
		}
	}
}

func TestUpdateOrderStatus_Lifecycle(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "openid_u1", 99.99, "[]", "{}")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	changed, err := svc.UpdateOrderStatus(ctx, order.ID, "paid")
	require.NoError(t, err)
	assert.True(t, changed)

	// 回退被拒绝，错误信息包含两端状态
	_, err = svc.UpdateOrderStatus(ctx, order.ID, "pending")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paid")
	assert.Contains(t, err.Error(), "pending")

	changed, err = svc.UpdateOrderStatus(ctx, order.ID, "shipped")
	require.NoError(t, err)
	assert.True(t, changed)

	// 重复发货：幂等空操作
	changed, err = svc.UpdateOrderStatus(ctx, order.ID, "shipped")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = svc.UpdateOrderStatus(ctx, order.ID, "completed")
	require.NoError(t, err)
	assert.True(t, changed)

	// 终态无出边
	_, err = svc.UpdateOrderStatus(ctx, order.ID, "paid")
	var ite *InvalidTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, model.OrderStatusCompleted, ite.From)
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	svc, repo := newOrderService(t)
	ctx := context.Background()
	order := seedOrder(t, repo, model.OrderStatusPending)

	_, err := svc.UpdateOrderStatus(ctx, order.ID, "refunded")
	var use *UnknownStatusError
	require.ErrorAs(t, err, &use)
	assert.Equal(t, "refunded", use.Status)

	fresh, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, fresh.Status)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	svc, _ := newOrderService(t)
	_, err := svc.UpdateOrderStatus(context.Background(), 9999, "paid")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

// raceOrderRepo 在首次条件写之前注入一次并发获胜者，模拟同一旧状态上的竞争
type raceOrderRepo struct {
	repository.OrderRepository
	flipTo model.OrderStatus
	once   sync.Once
}

func (r *raceOrderRepo) UpdateStatusFrom(ctx context.Context, orderNo string, from, to model.OrderStatus) (int64, error) {
	r.once.Do(func() {
		_, _ = r.OrderRepository.UpdateStatusFrom(ctx, orderNo, from, r.flipTo)
	})
	return r.OrderRepository.UpdateStatusFrom(ctx, orderNo, from, to)
}

func TestUpdateOrderStatus_ConcurrentWinnerAllowsRetry(t *testing.T) {
	repo := repository.NewOrderRepository(setupOrderDB(t))
	ctx := context.Background()

	order := &model.Order{OrderNo: "ORDRACE1", UserID: "openid_u1", TotalAmount: 10, Status: model.OrderStatusPending}
	require.NoError(t, repo.Create(ctx, order))

	// 并发获胜者先把 pending 写成 paid；落败的 pending->cancelled 条件写落空，
	// 重读后以 paid->cancelled 重新校验并成功
	svc := NewOrderService(&raceOrderRepo{OrderRepository: repo, flipTo: model.OrderStatusPaid})
	changed, err := svc.UpdateOrderStatus(ctx, order.ID, "cancelled")
	require.NoError(t, err)
	assert.True(t, changed)

	fresh, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, fresh.Status)
}

func TestUpdateOrderStatus_ConcurrentWinnerRejectsLoser(t *testing.T) {
	repo := repository.NewOrderRepository(setupOrderDB(t))
	ctx := context.Background()

	order := &model.Order{OrderNo: "ORDRACE2", UserID: "openid_u1", TotalAmount: 10, Status: model.OrderStatusPending}
	require.NoError(t, repo.Create(ctx, order))

	// 并发获胜者直接推进到 completed；落败方重读后 completed->paid 被拒绝
	svc := NewOrderService(&raceOrderRepo{OrderRepository: repo, flipTo: model.OrderStatusCompleted})
	_, err := svc.UpdateOrderStatus(ctx, order.ID, "paid")
	var ite *InvalidTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, model.OrderStatusCompleted, ite.From)
	assert.Equal(t, model.OrderStatusPaid, ite.To)

	fresh, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, fresh.Status)
}

func TestUpdateStatusFrom_AtMostOneWinner(t *testing.T) {
	repo := repository.NewOrderRepository(setupOrderDB(t))
	ctx := context.Background()

	order := &model.Order{OrderNo: "ORDRACE3", UserID: "openid_u1", TotalAmount: 10, Status: model.OrderStatusPending}
	require.NoError(t, repo.Create(ctx, order))

	// 同一份旧状态只能有一个写入者成功
	rows, err := repo.UpdateStatusFrom(ctx, order.OrderNo, model.OrderStatusPending, model.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.UpdateStatusFrom(ctx, order.OrderNo, model.OrderStatusPending, model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	fresh, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, fresh.Status)
}

func TestUpdateTrackingNumber(t *testing.T) {
	svc, repo := newOrderService(t)
	ctx := context.Background()
	order := seedOrder(t, repo, model.OrderStatusPending)

	// 运单号不受状态机约束
	require.NoError(t, svc.UpdateTrackingNumber(ctx, order.ID, "SF123456789"))

	fresh, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "SF123456789", fresh.TrackingNumber)
	assert.Equal(t, model.OrderStatusPending, fresh.Status)

	assert.ErrorIs(t, svc.UpdateTrackingNumber(ctx, 9999, "SF1"), ErrOrderNotFound)
}

func TestDeleteOrder(t *testing.T) {
	svc, repo := newOrderService(t)
	ctx := context.Background()
	order := seedOrder(t, repo, model.OrderStatusCompleted)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))

	fresh, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, fresh)

	assert.ErrorIs(t, svc.DeleteOrder(ctx, order.ID), ErrOrderNotFound)
}

func TestListOrders(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	// 查询未命中返回空，不报错
	orders, err := svc.ListUserOrders(ctx, "nobody", "")
	require.NoError(t, err)
	assert.Empty(t, orders)

	o1, err := svc.CreateOrder(ctx, "openid_u1", 10, "[]", "{}")
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, "openid_u2", 20, "[]", "{}")
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, o1.ID, "paid")
	require.NoError(t, err)

	orders, err = svc.ListUserOrders(ctx, "openid_u1", "")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = svc.ListUserOrders(ctx, "openid_u1", "paid")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = svc.ListUserOrders(ctx, "openid_u1", "pending")
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = svc.ListUserOrders(ctx, "openid_u1", "bogus")
	var use *UnknownStatusError
	assert.ErrorAs(t, err, &use)

	all, err := svc.ListAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
