package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/petmall-backend/internal/api/middleware"
	"github.com/d60-Lab/petmall-backend/internal/service"
	"github.com/d60-Lab/petmall-backend/pkg/response"
)

type createOrderRequest struct {
	ItemsJSON       string  `json:"itemsJson" binding:"required"`
	AddressSnapshot string  `json:"addressSnapshot" binding:"required"`
	TotalAmount     float64 `json:"totalAmount" binding:"required,gt=0"`
	UserID          string  `json:"userId"` // 可选，身份头优先
}

type updateOrderStatusRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type updateTrackingRequest struct {
	ID             uint   `json:"id" binding:"required"`
	TrackingNumber string `json:"trackingNumber" binding:"required"`
}

// renderOrderError 订单业务错误到响应码的唯一翻译点
func renderOrderError(c *gin.Context, err error) {
	var (
		unknownStatus     *service.UnknownStatusError
		invalidTransition *service.InvalidTransitionError
	)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, "Order not found")
	case errors.Is(err, service.ErrMissingUserID), errors.Is(err, service.ErrInvalidAmount):
		response.BadRequest(c, err.Error())
	case errors.As(err, &unknownStatus), errors.As(err, &invalidTransition):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// CreateOrder 创建订单
// @Summary 创建订单
// @Tags 订单
// @Accept json
// @Produce json
// @Param request body createOrderRequest true "订单信息"
// @Success 200 {object} response.Response{data=model.Order}
// @Failure 400 {object} response.Response
// @Router /api/order/create [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	// 身份头存在时覆盖 body 中的 userId
	userID := c.GetHeader(middleware.HeaderOpenID)
	if userID == "" {
		userID = req.UserID
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), userID, req.TotalAmount, req.ItemsJSON, req.AddressSnapshot)
	if err != nil {
		renderOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 更新订单状态（状态机校验）
// @Summary 更新订单状态
// @Tags 订单
// @Accept json
// @Produce json
// @Param request body updateOrderStatusRequest true "目标状态"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/merchant/order/status [post]
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	changed, err := h.orders.UpdateOrderStatus(c.Request.Context(), req.ID, req.Status)
	if err != nil {
		renderOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"changed": changed})
}

// UpdateTracking 更新运单号
// @Summary 更新运单号
// @Tags 订单
// @Accept json
// @Produce json
// @Param request body updateTrackingRequest true "运单号"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/merchant/order/tracking [post]
func (h *Handler) UpdateTracking(c *gin.Context) {
	var req updateTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := h.orders.UpdateTrackingNumber(c.Request.Context(), req.ID, req.TrackingNumber); err != nil {
		renderOrderError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetOrderDetail 订单详情
// @Summary 订单详情
// @Tags 订单
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response{data=model.Order}
// @Failure 404 {object} response.Response
// @Router /api/order/detail/{id} [get]
func (h *Handler) GetOrderDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	order, err := h.orders.GetOrderByID(c.Request.Context(), uint(id))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if order == nil {
		response.NotFound(c, "Order not found")
		return
	}
	response.Success(c, order)
}

// ListUserOrders 用户订单列表
// @Summary 用户订单列表
// @Tags 订单
// @Param userId query string false "用户ID（无身份头时使用）"
// @Param status query string false "按状态过滤"
// @Success 200 {object} response.Response{data=[]model.Order}
// @Router /api/order/user/list [get]
func (h *Handler) ListUserOrders(c *gin.Context) {
	userID := c.GetHeader(middleware.HeaderOpenID)
	if userID == "" {
		userID = c.Query("userId")
	}
	if userID == "" {
		response.BadRequest(c, "missing user identity")
		return
	}

	orders, err := h.orders.ListUserOrders(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		renderOrderError(c, err)
		return
	}
	response.Success(c, orders)
}

// ListMerchantOrders 商家订单列表（当前返回全部订单）
// @Summary 商家订单列表
// @Tags 订单
// @Success 200 {object} response.Response{data=[]model.Order}
// @Router /api/merchant/order/list [get]
func (h *Handler) ListMerchantOrders(c *gin.Context) {
	orders, err := h.orders.ListAllOrders(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, orders)
}

// DeleteOrder 删除订单（绕过状态机，管理用途）
// @Summary 删除订单
// @Tags 订单
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/merchant/order/{id} [delete]
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	if err := h.orders.DeleteOrder(c.Request.Context(), uint(id)); err != nil {
		renderOrderError(c, err)
		return
	}
	response.Success(c, nil)
}
