package handler

import (
	"github.com/d60-Lab/petmall-backend/config"
	"github.com/d60-Lab/petmall-backend/internal/service"
)

// Handler HTTP 入口，持有各业务服务
type Handler struct {
	orders  service.OrderService
	users   service.UserService
	catalog service.CatalogService
	cfg     *config.Config
}

// New 创建 Handler
func New(orders service.OrderService, users service.UserService, catalog service.CatalogService, cfg *config.Config) *Handler {
	return &Handler{orders: orders, users: users, catalog: catalog, cfg: cfg}
}
