package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/petmall-backend/internal/model"
	"github.com/d60-Lab/petmall-backend/pkg/response"
)

// 目录接口是纯转发：handler -> service -> repository，不做业务变换

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ListPets 宠物列表
// @Summary 宠物列表
// @Tags 目录
// @Success 200 {object} response.Response{data=[]model.Pet}
// @Router /api/pet/list [get]
func (h *Handler) ListPets(c *gin.Context) {
	pets, err := h.catalog.ListPets(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, pets)
}

// GetPet 宠物详情
// @Summary 宠物详情
// @Tags 目录
// @Param id path int true "宠物ID"
// @Success 200 {object} response.Response{data=model.Pet}
// @Failure 404 {object} response.Response
// @Router /api/pet/detail/{id} [get]
func (h *Handler) GetPet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	pet, err := h.catalog.GetPet(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if pet == nil {
		response.NotFound(c, "Pet not found")
		return
	}
	response.Success(c, pet)
}

// SavePet 新增/更新宠物（商家端）
// @Summary 保存宠物
// @Tags 目录
// @Accept json
// @Param request body model.Pet true "宠物信息"
// @Success 200 {object} response.Response{data=model.Pet}
// @Router /api/merchant/pet [post]
func (h *Handler) SavePet(c *gin.Context) {
	var pet model.Pet
	if err := c.ShouldBindJSON(&pet); err != nil {
		response.BindError(c, err)
		return
	}
	if err := h.catalog.SavePet(c.Request.Context(), &pet); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, pet)
}

// DeletePet 删除宠物（商家端）
// @Summary 删除宠物
// @Tags 目录
// @Param id path int true "宠物ID"
// @Success 200 {object} response.Response
// @Router /api/merchant/pet/{id} [delete]
func (h *Handler) DeletePet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeletePet(c.Request.Context(), id); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListProducts 商品列表
// @Summary 商品列表
// @Tags 目录
// @Param category query string false "分类"
// @Success 200 {object} response.Response{data=[]model.Product}
// @Router /api/product/list [get]
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, products)
}

// GetProduct 商品详情
// @Summary 商品详情
// @Tags 目录
// @Param id path int true "商品ID"
// @Success 200 {object} response.Response{data=model.Product}
// @Failure 404 {object} response.Response
// @Router /api/product/detail/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if product == nil {
		response.NotFound(c, "Product not found")
		return
	}
	response.Success(c, product)
}

// SaveProduct 新增/更新商品（商家端）
// @Summary 保存商品
// @Tags 目录
// @Accept json
// @Param request body model.Product true "商品信息"
// @Success 200 {object} response.Response{data=model.Product}
// @Router /api/merchant/product [post]
func (h *Handler) SaveProduct(c *gin.Context) {
	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		response.BindError(c, err)
		return
	}
	if err := h.catalog.SaveProduct(c.Request.Context(), &product); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（商家端）
// @Summary 删除商品
// @Tags 目录
// @Param id path int true "商品ID"
// @Success 200 {object} response.Response
// @Router /api/merchant/product/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListServices 服务列表
// @Summary 服务列表
// @Tags 目录
// @Param category query string false "分类"
// @Success 200 {object} response.Response{data=[]model.ServiceItem}
// @Router /api/service/list [get]
func (h *Handler) ListServices(c *gin.Context) {
	items, err := h.catalog.ListServices(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, items)
}

// GetService 服务详情
// @Summary 服务详情
// @Tags 目录
// @Param id path int true "服务ID"
// @Success 200 {object} response.Response{data=model.ServiceItem}
// @Failure 404 {object} response.Response
// @Router /api/service/detail/{id} [get]
func (h *Handler) GetService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.catalog.GetService(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c, "Service not found")
		return
	}
	response.Success(c, item)
}

// SaveService 新增/更新服务（商家端）
// @Summary 保存服务
// @Tags 目录
// @Accept json
// @Param request body model.ServiceItem true "服务信息"
// @Success 200 {object} response.Response{data=model.ServiceItem}
// @Router /api/merchant/service [post]
func (h *Handler) SaveService(c *gin.Context) {
	var item model.ServiceItem
	if err := c.ShouldBindJSON(&item); err != nil {
		response.BindError(c, err)
		return
	}
	if err := h.catalog.SaveService(c.Request.Context(), &item); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteService 删除服务（商家端）
// @Summary 删除服务
// @Tags 目录
// @Param id path int true "服务ID"
// @Success 200 {object} response.Response
// @Router /api/merchant/service/{id} [delete]
func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteService(c.Request.Context(), id); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListMerchants 商家列表
// @Summary 商家列表
// @Tags 目录
// @Success 200 {object} response.Response{data=[]model.Merchant}
// @Router /api/merchant-info/list [get]
func (h *Handler) ListMerchants(c *gin.Context) {
	merchants, err := h.catalog.ListMerchants(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, merchants)
}

// GetMerchant 商家详情
// @Summary 商家详情
// @Tags 目录
// @Param id path int true "商家ID"
// @Success 200 {object} response.Response{data=model.Merchant}
// @Failure 404 {object} response.Response
// @Router /api/merchant-info/detail/{id} [get]
func (h *Handler) GetMerchant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	merchant, err := h.catalog.GetMerchant(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if merchant == nil {
		response.NotFound(c, "Merchant not found")
		return
	}
	response.Success(c, merchant)
}

// SaveMerchant 新增/更新商家资料（商家端）
// @Summary 保存商家资料
// @Tags 目录
// @Accept json
// @Param request body model.Merchant true "商家信息"
// @Success 200 {object} response.Response{data=model.Merchant}
// @Router /api/merchant/profile [post]
func (h *Handler) SaveMerchant(c *gin.Context) {
	var merchant model.Merchant
	if err := c.ShouldBindJSON(&merchant); err != nil {
		response.BindError(c, err)
		return
	}
	if err := h.catalog.SaveMerchant(c.Request.Context(), &merchant); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, merchant)
}
