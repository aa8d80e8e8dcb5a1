package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/petmall-backend/internal/model"
)

// ServiceRepository 服务项目仓储接口
type ServiceRepository interface {
	List(ctx context.Context) ([]*model.ServiceItem, error)
	ListByCategory(ctx context.Context, category string) ([]*model.ServiceItem, error)
	GetByID(ctx context.Context, id uint) (*model.ServiceItem, error)
	Create(ctx context.Context, item *model.ServiceItem) error
	Update(ctx context.Context, item *model.ServiceItem) error
	Delete(ctx context.Context, id uint) error
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository 创建服务项目仓储
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.ServiceItem, error) {
	var items []*model.ServiceItem
	err := r.db.WithContext(ctx).Order("sales DESC").Find(&items).Error
	return items, err
}

func (r *serviceRepository) ListByCategory(ctx context.Context, category string) ([]*model.ServiceItem, error) {
	var items []*model.ServiceItem
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("sales DESC").Find(&items).Error
	return items, err
}

func (r *serviceRepository) GetByID(ctx context.Context, id uint) (*model.ServiceItem, error) {
	var item model.ServiceItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *serviceRepository) Create(ctx context.Context, item *model.ServiceItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *serviceRepository) Update(ctx context.Context, item *model.ServiceItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.ServiceItem{}, id).Error
}
