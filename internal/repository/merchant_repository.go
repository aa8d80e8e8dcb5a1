package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/petmall-backend/internal/model"
)

// MerchantRepository 商家仓储接口
type MerchantRepository interface {
	List(ctx context.Context) ([]*model.Merchant, error)
	GetByID(ctx context.Context, id uint) (*model.Merchant, error)
	Create(ctx context.Context, merchant *model.Merchant) error
	Update(ctx context.Context, merchant *model.Merchant) error
	Delete(ctx context.Context, id uint) error
}

type merchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository 创建商家仓储
func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

func (r *merchantRepository) List(ctx context.Context) ([]*model.Merchant, error) {
	var merchants []*model.Merchant
	err := r.db.WithContext(ctx).Order("rating DESC").Find(&merchants).Error
	return merchants, err
}

func (r *merchantRepository) GetByID(ctx context.Context, id uint) (*model.Merchant, error) {
	var merchant model.Merchant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&merchant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

func (r *merchantRepository) Create(ctx context.Context, merchant *model.Merchant) error {
	return r.db.WithContext(ctx).Create(merchant).Error
}

func (r *merchantRepository) Update(ctx context.Context, merchant *model.Merchant) error {
	return r.db.WithContext(ctx).Save(merchant).Error
}

func (r *merchantRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Merchant{}, id).Error
}
