package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/petmall-backend/internal/model"
)

// PetRepository 宠物仓储接口
type PetRepository interface {
	List(ctx context.Context) ([]*model.Pet, error)
	GetByID(ctx context.Context, id uint) (*model.Pet, error)
	Create(ctx context.Context, pet *model.Pet) error
	Update(ctx context.Context, pet *model.Pet) error
	Delete(ctx context.Context, id uint) error
}

type petRepository struct {
	db *gorm.DB
}

// NewPetRepository 创建宠物仓储
func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) List(ctx context.Context) ([]*model.Pet, error) {
	var pets []*model.Pet
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&pets).Error
	return pets, err
}

func (r *petRepository) GetByID(ctx context.Context, id uint) (*model.Pet, error) {
	var pet model.Pet
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) Create(ctx context.Context, pet *model.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

func (r *petRepository) Update(ctx context.Context, pet *model.Pet) error {
	return r.db.WithContext(ctx).Save(pet).Error
}

func (r *petRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Pet{}, id).Error
}
