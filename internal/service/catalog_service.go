package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/petmall-backend/internal/model"
	"github.com/d60-Lab/petmall-backend/internal/repository"
)

// CatalogService 商城目录服务：宠物/商品/服务/商家的读写转发，
// 列表读走 Redis 旁路缓存，任何写操作使对应实体的缓存失效。
// 身份与订单数据不经过缓存。
type CatalogService interface {
	ListPets(ctx context.Context) ([]*model.Pet, error)
	GetPet(ctx context.Context, id uint) (*model.Pet, error)
	SavePet(ctx context.Context, pet *model.Pet) error
	DeletePet(ctx context.Context, id uint) error

	ListProducts(ctx context.Context, category string) ([]*model.Product, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	SaveProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id uint) error

	ListServices(ctx context.Context, category string) ([]*model.ServiceItem, error)
	GetService(ctx context.Context, id uint) (*model.ServiceItem, error)
	SaveService(ctx context.Context, item *model.ServiceItem) error
	DeleteService(ctx context.Context, id uint) error

	ListMerchants(ctx context.Context) ([]*model.Merchant, error)
	GetMerchant(ctx context.Context, id uint) (*model.Merchant, error)
	SaveMerchant(ctx context.Context, merchant *model.Merchant) error
}

type catalogService struct {
	pets      repository.PetRepository
	products  repository.ProductRepository
	services  repository.ServiceRepository
	merchants repository.MerchantRepository
	cache     *redis.Client // 可为 nil，此时直连数据库
	ttl       time.Duration
}

// NewCatalogService 创建目录服务；cache 传 nil 则关闭缓存
func NewCatalogService(
	pets repository.PetRepository,
	products repository.ProductRepository,
	services repository.ServiceRepository,
	merchants repository.MerchantRepository,
	cache *redis.Client,
	ttl time.Duration,
) CatalogService {
	return &catalogService{
		pets:      pets,
		products:  products,
		services:  services,
		merchants: merchants,
		cache:     cache,
		ttl:       ttl,
	}
}

// cachedList 旁路缓存：命中直接返回，未命中回源并写缓存。
// 缓存读写失败只降级为回源，不向调用方冒泡。
func cachedList[T any](ctx context.Context, s *catalogService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var out []T
			if uErr := json.Unmarshal(data, &out); uErr == nil {
				return out, nil
			}
		}
	}
	rows, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if payload, err := json.Marshal(rows); err == nil {
			_ = s.cache.Set(ctx, key, payload, s.ttl).Err()
		}
	}
	return rows, nil
}

// invalidate 写操作后按实体前缀清理缓存
func (s *catalogService) invalidate(ctx context.Context, entity string) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, "catalog:"+entity+":*", 0).Iterator()
	for iter.Next(ctx) {
		_ = s.cache.Del(ctx, iter.Val()).Err()
	}
}

func (s *catalogService) ListPets(ctx context.Context) ([]*model.Pet, error) {
	return cachedList(ctx, s, "catalog:pet:list", s.pets.List)
}

func (s *catalogService) GetPet(ctx context.Context, id uint) (*model.Pet, error) {
	return s.pets.GetByID(ctx, id)
}

func (s *catalogService) SavePet(ctx context.Context, pet *model.Pet) error {
	var err error
	if pet.ID == 0 {
		err = s.pets.Create(ctx, pet)
	} else {
		err = s.pets.Update(ctx, pet)
	}
	if err == nil {
		s.invalidate(ctx, "pet")
	}
	return err
}

func (s *catalogService) DeletePet(ctx context.Context, id uint) error {
	if err := s.pets.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "pet")
	return nil
}

func (s *catalogService) ListProducts(ctx context.Context, category string) ([]*model.Product, error) {
	if category == "" {
		return cachedList(ctx, s, "catalog:product:list", s.products.List)
	}
	key := fmt.Sprintf("catalog:product:list:%s", category)
	return cachedList(ctx, s, key, func(ctx context.Context) ([]*model.Product, error) {
		return s.products.ListByCategory(ctx, category)
	})
}

func (s *catalogService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *catalogService) SaveProduct(ctx context.Context, product *model.Product) error {
	var err error
	if product.ID == 0 {
		err = s.products.Create(ctx, product)
	} else {
		err = s.products.Update(ctx, product)
	}
	if err == nil {
		s.invalidate(ctx, "product")
	}
	return err
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "product")
	return nil
}

func (s *catalogService) ListServices(ctx context.Context, category string) ([]*model.ServiceItem, error) {
	if category == "" {
		return cachedList(ctx, s, "catalog:service:list", s.services.List)
	}
	key := fmt.Sprintf("catalog:service:list:%s", category)
	return cachedList(ctx, s, key, func(ctx context.Context) ([]*model.ServiceItem, error) {
		return s.services.ListByCategory(ctx, category)
	})
}

func (s *catalogService) GetService(ctx context.Context, id uint) (*model.ServiceItem, error) {
	return s.services.GetByID(ctx, id)
}

func (s *catalogService) SaveService(ctx context.Context, item *model.ServiceItem) error {
	var err error
	if item.ID == 0 {
		err = s.services.Create(ctx, item)
	} else {
		err = s.services.Update(ctx, item)
	}
	if err == nil {
		s.invalidate(ctx, "service")
	}
	return err
}

func (s *catalogService) DeleteService(ctx context.Context, id uint) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "service")
	return nil
}

func (s *catalogService) ListMerchants(ctx context.Context) ([]*model.Merchant, error) {
	return cachedList(ctx, s, "catalog:merchant:list", s.merchants.List)
}

func (s *catalogService) GetMerchant(ctx context.Context, id uint) (*model.Merchant, error) {
	return s.merchants.GetByID(ctx, id)
}

func (s *catalogService) SaveMerchant(ctx context.Context, merchant *model.Merchant) error {
	var err error
	if merchant.ID == 0 {
		err = s.merchants.Create(ctx, merchant)
	} else {
		err = s.merchants.Update(ctx, merchant)
	}
	if err == nil {
		s.invalidate(ctx, "merchant")
	}
	return err
}
