package service

import (
	"context"

	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/domain"
	"github.com/reuben-baek/relation-save/metrics"
	"github.com/sirupsen/logrus"
)

type ProductService struct {
	transactionManager data.TransactionManager
	productRepository  domain.ProductRepository
	categoryRepository domain.CategoryRepository
	strategy           Strategy
}

func NewProductService(
	transactionManager data.TransactionManager,
	productRepository domain.ProductRepository,
	categoryRepository domain.CategoryRepository,
	strategy Strategy,
) *ProductService {
	return &ProductService{
		transactionManager: transactionManager,
		productRepository:  productRepository,
		categoryRepository: categoryRepository,
		strategy:           strategy.or(ReferenceStrategy),
	}
}

// Insert creates a product attached to the categories named in dto by identifier.
// Categories are never created or modified.
func (s *ProductService) Insert(ctx context.Context, dto ProductDTO, strategy Strategy) (ProductDTO, error) {
	strategy = strategy.or(s.strategy)
	if err := strategy.validate(); err != nil {
		return ProductDTO{}, err
	}
	if err := dto.validate(); err != nil {
		metrics.ObserveInsert("product", string(strategy), err)
		return ProductDTO{}, err
	}

	var saved ProductDTO
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		product := domain.Product{
			Name:  dto.Name,
			Price: dto.Price,
		}
		categoryIDs := dto.categoryIDs()
		product.Categories = make([]*data.Ref[domain.Category, uint], 0, len(categoryIDs))
		for _, id := range categoryIDs {
			product.Categories = append(product.Categories, attach[domain.Category](ctx, strategy, s.categoryRepository, id))
		}

		created, err := s.productRepository.Create(ctx, product)
		if err != nil {
			return err
		}
		saved, err = newProductDTO(ctx, created)
		return err
	})
	metrics.ObserveInsert("product", string(strategy), err)
	if err != nil {
		logrus.Debugf("ProductService.Insert: strategy [%s] failed [%v]", strategy, err)
		return ProductDTO{}, err
	}
	logrus.Debugf("ProductService.Insert: strategy [%s] product [%d]", strategy, saved.ID)
	return saved, nil
}

func (s *ProductService) FindOne(ctx context.Context, id uint) (ProductDTO, error) {
	var found ProductDTO
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		product, err := s.productRepository.FindOne(ctx, id)
		if err != nil {
			return err
		}
		found, err = newProductDTO(ctx, product)
		return err
	})
	return found, err
}

func (s *ProductService) FindAll(ctx context.Context) ([]ProductDTO, error) {
	var found []ProductDTO
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		products, err := s.productRepository.FindAll(ctx)
		if err != nil {
			return err
		}
		found, err = newProductDTOs(ctx, products)
		return err
	})
	return found, err
}

// FindByCategory fails with data.NotFoundError when the category does not exist.
func (s *ProductService) FindByCategory(ctx context.Context, categoryID uint) ([]ProductDTO, error) {
	var found []ProductDTO
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		category, err := s.categoryRepository.FindOne(ctx, categoryID)
		if err != nil {
			return err
		}
		products, err := s.productRepository.FindByCategory(ctx, category)
		if err != nil {
			return err
		}
		found, err = newProductDTOs(ctx, products)
		return err
	})
	return found, err
}

func newProductDTOs(ctx context.Context, products []domain.Product) ([]ProductDTO, error) {
	dtos := make([]ProductDTO, 0, len(products))
	for _, v := range products {
		dto, err := newProductDTO(ctx, v)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}
