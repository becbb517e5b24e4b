package infra

import (
	"context"

	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/domain"
	"gorm.io/gorm"
)

type ProductRepository struct {
	data.CrudRepository[domain.Product, uint]
	transactionManager data.TransactionManager
}

func NewProductRepository(repository data.CrudRepository[domain.Product, uint], transactionManager data.TransactionManager) *ProductRepository {
	return &ProductRepository{
		CrudRepository:     repository,
		transactionManager: transactionManager,
	}
}

func (p *ProductRepository) FindByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	db := p.transactionManager.Get(ctx).(*gorm.DB)
	productIDs := db.Session(&gorm.Session{NewDB: true}).
		Table("product_categories").
		Select("product_id").
		Where("category_id = ?", category.ID)

	var dtos []Product
	if err := db.Preload("Categories").
		Where("id IN (?)", productIDs).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, data.TranslateError(err)
	}
	products := make([]domain.Product, 0, len(dtos))
	for _, v := range dtos {
		products = append(products, v.To())
	}
	return products, nil
}
