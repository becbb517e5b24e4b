package infra

import (
	"context"

	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/domain"
	"github.com/reuben-baek/relation-save/metrics"
	"github.com/sirupsen/logrus"
)

type CategoryRepository struct {
	data.CrudRepository[domain.Category, uint]
}

func NewCategoryRepository(repository data.CrudRepository[domain.Category, uint]) *CategoryRepository {
	return &CategoryRepository{CrudRepository: repository}
}

func (c *CategoryRepository) GetReference(ctx context.Context, id uint) *data.Ref[domain.Category, uint] {
	return data.ManagedRef[domain.Category, uint](id, func(ctx context.Context, id uint) (domain.Category, error) {
		logrus.Debugf("CategoryRepository.GetReference: load category [%d]", id)
		metrics.ReferenceLoads.WithLabelValues("category").Inc()
		return c.FindOne(ctx, id)
	})
}
