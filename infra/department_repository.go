package infra

import (
	"context"

	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/domain"
	"github.com/reuben-baek/relation-save/metrics"
	"github.com/sirupsen/logrus"
)

type DepartmentRepository struct {
	data.CrudRepository[domain.Department, uint]
}

func NewDepartmentRepository(repository data.CrudRepository[domain.Department, uint]) *DepartmentRepository {
	return &DepartmentRepository{CrudRepository: repository}
}

func (d *DepartmentRepository) GetReference(ctx context.Context, id uint) *data.Ref[domain.Department, uint] {
	return data.ManagedRef[domain.Department, uint](id, func(ctx context.Context, id uint) (domain.Department, error) {
		logrus.Debugf("DepartmentRepository.GetReference: load department [%d]", id)
		metrics.ReferenceLoads.WithLabelValues("department").Inc()
		return d.FindOne(ctx, id)
	})
}
