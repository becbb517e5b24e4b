package domain

import (
	"context"

	"github.com/reuben-baek/relation-save/data"
)

type Category struct {
	ID   uint
	Name string
}

type Department struct {
	ID   uint
	Name string
}

type Product struct {
	ID         uint
	Name       string
	Price      float64
	Categories []*data.Ref[Category, uint] // many-to-many
}

// CategoryIDs lists the identifiers of the attached categories in order.
func (p Product) CategoryIDs() []uint {
	ids := make([]uint, 0, len(p.Categories))
	for _, v := range p.Categories {
		ids = append(ids, v.ID())
	}
	return ids
}

type Person struct {
	ID         uint
	Name       string
	Salary     float64
	Department *data.Ref[Department, uint] // belong-to
}

type CategoryRepository interface {
	data.CrudRepository[Category, uint]
	data.ReferenceRepository[Category, uint]
}

type DepartmentRepository interface {
	data.CrudRepository[Department, uint]
	data.ReferenceRepository[Department, uint]
}

// ProductRepository is an example of many-to-many association.
// Categories are written by identifier and come back loaded.
type ProductRepository interface {
	data.CrudRepository[Product, uint]
	FindByCategory(ctx context.Context, category Category) ([]Product, error)
}

// PersonRepository is an example of belong-to association.
// The department comes back as a managed reference.
type PersonRepository interface {
	data.Repository[Person, uint]
	FindByDepartment(ctx context.Context, department Department) ([]Person, error)
}
