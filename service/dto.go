package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/domain"
)

type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newCategoryDTO(c domain.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name}
}

type DepartmentDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newDepartmentDTO(d domain.Department) DepartmentDTO {
	return DepartmentDTO{ID: d.ID, Name: d.Name}
}

type ProductDTO struct {
	ID         uint          `json:"id"`
	Name       string        `json:"name" binding:"required"`
	Price      float64       `json:"price" binding:"gte=0"`
	Categories []CategoryDTO `json:"categories"`
}

func (p ProductDTO) validate() error {
	if p.Name == "" {
		return invalid("product name is empty")
	}
	if p.Price < 0 {
		return invalid("product price is negative")
	}
	for _, v := range p.Categories {
		if v.ID == 0 {
			return invalid("category id is missing")
		}
	}
	return nil
}

// categoryIDs lists the distinct category identifiers in first-seen order.
func (p ProductDTO) categoryIDs() []uint {
	seen := make(map[uint]struct{}, len(p.Categories))
	ids := make([]uint, 0, len(p.Categories))
	for _, v := range p.Categories {
		if _, ok := seen[v.ID]; ok {
			continue
		}
		seen[v.ID] = struct{}{}
		ids = append(ids, v.ID)
	}
	return ids
}

// newProductDTO resolves every category. Managed references are read here,
// placeholders yield their identifier only.
func newProductDTO(ctx context.Context, p domain.Product) (ProductDTO, error) {
	categories := make([]CategoryDTO, 0, len(p.Categories))
	for _, v := range p.Categories {
		category, err := v.Resolve(ctx)
		if err != nil {
			return ProductDTO{}, referenceError("category", v.ID(), err)
		}
		categories = append(categories, newCategoryDTO(category))
	}
	return ProductDTO{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Categories: categories,
	}, nil
}

// PersonDTO carries the department as a bare identifier.
type PersonDTO struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name" binding:"required"`
	Salary       float64 `json:"salary" binding:"gte=0"`
	DepartmentID uint    `json:"departmentId" binding:"required"`
}

func (p PersonDTO) validate() error {
	if p.Name == "" {
		return invalid("person name is empty")
	}
	if p.Salary < 0 {
		return invalid("person salary is negative")
	}
	if p.DepartmentID == 0 {
		return invalid("department id is missing")
	}
	return nil
}

func newPersonDTO(p domain.Person) PersonDTO {
	return PersonDTO{
		ID:           p.ID,
		Name:         p.Name,
		Salary:       p.Salary,
		DepartmentID: departmentID(p.Department),
	}
}

// PersonDepartmentDTO carries the department as a nested object.
type PersonDepartmentDTO struct {
	ID         uint           `json:"id"`
	Name       string         `json:"name" binding:"required"`
	Salary     float64        `json:"salary" binding:"gte=0"`
	Department *DepartmentDTO `json:"department" binding:"required"`
}

func (p PersonDepartmentDTO) validate() error {
	if p.Name == "" {
		return invalid("person name is empty")
	}
	if p.Salary < 0 {
		return invalid("person salary is negative")
	}
	if p.Department == nil || p.Department.ID == 0 {
		return invalid("department id is missing")
	}
	return nil
}

func newPersonDepartmentDTO(ctx context.Context, p domain.Person) (PersonDepartmentDTO, error) {
	dto := PersonDepartmentDTO{
		ID:     p.ID,
		Name:   p.Name,
		Salary: p.Salary,
	}
	if p.Department != nil {
		department, err := p.Department.Resolve(ctx)
		if err != nil {
			return PersonDepartmentDTO{}, referenceError("department", p.Department.ID(), err)
		}
		departmentDTO := newDepartmentDTO(department)
		dto.Department = &departmentDTO
	}
	return dto, nil
}

func departmentID(ref *data.Ref[domain.Department, uint]) uint {
	if ref == nil {
		return 0
	}
	return ref.ID()
}

// referenceError reports a child that vanished before its reference was resolved.
func referenceError(entity string, id uint, err error) error {
	if errors.Is(err, data.NotFoundError) {
		return fmt.Errorf("%w: %s [%d]", data.ReferenceNotFoundError, entity, id)
	}
	return err
}
