package infra

import (
	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/domain"
)

type Category struct {
	ID   uint   `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;not null"`
}

func (c Category) To() domain.Category {
	return domain.Category{
		ID:   c.ID,
		Name: c.Name,
	}
}

func (c Category) From(m domain.Category) any {
	c.ID = m.ID
	c.Name = m.Name
	return c
}

type Department struct {
	ID   uint   `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;not null"`
}

func (d Department) To() domain.Department {
	return domain.Department{
		ID:   d.ID,
		Name: d.Name,
	}
}

func (d Department) From(m domain.Department) any {
	d.ID = m.ID
	d.Name = m.Name
	return d
}

type Product struct {
	ID         uint       `gorm:"primaryKey;column:id"`
	Name       string     `gorm:"column:name;not null"`
	Price      float64    `gorm:"column:price"`
	Categories []Category `gorm:"many2many:product_categories;" fetch:"eager"`
}

func (p Product) To() domain.Product {
	categories := make([]*data.Ref[domain.Category, uint], 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, data.LoadedRef(c.ID, c.To()))
	}
	return domain.Product{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Categories: categories,
	}
}

// From keeps only the identifiers of the categories.
func (p Product) From(m domain.Product) any {
	categories := make([]Category, 0, len(m.Categories))
	for _, id := range m.CategoryIDs() {
		categories = append(categories, Category{ID: id})
	}
	return Product{
		ID:         m.ID,
		Name:       m.Name,
		Price:      m.Price,
		Categories: categories,
	}
}

type Person struct {
	ID           uint       `gorm:"primaryKey;column:id"`
	Name         string     `gorm:"column:name;not null"`
	Salary       float64    `gorm:"column:salary"`
	DepartmentID uint       `gorm:"column:department_id;not null"`
	Department   Department `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

// To leaves the department unloaded. PersonRepository binds it to storage.
func (p Person) To() domain.Person {
	return domain.Person{
		ID:         p.ID,
		Name:       p.Name,
		Salary:     p.Salary,
		Department: data.PlaceholderRef[domain.Department, uint](p.DepartmentID),
	}
}

func (p Person) From(m domain.Person) any {
	var departmentID uint
	if m.Department != nil {
		departmentID = m.Department.ID()
	}
	return Person{
		ID:           m.ID,
		Name:         m.Name,
		Salary:       m.Salary,
		DepartmentID: departmentID,
	}
}
