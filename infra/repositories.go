package infra

import (
	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/domain"
)

type Repositories struct {
	Categories  *CategoryRepository
	Departments *DepartmentRepository
	Products    *ProductRepository
	People      *PersonRepository
}

func NewRepositories(transactionManager data.TransactionManager) Repositories {
	categoryGormRepository := data.NewGormRepository[Category, uint](transactionManager)
	departmentGormRepository := data.NewGormRepository[Department, uint](transactionManager)
	productGormRepository := data.NewGormRepository[Product, uint](transactionManager)
	personGormRepository := data.NewGormRepository[Person, uint](transactionManager)

	departmentRepository := NewDepartmentRepository(
		data.NewDtoWrapRepository[Department, domain.Department, uint](departmentGormRepository),
	)
	return Repositories{
		Categories: NewCategoryRepository(
			data.NewDtoWrapRepository[Category, domain.Category, uint](categoryGormRepository),
		),
		Departments: departmentRepository,
		Products: NewProductRepository(
			data.NewDtoWrapRepository[Product, domain.Product, uint](productGormRepository),
			transactionManager,
		),
		People: NewPersonRepository(
			data.NewDtoWrapRepository[Person, domain.Person, uint](personGormRepository),
			data.NewDtoWrapFindByRepository[Person, domain.Person, Department, domain.Department](
				data.NewGormFindByRepository[Person, Department, uint](personGormRepository),
			),
			departmentRepository,
		),
	}
}
