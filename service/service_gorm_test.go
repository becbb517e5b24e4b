package service_test

import (
	"context"
	"testing"

	"github.com/reuben-baek/relation-save/config"
	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/infra"
	"github.com/reuben-baek/relation-save/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gormServices struct {
	products    *service.ProductService
	people      *service.PersonService
	categories  *service.CategoryService
	departments *service.DepartmentService
}

func newGormServices(t *testing.T) gormServices {
	db, err := infra.OpenDatabase(config.Default().Database)
	require.Nil(t, err)
	require.Nil(t, infra.Migrate(db))

	transactionManager := data.NewGormTransactionManager(db)
	repositories := infra.NewRepositories(transactionManager)
	return gormServices{
		products:    service.NewProductService(transactionManager, repositories.Products, repositories.Categories, service.ReferenceStrategy),
		people:      service.NewPersonService(transactionManager, repositories.People, repositories.Departments, service.ReferenceStrategy),
		categories:  service.NewCategoryService(transactionManager, repositories.Categories),
		departments: service.NewDepartmentService(transactionManager, repositories.Departments),
	}
}

func ids(categories []service.CategoryDTO) []uint {
	ids := make([]uint, 0, len(categories))
	for _, v := range categories {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestProductService_Gorm(t *testing.T) {
	ctx := context.Background()
	s := newGormServices(t)

	computer, err := s.categories.Insert(ctx, service.CategoryDTO{Name: "computer"})
	require.Nil(t, err)
	electronics, err := s.categories.Insert(ctx, service.CategoryDTO{Name: "electronics"})
	require.Nil(t, err)
	office, err := s.categories.Insert(ctx, service.CategoryDTO{Name: "office"})
	require.Nil(t, err)

	for _, strategy := range []service.Strategy{service.ReferenceStrategy, service.PlaceholderStrategy} {
		t.Run(string(strategy)+" round trip", func(t *testing.T) {
			saved, err := s.products.Insert(ctx, service.ProductDTO{
				Name:       "macbook " + string(strategy),
				Price:      1999.5,
				Categories: []service.CategoryDTO{{ID: computer.ID}, {ID: electronics.ID}, {ID: office.ID}},
			}, strategy)
			require.Nil(t, err)
			assert.ElementsMatch(t, []uint{computer.ID, electronics.ID, office.ID}, ids(saved.Categories))

			found, err := s.products.FindOne(ctx, saved.ID)
			require.Nil(t, err)
			assert.Equal(t, saved.Name, found.Name)
			assert.Equal(t, saved.Price, found.Price)
			assert.ElementsMatch(t, ids(saved.Categories), ids(found.Categories))
			assert.ElementsMatch(t, []service.CategoryDTO{computer, electronics, office}, found.Categories)
		})

		t.Run(string(strategy)+" missing category creates nothing", func(t *testing.T) {
			before, err := s.products.FindAll(ctx)
			require.Nil(t, err)

			_, err = s.products.Insert(ctx, service.ProductDTO{
				Name:       "ghost",
				Categories: []service.CategoryDTO{{ID: computer.ID}, {ID: 404}},
			}, strategy)
			assert.ErrorIs(t, err, data.ReferenceNotFoundError)

			after, err := s.products.FindAll(ctx)
			assert.Nil(t, err)
			assert.Equal(t, len(before), len(after))

			categories, err := s.categories.FindAll(ctx)
			assert.Nil(t, err)
			assert.Equal(t, 3, len(categories))
		})
	}

	t.Run("placeholder echo hides names", func(t *testing.T) {
		saved, err := s.products.Insert(ctx, service.ProductDTO{
			Name:       "pc",
			Categories: []service.CategoryDTO{{ID: computer.ID, Name: "ignored"}},
		}, service.PlaceholderStrategy)
		require.Nil(t, err)
		assert.Equal(t, []service.CategoryDTO{{ID: computer.ID}}, saved.Categories)

		found, err := s.categories.FindOne(ctx, computer.ID)
		assert.Nil(t, err)
		assert.Equal(t, "computer", found.Name)
	})

	t.Run("empty categories", func(t *testing.T) {
		saved, err := s.products.Insert(ctx, service.ProductDTO{Name: "mouse", Categories: []service.CategoryDTO{}}, "")
		require.Nil(t, err)
		found, err := s.products.FindOne(ctx, saved.ID)
		assert.Nil(t, err)
		assert.Empty(t, found.Categories)
	})

	for _, strategy := range []service.Strategy{service.ReferenceStrategy, service.PlaceholderStrategy} {
		t.Run(string(strategy)+" duplicate categories collapse", func(t *testing.T) {
			saved, err := s.products.Insert(ctx, service.ProductDTO{
				Name:       "keyboard",
				Categories: []service.CategoryDTO{{ID: electronics.ID}, {ID: computer.ID}, {ID: electronics.ID}},
			}, strategy)
			require.Nil(t, err)
			assert.Equal(t, []uint{electronics.ID, computer.ID}, ids(saved.Categories))

			found, err := s.products.FindOne(ctx, saved.ID)
			require.Nil(t, err)
			assert.ElementsMatch(t, ids(saved.Categories), ids(found.Categories))
		})
	}

	t.Run("find by category", func(t *testing.T) {
		products, err := s.products.FindByCategory(ctx, office.ID)
		assert.Nil(t, err)
		assert.Equal(t, 2, len(products))

		_, err = s.products.FindByCategory(ctx, 404)
		assert.ErrorIs(t, err, data.NotFoundError)
	})
}

func TestPersonService_Gorm(t *testing.T) {
	ctx := context.Background()
	s := newGormServices(t)

	cloud, err := s.departments.Insert(ctx, service.DepartmentDTO{Name: "cloud"})
	require.Nil(t, err)

	t.Run("flat round trip", func(t *testing.T) {
		saved, err := s.people.Insert(ctx, service.PersonDTO{Name: "reuben", Salary: 4200, DepartmentID: cloud.ID}, service.PlaceholderStrategy)
		require.Nil(t, err)
		assert.Equal(t, cloud.ID, saved.DepartmentID)

		found, err := s.people.FindOne(ctx, saved.ID)
		require.Nil(t, err)
		assert.Equal(t, "reuben", found.Name)
		assert.Equal(t, 4200.0, found.Salary)
		assert.Equal(t, &service.DepartmentDTO{ID: cloud.ID, Name: "cloud"}, found.Department)
	})

	t.Run("nested with placeholder", func(t *testing.T) {
		saved, err := s.people.InsertWithDepartment(ctx, service.PersonDepartmentDTO{
			Name:       "maria",
			Department: &service.DepartmentDTO{ID: cloud.ID},
		}, service.PlaceholderStrategy)
		require.Nil(t, err)
		assert.Equal(t, &service.DepartmentDTO{ID: cloud.ID}, saved.Department)
	})

	t.Run("nested with reference", func(t *testing.T) {
		saved, err := s.people.InsertWithDepartment(ctx, service.PersonDepartmentDTO{
			Name:       "bob",
			Department: &service.DepartmentDTO{ID: cloud.ID},
		}, service.ReferenceStrategy)
		require.Nil(t, err)
		assert.Equal(t, &service.DepartmentDTO{ID: cloud.ID, Name: "cloud"}, saved.Department)
	})

	for _, strategy := range []service.Strategy{service.ReferenceStrategy, service.PlaceholderStrategy} {
		t.Run(string(strategy)+" missing department creates nothing", func(t *testing.T) {
			_, err := s.people.Insert(ctx, service.PersonDTO{Name: "ghost", DepartmentID: 404}, strategy)
			assert.ErrorIs(t, err, data.ReferenceNotFoundError)

			_, err = s.people.InsertWithDepartment(ctx, service.PersonDepartmentDTO{
				Name:       "ghost",
				Department: &service.DepartmentDTO{ID: 404},
			}, strategy)
			assert.ErrorIs(t, err, data.ReferenceNotFoundError)

			people, err := s.people.FindByDepartment(ctx, cloud.ID)
			assert.Nil(t, err)
			assert.Equal(t, 3, len(people))
		})
	}
}
