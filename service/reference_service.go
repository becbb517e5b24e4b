package service

import (
	"context"

	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/domain"
)

// CategoryService seeds and reads the categories products are attached to.
type CategoryService struct {
	transactionManager data.TransactionManager
	categoryRepository domain.CategoryRepository
}

func NewCategoryService(transactionManager data.TransactionManager, categoryRepository domain.CategoryRepository) *CategoryService {
	return &CategoryService{
		transactionManager: transactionManager,
		categoryRepository: categoryRepository,
	}
}

func (s *CategoryService) Insert(ctx context.Context, dto CategoryDTO) (CategoryDTO, error) {
	if dto.Name == "" {
		return CategoryDTO{}, invalid("category name is empty")
	}
	var saved CategoryDTO
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		created, err := s.categoryRepository.Create(ctx, domain.Category{Name: dto.Name})
		saved = newCategoryDTO(created)
		return err
	})
	if err != nil {
		return CategoryDTO{}, err
	}
	return saved, nil
}

func (s *CategoryService) FindOne(ctx context.Context, id uint) (CategoryDTO, error) {
	category, err := s.categoryRepository.FindOne(ctx, id)
	if err != nil {
		return CategoryDTO{}, err
	}
	return newCategoryDTO(category), nil
}

func (s *CategoryService) FindAll(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.categoryRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, v := range categories {
		dtos = append(dtos, newCategoryDTO(v))
	}
	return dtos, nil
}

// DepartmentService seeds and reads the departments people belong to.
type DepartmentService struct {
	transactionManager   data.TransactionManager
	departmentRepository domain.DepartmentRepository
}

func NewDepartmentService(transactionManager data.TransactionManager, departmentRepository domain.DepartmentRepository) *DepartmentService {
	return &DepartmentService{
		transactionManager:   transactionManager,
		departmentRepository: departmentRepository,
	}
}

func (s *DepartmentService) Insert(ctx context.Context, dto DepartmentDTO) (DepartmentDTO, error) {
	if dto.Name == "" {
		return DepartmentDTO{}, invalid("department name is empty")
	}
	var saved DepartmentDTO
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		created, err := s.departmentRepository.Create(ctx, domain.Department{Name: dto.Name})
		saved = newDepartmentDTO(created)
		return err
	})
	if err != nil {
		return DepartmentDTO{}, err
	}
	return saved, nil
}

func (s *DepartmentService) FindOne(ctx context.Context, id uint) (DepartmentDTO, error) {
	department, err := s.departmentRepository.FindOne(ctx, id)
	if err != nil {
		return DepartmentDTO{}, err
	}
	return newDepartmentDTO(department), nil
}

func (s *DepartmentService) FindAll(ctx context.Context) ([]DepartmentDTO, error) {
	departments, err := s.departmentRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]DepartmentDTO, 0, len(departments))
	for _, v := range departments {
		dtos = append(dtos, newDepartmentDTO(v))
	}
	return dtos, nil
}
