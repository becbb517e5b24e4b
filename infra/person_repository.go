package infra

import (
	"context"

	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/domain"
)

type PersonRepository struct {
	data.Repository[domain.Person, uint]
	departmentBelongToRepository data.FindByRepository[domain.Person, domain.Department]
	departmentRepository         data.ReferenceRepository[domain.Department, uint]
}

func NewPersonRepository(
	repository data.Repository[domain.Person, uint],
	departmentBelongToRepository data.FindByRepository[domain.Person, domain.Department],
	departmentRepository data.ReferenceRepository[domain.Department, uint],
) *PersonRepository {
	return &PersonRepository{
		Repository:                   repository,
		departmentBelongToRepository: departmentBelongToRepository,
		departmentRepository:         departmentRepository,
	}
}

func (p *PersonRepository) FindOne(ctx context.Context, id uint) (domain.Person, error) {
	person, err := p.Repository.FindOne(ctx, id)
	if err != nil {
		return person, err
	}
	return p.bindDepartment(ctx, person), nil
}

func (p *PersonRepository) FindByDepartment(ctx context.Context, department domain.Department) ([]domain.Person, error) {
	people, err := p.departmentBelongToRepository.FindBy(ctx, "Department", department)
	if err != nil {
		return nil, err
	}
	for i := range people {
		people[i] = p.bindDepartment(ctx, people[i])
	}
	return people, nil
}

// bindDepartment turns the department read back as a bare id into a managed reference.
func (p *PersonRepository) bindDepartment(ctx context.Context, person domain.Person) domain.Person {
	if person.Department != nil && !person.Department.IsManaged() {
		person.Department = p.departmentRepository.GetReference(ctx, person.Department.ID())
	}
	return person
}
