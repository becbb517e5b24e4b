package service

import (
	"context"

	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/domain"
	"github.com/reuben-baek/relation-save/metrics"
	"github.com/sirupsen/logrus"
)

type PersonService struct {
	transactionManager   data.TransactionManager
	personRepository     domain.PersonRepository
	departmentRepository domain.DepartmentRepository
	strategy             Strategy
}

func NewPersonService(
	transactionManager data.TransactionManager,
	personRepository domain.PersonRepository,
	departmentRepository domain.DepartmentRepository,
	strategy Strategy,
) *PersonService {
	return &PersonService{
		transactionManager:   transactionManager,
		personRepository:     personRepository,
		departmentRepository: departmentRepository,
		strategy:             strategy.or(ReferenceStrategy),
	}
}

// Insert creates a person from the flat form. The echoed department is its identifier,
// so the department is not read under either strategy.
func (s *PersonService) Insert(ctx context.Context, dto PersonDTO, strategy Strategy) (PersonDTO, error) {
	strategy = strategy.or(s.strategy)
	if err := strategy.validate(); err != nil {
		return PersonDTO{}, err
	}
	if err := dto.validate(); err != nil {
		metrics.ObserveInsert("person", string(strategy), err)
		return PersonDTO{}, err
	}

	var saved PersonDTO
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		created, err := s.create(ctx, dto.Name, dto.Salary, dto.DepartmentID, strategy)
		if err != nil {
			return err
		}
		saved = newPersonDTO(created)
		return nil
	})
	metrics.ObserveInsert("person", string(strategy), err)
	if err != nil {
		logrus.Debugf("PersonService.Insert: strategy [%s] failed [%v]", strategy, err)
		return PersonDTO{}, err
	}
	return saved, nil
}

// InsertWithDepartment creates a person from the nested form and echoes the department
// as the strategy left it.
func (s *PersonService) InsertWithDepartment(ctx context.Context, dto PersonDepartmentDTO, strategy Strategy) (PersonDepartmentDTO, error) {
	strategy = strategy.or(s.strategy)
	if err := strategy.validate(); err != nil {
		return PersonDepartmentDTO{}, err
	}
	if err := dto.validate(); err != nil {
		metrics.ObserveInsert("person", string(strategy), err)
		return PersonDepartmentDTO{}, err
	}

	var saved PersonDepartmentDTO
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		created, err := s.create(ctx, dto.Name, dto.Salary, dto.Department.ID, strategy)
		if err != nil {
			return err
		}
		saved, err = newPersonDepartmentDTO(ctx, created)
		return err
	})
	metrics.ObserveInsert("person", string(strategy), err)
	if err != nil {
		logrus.Debugf("PersonService.InsertWithDepartment: strategy [%s] failed [%v]", strategy, err)
		return PersonDepartmentDTO{}, err
	}
	return saved, nil
}

func (s *PersonService) create(ctx context.Context, name string, salary float64, departmentID uint, strategy Strategy) (domain.Person, error) {
	person := domain.Person{
		Name:       name,
		Salary:     salary,
		Department: attach[domain.Department](ctx, strategy, s.departmentRepository, departmentID),
	}
	created, err := s.personRepository.Create(ctx, person)
	if err != nil {
		return created, err
	}
	logrus.Debugf("PersonService: strategy [%s] person [%d] department [%d]", strategy, created.ID, departmentID)
	return created, nil
}

func (s *PersonService) FindOne(ctx context.Context, id uint) (PersonDepartmentDTO, error) {
	var found PersonDepartmentDTO
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		person, err := s.personRepository.FindOne(ctx, id)
		if err != nil {
			return err
		}
		found, err = newPersonDepartmentDTO(ctx, person)
		return err
	})
	return found, err
}

// FindByDepartment reads the department once and shares it across the people found.
func (s *PersonService) FindByDepartment(ctx context.Context, departmentID uint) ([]PersonDepartmentDTO, error) {
	var found []PersonDepartmentDTO
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		department, err := s.departmentRepository.FindOne(ctx, departmentID)
		if err != nil {
			return err
		}
		people, err := s.personRepository.FindByDepartment(ctx, department)
		if err != nil {
			return err
		}
		found = make([]PersonDepartmentDTO, 0, len(people))
		for _, v := range people {
			v.Department = data.LoadedRef(department.ID, department)
			dto, err := newPersonDepartmentDTO(ctx, v)
			if err != nil {
				return err
			}
			found = append(found, dto)
		}
		return nil
	})
	return found, err
}
