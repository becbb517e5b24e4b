package service_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/infra"
	"github.com/reuben-baek/relation-save/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockPersonService(t *testing.T) (*service.PersonService, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.Nil(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Info),
	})
	require.Nil(t, err)

	transactionManager := data.NewGormTransactionManager(db)
	repositories := infra.NewRepositories(transactionManager)
	return service.NewPersonService(transactionManager, repositories.People, repositories.Departments, service.ReferenceStrategy), mock
}

func TestPersonService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("placeholder issues no select", func(t *testing.T) {
		people, mock := newMockPersonService(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "people"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectCommit()

		saved, err := people.InsertWithDepartment(ctx, service.PersonDepartmentDTO{
			Name:       "reuben",
			Salary:     100,
			Department: &service.DepartmentDTO{ID: 3},
		}, service.PlaceholderStrategy)
		require.Nil(t, err)
		assert.Equal(t, uint(7), saved.ID)
		assert.Equal(t, &service.DepartmentDTO{ID: 3}, saved.Department)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reference reads the department once on echo", func(t *testing.T) {
		people, mock := newMockPersonService(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "people"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
		mock.ExpectQuery(`SELECT \* FROM "departments"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "cloud"))
		mock.ExpectCommit()

		saved, err := people.InsertWithDepartment(ctx, service.PersonDepartmentDTO{
			Name:       "maria",
			Department: &service.DepartmentDTO{ID: 3},
		}, service.ReferenceStrategy)
		require.Nil(t, err)
		assert.Equal(t, &service.DepartmentDTO{ID: 3, Name: "cloud"}, saved.Department)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("flat form issues no select", func(t *testing.T) {
		people, mock := newMockPersonService(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "people"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
		mock.ExpectCommit()

		saved, err := people.Insert(ctx, service.PersonDTO{Name: "bob", DepartmentID: 3}, service.ReferenceStrategy)
		require.Nil(t, err)
		assert.Equal(t, uint(3), saved.DepartmentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign key violation rolls back", func(t *testing.T) {
		people, mock := newMockPersonService(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "people"`).
			WillReturnError(&pgconnError{})
		mock.ExpectRollback()

		_, err := people.Insert(ctx, service.PersonDTO{Name: "ghost", DepartmentID: 404}, service.PlaceholderStrategy)
		assert.ErrorIs(t, err, data.ReferenceNotFoundError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

type pgconnError struct{}

func (e *pgconnError) Error() string {
	return `ERROR: insert or update on table "people" violates foreign key constraint "fk_people_department" (SQLSTATE 23503)`
}
