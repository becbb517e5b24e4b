package data

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type GormRepository[T any, ID comparable] struct {
	transactionManager TransactionManager
}

func NewGormRepository[T any, ID comparable](transactionManager TransactionManager) *GormRepository[T, ID] {
	return &GormRepository[T, ID]{transactionManager: transactionManager}
}

func (u *GormRepository[T, ID]) session(ctx context.Context) *gorm.DB {
	db, ok := u.transactionManager.Get(ctx).(*gorm.DB)
	if !ok {
		panic("GormRepository: transaction manager does not provide *gorm.DB")
	}
	return db
}

func (u *GormRepository[T, ID]) preload(db *gorm.DB, entity any) *gorm.DB {
	for _, v := range findPreloads(entity) {
		db = db.Preload(v)
	}
	return db
}

func (u *GormRepository[T, ID]) relationships(db *gorm.DB, entity any) ([]*schema.Relationship, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(entity); err != nil {
		return nil, err
	}
	relationships := make([]*schema.Relationship, 0, len(stmt.Schema.Relationships.Relations))
	for _, rel := range stmt.Schema.Relationships.Relations {
		relationships = append(relationships, rel)
	}
	return relationships, nil
}

// omitAssociations keeps associated rows untouched on save.
// Many-to-many join rows are still written.
func (u *GormRepository[T, ID]) omitAssociations(db *gorm.DB, entity *T) (*gorm.DB, error) {
	relationships, err := u.relationships(db, entity)
	if err != nil {
		return db, err
	}
	omits := make([]string, 0, len(relationships))
	for _, rel := range relationships {
		if rel.Type == schema.Many2Many {
			omits = append(omits, rel.Name+".*")
		} else {
			omits = append(omits, rel.Name)
		}
	}
	if len(omits) == 0 {
		return db, nil
	}
	return db.Omit(omits...), nil
}

func (u *GormRepository[T, ID]) clearJoinTables(db *gorm.DB, entity T) error {
	relationships, err := u.relationships(db, &entity)
	if err != nil {
		return err
	}
	for _, rel := range relationships {
		if rel.Type != schema.Many2Many {
			continue
		}
		// Clear resets the field of its model, so work on a copy.
		target := entity
		logrus.Debugf("GormRepository: clear many-to-many association %s", rel.Name)
		if err := db.Model(&target).Association(rel.Name).Clear(); err != nil {
			return err
		}
	}
	return nil
}

func (u *GormRepository[T, ID]) FindOne(ctx context.Context, id ID) (T, error) {
	var entity T
	if err := u.preload(u.session(ctx), entity).First(&entity, "id = ?", id).Error; err != nil {
		return entity, TranslateError(err)
	}
	return entity, nil
}

func (u *GormRepository[T, ID]) FindAll(ctx context.Context) ([]T, error) {
	var entity T
	var entities []T
	if err := u.preload(u.session(ctx), entity).Order("id").Find(&entities).Error; err != nil {
		return entities, TranslateError(err)
	}
	return entities, nil
}

// FindBy finds entities whose "<name>ID" foreign key points at belongTo.
func (u *GormRepository[T, ID]) FindBy(ctx context.Context, name string, belongTo any) ([]T, error) {
	var entity T
	var entities []T

	foreignKey := belongToForeignKey(entity, name)
	foreignKeyValue, zero := findID[any, any](belongTo)
	if zero {
		panic(fmt.Sprintf("FindBy: %s's ID field is empty", name))
	}
	logrus.Debugf("GormRepository.FindBy: %s = %v", foreignKey, foreignKeyValue)
	if err := u.preload(u.session(ctx), entity).
		Order("id").
		Find(&entities, fmt.Sprintf("%s = ?", foreignKey), foreignKeyValue).Error; err != nil {
		return entities, TranslateError(err)
	}
	return entities, nil
}

func (u *GormRepository[T, ID]) Create(ctx context.Context, entity T) (T, error) {
	var created T
	db, err := u.omitAssociations(u.session(ctx), &entity)
	if err != nil {
		return created, err
	}
	if err := db.Create(&entity).Error; err != nil {
		return created, TranslateError(err)
	}
	logrus.Debugf("GormRepository.Create: entity [%+v]", entity)
	created = entity
	return created, nil
}

func (u *GormRepository[T, ID]) Update(ctx context.Context, entity T) (T, error) {
	id, zero := findID[T, ID](entity)
	if zero {
		panic("entity.ID is missing")
	}
	err := u.session(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return NotFoundError
		}
		if err := u.clearJoinTables(tx, entity); err != nil {
			return err
		}
		db, err := u.omitAssociations(tx, &entity)
		if err != nil {
			return err
		}
		return db.Save(&entity).Error
	})
	if err != nil {
		return entity, TranslateError(err)
	}
	logrus.Debugf("GormRepository.Update: entity [%+v]", entity)
	return entity, nil
}

func (u *GormRepository[T, ID]) Delete(ctx context.Context, entity T) error {
	if _, zero := findID[T, ID](entity); zero {
		panic("entity.ID is missing")
	}
	err := u.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.clearJoinTables(tx, entity); err != nil {
			return err
		}
		result := tx.Delete(&entity)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return NotFoundError
		}
		return nil
	})
	return TranslateError(err)
}

type GormFindByRepository[T any, S any, ID comparable] struct {
	*GormRepository[T, ID]
}

func NewGormFindByRepository[T any, S any, ID comparable](gormRepository *GormRepository[T, ID]) *GormFindByRepository[T, S, ID] {
	return &GormFindByRepository[T, S, ID]{GormRepository: gormRepository}
}

func (u *GormFindByRepository[T, S, ID]) FindBy(ctx context.Context, name string, byEntity S) ([]T, error) {
	return u.GormRepository.FindBy(ctx, name, byEntity)
}

// TranslateError maps gorm and driver errors onto NotFoundError,
// ReferenceNotFoundError and DuplicatedKeyError. Other errors pass through.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, NotFoundError), errors.Is(err, gorm.ErrRecordNotFound):
		return NotFoundError
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		containsAny(err.Error(), "FOREIGN KEY constraint failed", "SQLSTATE 23503"):
		return fmt.Errorf("%w: %v", ReferenceNotFoundError, err)
	case errors.Is(err, gorm.ErrDuplicatedKey),
		containsAny(err.Error(), "UNIQUE constraint failed", "SQLSTATE 23505"):
		return fmt.Errorf("%w: %v", DuplicatedKeyError, err)
	default:
		return err
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, v := range substrs {
		if strings.Contains(s, v) {
			return true
		}
	}
	return false
}
