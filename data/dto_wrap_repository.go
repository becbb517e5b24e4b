package data

import (
	"context"
)

type DTO[M any] interface {
	To() M
	From(m M) any
}

// DtoWrapRepository stores the persistence form D of the domain model M.
type DtoWrapRepository[D DTO[M], M any, ID comparable] struct {
	dtoRepository CrudRepository[D, ID]
}

func NewDtoWrapRepository[D DTO[M], M any, ID comparable](dtoRepository CrudRepository[D, ID]) *DtoWrapRepository[D, M, ID] {
	return &DtoWrapRepository[D, M, ID]{
		dtoRepository: dtoRepository,
	}
}

func (d *DtoWrapRepository[D, M, ID]) FindOne(ctx context.Context, id ID) (M, error) {
	dto, err := d.dtoRepository.FindOne(ctx, id)
	if err != nil {
		var m M
		return m, err
	}
	return dto.To(), nil
}

func (d *DtoWrapRepository[D, M, ID]) FindAll(ctx context.Context) ([]M, error) {
	dtos, err := d.dtoRepository.FindAll(ctx)
	models := make([]M, 0, len(dtos))
	for _, v := range dtos {
		models = append(models, v.To())
	}
	return models, err
}

// Create returns entity itself with the generated identifier, so the
// references it holds keep their state.
func (d *DtoWrapRepository[D, M, ID]) Create(ctx context.Context, entity M) (M, error) {
	var dto D
	dto = dto.From(entity).(D)
	created, err := d.dtoRepository.Create(ctx, dto)
	if err != nil {
		return entity, err
	}
	id, _ := findID[D, ID](created)
	setID(&entity, id)
	return entity, nil
}

func (d *DtoWrapRepository[D, M, ID]) Update(ctx context.Context, entity M) (M, error) {
	var dto D
	dto = dto.From(entity).(D)
	if _, err := d.dtoRepository.Update(ctx, dto); err != nil {
		return entity, err
	}
	return entity, nil
}

func (d *DtoWrapRepository[D, M, ID]) Delete(ctx context.Context, entity M) error {
	var dto D
	dto = dto.From(entity).(D)
	return d.dtoRepository.Delete(ctx, dto)
}

func (d *DtoWrapRepository[D, M, ID]) GetReference(ctx context.Context, id ID) *Ref[M, ID] {
	return ManagedRef[M, ID](id, d.FindOne)
}

type DtoWrapFindByRepository[D DTO[M], M any, E DTO[S], S any] struct {
	dtoRepository FindByRepository[D, E]
}

func NewDtoWrapFindByRepository[D DTO[M], M any, E DTO[S], S any](dtoRepository FindByRepository[D, E]) *DtoWrapFindByRepository[D, M, E, S] {
	return &DtoWrapFindByRepository[D, M, E, S]{dtoRepository: dtoRepository}
}

func (d *DtoWrapFindByRepository[D, M, E, S]) FindBy(ctx context.Context, name string, byEntity S) ([]M, error) {
	var dto E
	dto = dto.From(byEntity).(E)
	dtos, err := d.dtoRepository.FindBy(ctx, name, dto)

	models := make([]M, 0, len(dtos))
	for _, v := range dtos {
		models = append(models, v.To())
	}
	return models, err
}
