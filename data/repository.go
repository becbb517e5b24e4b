package data

import "context"

type Repository[T any, ID comparable] interface {
	FindOne(ctx context.Context, id ID) (T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, entity T) (T, error)
	Delete(ctx context.Context, entity T) error
}

type FindAllRepository[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
}

type CrudRepository[T any, ID comparable] interface {
	Repository[T, ID]
	FindAllRepository[T]
}

// FindByRepository finds entities belonging to byEntity through the association called name.
type FindByRepository[T any, S any] interface {
	FindBy(ctx context.Context, name string, byEntity S) ([]T, error)
}

// ReferenceRepository hands out references bound to an identifier without reading the record.
type ReferenceRepository[T any, ID comparable] interface {
	GetReference(ctx context.Context, id ID) *Ref[T, ID]
}
