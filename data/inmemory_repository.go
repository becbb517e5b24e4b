package data

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type InMemoryRepository[T any, ID comparable] struct {
	m                  sync.RWMutex
	database           map[ID]T
	order              []ID
	seq                uint64
	transactionManager TransactionManager
}

func NewInMemoryRepository[T any, ID comparable](transactionManager TransactionManager) *InMemoryRepository[T, ID] {
	return &InMemoryRepository[T, ID]{
		database:           make(map[ID]T),
		transactionManager: transactionManager,
	}
}

func (u *InMemoryRepository[T, ID]) FindOne(ctx context.Context, id ID) (T, error) {
	u.m.RLock()
	defer u.m.RUnlock()
	var v T
	var ok bool
	if v, ok = u.database[id]; ok {
		return v, nil
	} else {
		return v, NotFoundError
	}
}

func (u *InMemoryRepository[T, ID]) FindAll(ctx context.Context) ([]T, error) {
	u.m.RLock()
	defer u.m.RUnlock()
	entities := make([]T, 0, len(u.order))
	for _, id := range u.order {
		entities = append(entities, u.database[id])
	}
	return entities, nil
}

// Create assigns the next sequence number to integer identifiers left empty.
func (u *InMemoryRepository[T, ID]) Create(ctx context.Context, entity T) (T, error) {
	u.m.Lock()
	defer u.m.Unlock()
	transaction := u.transactionManager.Get(ctx)
	id, zero := findID[T, ID](entity)
	if zero {
		if next, ok := nextID[ID](u.seq + 1); ok {
			u.seq++
			id = next
			setID(&entity, id)
		}
	}
	if _, ok := u.database[id]; ok {
		return entity, DuplicatedKeyError
	}
	logrus.Debugf("InMemoryRepository.Create: transaction [%v] entity [%+v]", transaction, entity)
	u.database[id] = entity
	u.order = append(u.order, id)
	return entity, nil
}

func (u *InMemoryRepository[T, ID]) Update(ctx context.Context, entity T) (T, error) {
	u.m.Lock()
	defer u.m.Unlock()
	var v T
	id, _ := findID[T, ID](entity)
	if _, ok := u.database[id]; ok {
		u.database[id] = entity
		return entity, nil
	} else {
		return v, NotFoundError
	}
}

func (u *InMemoryRepository[T, ID]) Delete(ctx context.Context, entity T) error {
	u.m.Lock()
	defer u.m.Unlock()
	id, _ := findID[T, ID](entity)
	if _, ok := u.database[id]; !ok {
		return NotFoundError
	}
	delete(u.database, id)
	for i := 0; i < len(u.order); i++ {
		if u.order[i] == id {
			u.order = append(u.order[:i], u.order[i+1:]...)
			break
		}
	}
	return nil
}

func (u *InMemoryRepository[T, ID]) GetReference(ctx context.Context, id ID) *Ref[T, ID] {
	return ManagedRef[T, ID](id, u.FindOne)
}
