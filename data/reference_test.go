package data

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRef(t *testing.T) {
	type Category struct {
		ID   uint
		Name string
	}
	computer := Category{ID: 1, Name: "computer"}
	ctx := context.Background()

	t.Run("loaded", func(t *testing.T) {
		ref := LoadedRef[Category, uint](computer.ID, computer)
		assert.Equal(t, Loaded, ref.State())
		assert.False(t, ref.IsManaged())

		peeked, loaded := ref.Peek()
		assert.True(t, loaded)
		assert.Equal(t, computer, peeked)

		resolved, err := ref.Resolve(ctx)
		assert.Nil(t, err)
		assert.Equal(t, computer, resolved)
	})

	t.Run("managed resolves on demand", func(t *testing.T) {
		calls := 0
		ref := ManagedRef[Category, uint](computer.ID, func(ctx context.Context, id uint) (Category, error) {
			calls++
			assert.Equal(t, computer.ID, id)
			return computer, nil
		})
		assert.Equal(t, 0, calls)
		assert.Equal(t, Unloaded, ref.State())
		assert.True(t, ref.IsManaged())
		assert.Equal(t, computer.ID, ref.ID())

		peeked, loaded := ref.Peek()
		assert.False(t, loaded)
		assert.Equal(t, Category{ID: computer.ID}, peeked)
		assert.Equal(t, 0, calls)

		resolved, err := ref.Resolve(ctx)
		assert.Nil(t, err)
		assert.Equal(t, computer, resolved)
		assert.Equal(t, Loaded, ref.State())

		_, _ = ref.Resolve(ctx)
		assert.Equal(t, 1, calls)
	})

	t.Run("managed not found is retried", func(t *testing.T) {
		calls := 0
		ref := ManagedRef[Category, uint](99, func(ctx context.Context, id uint) (Category, error) {
			calls++
			return Category{}, NotFoundError
		})
		resolved, err := ref.Resolve(ctx)
		assert.ErrorIs(t, err, NotFoundError)
		assert.Equal(t, Category{ID: 99}, resolved)
		assert.Equal(t, Unloaded, ref.State())

		_, err = ref.Resolve(ctx)
		assert.True(t, errors.Is(err, NotFoundError))
		assert.Equal(t, 2, calls)
	})

	t.Run("placeholder never loads", func(t *testing.T) {
		ref := PlaceholderRef[Category, uint](computer.ID)
		assert.False(t, ref.IsManaged())
		assert.Equal(t, Unloaded, ref.State())

		resolved, err := ref.Resolve(ctx)
		assert.Nil(t, err)
		assert.Equal(t, Category{ID: computer.ID}, resolved)
		assert.Empty(t, resolved.Name)
		assert.Equal(t, Unloaded, ref.State())
	})

	t.Run("concurrent resolve loads once", func(t *testing.T) {
		var m sync.Mutex
		calls := 0
		ref := ManagedRef[Category, uint](computer.ID, func(ctx context.Context, id uint) (Category, error) {
			m.Lock()
			defer m.Unlock()
			calls++
			return computer, nil
		})
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = ref.Resolve(ctx)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, calls)
	})

	t.Run("managed without resolver panics", func(t *testing.T) {
		assert.Panics(t, func() {
			ManagedRef[Category, uint](1, nil)
		})
	})
}

func TestRefState_String(t *testing.T) {
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "unloaded", Unloaded.String())
	assert.Equal(t, "unknown", RefState(0).String())
}
