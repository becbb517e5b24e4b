package data_test

import (
	"context"
	"testing"

	"github.com/reuben-baek/relation-save/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tag struct {
	ID    uint
	Label string
}

type tagDto struct {
	ID   uint   `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name"`
}

func (tagDto) TableName() string {
	return "tags"
}

func (t tagDto) To() tag {
	return tag{ID: t.ID, Label: t.Name}
}

func (t tagDto) From(m tag) any {
	t.ID = m.ID
	t.Name = m.Label
	return t
}

func TestDtoWrapRepository(t *testing.T) {
	db := getGormDB()
	require.Nil(t, db.AutoMigrate(&tagDto{}))

	transactionManager := data.NewGormTransactionManager(db)
	repository := data.NewDtoWrapRepository[tagDto, tag, uint](data.NewGormRepository[tagDto, uint](transactionManager))

	ctx := context.Background()
	golang, err := repository.Create(ctx, tag{Label: "golang"})
	require.Nil(t, err)
	assert.NotEmpty(t, golang.ID)
	assert.Equal(t, "golang", golang.Label)

	found, err := repository.FindOne(ctx, golang.ID)
	assert.Nil(t, err)
	assert.Equal(t, golang, found)

	golang.Label = "go"
	_, err = repository.Update(ctx, golang)
	assert.Nil(t, err)

	all, err := repository.FindAll(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []tag{{ID: golang.ID, Label: "go"}}, all)

	t.Run("get reference reads on resolve", func(t *testing.T) {
		ref := repository.GetReference(ctx, golang.ID)
		peeked, loaded := ref.Peek()
		assert.False(t, loaded)
		assert.Equal(t, tag{ID: golang.ID}, peeked)

		resolved, err := ref.Resolve(ctx)
		assert.Nil(t, err)
		assert.Equal(t, "go", resolved.Label)
	})

	err = repository.Delete(ctx, golang)
	assert.Nil(t, err)
	_, err = repository.FindOne(ctx, golang.ID)
	assert.ErrorIs(t, err, data.NotFoundError)
}
