package data

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	NotFoundError          = errors.New("not found")
	ReferenceNotFoundError = errors.New("referenced entity not found")
	DuplicatedKeyError     = errors.New("duplicated key")
)

func findID[T any, ID comparable](entity T) (ID, bool) {
	valueOfEntity := reflect.ValueOf(entity)
	if valueOfEntity.Type().Kind() == reflect.Pointer {
		valueOfEntity = reflect.Indirect(valueOfEntity)
	}
	value := valueOfEntity.FieldByName("ID")
	if !value.IsValid() {
		panic(fmt.Sprintf("Entity '%s' has not ID field", valueOfEntity.Type()))
	}
	if !value.Comparable() {
		panic(fmt.Sprintf("ID field type '%s' of '%s' is not comparable", value.Type(), valueOfEntity.Type()))
	}
	switch v := value.Interface().(type) {
	case ID:
		return v, value.IsZero()
	default:
		panic("Entity's ID field type is different from ID type constraint")
	}
}

func setID[T any, ID comparable](ptrToEntity *T, id ID) {
	valueOfEntity := reflect.ValueOf(ptrToEntity).Elem()
	if valueOfEntity.Kind() != reflect.Struct {
		panic(fmt.Sprintf("Entity '%s' is not struct type", valueOfEntity.Type()))
	}
	value := valueOfEntity.FieldByName("ID")
	if !value.IsValid() {
		panic(fmt.Sprintf("Entity '%s' has not ID field", valueOfEntity.Type()))
	}
	idValue := reflect.ValueOf(id)
	if idValue.Type() != value.Type() {
		panic(fmt.Sprintf("ID field type '%s' of '%s' is different from '%s'", value.Type(), valueOfEntity.Type(), idValue.Type()))
	}
	value.Set(idValue)
}

// nextID converts a sequence number into ID for integer identifiers.
func nextID[ID comparable](seq uint64) (ID, bool) {
	var id ID
	value := reflect.ValueOf(&id).Elem()
	switch value.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		value.SetUint(seq)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value.SetInt(int64(seq))
	default:
		return id, false
	}
	return id, true
}

type FetchMode string

const (
	FetchEagerMode FetchMode = "eager"
	FetchLazyMode  FetchMode = "lazy"
)

func ToFetchMode(m string) FetchMode {
	switch FetchMode(m) {
	case "", FetchLazyMode:
		return FetchLazyMode
	case FetchEagerMode:
		return FetchEagerMode
	default:
		panic(fmt.Sprintf("wrong fetch-mode - %s", m))
	}
}

func structType(entity any) reflect.Type {
	entityType := reflect.TypeOf(entity)
	for entityType.Kind() == reflect.Pointer || entityType.Kind() == reflect.Slice {
		entityType = entityType.Elem()
	}
	if entityType.Kind() != reflect.Struct {
		panic(fmt.Sprintf("entity[%s] is not struct type", entityType.String()))
	}
	return entityType
}

// findPreloads lists the fields tagged fetch:"eager".
func findPreloads(entity any) []string {
	var preloads []string
	entityType := structType(entity)
	for i := 0; i < entityType.NumField(); i++ {
		field := entityType.Field(i)
		if ToFetchMode(field.Tag.Get("fetch")) == FetchEagerMode {
			preloads = append(preloads, field.Name)
		}
	}
	return preloads
}

// belongToForeignKey returns the column of the "<name>ID" field of entity.
func belongToForeignKey(entity any, name string) string {
	entityType := structType(entity)
	fieldName := fmt.Sprintf("%sID", name)
	if _, ok := entityType.FieldByName(fieldName); !ok {
		panic(fmt.Sprintf("Entity '%s' has not %s field", entityType, fieldName))
	}
	return toSnakeCase(fieldName)
}

func toSnakeCase(camel string) string {
	var b strings.Builder
	diff := 'a' - 'A'
	l := len(camel)
	for i, v := range camel {
		// A is 65, a is 97
		if v >= 'a' {
			b.WriteRune(v)
			continue
		}
		if (i != 0 || i == l-1) && ( // head and tail
		(i > 0 && rune(camel[i-1]) >= 'a') || // pre
			(i < l-1 && rune(camel[i+1]) >= 'a')) { //next
			b.WriteRune('_')
		}
		b.WriteRune(v + diff)
	}
	return b.String()
}
