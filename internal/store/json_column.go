package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-tours/models"
)

// jsonColumn stores the value behind V in a JSONB column.
type jsonColumn[T any] struct {
	V *T
}

func asJSON[T any](v *T) jsonColumn[T] {
	return jsonColumn[T]{V: v}
}

func (c jsonColumn[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(c.V)
	if err != nil {
		return nil, fmt.Errorf("error encoding json column: %w", err)
	}

	return string(b), nil
}

func (c jsonColumn[T]) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		var zero T
		*c.V = zero
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported json column source %T", src)
	}

	if err := json.Unmarshal(b, c.V); err != nil {
		return fmt.Errorf("error decoding json column: %w", err)
	}

	return nil
}

// refsColumn stores a list of references as a JSONB array of ids, whether or
// not they are populated.
type refsColumn[T any] struct {
	V *[]models.Ref[T]
}

func asRefs[T any](v *[]models.Ref[T]) refsColumn[T] {
	return refsColumn[T]{V: v}
}

func (c refsColumn[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(models.RefIDs(*c.V))
	if err != nil {
		return nil, fmt.Errorf("error encoding refs column: %w", err)
	}

	return string(b), nil
}

func (c refsColumn[T]) Scan(src any) error {
	var ids []string
	if err := asJSON(&ids).Scan(src); err != nil {
		return err
	}
	*c.V = models.NewRefs[T](ids)

	return nil
}
